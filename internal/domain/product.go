package domain

// Product is a catalog entry. Field names follow the wire shape shared by the
// backend and the public demo catalog, so a product can be decoded from either.
type Product struct {
	ID                 int64    `json:"id"`
	Title              string   `json:"title"`
	Description        string   `json:"description,omitempty"`
	Brand              string   `json:"brand,omitempty"`
	Category           string   `json:"category"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discountPercentage,omitempty"`
	Stock              int      `json:"stock"`
	Rating             float64  `json:"rating,omitempty"`
	Images             []string `json:"images,omitempty"`
	Thumbnail          string   `json:"thumbnail,omitempty"`
}

// Category describes one catalog category. The demo catalog returns these as
// descriptor objects; the backend may return bare slugs.
type Category struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Page is one fetched slice of the catalog together with the server-reported
// total count.
type Page struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}
