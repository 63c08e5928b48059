// Package catalog caches the last-fetched product view.
package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

// Fetcher is the catalog gateway as seen by the cache.
type Fetcher interface {
	ListProducts(ctx context.Context, limit, skip int) (domain.Page, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
	SearchProducts(ctx context.Context, query string) (domain.Page, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListByCategory(ctx context.Context, category string) (domain.Page, error)
	CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error)
}

// Cache holds the displayed product slice. Successful fetches replace their
// slice wholesale; failures keep the previous items in place so the view
// degrades to stale-but-present rather than empty.
//
// Concurrent fetches into the same slot are sequenced by a monotonically
// increasing token: a fetch that resolves after a newer one was issued for its
// slot is discarded silently, so the newest request always wins regardless of
// resolution order.
type Cache struct {
	mu sync.Mutex

	items      []domain.Product
	categories []domain.Category
	current    *domain.Product
	total      int
	loading    bool
	errMsg     string

	searchQuery      string
	selectedCategory string

	// One token per query slot: list/search/by-category all write items.
	itemsToken      uint64
	currentToken    uint64
	categoriesToken uint64

	fetcher Fetcher
	sfg     singleflight.Group
}

func New(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// FetchProducts loads one catalog page into the items slot.
func (c *Cache) FetchProducts(ctx context.Context, limit, skip int) error {
	token := c.beginItems()
	page, err := c.fetcher.ListProducts(ctx, limit, skip)
	return c.finishItems(token, page, err)
}

// Search loads matching products into the items slot.
func (c *Cache) Search(ctx context.Context, query string) error {
	token := c.beginItems()
	page, err := c.fetcher.SearchProducts(ctx, query)
	return c.finishItems(token, page, err)
}

// FetchByCategory loads one category's products into the items slot.
func (c *Cache) FetchByCategory(ctx context.Context, category string) error {
	token := c.beginItems()
	page, err := c.fetcher.ListByCategory(ctx, category)
	return c.finishItems(token, page, err)
}

// FetchProduct loads the detail view's current product.
func (c *Cache) FetchProduct(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.currentToken++
	token := c.currentToken
	c.mu.Unlock()

	p, err := c.fetcher.GetProduct(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.currentToken {
		return nil
	}
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.current = &p
	return nil
}

// FetchCategories loads the category set. Concurrent calls collapse into a
// single request.
func (c *Cache) FetchCategories(ctx context.Context) error {
	c.mu.Lock()
	c.categoriesToken++
	token := c.categoriesToken
	c.mu.Unlock()

	v, err, _ := c.sfg.Do("categories", func() (interface{}, error) {
		return c.fetcher.ListCategories(ctx)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.categoriesToken {
		return nil
	}
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.categories = v.([]domain.Category)
	return nil
}

// AddProduct creates a product on the primary backend and, like the admin
// form, shows the new product at the top of the current view.
func (c *Cache) AddProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	created, err := c.fetcher.CreateProduct(ctx, p)
	if err != nil {
		c.mu.Lock()
		c.errMsg = err.Error()
		c.mu.Unlock()
		return domain.Product{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]domain.Product{created}, c.items...)
	c.total++
	return created, nil
}

// SetSearchQuery records the filter without fetching; the caller decides when
// to trigger the fetch (debouncing lives at the UI layer).
func (c *Cache) SetSearchQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchQuery = q
}

func (c *Cache) SetSelectedCategory(category string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectedCategory = category
}

func (c *Cache) ClearCurrentProduct() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

func (c *Cache) Products() []domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Product, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cache) Categories() []domain.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Cache) CurrentProduct() *domain.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	p := *c.current
	return &p
}

func (c *Cache) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Cache) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Cache) SearchQuery() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchQuery
}

func (c *Cache) SelectedCategory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedCategory
}

func (c *Cache) beginItems() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.itemsToken++
	c.loading = true
	c.errMsg = ""
	return c.itemsToken
}

func (c *Cache) finishItems(token uint64, page domain.Page, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.itemsToken {
		// Superseded by a newer fetch; discard, and swallow the error too.
		return nil
	}
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return err
	}
	c.items = page.Products
	c.total = page.Total
	return nil
}
