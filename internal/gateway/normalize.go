package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

// The two catalogs disagree on response shapes, and the backend's own shapes
// have drifted over time. Everything is coerced to the canonical domain types
// here; ambiguous shapes never leave this package.

// decodePage accepts either a {products, total} envelope or a bare product array.
func decodePage(data []byte) (domain.Page, error) {
	var env struct {
		Products []domain.Product `json:"products"`
		Total    *int             `json:"total"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Products != nil {
		page := domain.Page{Products: env.Products, Total: len(env.Products)}
		if env.Total != nil {
			page.Total = *env.Total
		}
		return page, nil
	}

	var bare []domain.Product
	if err := json.Unmarshal(data, &bare); err != nil {
		return domain.Page{}, fmt.Errorf("unexpected product list shape: %w", err)
	}
	return domain.Page{Products: bare, Total: len(bare)}, nil
}

func decodeProduct(data []byte) (domain.Product, error) {
	var p domain.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Product{}, fmt.Errorf("unexpected product shape: %w", err)
	}
	return p, nil
}

var slugTitler = cases.Title(language.AmericanEnglish)

// decodeCategories accepts a bare slug array, a descriptor-object array, or a
// {categories: ...} envelope around either.
func decodeCategories(data []byte) ([]domain.Category, error) {
	var env struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := json.Unmarshal(data, &env); err == nil && env.Categories != nil {
		data = env.Categories
	}

	var described []domain.Category
	if err := json.Unmarshal(data, &described); err == nil {
		return described, nil
	}

	var slugs []string
	if err := json.Unmarshal(data, &slugs); err != nil {
		return nil, fmt.Errorf("unexpected category list shape: %w", err)
	}
	out := make([]domain.Category, len(slugs))
	for i, slug := range slugs {
		out[i] = domain.Category{
			Slug: slug,
			Name: slugTitler.String(strings.ReplaceAll(slug, "-", " ")),
		}
	}
	return out, nil
}

func decodeUser(data []byte) (domain.User, error) {
	var env struct {
		User *domain.User `json:"user"`
	}
	if err := json.Unmarshal(data, &env); err != nil || env.User == nil {
		return domain.User{}, fmt.Errorf("response is missing the user object")
	}
	return *env.User, nil
}
