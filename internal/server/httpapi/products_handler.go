package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
	"github.com/ellurunanda/Shopping-Cart/internal/server/repository"
)

const (
	defaultLimit = 30
	maxLimit     = 100
)

// CatalogRepository is the product store as seen by the handlers.
type CatalogRepository interface {
	List(ctx context.Context, limit, skip int) (domain.Page, error)
	Get(ctx context.Context, id int64) (domain.Product, error)
	Search(ctx context.Context, q string) (domain.Page, error)
	Categories(ctx context.Context) ([]string, error)
	ByCategory(ctx context.Context, category string) (domain.Page, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
}

type ProductsHandler struct {
	repo    CatalogRepository
	timeout time.Duration
}

func NewProductsHandler(repo CatalogRepository, timeout time.Duration) *ProductsHandler {
	return &ProductsHandler{repo: repo, timeout: timeout}
}

type pageResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Skip     int              `json:"skip"`
	Limit    int              `json:"limit"`
}

type categoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	limit := queryInt(r, "limit", defaultLimit)
	skip := queryInt(r, "skip", 0)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	page, err := h.repo.List(ctx, limit, skip)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load products")
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Products: page.Products, Total: page.Total, Skip: skip, Limit: limit})
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "product id must be a number")
		return
	}

	product, err := h.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (h *ProductsHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query().Get("q")
	page, err := h.repo.Search(ctx, q)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "search failed")
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Products: page.Products, Total: page.Total, Limit: page.Total})
}

// Categories answers with a {categories: [...]} envelope of descriptors; the
// public demo catalog uses a bare array, and the gateway accepts both.
func (h *ProductsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slugs, err := h.repo.Categories(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	categories := make([]domain.Category, len(slugs))
	for i, slug := range slugs {
		categories[i] = domain.Category{Slug: slug, Name: slug}
	}
	respondJSON(w, http.StatusOK, categoriesResponse{Categories: categories})
}

func (h *ProductsHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := chi.URLParam(r, "category")
	page, err := h.repo.ByCategory(ctx, category)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load category")
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Products: page.Products, Total: page.Total, Limit: page.Total})
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if p.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if p.Price < 0 {
		respondError(w, http.StatusBadRequest, "Price must not be negative")
		return
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		respondError(w, http.StatusBadRequest, "Discount percentage must be between 0 and 100")
		return
	}
	if p.Stock < 0 {
		respondError(w, http.StatusBadRequest, "Stock must not be negative")
		return
	}

	created, err := h.repo.Create(ctx, p)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
