package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("./migrations"))
	return repo
}

func TestList_ReturnsSeededPage(t *testing.T) {
	repo := newTestRepo(t)

	page, err := repo.List(context.Background(), 30, 0)

	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Products, 5)
	assert.Equal(t, "Wireless Headphones", page.Products[0].Title)
	assert.Equal(t, []string{"https://cdn.example.com/p/headphones-1.jpg"}, page.Products[0].Images)
}

func TestList_PaginationKeepsTotal(t *testing.T) {
	repo := newTestRepo(t)

	page, err := repo.List(context.Background(), 2, 3)

	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Products, 2)
	assert.Equal(t, "Denim Jacket", page.Products[0].Title)
}

func TestGet_ExistingProduct(t *testing.T) {
	repo := newTestRepo(t)

	p, err := repo.Get(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", p.Title)
	assert.Equal(t, 89.50, p.Price)
}

func TestGet_MissingProduct(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Get(context.Background(), 9999)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSearch_MatchesTitleDescriptionBrand(t *testing.T) {
	repo := newTestRepo(t)

	byTitle, err := repo.Search(context.Background(), "keyboard")
	require.NoError(t, err)
	assert.Equal(t, 1, byTitle.Total)

	byBrand, err := repo.Search(context.Background(), "Basewear")
	require.NoError(t, err)
	assert.Equal(t, 2, byBrand.Total)

	none, err := repo.Search(context.Background(), "zeppelin")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Total)
	assert.Empty(t, none.Products)
}

func TestCategories_DistinctSorted(t *testing.T) {
	repo := newTestRepo(t)

	categories, err := repo.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"clothing", "electronics", "home"}, categories)
}

func TestByCategory_FiltersRows(t *testing.T) {
	repo := newTestRepo(t)

	page, err := repo.ByCategory(context.Background(), "clothing")

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	for _, p := range page.Products {
		assert.Equal(t, "clothing", p.Category)
	}
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	repo := newTestRepo(t)

	created, err := repo.Create(context.Background(), domain.Product{
		Title:              "Desk Lamp",
		Description:        "Adjustable LED desk lamp",
		Brand:              "Homely",
		Category:           "home",
		Price:              39.99,
		DiscountPercentage: 5,
		Stock:              25,
		Rating:             4.1,
		Thumbnail:          "https://cdn.example.com/p/lamp.jpg",
		Images:             []string{"https://cdn.example.com/p/lamp-1.jpg"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), created.ID)

	fetched, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp", fetched.Title)
	assert.Equal(t, []string{"https://cdn.example.com/p/lamp-1.jpg"}, fetched.Images)

	page, err := repo.List(context.Background(), 30, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
}
