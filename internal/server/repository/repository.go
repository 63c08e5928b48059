// Package repository is the catalog's SQLite store.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/ellurunanda/Shopping-Cart/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

const productColumns = `id, title, description, brand, category, price, discount_percentage, stock, rating, thumbnail, images`

// List returns one catalog page ordered by id, plus the total row count.
func (r *Repository) List(ctx context.Context, limit, skip int) (domain.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY id LIMIT ? OFFSET ?`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return domain.Page{}, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return domain.Page{}, fmt.Errorf("failed to count products: %w", err)
	}

	return domain.Page{Products: products, Total: total}, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ?`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to query product: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return domain.Product{}, err
	}
	if len(products) == 0 {
		return domain.Product{}, ErrProductNotFound
	}
	return products[0], nil
}

// Search matches the query against title, description, and brand.
func (r *Repository) Search(ctx context.Context, q string) (domain.Page, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE title LIKE ? OR description LIKE ? OR brand LIKE ?
		ORDER BY id`, productColumns)

	pattern := "%" + q + "%"
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern, pattern)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to search products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Products: products, Total: len(products)}, nil
}

func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return categories, nil
}

func (r *Repository) ByCategory(ctx context.Context, category string) (domain.Page, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE category = ? ORDER BY id`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return domain.Page{}, fmt.Errorf("failed to query category: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return domain.Page{}, err
	}
	return domain.Page{Products: products, Total: len(products)}, nil
}

func (r *Repository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	images, err := json.Marshal(p.Images)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to encode images: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO products (title, description, brand, category, price, discount_percentage, stock, rating, thumbnail, images)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Brand, p.Category, p.Price, p.DiscountPercentage, p.Stock, p.Rating, p.Thumbnail, string(images),
	)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to read inserted id: %w", err)
	}
	p.ID = id
	return p, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

func scanProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var images string
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Description,
			&p.Brand,
			&p.Category,
			&p.Price,
			&p.DiscountPercentage,
			&p.Stock,
			&p.Rating,
			&p.Thumbnail,
			&images,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if images != "" {
			if err := json.Unmarshal([]byte(images), &p.Images); err != nil {
				return nil, fmt.Errorf("failed to decode images: %w", err)
			}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return products, nil
}
