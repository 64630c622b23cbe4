package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/kpnaturals/storefront-service/internal/model"
)

// PostgresStore backs the catalog with the hosted Postgres database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens and pings a Postgres connection.
func NewPostgresStore(connStr string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return model.Product{}, err
	}
	p.ID = uuid.NewString()
	query := `
        INSERT INTO products (id, name, description, price, image_url)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	err := s.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Description, p.Price, p.ImageURL).
		Scan(&p.CreatedAt)
	if err != nil {
		return model.Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetProduct(ctx context.Context, id string) (model.Product, error) {
	query := `
        SELECT id, name, description, price, image_url, created_at
        FROM products WHERE id = $1`
	var p model.Product
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
        SELECT id, name, description, price, image_url, created_at
        FROM products ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *PostgresStore) UpdateProduct(ctx context.Context, p model.Product) (model.Product, error) {
	if err := ValidateProduct(p); err != nil {
		return model.Product{}, err
	}
	query := `
        UPDATE products SET name = $2, description = $3, price = $4, image_url = $5
        WHERE id = $1
        RETURNING created_at`
	err := s.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Description, p.Price, p.ImageURL).
		Scan(&p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Product{}, ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateReview(ctx context.Context, r model.Review) (model.Review, error) {
	if err := ValidateReview(r); err != nil {
		return model.Review{}, err
	}
	if _, err := s.GetProduct(ctx, r.ProductID); err != nil {
		return model.Review{}, err
	}
	r.ID = uuid.NewString()
	query := `
        INSERT INTO reviews (id, product_id, user_name, rating, comment)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING created_at`
	err := s.db.QueryRowContext(ctx, query, r.ID, r.ProductID, r.UserName, r.Rating, r.Comment).
		Scan(&r.CreatedAt)
	if err != nil {
		return model.Review{}, fmt.Errorf("insert review: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListReviews(ctx context.Context, productID string) ([]model.Review, error) {
	query := `
        SELECT id, product_id, user_name, rating, comment, created_at
        FROM reviews WHERE product_id = $1 ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]model.Review, 0)
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.UserName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
