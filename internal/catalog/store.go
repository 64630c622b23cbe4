// Package catalog is the product/review datastore layer. The storefront's
// hosted database is Postgres; an in-memory implementation backs tests and
// datastore-less boots.
package catalog

import (
	"context"
	"errors"

	"github.com/kpnaturals/storefront-service/internal/model"
)

// Validation and lookup errors surfaced to the transport layer.
var (
	ErrNotFound         = errors.New("not found")
	ErrEmptyProductName = errors.New("product name is required")
	ErrNegativePrice    = errors.New("product price cannot be negative")
	ErrEmptyProductID   = errors.New("product_id is required")
	ErrEmptyUserName    = errors.New("user_name is required")
	ErrEmptyComment     = errors.New("comment is required")
	ErrRatingRange      = errors.New("rating must be between 1 and 5")
)

// IsValidation reports whether err is a client-data validation error.
func IsValidation(err error) bool {
	for _, v := range []error{
		ErrEmptyProductName, ErrNegativePrice, ErrEmptyProductID,
		ErrEmptyUserName, ErrEmptyComment, ErrRatingRange,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// Store is the catalog persistence interface.
type Store interface {
	CreateProduct(ctx context.Context, p model.Product) (model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	CreateReview(ctx context.Context, r model.Review) (model.Review, error)
	ListReviews(ctx context.Context, productID string) ([]model.Review, error)
}

// ValidateProduct checks client-supplied product fields before persistence.
func ValidateProduct(p model.Product) error {
	if p.Name == "" {
		return ErrEmptyProductName
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ValidateReview checks client-supplied review fields before persistence.
func ValidateReview(r model.Review) error {
	if r.ProductID == "" {
		return ErrEmptyProductID
	}
	if r.UserName == "" {
		return ErrEmptyUserName
	}
	if r.Comment == "" {
		return ErrEmptyComment
	}
	if r.Rating < 1 || r.Rating > 5 {
		return ErrRatingRange
	}
	return nil
}
