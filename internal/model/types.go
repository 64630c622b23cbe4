// Package model defines domain types used by the service.
package model

import "time"

// PricingSnapshot is the complete current value of the pricing record.
type PricingSnapshot struct {
	CurrentPrice  string    `json:"currentPrice"`
	CurrentOffer  string    `json:"currentOffer"`
	IsOfferActive bool      `json:"isOfferActive"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// PricingUpdate is a partial update to the pricing record. Nil fields are
// left unchanged.
type PricingUpdate struct {
	Price       *string `json:"price,omitempty"`
	Offer       *string `json:"offer,omitempty"`
	OfferActive *bool   `json:"offerActive,omitempty"`
}

// Audited field names.
const (
	FieldPrice       = "price"
	FieldOffer       = "offer"
	FieldOfferStatus = "offerStatus"
)

// AuditEntry records one field-level pricing change.
type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	UpdatedBy string    `json:"updatedBy"`
}

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Review is a customer review attached to a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
