// Package pricing holds the storefront's volatile pricing state: the current
// price/offer snapshot and a bounded audit trail of changes.
//
// The state is process-lifetime only. A restart resets it to the defaults;
// nothing persists it to the catalog database.
package pricing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kpnaturals/storefront-service/internal/model"
)

// CurrencyMarker prefixes every valid price string.
const CurrencyMarker = "₹"

// historyCap bounds the audit trail; the oldest entries are evicted first.
const historyCap = 50

// Defaults applied at construction and after every process restart.
const (
	DefaultPrice = "₹145"
	DefaultOffer = "20% OFF"
)

// Store owns the pricing snapshot and its audit trail. All methods are safe
// for concurrent use.
type Store struct {
	mu      sync.RWMutex
	snap    model.PricingSnapshot
	history []model.AuditEntry
	now     func() time.Time
}

// New returns a Store initialized with the default snapshot.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock is like New but with an injectable clock.
func NewWithClock(now func() time.Time) *Store {
	return &Store{
		snap: model.PricingSnapshot{
			CurrentPrice:  DefaultPrice,
			CurrentOffer:  DefaultOffer,
			IsOfferActive: true,
			LastUpdated:   now().UTC(),
		},
		now: now,
	}
}

// Snapshot returns a copy of the current pricing state.
func (s *Store) Snapshot() model.PricingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Update applies the provided fields to the snapshot. For each field whose
// new value differs from the current one an audit entry is appended; no-op
// fields produce no entry. LastUpdated is refreshed on every call, changed
// or not, matching the storefront's long-standing observable behavior.
// Returns the snapshot after the update.
func (s *Store) Update(upd model.PricingUpdate, updatedBy string) model.PricingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.now().UTC()
	if upd.Price != nil && *upd.Price != s.snap.CurrentPrice {
		s.append(ts, model.FieldPrice, s.snap.CurrentPrice, *upd.Price, updatedBy)
		s.snap.CurrentPrice = *upd.Price
	}
	if upd.Offer != nil && *upd.Offer != s.snap.CurrentOffer {
		s.append(ts, model.FieldOffer, s.snap.CurrentOffer, *upd.Offer, updatedBy)
		s.snap.CurrentOffer = *upd.Offer
	}
	if upd.OfferActive != nil && *upd.OfferActive != s.snap.IsOfferActive {
		s.append(ts, model.FieldOfferStatus,
			fmt.Sprintf("%t", s.snap.IsOfferActive), fmt.Sprintf("%t", *upd.OfferActive), updatedBy)
		s.snap.IsOfferActive = *upd.OfferActive
	}
	s.snap.LastUpdated = ts

	if len(s.history) > historyCap {
		s.history = append(s.history[:0], s.history[len(s.history)-historyCap:]...)
	}
	return s.snap
}

func (s *Store) append(ts time.Time, field, oldValue, newValue, updatedBy string) {
	s.history = append(s.history, model.AuditEntry{
		Timestamp: ts,
		Field:     field,
		OldValue:  oldValue,
		NewValue:  newValue,
		UpdatedBy: updatedBy,
	})
}

// History returns up to limit audit entries, most recent first.
func (s *Store) History(limit int) []model.AuditEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := len(s.history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]model.AuditEntry, 0, n)
	for i := len(s.history) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.history[i])
	}
	return out
}

// ValidatePrice checks that a price string carries the currency marker
// followed by a positive decimal amount.
func ValidatePrice(price string) error {
	if !strings.HasPrefix(price, CurrencyMarker) {
		return fmt.Errorf("invalid price format: must start with %s", CurrencyMarker)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(strings.TrimPrefix(price, CurrencyMarker)))
	if err != nil {
		return fmt.Errorf("invalid price amount: %w", err)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("invalid price amount: must be positive")
	}
	return nil
}
