package pricing

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/kpnaturals/storefront-service/internal/model"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestDefaults(t *testing.T) {
	s := New()
	snap := s.Snapshot()
	if snap.CurrentPrice != "₹145" || snap.CurrentOffer != "20% OFF" || !snap.IsOfferActive {
		t.Fatalf("unexpected defaults: %+v", snap)
	}
	if len(s.History(10)) != 0 {
		t.Fatalf("expected empty history")
	}
}

func TestUpdateAppendsAuditPerChangedField(t *testing.T) {
	s := New()
	snap := s.Update(model.PricingUpdate{Price: strp("₹199"), OfferActive: boolp(false)}, "admin@example.com")
	if snap.CurrentPrice != "₹199" {
		t.Fatalf("expected ₹199, got %s", snap.CurrentPrice)
	}
	if snap.CurrentOffer != "20% OFF" {
		t.Fatalf("offer should be untouched, got %s", snap.CurrentOffer)
	}
	if snap.IsOfferActive {
		t.Fatalf("offer should be inactive")
	}
	h := s.History(10)
	if len(h) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(h))
	}
	// Most recent first.
	if h[0].Field != model.FieldOfferStatus || h[0].OldValue != "true" || h[0].NewValue != "false" {
		t.Fatalf("unexpected entry: %+v", h[0])
	}
	if h[1].Field != model.FieldPrice || h[1].OldValue != "₹145" || h[1].NewValue != "₹199" {
		t.Fatalf("unexpected entry: %+v", h[1])
	}
	if h[0].UpdatedBy != "admin@example.com" {
		t.Fatalf("unexpected updatedBy: %s", h[0].UpdatedBy)
	}
}

func TestNoOpUpdateStillAdvancesLastUpdated(t *testing.T) {
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	cur := base
	s := NewWithClock(func() time.Time { return cur })

	cur = base.Add(time.Minute)
	snap := s.Update(model.PricingUpdate{Offer: strp("20% OFF")}, "admin")
	if len(s.History(10)) != 0 {
		t.Fatalf("no-op update must not append audit entries")
	}
	if !snap.LastUpdated.Equal(base.Add(time.Minute)) {
		t.Fatalf("lastUpdated should advance on no-op, got %v", snap.LastUpdated)
	}

	// Second identical call: still no entries.
	cur = base.Add(2 * time.Minute)
	s.Update(model.PricingUpdate{Offer: strp("20% OFF")}, "admin")
	if len(s.History(10)) != 0 {
		t.Fatalf("idempotent update appended entries")
	}
}

func TestReadAfterWrite(t *testing.T) {
	s := New()
	s.Update(model.PricingUpdate{Price: strp("₹199")}, "admin")
	if got := s.Snapshot().CurrentPrice; got != "₹199" {
		t.Fatalf("expected ₹199, got %s", got)
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	s := New()
	for i := 0; i < 55; i++ {
		s.Update(model.PricingUpdate{Price: strp(fmt.Sprintf("₹%d", 100+i))}, "admin")
	}
	h := s.History(100)
	if len(h) != historyCap {
		t.Fatalf("expected %d entries, got %d", historyCap, len(h))
	}
	// Newest first: the last write was 100+54.
	if h[0].NewValue != "₹154" {
		t.Fatalf("unexpected newest entry: %+v", h[0])
	}
	// Oldest surviving entry is write #5 (first five evicted).
	if h[len(h)-1].NewValue != "₹105" {
		t.Fatalf("unexpected oldest entry: %+v", h[len(h)-1])
	}
}

func TestHistoryLimit(t *testing.T) {
	s := New()
	for i := 0; i < 20; i++ {
		s.Update(model.PricingUpdate{Price: strp(fmt.Sprintf("₹%d", 100+i))}, "admin")
	}
	if got := len(s.History(10)); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestConcurrentUpdates(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		price := fmt.Sprintf("₹%d", 200+i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Update(model.PricingUpdate{Price: &price}, "admin")
		}()
	}
	wg.Wait()
	if got := len(s.History(100)); got > historyCap {
		t.Fatalf("history exceeded cap: %d", got)
	}
	snap := s.Snapshot()
	if err := ValidatePrice(snap.CurrentPrice); err != nil {
		t.Fatalf("torn snapshot: %v", err)
	}
}

func TestValidatePrice(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"₹145", true},
		{"₹199.50", true},
		{"145", false},
		{"$145", false},
		{"₹", false},
		{"₹-5", false},
		{"₹0", false},
		{"₹abc", false},
	}
	for _, c := range cases {
		err := ValidatePrice(c.in)
		if c.ok && err != nil {
			t.Fatalf("%q: unexpected error %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("%q: expected error", c.in)
		}
	}
}
