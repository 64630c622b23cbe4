package poller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kpnaturals/storefront-service/internal/obs"
)

func TestMain(m *testing.M) {
	obs.InitLogger()
	os.Exit(m.Run())
}

func TestCacheHydrationThenFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"currentPrice":"₹199","currentOffer":"20% OFF","isOfferActive":true}`))
	}))
	defer srv.Close()

	cachePath := filepath.Join(t.TempDir(), "pricing.json")
	cache := &FileCache{Path: cachePath}
	cache.Store(Pricing{CurrentPrice: "₹145", CurrentOffer: "20% OFF", IsOfferActive: true})

	updates := make(chan Pricing, 8)
	p := New(srv.URL)
	p.Interval = time.Hour // only the immediate fetch matters here
	p.Cache = cache
	p.OnUpdate = func(v Pricing) { updates <- v }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	first := <-updates
	if first.CurrentPrice != "₹145" {
		t.Fatalf("expected cached value first, got %s", first.CurrentPrice)
	}
	second := <-updates
	if second.CurrentPrice != "₹199" {
		t.Fatalf("expected fetched value, got %s", second.CurrentPrice)
	}

	// The fetched value must have been written back to the cache.
	got, ok := cache.Load()
	if !ok || got.CurrentPrice != "₹199" {
		t.Fatalf("cache not refreshed: %+v ok=%v", got, ok)
	}
}

func TestFailedFetchRetainsLastValue(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) > 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"currentPrice":"₹199","currentOffer":"20% OFF","isOfferActive":true}`))
	}))
	defer srv.Close()

	p := New(srv.URL)
	p.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("server saw only %d calls", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	got, ok := p.Latest()
	if !ok {
		t.Fatalf("expected a value")
	}
	if got.CurrentPrice != "₹199" {
		t.Fatalf("failed fetches must not clobber the value, got %s", got.CurrentPrice)
	}
}

func TestNoValueBeforeFirstSuccess(t *testing.T) {
	p := New("http://127.0.0.1:0/unreachable")
	p.Interval = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	time.Sleep(50 * time.Millisecond)
	if _, ok := p.Latest(); ok {
		t.Fatalf("expected no value before any successful fetch")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	c := &FileCache{Path: filepath.Join(t.TempDir(), "pricing.json")}
	if _, ok := c.Load(); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Store(Pricing{CurrentPrice: "₹145", CurrentOffer: "10% OFF", IsOfferActive: false})
	got, ok := c.Load()
	if !ok || got.CurrentPrice != "₹145" || got.CurrentOffer != "10% OFF" || got.IsOfferActive {
		t.Fatalf("unexpected: %+v ok=%v", got, ok)
	}
}
