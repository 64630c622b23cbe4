// Package poller keeps a client-side copy of the public pricing snapshot
// approximately fresh by re-fetching it on a fixed interval. There is no
// server push; freshness is bounded by the poll interval.
package poller

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/kpnaturals/storefront-service/internal/obs"
)

// DefaultInterval matches the storefront's 30-second poll.
const DefaultInterval = 30 * time.Second

// Pricing is the anonymous-facing snapshot served by /api/public/pricing.
type Pricing struct {
	CurrentPrice  string `json:"currentPrice"`
	CurrentOffer  string `json:"currentOffer"`
	IsOfferActive bool   `json:"isOfferActive"`
}

// Cache persists the last-known snapshot so a restarting client can render
// something real before its first fetch completes.
type Cache interface {
	Load() (Pricing, bool)
	Store(Pricing)
}

// Poller fetches the pricing snapshot on a fixed schedule. On any fetch
// failure the previous value is retained; there is no backoff and no error
// surfaced to the consumer.
type Poller struct {
	URL      string
	Interval time.Duration
	Client   *http.Client
	Cache    Cache
	OnUpdate func(Pricing)

	mu     sync.RWMutex
	latest Pricing
	seeded bool
}

// New builds a Poller with the default interval and HTTP client.
func New(url string) *Poller {
	return &Poller{
		URL:      url,
		Interval: DefaultInterval,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Latest returns the most recent snapshot, if any has been observed yet.
func (p *Poller) Latest() (Pricing, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.latest, p.seeded
}

func (p *Poller) set(v Pricing) {
	p.mu.Lock()
	p.latest = v
	p.seeded = true
	p.mu.Unlock()
	if p.OnUpdate != nil {
		p.OnUpdate(v)
	}
}

// Run hydrates from the cache, fetches once immediately, then polls every
// Interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if p.Cache != nil {
		if cached, ok := p.Cache.Load(); ok && cached.CurrentPrice != "" {
			p.set(cached)
		}
	}
	p.fetch(ctx)

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *Poller) fetch(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		obs.Logger.Debug("pricing_fetch_skip", "error", err)
		return
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		obs.Logger.Debug("pricing_fetch_failed", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		obs.Logger.Debug("pricing_fetch_failed", "status", resp.StatusCode)
		return
	}
	var v Pricing
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		obs.Logger.Debug("pricing_fetch_failed", "error", err)
		return
	}
	p.set(v)
	if p.Cache != nil {
		p.Cache.Store(v)
	}
}
