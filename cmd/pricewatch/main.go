// Package main runs a pricing poller against a storefront deployment and
// logs every observed change. It behaves like the storefront badge: cached
// value first, then a fetch every interval, holding the last good value
// through failures.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/kpnaturals/storefront-service/internal/config"
	"github.com/kpnaturals/storefront-service/internal/obs"
	"github.com/kpnaturals/storefront-service/internal/poller"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()

	url := os.Getenv("PRICING_URL")
	if url == "" {
		url = "http://localhost:8080/api/public/pricing"
	}

	p := poller.New(url)
	p.Interval = cfg.PollInterval
	if cfg.PricingCacheFile != "" {
		p.Cache = &poller.FileCache{Path: cfg.PricingCacheFile}
	}

	var last poller.Pricing
	p.OnUpdate = func(v poller.Pricing) {
		if v == last {
			return
		}
		last = v
		obs.Logger.Info("pricing_changed",
			"price", v.CurrentPrice,
			"offer", v.CurrentOffer,
			"offer_active", v.IsOfferActive,
		)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	obs.Logger.Info("pricewatch_started", "url", url, "interval", p.Interval.String())
	p.Run(ctx)
	obs.Logger.Info("pricewatch_stopped")
}
