// Package main boots the KP Naturals storefront API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kpnaturals/storefront-service/internal/auth"
	"github.com/kpnaturals/storefront-service/internal/catalog"
	"github.com/kpnaturals/storefront-service/internal/config"
	httpapi "github.com/kpnaturals/storefront-service/internal/http"
	"github.com/kpnaturals/storefront-service/internal/obs"
	"github.com/kpnaturals/storefront-service/internal/pricing"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	var cat catalog.Store
	if cfg.DatabaseURL != "" {
		pg, err := catalog.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			obs.Logger.Error("postgres_connect_error", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		cat = pg
		obs.Logger.Info("catalog_store", "kind", "postgres")
	} else {
		cat = catalog.NewMemoryStore()
		obs.Logger.Warn("catalog_store", "kind", "memory")
	}

	as, err := auth.New(auth.Config{
		Secret:     []byte(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
		AdminEmail: cfg.AdminEmail,
	}, cfg.AdminPassword)
	if err != nil {
		obs.Logger.Error("auth_init_error", "error", err)
		os.Exit(1)
	}
	if cfg.AdminPassword == "" {
		obs.Logger.Warn("admin_account_not_seeded", "hint", "set ADMIN_PASSWORD")
	}

	// Pricing state is volatile by design: a restart resets it to defaults.
	ps := pricing.New()

	app := httpapi.NewApp(cfg, ps, cat, as)
	router := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
