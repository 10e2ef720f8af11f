package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/shophub/storefront/internal/auth"
	"github.com/shophub/storefront/internal/cart"
	"github.com/shophub/storefront/internal/catalog"
	"github.com/shophub/storefront/internal/checkout"
	logsqlite "github.com/shophub/storefront/internal/checkout/checkoutlog/sqlite"
	"github.com/shophub/storefront/internal/config"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/httpx"
	"github.com/shophub/storefront/internal/orders"
	"github.com/shophub/storefront/internal/payment"
	"github.com/shophub/storefront/internal/pkg/cache"
	"github.com/shophub/storefront/internal/pkg/telemetry"
	"github.com/shophub/storefront/internal/store"
	"github.com/shophub/storefront/internal/store/memory"
	"github.com/shophub/storefront/internal/store/postgrest"
)

func main() {
	telemetry.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	shutdownTracer, err := telemetry.SetupTracer(ctx, "storefront")
	if err != nil {
		slog.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	records, sessions := buildCollaborators(cfg)

	var productCache cache.Cache
	if cfg.RedisAddr != "" {
		productCache = cache.NewRedisCache(cfg.RedisAddr, "storefront")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CheckoutLogPath), 0o755); err != nil {
		slog.Error("failed to prepare checkout log directory", "error", err)
		os.Exit(1)
	}
	checkoutLog, err := logsqlite.Open(cfg.CheckoutLogPath)
	if err != nil {
		slog.Error("failed to open checkout log", "path", cfg.CheckoutLogPath, "error", err)
		os.Exit(1)
	}
	defer checkoutLog.Close()

	gateway, err := payment.NewClient(cfg.CheckoutEndpoint, cfg.CheckoutBaseURL, cfg.StripePublishableKey)
	if err != nil {
		slog.Error("failed to initialise payment gateway", "error", err)
		os.Exit(1)
	}

	rates := cfg.Rates()
	carts := cart.NewManager()

	handler := httpx.NewHandler(
		catalog.NewService(records, productCache),
		carts,
		checkout.NewOrchestrator(records, gateway, rates, carts, checkoutLog),
		orders.NewService(records),
		sessions,
		rates,
	)

	// Session-changed notifications live for the whole process.
	unsubscribe := sessions.Subscribe(func(user *domain.User) {
		if user == nil {
			slog.Info("session ended")
			return
		}
		slog.Info("session started", "user_id", user.ID)
	})
	defer unsubscribe()

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpx.NewRouter(handler),
	}

	go func() {
		slog.Info("storefront running", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}
}

// buildCollaborators picks the remote store and session provider: the hosted
// backend when a project URL is configured, in-memory stand-ins otherwise.
func buildCollaborators(cfg *config.Config) (store.Store, auth.SessionProvider) {
	if cfg.SupabaseURL != "" {
		return postgrest.New(cfg.SupabaseURL, cfg.SupabaseAnonKey),
			auth.NewGoTrueProvider(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	}

	slog.Warn("no supabase_url configured, using in-memory store and sessions")
	return memory.New(), auth.NewMemoryProvider()
}
