package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zeus-fintech/zeus-api/internal/cache"
	"github.com/zeus-fintech/zeus-api/internal/config"
	"github.com/zeus-fintech/zeus-api/internal/handler"
	"github.com/zeus-fintech/zeus-api/internal/logging"
	"github.com/zeus-fintech/zeus-api/internal/middleware"
	"github.com/zeus-fintech/zeus-api/internal/service/payment"
	"github.com/zeus-fintech/zeus-api/internal/store"
	"github.com/zeus-fintech/zeus-api/internal/verification"
)

// version is overridden at build time via
// -ldflags "-X main.version=<tag>".
var version = "dev"

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Init("zeus-api", cfg.LogLevel, cfg.AppEnv)

	accounts := store.New(cfg.OpeningBalance)
	verifier := verification.NewService(cfg)
	payments := payment.NewService(cfg)
	replays := cache.NewIdempotencyCache()

	mux := newRouter(cfg, accounts, verifier, payments, replays)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           chain(mux, middleware.Recovery, middleware.Logging, middleware.Tracing),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("server started", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

func newRouter(cfg *config.Config, accounts *store.Store, verifier *verification.Service, payments *payment.Service, replays *cache.IdempotencyCache) *http.ServeMux {
	authHandler := handler.NewAuthHandler(accounts, verifier, replays, cfg.JWTSecret, cfg.JWTExpiry)
	verifHandler := handler.NewVerificationHandler(accounts, verifier)
	accountHandler := handler.NewAccountHandler(accounts)
	transferHandler := handler.NewTransferHandler(accounts, payments)
	depositHandler := handler.NewDepositHandler(accounts, payments)
	txHandler := handler.NewTransactionHandler(accounts, cfg.ProductName)

	authed := middleware.Auth(cfg.JWTSecret, accounts)
	idempotent := middleware.Idempotency(replays)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health(version))

	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.Handle("POST /api/v1/auth/logout", authed(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("GET /api/v1/session", authed(http.HandlerFunc(authHandler.Show)))

	mux.Handle("POST /api/v1/verification/email", authed(http.HandlerFunc(verifHandler.SubmitEmailCode)))
	mux.Handle("POST /api/v1/verification/phone/number", authed(http.HandlerFunc(verifHandler.SubmitPhoneNumber)))
	mux.Handle("POST /api/v1/verification/phone/edit", authed(http.HandlerFunc(verifHandler.EditPhoneNumber)))
	mux.Handle("POST /api/v1/verification/phone/code", authed(http.HandlerFunc(verifHandler.SubmitPhoneCode)))
	mux.Handle("POST /api/v1/verification/face/start", authed(http.HandlerFunc(verifHandler.StartFaceScan)))
	mux.Handle("POST /api/v1/verification/face/cancel", authed(http.HandlerFunc(verifHandler.CancelFaceScan)))

	mux.Handle("GET /api/v1/account", authed(http.HandlerFunc(accountHandler.Show)))
	mux.Handle("POST /api/v1/transfers", authed(idempotent(http.HandlerFunc(transferHandler.Create))))
	mux.Handle("POST /api/v1/deposits", authed(idempotent(http.HandlerFunc(depositHandler.Create))))

	mux.Handle("GET /api/v1/transactions", authed(http.HandlerFunc(txHandler.List)))
	mux.Handle("GET /api/v1/transactions/export", authed(http.HandlerFunc(txHandler.ExportCSV)))
	mux.Handle("GET /api/v1/transactions/{reference}/receipt", authed(http.HandlerFunc(txHandler.Receipt)))

	return mux
}

func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range mw {
		h = m(h)
	}
	return h
}
