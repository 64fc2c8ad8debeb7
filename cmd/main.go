package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/signaling-service/config"
	"github.com/cwrk-planet/signaling-service/internal/notify"
	"github.com/cwrk-planet/signaling-service/internal/postgres"
	"github.com/cwrk-planet/signaling-service/internal/service"
	httpx "github.com/cwrk-planet/signaling-service/internal/transport/http"
	"github.com/cwrk-planet/signaling-service/internal/transport/ws"
	"github.com/cwrk-planet/signaling-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting signaling-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:             cfg.Postgres.DSN,
		ApplicationName: cfg.Logging.Service,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- collaborators ---
	inviteRepo := postgres.NewInviteRepository(pool)
	inviteSvc := service.NewInviteService(inviteRepo)
	dispatcher := notify.New(notify.Options{
		BaseURL: cfg.Notifier.BaseURL,
		Token:   cfg.Notifier.Token,
		Timeout: cfg.NotifierTimeout(),
	})

	// --- hub & WS server ---
	registry := ws.NewRegistry()
	rooms := ws.NewRooms()
	relay := ws.NewRelay(registry, rooms)
	presence := ws.NewPresence(registry, rooms, relay)
	signaling := ws.NewSignaling(relay, rooms, inviteSvc, dispatcher)
	wsServer := ws.NewServer(registry, rooms, relay, presence, signaling, cfg.PingEvery())

	// --- HTTP ---
	handler := httpx.NewHandler(inviteSvc)
	router := httpx.NewRouter(handler, wsServer)
	httpSrv := &http.Server{
		Addr:        cfg.HTTP.Addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
