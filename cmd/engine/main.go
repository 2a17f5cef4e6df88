package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"activity-hub/internal/auth"
	"activity-hub/internal/config"
	"activity-hub/internal/database"
	"activity-hub/internal/engine"
	"activity-hub/internal/handlers"
	"activity-hub/internal/middleware"
	"activity-hub/internal/store"
	"activity-hub/internal/utils"
	"activity-hub/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// app is the wired server: actors, snapshot backend, hub and HTTP handler.
type app struct {
	handler   http.Handler
	system    *actor.ActorSystem
	engine    *engine.Engine
	snapshots database.SnapshotStore
	logger    *zap.SugaredLogger
	cancel    context.CancelFunc
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns only after the app is closed, so queued snapshots are flushed
// even when the listener fails.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zapLogger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer a.close()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting server on %s (snapshots: %s, tokens: %s)", serverAddr, cfg.Snapshot.Backend, cfg.Auth.TokenFormat)
	if err := a.serve(ctx, serverAddr); err != nil {
		logger.Errorf("Server failed to start: %v", err)
		return err
	}
	return nil
}

// serve listens on addr until ctx is cancelled, then shuts the server down.
func (a *app) serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		a.logger.Infof("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Errorf("Server shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newTokenCodec(cfg *config.AuthConfig) auth.TokenCodec {
	if cfg.TokenFormat == config.TokenJWT {
		return auth.NewJWTCodec(cfg.JWTSecret, cfg.JWTTTL)
	}
	return auth.NewBase64Codec()
}

// newApp restores the store and wires every component. The returned app
// owns a background context that close cancels.
func newApp(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*app, error) {
	s, err := store.New(store.Options{PasswordCost: cfg.Auth.BcryptCost})
	if err != nil {
		return nil, fmt.Errorf("building store: %w", err)
	}

	snapshots, err := database.NewSnapshotStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting snapshot backend: %w", err)
	}

	appCtx, cancel := context.WithCancel(ctx)
	hub := websocket.NewHub(logger)
	go hub.Run(appCtx)

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	hubEngine := engine.NewEngine(appCtx, system, s, snapshots, engine.Options{
		SnapshotKey:  cfg.Snapshot.Key,
		WriteTimeout: cfg.Server.RequestTimeout,
		Notifier:     hub,
	}, metrics, logger)

	codec := newTokenCodec(cfg.Auth)
	server := handlers.NewServer(system.Root, hubEngine, metrics, hub, codec, logger, cfg.Server.RequestTimeout)
	server.SimulatedLatency = cfg.Server.SimulatedLatency

	var handler http.Handler = server.Routes(cfg.Server.MetricsEnabled)
	handler = middleware.Identity(codec, logger, handler)
	handler = middleware.CORSMiddleware(middleware.DefaultCORSConfig(cfg.AllowedOrigins))(handler)
	handler = middleware.AccessLog(logger, metrics, handler)
	handler = middleware.Recover(logger, handler)

	return &app{
		handler:   handler,
		system:    system,
		engine:    hubEngine,
		snapshots: snapshots,
		logger:    logger,
		cancel:    cancel,
	}, nil
}

// close writes the pending snapshots before disconnecting the backend.
func (a *app) close() {
	if err := a.engine.Stop(a.system.Root); err != nil {
		a.logger.Errorf("Failed to stop actors cleanly: %v", err)
	}
	a.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.snapshots.Close(ctx); err != nil {
		a.logger.Errorf("Failed to close snapshot backend: %v", err)
	}
}
