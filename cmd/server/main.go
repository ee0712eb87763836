package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Mothman910/decyzjomat/internal/ai"
	"github.com/Mothman910/decyzjomat/internal/cards"
	"github.com/Mothman910/decyzjomat/internal/config"
	"github.com/Mothman910/decyzjomat/internal/content"
	"github.com/Mothman910/decyzjomat/internal/database"
	"github.com/Mothman910/decyzjomat/internal/migrations"
	"github.com/Mothman910/decyzjomat/internal/room"
	"github.com/Mothman910/decyzjomat/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite content store ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	store := content.NewStore(db)
	if err := store.Seed(ctx); err != nil {
		return fmt.Errorf("seeding content: %w", err)
	}
	bank, err := store.LoadBank(ctx)
	if err != nil {
		return fmt.Errorf("loading quiz bank: %w", err)
	}
	logger.Info("quiz bank loaded", "questions", bank.Len())

	// --- Rooms ---
	broker := server.NewBroker()
	registry := room.NewRegistry()
	rooms := room.NewService(registry, broker, logger)

	// --- Collaborators ---
	movies := cards.NewTMDBClient(cfg.TMDBBaseURL, cfg.TMDBAPIKey, logger)
	provider := ai.New(ai.Config{
		Provider:    cfg.AIProvider,
		GeminiKey:   cfg.GeminiKey,
		GeminiModel: cfg.GeminiModel,
		GroqKey:     cfg.GroqKey,
		GroqModel:   cfg.GroqModel,
	}, logger)
	logger.Info("ai provider configured", "provider", provider.Name())

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, server.Deps{
		Logger:  logger,
		DB:      db,
		Rooms:   rooms,
		Broker:  broker,
		Bank:    bank,
		Content: store,
		Movies:  movies,
		AI:      provider,
		SPADir:  cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
