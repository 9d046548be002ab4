package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"prosty-screening/internal/config"
	"prosty-screening/internal/logger"
	"prosty-screening/internal/search"
	"prosty-screening/internal/storage"
)

func main() {
	var dryRun bool
	var limit int
	var pause time.Duration
	flag.BoolVar(&dryRun, "dry-run", true, "If true, only list candidates without embeddings")
	flag.IntVar(&limit, "limit", 200, "Max number of candidates to process in one run")
	flag.DurationVar(&pause, "pause", 300*time.Millisecond, "Delay between embedding calls")
	flag.Parse()

	cfg := config.LoadConfig()
	zl, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	if cfg.DatabaseURL == "" {
		zl.Fatal("DATABASE_URL is required")
	}
	if cfg.OpenAIAPIKey == "" && !dryRun {
		zl.Fatal("OPENAI_API_KEY is required unless -dry-run is set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.NewDB(cfg.DatabaseURL, zl)
	if err != nil {
		zl.Fatal("failed to connect to db", zap.Error(err))
	}
	defer db.Close()

	svc := search.NewEmbeddingService(cfg.OpenAIAPIKey, cfg.EmbeddingModel, db.GetConnection(), zl)

	ids, err := svc.PendingCandidates(ctx, limit)
	if err != nil {
		zl.Fatal("query failed", zap.Error(err))
	}
	zl.Info("candidates without embeddings", zap.Int("count", len(ids)), zap.Int("limit", limit))

	var embedded, failed int
	for i, id := range ids {
		if ctx.Err() != nil {
			break
		}
		if dryRun {
			zl.Info("[dry-run] would embed candidate", zap.String("candidate_id", id))
			continue
		}

		if err := svc.EmbedCandidate(ctx, id); err != nil {
			failed++
			zl.Warn("embedding failed", zap.String("candidate_id", id), zap.Error(err))
		} else {
			embedded++
		}

		// small sleep to avoid rate limits
		if i < len(ids)-1 {
			time.Sleep(pause)
		}
	}

	zl.Info("backfill finished", zap.Int("embedded", embedded), zap.Int("failed", failed), zap.Bool("dry_run", dryRun))
}
