package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/raushankrgupta/product-price-compare/aggregator"
	"github.com/raushankrgupta/product-price-compare/api"
	"github.com/raushankrgupta/product-price-compare/config"
	"github.com/raushankrgupta/product-price-compare/scrapers"
	"github.com/raushankrgupta/product-price-compare/scrapers/base"
	"github.com/raushankrgupta/product-price-compare/storage"
	"github.com/raushankrgupta/product-price-compare/utils"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("Invalid configuration")
	}
	logger := utils.NewLogger(cfg.Env)

	fetcher, err := scrapers.NewFetcher(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create fetcher")
	}

	ctx := context.Background()
	snapshots, err := newSnapshots(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to set up page snapshots")
	}

	// Search history is optional
	var history api.HistoryStore
	if cfg.MongoURI != "" {
		mongoHistory, err := storage.ConnectMongoHistory(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer mongoHistory.Close(context.Background())
		history = mongoHistory
		logger.Info().Str("database", cfg.MongoDatabase).Msg("Search history enabled")
	}

	agg := aggregator.New(scrapers.NewScrapers(cfg, fetcher, snapshots, logger), logger)
	handler := api.NewHandler(agg, history, logger)

	mux := http.NewServeMux()
	handler.Routes(mux)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           utils.LatencyMiddleware(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info().
		Str("port", cfg.Port).
		Str("fetch_mode", cfg.FetchMode).
		Msgf("Server starting. Usage: curl \"http://localhost:%s/search?q=<product name>\"", cfg.Port)
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}

// newSnapshots picks S3 when a bucket is configured, a local directory otherwise, or nothing
func newSnapshots(ctx context.Context, cfg *config.Config) (base.Snapshotter, error) {
	switch {
	case cfg.SnapshotBucket != "":
		s3Snapshots, err := storage.NewS3Snapshots(ctx, cfg.AWSRegion, cfg.SnapshotBucket)
		if err != nil {
			return nil, err
		}
		return s3Snapshots, nil
	case cfg.SnapshotDir != "":
		return &storage.LocalSnapshots{Dir: cfg.SnapshotDir}, nil
	default:
		return nil, nil
	}
}
