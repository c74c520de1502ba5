package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/raushankrgupta/product-price-compare/aggregator"
	"github.com/raushankrgupta/product-price-compare/config"
	"github.com/raushankrgupta/product-price-compare/scrapers"
	"github.com/raushankrgupta/product-price-compare/utils"
)

// Runs one search against the live sites and prints the results as JSON.
//
//	go run ./cmd/test_search wireless mouse
func main() {
	query := strings.TrimSpace(strings.Join(os.Args[1:], " "))
	if query == "" {
		query = "wireless mouse"
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	logger := utils.NewLogger(cfg.Env)

	fetcher, err := scrapers.NewFetcher(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create fetcher")
	}

	agg := aggregator.New(scrapers.NewScrapers(cfg, fetcher, nil, logger), logger)
	results, statuses := agg.SearchWithStatus(context.Background(), query)

	for _, s := range statuses {
		if s.Failed() {
			fmt.Printf("%s: failed after %dms: %s\n", s.Site, s.Elapsed, s.Err)
		} else {
			fmt.Printf("%s: %d listings in %dms\n", s.Site, s.Count, s.Elapsed)
		}
	}

	b, _ := json.MarshalIndent(results, "", "  ")
	fmt.Println(string(b))
}
