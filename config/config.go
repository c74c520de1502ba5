package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Fetch modes
const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// SiteConfig holds the per-site knobs.
// Keys are prefixed with the site name, e.g. EBAY_EXCLUDE.
type SiteConfig struct {
	SearchURL    string   `envconfig:"SEARCH_URL"`
	NotAvailable string   `envconfig:"NOT_AVAILABLE"`
	Exclude      []string `envconfig:"EXCLUDE"`
}

// Config is the application configuration
type Config struct {
	Port string `envconfig:"PORT"`
	Env  string `envconfig:"ENV"`

	ExchangeRate     float64       `envconfig:"EXCHANGE_RATE"`
	CurrencySymbol   string        `envconfig:"CURRENCY_SYMBOL"`
	RequestTimeout   time.Duration `envconfig:"REQUEST_TIMEOUT"`
	PlaceholderImage string        `envconfig:"PLACEHOLDER_IMAGE"`
	FetchMode        string        `envconfig:"FETCH_MODE"`

	Amazon SiteConfig `envconfig:"AMAZON"`
	Ebay   SiteConfig `envconfig:"EBAY"`

	// Raw page snapshots, disabled when both are empty
	SnapshotDir    string `envconfig:"SNAPSHOT_DIR"`
	SnapshotBucket string `envconfig:"SNAPSHOT_BUCKET"`
	AWSRegion      string `envconfig:"AWS_REGION"`

	// Search history, disabled when MongoURI is empty
	MongoURI      string `envconfig:"MONGO_URI"`
	MongoDatabase string `envconfig:"MONGO_DATABASE"`
}

// Default returns the configuration used when no environment overrides are set
func Default() *Config {
	return &Config{
		Port:             "8080",
		Env:              "dev",
		ExchangeRate:     83.50,
		CurrencySymbol:   "₹",
		RequestTimeout:   25 * time.Second,
		PlaceholderImage: "https://placehold.co/100x100/E0E0E0/6C757D?text=No+Image",
		FetchMode:        FetchModeHTTP,
		Amazon: SiteConfig{
			SearchURL:    "https://www.amazon.com/s?k=",
			NotAvailable: "Not Rated",
		},
		Ebay: SiteConfig{
			SearchURL:    "https://www.ebay.com/sch/i.html?_nkw=",
			NotAvailable: "Seller info not available",
			Exclude:      []string{"shop with confidence", "new listing"},
		},
		AWSRegion:     "ap-south-1",
		MongoDatabase: "price_compare",
	}
}

// Load reads an optional .env file and applies environment overrides on top of Default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is normal outside local development
		if _, statErr := os.Stat(".env"); statErr == nil {
			log.Printf("Warning: .env file found but could not be loaded: %v", err)
		}
	}

	cfg := Default()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
