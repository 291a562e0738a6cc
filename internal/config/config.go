package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	AuthSecret       string
	PageSize         int
	CacheTTL         time.Duration
	BannerCacheTTL   time.Duration
	RatingWorkerPool int
	RatingQueueSize  int
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultAuthSecret       = "change-me-in-production"
	defaultPageSize         = 2
	defaultCacheTTL         = 20 * time.Second
	defaultBannerCacheTTL   = 3 * time.Second
	defaultRatingWorkerPool = 2
	defaultRatingQueueSize  = 64
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		AuthSecret:       getString(lookup, "AUTH_SECRET", defaultAuthSecret),
		PageSize:         getInt(lookup, "PAGE_SIZE", defaultPageSize),
		CacheTTL:         getDuration(lookup, "CACHE_TTL", defaultCacheTTL),
		BannerCacheTTL:   getDuration(lookup, "BANNER_CACHE_TTL", defaultBannerCacheTTL),
		RatingWorkerPool: getInt(lookup, "RATING_WORKER_POOL", defaultRatingWorkerPool),
		RatingQueueSize:  getInt(lookup, "RATING_QUEUE_SIZE", defaultRatingQueueSize),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("megano", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		cacheTTLStr        = cfg.CacheTTL.String()
		bannerTTLStr       = cfg.BannerCacheTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.IntVar(&cfg.PageSize, "page-size", cfg.PageSize, "Catalog page size")
	fs.StringVar(&cacheTTLStr, "cache-ttl", cacheTTLStr, "TTL for catalog read cache")
	fs.StringVar(&bannerTTLStr, "banner-cache-ttl", bannerTTLStr, "TTL for banner and product detail cache")
	fs.IntVar(&cfg.RatingWorkerPool, "rating-workers", cfg.RatingWorkerPool, "Number of concurrent rating workers")
	fs.IntVar(&cfg.RatingQueueSize, "rating-queue", cfg.RatingQueueSize, "Rating recalculation queue capacity")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.CacheTTL, err = time.ParseDuration(cacheTTLStr); err != nil {
		return nil, fmt.Errorf("invalid cache ttl: %w", err)
	}

	if cfg.BannerCacheTTL, err = time.ParseDuration(bannerTTLStr); err != nil {
		return nil, fmt.Errorf("invalid banner cache ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("AUTH_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read auth secret file: %w", err)
		}
		cfg.AuthSecret = string(content)
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	if cfg.RatingWorkerPool <= 0 {
		cfg.RatingWorkerPool = defaultRatingWorkerPool
	}

	if cfg.RatingQueueSize <= 0 {
		cfg.RatingQueueSize = defaultRatingQueueSize
	}

	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	if cfg.BannerCacheTTL <= 0 {
		cfg.BannerCacheTTL = defaultBannerCacheTTL
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
