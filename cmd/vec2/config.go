package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	quickmath "linearmath.dev/pkg/quick-math"
)

type config struct {
	store    string
	path     string
	width    int
	logLevel string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultPath(store string) string {
	if store == "sqlite" {
		return "vectors.db"
	}
	return "vectors.json"
}

// parseConfig reads .env, then the environment, then flags. It returns the
// remaining arguments.
func parseConfig(args []string) (config, []string, error) {
	godotenv.Load()

	width, err := strconv.Atoi(getEnv("VEC2_WIDTH", strconv.Itoa(quickmath.NativeWidth())))
	if err != nil {
		return config{}, nil, fmt.Errorf("VEC2_WIDTH: %w", err)
	}

	cfg := config{}
	fs := flag.NewFlagSet("vec2", flag.ContinueOnError)
	fs.StringVar(&cfg.store, "store", getEnv("VEC2_STORE", "json"), "record store: json or sqlite")
	fs.StringVar(&cfg.path, "path", os.Getenv("VEC2_STORE_PATH"), "record store location")
	fs.IntVar(&cfg.width, "width", width, "record width in bits: 32 or 64")
	fs.StringVar(&cfg.logLevel, "log", getEnv("VEC2_LOG_LEVEL", "info"), "log level: trace, debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return config{}, nil, err
	}

	if cfg.store != "json" && cfg.store != "sqlite" {
		return config{}, nil, fmt.Errorf("unknown store %q", cfg.store)
	}
	if cfg.width != 32 && cfg.width != 64 {
		return config{}, nil, fmt.Errorf("unsupported width %d", cfg.width)
	}
	if cfg.path == "" {
		cfg.path = defaultPath(cfg.store)
	}

	return cfg, fs.Args(), nil
}
