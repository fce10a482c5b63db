// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string
	Port            string
	RefreshInterval time.Duration
	RefreshEnabled  bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	} else {
		log.Printf("config: loaded .env")
	}

	cfg := &Config{
		DBPath:          getenv("METEODASH_DB", "data/meteodash.db"),
		Port:            getenv("METEODASH_PORT", "8080"),
		RefreshInterval: 30 * time.Minute,
		RefreshEnabled:  getenv("METEODASH_REFRESH", "true") != "false",
	}

	if v := os.Getenv("METEODASH_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse METEODASH_REFRESH_INTERVAL: %w", err)
		}
		if d < time.Minute {
			return nil, fmt.Errorf("METEODASH_REFRESH_INTERVAL %s is below the 1m floor", d)
		}
		cfg.RefreshInterval = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
