package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/NikhilKanaujia/portfolio/internal/relay"
)

// Config is read once at startup from the environment (and .env, via
// godotenv autoload in main.go).
type Config struct {
	Port          string
	RelayEndpoint string
	SessionTTL    time.Duration
	SessionMax    uint64
	LogLevel      zerolog.Level
	PrettyLogs    bool
}

const (
	defaultPort       = "8080"
	defaultSessionTTL = 30 * time.Minute
	defaultSessionMax = 10000
)

func loadConfig() (Config, []string, error) {
	var warnings []string

	cfg := Config{
		Port:       getEnv("PORT", defaultPort),
		SessionTTL: defaultSessionTTL,
		SessionMax: defaultSessionMax,
		LogLevel:   zerolog.InfoLevel,
		PrettyLogs: os.Getenv("LOG_PRETTY") == "1",
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			warnings = append(warnings, fmt.Sprintf("invalid SESSION_TTL %q, using %s", v, defaultSessionTTL))
		} else {
			cfg.SessionTTL = d
		}
	}

	if v := os.Getenv("SESSION_MAX"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			warnings = append(warnings, fmt.Sprintf("invalid SESSION_MAX %q, using %d", v, defaultSessionMax))
		} else {
			cfg.SessionMax = n
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		lvl, err := zerolog.ParseLevel(v)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid LOG_LEVEL %q, using info", v))
		} else {
			cfg.LogLevel = lvl
		}
	}

	// An explicit endpoint wins; otherwise build it from base URL + token.
	cfg.RelayEndpoint = os.Getenv("RELAY_ENDPOINT")
	if cfg.RelayEndpoint == "" {
		ep, err := relay.Endpoint(os.Getenv("RELAY_BASE_URL"), os.Getenv("RELAY_TOKEN"))
		if err != nil {
			return cfg, warnings, fmt.Errorf("relay not configured (set RELAY_ENDPOINT or RELAY_TOKEN): %w", err)
		}
		cfg.RelayEndpoint = ep
	}

	return cfg, warnings, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
