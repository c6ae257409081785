package utils

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	ListenAddr   string
	FetchTimeout time.Duration // museum API requests
	ImageTimeout time.Duration // image downloads
	LogLevel     string
}

func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		ListenAddr:   ":8080",
		FetchTimeout: 30 * time.Second,
		ImageTimeout: 30 * time.Second,
		LogLevel:     "info",
	}

	if addr := os.Getenv("ARTFINDER_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if d := envSeconds("ARTFINDER_FETCH_TIMEOUT_SECONDS"); d > 0 {
		cfg.FetchTimeout = d
	}
	if d := envSeconds("ARTFINDER_IMAGE_TIMEOUT_SECONDS"); d > 0 {
		cfg.ImageTimeout = d
	}
	if level := os.Getenv("ARTFINDER_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg
}

// envSeconds parses an integer-seconds env var; 0 means unset or invalid.
func envSeconds(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
