// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

// Package config loads shelfscan settings from an optional YAML file and
// environment variables, with sensible defaults for local use.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Data    Data
		Service Service
	}

	Data struct {
		Dir string // directory holding the Pebble database
	}

	Service struct {
		BaseURL string        // external book metadata/summarization service
		Timeout time.Duration // per-request timeout
	}
)

// DefaultDataDir is ~/.shelfscan, falling back to the working directory when
// the home directory cannot be resolved.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shelfscan"
	}
	return filepath.Join(home, ".shelfscan")
}

func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("shelfscan")
	v.AutomaticEnv()

	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("service_url", "http://localhost:8000")
	v.SetDefault("service_timeout", "30s")

	// Optional config file at ~/.shelfscan/config.yaml; env vars win.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(DefaultDataDir())
	_ = v.ReadInConfig()

	return &Config{
		Data: Data{
			Dir: v.GetString("DATA_DIR"),
		},
		Service: Service{
			BaseURL: v.GetString("SERVICE_URL"),
			Timeout: v.GetDuration("SERVICE_TIMEOUT"),
		},
	}
}
