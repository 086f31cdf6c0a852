// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultDataDir(), cfg.Data.Dir)
	assert.Equal(t, "http://localhost:8000", cfg.Service.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Service.Timeout)
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("SHELFSCAN_DATA_DIR", "/tmp/shelfscan-test")
	t.Setenv("SHELFSCAN_SERVICE_URL", "http://books.internal:9000")
	t.Setenv("SHELFSCAN_SERVICE_TIMEOUT", "5s")

	cfg := NewConfig()
	assert.Equal(t, "/tmp/shelfscan-test", cfg.Data.Dir)
	assert.Equal(t, "http://books.internal:9000", cfg.Service.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Service.Timeout)
}

func TestDefaultDataDirIsAbsoluteOrLocal(t *testing.T) {
	dir := DefaultDataDir()
	assert.NotEmpty(t, dir)
	assert.Contains(t, dir, ".shelfscan")
}
