// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"shelfscan/internal/bookdata"
	"shelfscan/internal/cmd"
	"shelfscan/internal/config"
	"shelfscan/internal/kv"
	"shelfscan/internal/shelf"
)

func main() {
	cfg := config.NewConfig()

	// Storage backend selection via environment variable.
	// Default: "pebble" (persistent KV under the data dir).
	// Options: "pebble", "memory" (in-memory only).
	storage := os.Getenv("SHELFSCAN_STORAGE")
	if storage == "" {
		storage = "pebble"
	}

	var backing kv.Store

	switch storage {
	case "pebble":
		// If the data dir cannot be opened (permissions, lock held by another
		// process), fall back to the in-memory store so the tool remains
		// operational without persistence.
		db, err := kv.OpenPebble(filepath.Join(cfg.Data.Dir, "kv"))
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: cannot open data dir: %v\n", err)
			fmt.Fprintln(os.Stderr, "         falling back to in-memory store (no persistence)")
			backing = kv.NewMemoryStore()
			break
		}
		backing = db

	case "memory":
		backing = kv.NewMemoryStore()

	default:
		fmt.Fprintf(os.Stderr, "shelfscan: unknown storage backend %q (choose pebble or memory)\n", storage)
		os.Exit(1)
	}
	defer backing.Close()

	store := shelf.NewStore(backing)
	client := bookdata.NewClient(cfg.Service.BaseURL, cfg.Service.Timeout)

	root := cmd.NewRootCmd(cfg, store, client)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
