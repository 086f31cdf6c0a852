// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

// Package kv provides the opaque string-keyed backing store used for
// snapshot persistence. Implementations may use Pebble or in-memory maps.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the minimal key-value contract the shelf store persists against.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
