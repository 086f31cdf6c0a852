// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package shelf

import (
	"encoding/json"
	"fmt"
)

// snapshotVersion is the current on-disk schema version. The schema grew
// additively over time (statuses, then dnf, then readingProgress, then
// yearRead, then readingStats); version 0 covers every pre-versioning shape.
const snapshotVersion = 2

// Snapshot is the full persisted state: both book lists plus the aggregate
// stats, written as one JSON blob under a fixed key.
type Snapshot struct {
	Version      int          `json:"version,omitempty" yaml:"version,omitempty"`
	ScannedBooks []Book       `json:"scannedBooks" yaml:"scanned_books"`
	GalleryBooks []Book       `json:"galleryBooks" yaml:"gallery_books"`
	Stats        ReadingStats `json:"readingStats" yaml:"reading_stats"`
}

func emptySnapshot() Snapshot {
	return Snapshot{Version: snapshotVersion}
}

func marshalSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// decodeSnapshot parses a persisted snapshot and migrates older shapes
// forward. Any missing field decodes to its zero value, so a snapshot written
// before readingStats (or statuses, or readingProgress) existed loads cleanly.
func decodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	migrateSnapshot(&snap)
	return snap, nil
}

// migrateSnapshot normalizes a loaded snapshot to the current version.
// Runs once at load time instead of every field staying optional forever.
func migrateSnapshot(snap *Snapshot) {
	if snap.Version >= snapshotVersion {
		return
	}

	for i := range snap.GalleryBooks {
		b := &snap.GalleryBooks[i]
		if b.Status == "" {
			b.Status = StatusToRead
		}
		if p := b.ReadingProgress; p != nil {
			if p.CurrentPage < 0 {
				p.CurrentPage = 0
			}
			if p.TotalPages > 0 && p.CurrentPage > p.TotalPages {
				p.CurrentPage = p.TotalPages
			}
			p.Percentage = ProgressPercent(p)
		}
	}

	snap.Version = snapshotVersion
}

// Clone returns a deep copy so observers and readers cannot alias the
// store's committed state.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.ScannedBooks = cloneBooks(s.ScannedBooks)
	out.GalleryBooks = cloneBooks(s.GalleryBooks)
	return out
}

func cloneBooks(books []Book) []Book {
	if books == nil {
		return nil
	}
	out := make([]Book, len(books))
	copy(out, books)
	for i := range out {
		if out[i].Authors != nil {
			authors := make([]string, len(out[i].Authors))
			copy(authors, out[i].Authors)
			out[i].Authors = authors
		}
		if out[i].ReadingProgress != nil {
			p := *out[i].ReadingProgress
			out[i].ReadingProgress = &p
		}
	}
	return out
}
