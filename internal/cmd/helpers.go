// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"shelfscan/internal/shelf"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func intPtr(v int) *int { return &v }

// shortID renders the first 8 characters of an ID for table display. Any
// prefix it prints resolves back through resolveGalleryBook.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// resolveGalleryBook finds a gallery entry by exact ID, then by unambiguous ID
// prefix, falling back to a case-insensitive title substring match.
func resolveGalleryBook(store *shelf.Store, arg string) (shelf.Book, error) {
	if b, ok := store.GalleryBook(arg); ok {
		return b, nil
	}

	books := store.Snapshot().GalleryBooks

	var byPrefix []shelf.Book
	for _, b := range books {
		if strings.HasPrefix(b.ID, arg) {
			byPrefix = append(byPrefix, b)
		}
	}
	if len(byPrefix) == 1 {
		return byPrefix[0], nil
	}
	if len(byPrefix) > 1 {
		return shelf.Book{}, fmt.Errorf("ambiguous ID prefix %q matches %d books", arg, len(byPrefix))
	}

	needle := strings.ToLower(arg)
	for _, b := range books {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			return b, nil
		}
	}
	return shelf.Book{}, fmt.Errorf("book not found in gallery: %s", arg)
}

func formatAuthors(authors []string) string {
	if len(authors) == 0 {
		return "-"
	}
	return strings.Join(authors, ", ")
}
