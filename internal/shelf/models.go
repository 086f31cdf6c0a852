// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package shelf

import (
	"strings"
	"time"
)

// Status tags a gallery book.
type Status string

const (
	StatusRead     Status = "read"
	StatusToRead   Status = "to-read"
	StatusAmazing  Status = "amazing"
	StatusHorrible Status = "horrible"
	StatusDNF      Status = "dnf"
)

// Valid reports whether s is one of the known status tags.
func (s Status) Valid() bool {
	switch s {
	case StatusRead, StatusToRead, StatusAmazing, StatusHorrible, StatusDNF:
		return true
	}
	return false
}

// Book is a single entry in the scanned list or the gallery.
// IDs are caller-assigned and opaque; the same physical book may exist in both
// lists under different IDs.
type Book struct {
	ID       string   `json:"id" yaml:"id"`
	Title    string   `json:"title" yaml:"title"`
	Image    string   `json:"image,omitempty" yaml:"image,omitempty"` // cover URI
	Authors  []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Status   Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Rating   float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	YearRead int      `json:"yearRead,omitempty" yaml:"year_read,omitempty"`

	ReadingProgress *ReadingProgress `json:"readingProgress,omitempty" yaml:"reading_progress,omitempty"`
}

// ReadingProgress records position and cumulative time for one book.
// CurrentPage never exceeds TotalPages; the store's mutation enforces it.
type ReadingProgress struct {
	CurrentPage int       `json:"currentPage" yaml:"current_page"`
	TotalPages  int       `json:"totalPages" yaml:"total_pages"`
	Percentage  int       `json:"percentage" yaml:"percentage"`
	LastUpdated time.Time `json:"lastUpdated" yaml:"last_updated"`
	ReadingTime int       `json:"readingTime" yaml:"reading_time"` // cumulative minutes
}

// ReadingStats holds the aggregate counters persisted with the snapshot.
type ReadingStats struct {
	CurrentStreak   int       `json:"currentStreak" yaml:"current_streak"`
	LongestStreak   int       `json:"longestStreak" yaml:"longest_streak"`
	TotalBooksRead  int       `json:"totalBooksRead" yaml:"total_books_read"`
	YearlyBooksRead int       `json:"yearlyBooksRead" yaml:"yearly_books_read"`
	YearlyPagesRead int       `json:"yearlyPagesRead" yaml:"yearly_pages_read"`
	YearlyBooksGoal int       `json:"yearlyBooksGoal,omitempty" yaml:"yearly_books_goal,omitempty"`
	YearlyPagesGoal int       `json:"yearlyPagesGoal,omitempty" yaml:"yearly_pages_goal,omitempty"`
	LastReadDate    time.Time `json:"lastReadDate,omitempty" yaml:"last_read_date,omitempty"`
}

// FindGalleryMatch locates an existing gallery entry with the same title and
// authors, compared case-insensitively with authors order preserved. Callers
// use it for the dedup check before AddGalleryBook; IDs deliberately play no
// part since the same book may arrive under a fresh ID on every scan.
func FindGalleryMatch(snap Snapshot, title string, authors []string) (Book, bool) {
	for _, b := range snap.GalleryBooks {
		if strings.EqualFold(b.Title, title) && sameAuthors(b.Authors, authors) {
			return b, true
		}
	}
	return Book{}, false
}

func sameAuthors(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// StatsPatch shallow-merges into ReadingStats: only non-nil fields are applied.
type StatsPatch struct {
	CurrentStreak   *int
	LongestStreak   *int
	TotalBooksRead  *int
	YearlyBooksRead *int
	YearlyPagesRead *int
	YearlyBooksGoal *int
	YearlyPagesGoal *int
	LastReadDate    *time.Time
}
