// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package shelf

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfscan/internal/kv"
)

func newTestStore(t *testing.T) (*Store, kv.Store) {
	t.Helper()
	backing := kv.NewMemoryStore()
	return NewStore(backing), backing
}

func TestAddScannedBookPrepends(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddScannedBook(Book{ID: "a", Title: "First"})
	store.AddScannedBook(Book{ID: "b", Title: "Second"})

	scans := store.Snapshot().ScannedBooks
	require.Len(t, scans, 2)
	assert.Equal(t, "b", scans[0].ID)
	assert.Equal(t, "a", scans[1].ID)
}

func TestAddScannedBookGeneratesID(t *testing.T) {
	store, _ := newTestStore(t)

	added := store.AddScannedBook(Book{Title: "No ID"})
	assert.NotEmpty(t, added.ID)

	scans := store.Snapshot().ScannedBooks
	require.Len(t, scans, 1)
	assert.Equal(t, added.ID, scans[0].ID)
}

func TestClearScannedBooks(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddScannedBook(Book{ID: "a"})
	store.AddScannedBook(Book{ID: "b"})
	store.ClearScannedBooks()
	assert.Empty(t, store.Snapshot().ScannedBooks)

	// Clearing again is a no-op.
	store.ClearScannedBooks()
	assert.Empty(t, store.Snapshot().ScannedBooks)
}

func TestAddGalleryBookDefaultsStatus(t *testing.T) {
	store, _ := newTestStore(t)

	added := store.AddGalleryBook(Book{ID: "g1", Title: "Dune"})
	assert.Equal(t, StatusToRead, added.Status)

	kept := store.AddGalleryBook(Book{ID: "g2", Title: "Hyperion", Status: StatusAmazing})
	assert.Equal(t, StatusAmazing, kept.Status)
}

func TestAddGalleryBookAllowsDuplicates(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{ID: "g1", Title: "Dune"})
	store.AddGalleryBook(Book{ID: "g2", Title: "Dune"})

	books := store.Snapshot().GalleryBooks
	require.Len(t, books, 2)
	assert.Equal(t, "g2", books[0].ID)
}

func TestRemoveGalleryBook(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{ID: "g1", Title: "Dune"})
	store.AddGalleryBook(Book{ID: "g2", Title: "Hyperion"})

	assert.True(t, store.RemoveGalleryBook("g1"))
	books := store.Snapshot().GalleryBooks
	require.Len(t, books, 1)
	assert.Equal(t, "g2", books[0].ID)

	// Absent ID is a no-op.
	assert.False(t, store.RemoveGalleryBook("g1"))
	assert.Len(t, store.Snapshot().GalleryBooks, 1)
}

func TestSetBookStatusAppliesStatsDelta(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{
		ID:              "g1",
		Title:           "Dune",
		ReadingProgress: &ReadingProgress{CurrentPage: 250, TotalPages: 250},
	})

	require.True(t, store.SetBookStatus("g1", StatusRead))

	snap := store.Snapshot()
	assert.Equal(t, 1, snap.Stats.YearlyBooksRead)
	assert.Equal(t, 250, snap.Stats.YearlyPagesRead)
	assert.Equal(t, 1, snap.Stats.TotalBooksRead)
	assert.Equal(t, time.Now().Year(), snap.GalleryBooks[0].YearRead)
	assert.False(t, snap.Stats.LastReadDate.IsZero())
}

func TestSetBookStatusReversesDeltaOnUnread(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{
		ID:              "g1",
		ReadingProgress: &ReadingProgress{CurrentPage: 100, TotalPages: 300},
	})
	store.SetBookStatus("g1", StatusRead)
	store.SetBookStatus("g1", StatusToRead)

	snap := store.Snapshot()
	assert.Equal(t, 0, snap.Stats.YearlyBooksRead)
	assert.Equal(t, 0, snap.Stats.YearlyPagesRead)
	assert.Equal(t, 0, snap.Stats.TotalBooksRead)
	assert.Equal(t, 0, snap.GalleryBooks[0].YearRead)
}

func TestSetBookStatusBetweenNonReadStatuses(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{ID: "g1"})
	store.SetBookStatus("g1", StatusAmazing)
	store.SetBookStatus("g1", StatusHorrible)

	snap := store.Snapshot()
	assert.Equal(t, StatusHorrible, snap.GalleryBooks[0].Status)
	assert.Equal(t, 0, snap.Stats.YearlyBooksRead)
	assert.Equal(t, 0, snap.Stats.TotalBooksRead)
}

func TestSetBookStatusReadToReadIsStable(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{
		ID:              "g1",
		ReadingProgress: &ReadingProgress{CurrentPage: 50, TotalPages: 50},
	})
	store.SetBookStatus("g1", StatusRead)
	store.SetBookStatus("g1", StatusRead)

	assert.Equal(t, 1, store.Snapshot().Stats.YearlyBooksRead)
}

func TestSetBookStatusAbsentID(t *testing.T) {
	store, _ := newTestStore(t)
	assert.False(t, store.SetBookStatus("nope", StatusRead))
	assert.Equal(t, 0, store.Snapshot().Stats.YearlyBooksRead)
}

func TestUpdateBookStatusLeavesStatsAlone(t *testing.T) {
	store, _ := newTestStore(t)

	store.AddGalleryBook(Book{ID: "g1"})
	require.True(t, store.UpdateBookStatus("g1", StatusRead))

	snap := store.Snapshot()
	assert.Equal(t, StatusRead, snap.GalleryBooks[0].Status)
	assert.Equal(t, 0, snap.Stats.YearlyBooksRead)
}

func TestUpdateReadingProgressValidation(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddGalleryBook(Book{ID: "g1"})

	cases := []struct {
		name     string
		progress ReadingProgress
	}{
		{"zero total pages", ReadingProgress{CurrentPage: 10, TotalPages: 0}},
		{"negative current page", ReadingProgress{CurrentPage: -1, TotalPages: 100}},
		{"current past total", ReadingProgress{CurrentPage: 101, TotalPages: 100}},
		{"negative reading time", ReadingProgress{CurrentPage: 1, TotalPages: 100, ReadingTime: -5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.UpdateReadingProgress("g1", tc.progress)
			require.Error(t, err)
		})
	}

	// Rejected input leaves the book untouched.
	assert.Nil(t, store.Snapshot().GalleryBooks[0].ReadingProgress)
}

func TestUpdateReadingProgressComputesPercentage(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddGalleryBook(Book{ID: "g1"})

	err := store.UpdateReadingProgress("g1", ReadingProgress{CurrentPage: 50, TotalPages: 200, ReadingTime: 30})
	require.NoError(t, err)

	p := store.Snapshot().GalleryBooks[0].ReadingProgress
	require.NotNil(t, p)
	assert.Equal(t, 25, p.Percentage)
	assert.False(t, p.LastUpdated.IsZero())
}

func TestUpdateReadingProgressAbsentIDIsNoop(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.UpdateReadingProgress("nope", ReadingProgress{CurrentPage: 1, TotalPages: 10})
	assert.NoError(t, err)
}

func TestUpdateReadingStatsMergesOnlyProvidedFields(t *testing.T) {
	store, _ := newTestStore(t)

	goal := 24
	store.UpdateReadingStats(StatsPatch{YearlyBooksGoal: &goal})

	streak := 5
	store.UpdateReadingStats(StatsPatch{CurrentStreak: &streak})

	stats := store.Snapshot().Stats
	assert.Equal(t, 24, stats.YearlyBooksGoal)
	assert.Equal(t, 5, stats.CurrentStreak)
}

func TestPersistenceRoundTrip(t *testing.T) {
	backing := kv.NewMemoryStore()

	store := NewStore(backing)
	store.AddGalleryBook(Book{
		ID:      "g1",
		Title:   "Dune",
		Authors: []string{"Frank Herbert"},
	})
	store.SetBookStatus("g1", StatusAmazing)

	// A fresh store over the same backing sees the committed state.
	reloaded := NewStore(backing)
	snap := reloaded.Snapshot()
	require.Len(t, snap.GalleryBooks, 1)
	assert.Equal(t, "Dune", snap.GalleryBooks[0].Title)
	assert.Equal(t, StatusAmazing, snap.GalleryBooks[0].Status)
}

func TestRehydrateFromLegacySnapshot(t *testing.T) {
	backing := kv.NewMemoryStore()

	// A snapshot written before statuses and readingStats existed.
	legacy := `{"scannedBooks":[],"galleryBooks":[{"id":"g1","title":"Old Book"}]}`
	require.NoError(t, backing.Set(context.Background(), "shelfscan:snapshot", []byte(legacy)))

	store := NewStore(backing)
	snap := store.Snapshot()
	require.Len(t, snap.GalleryBooks, 1)
	assert.Equal(t, StatusToRead, snap.GalleryBooks[0].Status)
	assert.Equal(t, 0, snap.Stats.YearlyBooksRead)
}

func TestRehydrateFromCorruptSnapshotStartsEmpty(t *testing.T) {
	backing := kv.NewMemoryStore()
	require.NoError(t, backing.Set(context.Background(), "shelfscan:snapshot", []byte("{not json")))

	store := NewStore(backing)
	assert.Empty(t, store.Snapshot().GalleryBooks)
	assert.Empty(t, store.Snapshot().ScannedBooks)
}

func TestSubscribeReceivesSnapshotPerMutation(t *testing.T) {
	store, _ := newTestStore(t)

	var seen []int
	store.Subscribe(func(snap Snapshot) {
		seen = append(seen, len(snap.GalleryBooks))
	})

	store.AddGalleryBook(Book{ID: "g1"})
	store.AddGalleryBook(Book{ID: "g2"})
	store.RemoveGalleryBook("g1")

	assert.Equal(t, []int{1, 2, 1}, seen)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddGalleryBook(Book{
		ID:              "g1",
		Authors:         []string{"A"},
		ReadingProgress: &ReadingProgress{CurrentPage: 1, TotalPages: 10, Percentage: 10},
	})

	snap := store.Snapshot()
	snap.GalleryBooks[0].Authors[0] = "mutated"
	snap.GalleryBooks[0].ReadingProgress.CurrentPage = 99

	fresh := store.Snapshot()
	assert.Equal(t, "A", fresh.GalleryBooks[0].Authors[0])
	assert.Equal(t, 1, fresh.GalleryBooks[0].ReadingProgress.CurrentPage)
}

func TestNotes(t *testing.T) {
	store, _ := newTestStore(t)

	note, err := store.Note("g1")
	require.NoError(t, err)
	assert.Empty(t, note)

	require.NoError(t, store.SetNote("g1", "great pacing"))
	note, err = store.Note("g1")
	require.NoError(t, err)
	assert.Equal(t, "great pacing", note)

	require.NoError(t, store.SetNote("g1", "changed my mind"))
	note, _ = store.Note("g1")
	assert.Equal(t, "changed my mind", note)

	require.NoError(t, store.ClearNote("g1"))
	note, err = store.Note("g1")
	require.NoError(t, err)
	assert.Empty(t, note)
}

func TestLastErrNilAfterSuccessfulWrite(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddGalleryBook(Book{ID: "g1"})
	assert.NoError(t, store.LastErr())
}

func TestFindGalleryMatch(t *testing.T) {
	store, _ := newTestStore(t)
	store.AddGalleryBook(Book{ID: "g1", Title: "Dune", Authors: []string{"Frank Herbert"}})

	_, ok := FindGalleryMatch(store.Snapshot(), "dune", []string{"frank herbert"})
	assert.True(t, ok)

	_, ok = FindGalleryMatch(store.Snapshot(), "Dune", []string{"Someone Else"})
	assert.False(t, ok)

	_, ok = FindGalleryMatch(store.Snapshot(), "Dune Messiah", []string{"Frank Herbert"})
	assert.False(t, ok)
}
