// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

// Package shelf is the single source of truth for scanned books, the reading
// gallery, and aggregate reading statistics. Every mutation synchronously
// rewrites the full snapshot in the backing store; reads always observe the
// latest committed snapshot.
package shelf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"shelfscan/internal/kv"
)

const (
	snapshotKey   = "shelfscan:snapshot"
	noteKeyPrefix = "book-note-"
)

// Store owns the three entity collections. Mutations go through its methods
// only; each one persists the snapshot and notifies subscribers.
type Store struct {
	kv kv.Store

	mu        sync.Mutex
	snap      Snapshot
	observers []func(Snapshot)
	lastErr   error
}

// NewStore rehydrates the snapshot from the backing store. An absent or
// malformed snapshot initializes empty defaults; this never fails fatally.
func NewStore(backing kv.Store) *Store {
	s := &Store{kv: backing, snap: emptySnapshot()}

	data, err := backing.Get(context.Background(), snapshotKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			log.Printf("shelfscan: read snapshot: %v (starting empty)", err)
		}
		return s
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		log.Printf("shelfscan: %v (starting empty)", err)
		return s
	}
	s.snap = snap
	return s
}

// Subscribe registers fn to receive a copy of the snapshot after every
// committed mutation.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// LastErr reports the most recent persistence failure, nil when the last
// write succeeded. Mutations do not fail on persistence errors; callers that
// care about durability check here.
func (s *Store) LastErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// AddScannedBook prepends book to the scanned list (most-recent-first).
// Duplicate IDs are permitted to accumulate; an empty ID gets a fresh
// timestamp-derived one. Returns the stored book.
func (s *Store) AddScannedBook(book Book) Book {
	if book.ID == "" {
		book.ID = fmt.Sprintf("book:%d", time.Now().UnixNano())
	}

	s.mu.Lock()
	s.snap.ScannedBooks = append([]Book{book}, s.snap.ScannedBooks...)
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
	return book
}

// ClearScannedBooks empties the scanned list. Idempotent.
func (s *Store) ClearScannedBooks() {
	s.mu.Lock()
	s.snap.ScannedBooks = nil
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
}

// AddGalleryBook prepends book to the gallery, defaulting status to to-read.
// No uniqueness check: callers perform the (title, authors) dedup before
// calling. Returns the stored book.
func (s *Store) AddGalleryBook(book Book) Book {
	if book.ID == "" {
		book.ID = fmt.Sprintf("book:%d", time.Now().UnixNano())
	}
	if book.Status == "" {
		book.Status = StatusToRead
	}

	s.mu.Lock()
	s.snap.GalleryBooks = append([]Book{book}, s.snap.GalleryBooks...)
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
	return book
}

// RemoveGalleryBook removes the first entry with a matching ID. No-op when
// absent; reports whether anything was removed.
func (s *Store) RemoveGalleryBook(id string) bool {
	s.mu.Lock()
	removed := false
	for i, b := range s.snap.GalleryBooks {
		if b.ID == id {
			s.snap.GalleryBooks = append(s.snap.GalleryBooks[:i], s.snap.GalleryBooks[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.mu.Unlock()
		return false
	}
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
	return true
}

// GalleryBook returns a copy of the gallery entry with the given ID.
func (s *Store) GalleryBook(id string) (Book, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.snap.GalleryBooks {
		if b.ID == id {
			c := cloneBooks([]Book{b})
			return c[0], true
		}
	}
	return Book{}, false
}

// UpdateBookStatus replaces the status of the matching gallery entry without
// touching the stats counters. No-op when absent. Most callers want
// SetBookStatus, which keeps the yearly counters consistent.
func (s *Store) UpdateBookStatus(id string, status Status) bool {
	s.mu.Lock()
	idx := s.galleryIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.snap.GalleryBooks[idx].Status = status
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
	return true
}

// SetBookStatus atomically replaces the status AND applies the yearly stats
// delta, so the two pieces of state cannot drift. Entering `read` from a
// non-read status adds one book and the book's total pages to the yearly
// counters and stamps YearRead; leaving `read` reverses both. Transitions
// between two non-read statuses change nothing. No-op when the ID is absent.
func (s *Store) SetBookStatus(id string, status Status) bool {
	s.mu.Lock()
	idx := s.galleryIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}

	book := &s.snap.GalleryBooks[idx]
	was, is := book.Status == StatusRead, status == StatusRead
	now := time.Now()

	pages := 0
	if book.ReadingProgress != nil {
		pages = book.ReadingProgress.TotalPages
	}

	switch {
	case is && !was:
		s.snap.Stats.YearlyBooksRead++
		s.snap.Stats.YearlyPagesRead += pages
		s.snap.Stats.TotalBooksRead++
		s.snap.Stats.LastReadDate = now
		book.YearRead = now.Year()
	case was && !is:
		s.snap.Stats.YearlyBooksRead--
		s.snap.Stats.YearlyPagesRead -= pages
		s.snap.Stats.TotalBooksRead--
		book.YearRead = 0
	}

	book.Status = status
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
	return true
}

// UpdateReadingProgress replaces the gallery entry's progress wholesale.
// The value is validated and its percentage recomputed; invalid input is
// rejected and the mutation not applied. No-op (nil) when the ID is absent.
func (s *Store) UpdateReadingProgress(id string, progress ReadingProgress) error {
	if progress.TotalPages <= 0 {
		return fmt.Errorf("total pages must be positive, got %d", progress.TotalPages)
	}
	if progress.CurrentPage < 0 {
		return fmt.Errorf("current page must not be negative, got %d", progress.CurrentPage)
	}
	if progress.CurrentPage > progress.TotalPages {
		return fmt.Errorf("current page %d exceeds total pages %d", progress.CurrentPage, progress.TotalPages)
	}
	if progress.ReadingTime < 0 {
		return fmt.Errorf("reading time must not be negative, got %d", progress.ReadingTime)
	}
	if progress.LastUpdated.IsZero() {
		progress.LastUpdated = time.Now()
	}
	progress.Percentage = ProgressPercent(&progress)

	s.mu.Lock()
	idx := s.galleryIndexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	p := progress
	s.snap.GalleryBooks[idx].ReadingProgress = &p
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
	return nil
}

// UpdateReadingStats shallow-merges the patch into the current stats,
// overwriting only the provided fields.
func (s *Store) UpdateReadingStats(patch StatsPatch) {
	s.mu.Lock()
	st := &s.snap.Stats
	if patch.CurrentStreak != nil {
		st.CurrentStreak = *patch.CurrentStreak
	}
	if patch.LongestStreak != nil {
		st.LongestStreak = *patch.LongestStreak
	}
	if patch.TotalBooksRead != nil {
		st.TotalBooksRead = *patch.TotalBooksRead
	}
	if patch.YearlyBooksRead != nil {
		st.YearlyBooksRead = *patch.YearlyBooksRead
	}
	if patch.YearlyPagesRead != nil {
		st.YearlyPagesRead = *patch.YearlyPagesRead
	}
	if patch.YearlyBooksGoal != nil {
		st.YearlyBooksGoal = *patch.YearlyBooksGoal
	}
	if patch.YearlyPagesGoal != nil {
		st.YearlyPagesGoal = *patch.YearlyPagesGoal
	}
	if patch.LastReadDate != nil {
		st.LastReadDate = *patch.LastReadDate
	}
	snap, obs := s.commitLocked()
	s.mu.Unlock()

	notify(snap, obs)
}

// Note operations: one string per book under its own key, independent of the
// main snapshot.

// Note returns the saved note for a book, "" when none exists.
func (s *Store) Note(bookID string) (string, error) {
	data, err := s.kv.Get(context.Background(), noteKeyPrefix+bookID)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("get note: %w", err)
	}
	return string(data), nil
}

// SetNote saves the note for a book, replacing any previous one.
func (s *Store) SetNote(bookID, note string) error {
	if err := s.kv.Set(context.Background(), noteKeyPrefix+bookID, []byte(note)); err != nil {
		return fmt.Errorf("set note: %w", err)
	}
	return nil
}

// ClearNote deletes a book's note. Idempotent.
func (s *Store) ClearNote(bookID string) error {
	if err := s.kv.Delete(context.Background(), noteKeyPrefix+bookID); err != nil {
		return fmt.Errorf("clear note: %w", err)
	}
	return nil
}

func (s *Store) galleryIndexLocked(id string) int {
	for i, b := range s.snap.GalleryBooks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// commitLocked persists the full snapshot and hands back a copy plus the
// observer list for notification outside the lock. Persistence is
// best-effort: a failed write is logged and recorded, never surfaced as a
// mutation error.
func (s *Store) commitLocked() (Snapshot, []func(Snapshot)) {
	data, err := marshalSnapshot(s.snap)
	if err == nil {
		err = s.kv.Set(context.Background(), snapshotKey, data)
	}
	if err != nil {
		log.Printf("shelfscan: persist snapshot: %v", err)
	}
	s.lastErr = err

	obs := make([]func(Snapshot), len(s.observers))
	copy(obs, s.observers)
	return s.snap.Clone(), obs
}

func notify(snap Snapshot, observers []func(Snapshot)) {
	for _, fn := range observers {
		fn(snap)
	}
}
