// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package shelf

import (
	"math"
	"time"
)

// Summary aggregates the gallery's "read" books.
type Summary struct {
	TotalBooks      int `json:"totalBooks"`
	ReadBooks       int `json:"readBooks"`
	PagesRead       int `json:"pagesRead"`
	TotalPages      int `json:"totalPages"`
	ReadingTime     int `json:"readingTime"`     // minutes
	AvgReadingSpeed int `json:"avgReadingSpeed"` // pages per hour
	CompletionRate  int `json:"completionRate"`  // percent
	AvgBookLength   int `json:"avgBookLength"`   // pages
}

// Streaks holds consecutive-day reading activity counts.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// DayActivity is one day of the trailing-week view.
type DayActivity struct {
	Day         string    `json:"day"` // Sun..Sat
	Date        time.Time `json:"date"`
	Read        bool      `json:"read"`
	ReadingTime int       `json:"readingTime"` // minutes
}

// ProgressPercent computes round(current/total*100), 0 when total is 0 so a
// zero-page book never divides by zero.
func ProgressPercent(p *ReadingProgress) int {
	if p == nil || p.TotalPages <= 0 {
		return 0
	}
	return int(math.Round(float64(p.CurrentPage) / float64(p.TotalPages) * 100))
}

// Summarize derives the reading statistics shown on the stats screen.
// All ratios round to the nearest integer and collapse to 0 on empty input.
func Summarize(snap Snapshot) Summary {
	var sum Summary
	sum.TotalBooks = len(snap.GalleryBooks)

	for _, b := range snap.GalleryBooks {
		if b.Status != StatusRead {
			continue
		}
		sum.ReadBooks++
		if p := b.ReadingProgress; p != nil {
			sum.PagesRead += p.CurrentPage
			sum.TotalPages += p.TotalPages
			sum.ReadingTime += p.ReadingTime
		}
	}

	if sum.ReadingTime > 0 {
		sum.AvgReadingSpeed = int(math.Round(float64(sum.PagesRead) / float64(sum.ReadingTime) * 60))
	}
	if sum.TotalBooks > 0 {
		sum.CompletionRate = int(math.Round(float64(sum.ReadBooks) / float64(sum.TotalBooks) * 100))
	}
	if sum.ReadBooks > 0 {
		sum.AvgBookLength = int(math.Round(float64(sum.TotalPages) / float64(sum.ReadBooks)))
	}
	return sum
}

// readingTimeByDay maps calendar day (from each progress entry's LastUpdated,
// truncated to date) to cumulative reading minutes that day.
func readingTimeByDay(books []Book) map[string]int {
	byDay := make(map[string]int)
	for _, b := range books {
		p := b.ReadingProgress
		if p == nil || p.LastUpdated.IsZero() {
			continue
		}
		byDay[dayKey(p.LastUpdated)] += p.ReadingTime
	}
	return byDay
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ComputeStreaks walks backward day-by-day from today, stopping at the first
// day with no recorded activity; there is no window bound. The longest streak
// only ever grows: it is max(stored longest, current).
func ComputeStreaks(snap Snapshot, now time.Time) Streaks {
	byDay := readingTimeByDay(snap.GalleryBooks)

	current := 0
	for day := now; ; day = day.AddDate(0, 0, -1) {
		if _, ok := byDay[dayKey(day)]; !ok {
			break
		}
		current++
	}

	longest := snap.Stats.LongestStreak
	if current > longest {
		longest = current
	}
	return Streaks{Current: current, Longest: longest}
}

// WeekActivity returns the trailing 7 days, oldest first and ending today,
// each flagged with whether reading was recorded and how many minutes.
func WeekActivity(snap Snapshot, now time.Time) []DayActivity {
	byDay := readingTimeByDay(snap.GalleryBooks)

	week := make([]DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		minutes, read := byDay[dayKey(date)]
		week = append(week, DayActivity{
			Day:         date.Format("Mon"),
			Date:        date,
			Read:        read,
			ReadingTime: minutes,
		})
	}
	return week
}

// GoalProgress is done/goal as a percent, clamped at 100 even when the count
// exceeds the goal, and 0 while no goal is set.
func GoalProgress(done, goal int) int {
	if goal <= 0 {
		return 0
	}
	pct := int(math.Round(float64(done) / float64(goal) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// YearlyBooksRead counts gallery books finished in the given calendar year.
func YearlyBooksRead(snap Snapshot, year int) int {
	n := 0
	for _, b := range snap.GalleryBooks {
		if b.Status == StatusRead && b.YearRead == year {
			n++
		}
	}
	return n
}

// TotalBooksRead counts gallery books with status read.
func TotalBooksRead(snap Snapshot) int {
	n := 0
	for _, b := range snap.GalleryBooks {
		if b.Status == StatusRead {
			n++
		}
	}
	return n
}
