// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newStatsCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := store.Snapshot()
			sum := shelf.Summarize(snap)
			year := time.Now().Year()

			fmt.Println("Reading Stats")
			fmt.Println("-------------")
			fmt.Printf("Pages read:       %d\n", sum.PagesRead)
			fmt.Printf("Reading time:     %s\n", formatMinutes(sum.ReadingTime))
			fmt.Printf("Avg speed:        %d pages/hr\n", sum.AvgReadingSpeed)
			fmt.Printf("Completion rate:  %d%%\n", sum.CompletionRate)
			fmt.Printf("Avg book length:  %d pages\n", sum.AvgBookLength)
			fmt.Println()
			fmt.Printf("Books read (all): %d\n", shelf.TotalBooksRead(snap))
			fmt.Printf("Books read %d:  %d\n", year, shelf.YearlyBooksRead(snap, year))
			fmt.Printf("Pages read %d:  %d\n", year, snap.Stats.YearlyPagesRead)
			return nil
		},
	}
}

func formatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	return fmt.Sprintf("%dh %dm", min/60, min%60)
}
