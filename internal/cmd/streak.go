// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newStreakCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the reading streak and the last week's activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := store.Snapshot()
			now := time.Now()
			streaks := shelf.ComputeStreaks(snap, now)

			// Persist so the longest streak survives a broken run.
			store.UpdateReadingStats(shelf.StatsPatch{
				CurrentStreak: intPtr(streaks.Current),
				LongestStreak: intPtr(streaks.Longest),
			})

			fmt.Printf("Current streak: %d day(s)\n", streaks.Current)
			fmt.Printf("Longest streak: %d day(s)\n", streaks.Longest)
			fmt.Println()

			for _, day := range shelf.WeekActivity(snap, now) {
				mark := " "
				if day.Read {
					mark = "#"
				}
				bar := strings.Repeat("=", day.ReadingTime/10)
				fmt.Printf("%-4s [%s] %3d min %s\n", day.Day, mark, day.ReadingTime, bar)
			}
			return nil
		},
	}
}
