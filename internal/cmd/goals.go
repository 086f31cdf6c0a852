// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newGoalsCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	var (
		books int
		pages int
	)

	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Show or set yearly reading goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("books") || cmd.Flags().Changed("pages") {
				patch := shelf.StatsPatch{}
				if cmd.Flags().Changed("books") {
					if books < 0 {
						return fmt.Errorf("books goal must not be negative")
					}
					patch.YearlyBooksGoal = intPtr(books)
				}
				if cmd.Flags().Changed("pages") {
					if pages < 0 {
						return fmt.Errorf("pages goal must not be negative")
					}
					patch.YearlyPagesGoal = intPtr(pages)
				}
				store.UpdateReadingStats(patch)
			}

			stats := store.Snapshot().Stats
			printGoal("Books", stats.YearlyBooksRead, stats.YearlyBooksGoal)
			printGoal("Pages", stats.YearlyPagesRead, stats.YearlyPagesGoal)
			return nil
		},
	}

	cmd.Flags().IntVar(&books, "books", 0, "yearly books goal")
	cmd.Flags().IntVar(&pages, "pages", 0, "yearly pages goal")
	return cmd
}

func printGoal(label string, read, goal int) {
	if goal <= 0 {
		fmt.Printf("%s: %d (no goal set)\n", label, read)
		return
	}
	fmt.Printf("%s: %d / %d (%d%%)\n", label, read, goal, shelf.GoalProgress(read, goal))
}
