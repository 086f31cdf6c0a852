// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newStatusCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "status <book-id> <status>",
		Short: "Set a gallery book's status tag",
		Long: `Set the status of a gallery book: read, to-read, amazing, horrible, or dnf.

Marking a book read also counts it (and its pages) toward the yearly totals;
unmarking takes both back out. The two never drift apart.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}

			status := shelf.Status(args[1])
			if !status.Valid() {
				return fmt.Errorf("unknown status %q (read, to-read, amazing, horrible, dnf)", args[1])
			}

			store.SetBookStatus(book.ID, status)
			fmt.Printf("%s -> %s\n", truncate(book.Title, 50), status)

			if status == shelf.StatusRead {
				stats := store.Snapshot().Stats
				fmt.Printf("Books read this year: %d", stats.YearlyBooksRead)
				if stats.YearlyBooksGoal > 0 {
					fmt.Printf(" / %d", stats.YearlyBooksGoal)
				}
				fmt.Println()
			}
			return nil
		},
	}
}
