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

func newProgressCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Track reading progress for gallery books",
	}
	cmd.AddCommand(newProgressSetCmd(cfg, store))
	cmd.AddCommand(newProgressShowCmd(cfg, store))
	return cmd
}

func newProgressSetCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	var (
		totalPages int
		minutes    int
	)

	cmd := &cobra.Command{
		Use:   "set <book-id> <current-page>",
		Short: "Record the page you are on",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}

			var current int
			if _, err := fmt.Sscanf(args[1], "%d", &current); err != nil {
				return fmt.Errorf("invalid page number %q", args[1])
			}

			total := totalPages
			if total == 0 && book.ReadingProgress != nil {
				total = book.ReadingProgress.TotalPages
			}
			if total == 0 {
				return fmt.Errorf("no page count on record for %q, pass --total-pages", book.Title)
			}

			readingTime := minutes
			if book.ReadingProgress != nil {
				readingTime += book.ReadingProgress.ReadingTime
			}

			progress := shelf.ReadingProgress{
				CurrentPage: current,
				TotalPages:  total,
				LastUpdated: time.Now(),
				ReadingTime: readingTime,
			}
			if err := store.UpdateReadingProgress(book.ID, progress); err != nil {
				return err
			}

			fmt.Printf("%s: page %d of %d (%d%%)\n",
				truncate(book.Title, 50), current, total,
				shelf.ProgressPercent(&progress))
			return nil
		},
	}

	cmd.Flags().IntVar(&totalPages, "total-pages", 0, "total page count of the book")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "minutes spent reading this session")
	return cmd
}

func newProgressShowCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "show <book-id>",
		Short: "Show reading progress for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Title:  %s\n", book.Title)
			fmt.Printf("Status: %s\n", book.Status)
			if book.ReadingProgress == nil {
				fmt.Println("No reading progress recorded.")
				return nil
			}

			p := book.ReadingProgress
			fmt.Printf("Page:   %d / %d (%d%%)\n", p.CurrentPage, p.TotalPages, p.Percentage)
			fmt.Printf("Time:   %d min\n", p.ReadingTime)
			if !p.LastUpdated.IsZero() {
				fmt.Printf("Last:   %s\n", p.LastUpdated.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
