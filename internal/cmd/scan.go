// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shelfscan/internal/bookdata"
	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newScanCmd(cfg *config.Config, store *shelf.Store, client *bookdata.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan book covers and ISBNs",
		Long:  "Send a cover image or ISBN to the metadata service and collect the results in the scanned list.",
	}

	cmd.AddCommand(newScanCoverCmd(store, client))
	cmd.AddCommand(newScanISBNCmd(store, client))
	cmd.AddCommand(newScanListCmd(store))
	cmd.AddCommand(newScanClearCmd(store))
	cmd.AddCommand(newScanKeepCmd(store))

	return cmd
}

func newScanCoverCmd(store *shelf.Store, client *bookdata.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "cover <image-path>",
		Short: "Scan a cover image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open image: %w", err)
			}
			defer f.Close()

			result, err := client.ExtractAndSummarize(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return fmt.Errorf("scan cover: %w", err)
			}
			if result.Title == "" {
				return fmt.Errorf("service could not identify a book in %s", path)
			}

			book := store.AddScannedBook(resultToBook(result))
			printScanResult(book, result.Summary)
			return nil
		},
	}
}

func newScanISBNCmd(store *shelf.Store, client *bookdata.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "isbn <isbn>",
		Short: "Look a book up by ISBN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn := bookdata.NormalizeISBN(args[0])
			if isbn == "" {
				return fmt.Errorf("invalid ISBN %q", args[0])
			}

			result, err := client.SearchByISBN(cmd.Context(), isbn)
			if err != nil {
				return fmt.Errorf("isbn lookup: %w", err)
			}
			if result.Title == "" {
				return fmt.Errorf("no book found for ISBN %s", isbn)
			}

			book := store.AddScannedBook(resultToBook(result))
			printScanResult(book, result.Summary)
			return nil
		},
	}
}

func newScanListCmd(store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scanned books, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			scans := store.Snapshot().ScannedBooks
			if len(scans) == 0 {
				fmt.Println("No scans yet. Use 'shelfscan scan cover <image>' to scan a book.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHORS")
			for _, b := range scans {
				fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, truncate(b.Title, 45), truncate(formatAuthors(b.Authors), 30))
			}
			w.Flush()

			fmt.Printf("\nTotal: %d scan(s)\n", len(scans))
			return nil
		},
	}
}

func newScanClearCmd(store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the scanned list",
		RunE: func(cmd *cobra.Command, args []string) error {
			store.ClearScannedBooks()
			fmt.Println("Scanned list cleared.")
			return nil
		},
	}
}

func newScanKeepCmd(store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "keep <scan-id>",
		Short: "Move a scanned book into the gallery",
		Long:  "Copies a scanned book into the gallery under a fresh ID, skipping it when an entry with the same title and authors already exists.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := store.Snapshot()
			var scanned *shelf.Book
			for i, b := range snap.ScannedBooks {
				if b.ID == args[0] {
					scanned = &snap.ScannedBooks[i]
					break
				}
			}
			if scanned == nil {
				return fmt.Errorf("scan not found: %s", args[0])
			}

			if existing, ok := shelf.FindGalleryMatch(snap, scanned.Title, scanned.Authors); ok {
				fmt.Printf("Already in gallery as %s: %s\n", existing.ID, truncate(existing.Title, 50))
				return nil
			}

			book := *scanned
			book.ID = uuid.New().String()
			book.Status = ""
			added := store.AddGalleryBook(book)
			fmt.Printf("Added to gallery: %s (%s)\n", truncate(added.Title, 50), added.ID)
			return nil
		},
	}
}

func resultToBook(result *bookdata.BookResult) shelf.Book {
	book := shelf.Book{
		ID:      uuid.New().String(),
		Title:   result.Title,
		Image:   result.Image,
		Authors: result.Authors,
		Summary: result.Summary,
		Rating:  result.Rating,
	}
	// Seed the page count so progress tracking works without --total-pages.
	if result.PageCount > 0 {
		book.ReadingProgress = &shelf.ReadingProgress{TotalPages: result.PageCount}
	}
	return book
}

func printScanResult(book shelf.Book, summary string) {
	fmt.Printf("Scanned: %s\n", book.Title)
	if len(book.Authors) > 0 {
		fmt.Printf("Authors: %s\n", formatAuthors(book.Authors))
	}
	if book.Rating > 0 {
		fmt.Printf("Rating:  %.1f\n", book.Rating)
	}
	if summary != "" {
		fmt.Printf("\n%s\n", summary)
	}
	fmt.Printf("\nSaved as scan %s. Use 'shelfscan scan keep %s' to add it to your gallery.\n", book.ID, book.ID)
}
