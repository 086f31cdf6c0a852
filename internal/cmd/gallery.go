// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newGalleryCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage your reading gallery",
		Long:  "Add, list, and remove books in the gallery.",
	}

	cmd.AddCommand(newGalleryAddCmd(store))
	cmd.AddCommand(newGalleryListCmd(store))
	cmd.AddCommand(newGalleryRemoveCmd(store))

	return cmd
}

func newGalleryAddCmd(store *shelf.Store) *cobra.Command {
	var (
		authors []string
		image   string
		status  string
		force   bool
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a book to the gallery by hand",
		Long: `Add a book to the gallery without scanning.

Examples:
  shelfscan gallery add "The Left Hand of Darkness" --author "Ursula K. Le Guin"
  shelfscan gallery add "Piranesi" --author "Susanna Clarke" --status read`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]

			if existing, ok := shelf.FindGalleryMatch(store.Snapshot(), title, authors); ok && !force {
				return fmt.Errorf("already in gallery as %s: %s (use --force to add anyway)", existing.ID, existing.Title)
			}

			book := shelf.Book{
				ID:      uuid.New().String(),
				Title:   title,
				Image:   image,
				Authors: authors,
			}
			if status != "" {
				s := shelf.Status(status)
				if !s.Valid() {
					return fmt.Errorf("unknown status %q (read, to-read, amazing, horrible, dnf)", status)
				}
				book.Status = s
			}

			added := store.AddGalleryBook(book)
			fmt.Printf("Added: %s (%s) [%s]\n", truncate(added.Title, 50), added.ID, added.Status)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&authors, "author", "a", nil, "Author (repeatable, order matters)")
	cmd.Flags().StringVar(&image, "image", "", "Cover image URI")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Initial status (defaults to to-read)")
	cmd.Flags().BoolVar(&force, "force", false, "Add even when a matching title+authors entry exists")
	return cmd
}

func newGalleryListCmd(store *shelf.Store) *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List gallery books, most recently added first",
		RunE: func(cmd *cobra.Command, args []string) error {
			books := store.Snapshot().GalleryBooks

			if status != "" {
				filtered := books[:0]
				for _, b := range books {
					if b.Status == shelf.Status(status) {
						filtered = append(filtered, b)
					}
				}
				books = filtered
			}
			if limit > 0 && len(books) > limit {
				books = books[:limit]
			}

			if len(books) == 0 {
				fmt.Println("No books in gallery.")
				fmt.Println("Use 'shelfscan gallery add <title>' or 'shelfscan scan keep <scan-id>' to add one.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tAUTHORS\tSTATUS\tPROGRESS")
			for _, b := range books {
				progress := "-"
				if b.ReadingProgress != nil {
					progress = fmt.Sprintf("%d/%d (%d%%)", b.ReadingProgress.CurrentPage, b.ReadingProgress.TotalPages, b.ReadingProgress.Percentage)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					shortID(b.ID), truncate(b.Title, 40), truncate(formatAuthors(b.Authors), 25), b.Status, progress)
			}
			w.Flush()

			fmt.Printf("\nTotal: %d book(s)\n", len(books))
			return nil
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "Filter by status")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")
	return cmd
}

func newGalleryRemoveCmd(store *shelf.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <book-id>",
		Short: "Remove a book from the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}
			if store.RemoveGalleryBook(book.ID) {
				fmt.Printf("Removed: %s\n", truncate(book.Title, 50))
			}
			return nil
		},
	}
}
