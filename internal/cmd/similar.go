// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"shelfscan/internal/bookdata"
	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newSimilarCmd(cfg *config.Config, store *shelf.Store, client *bookdata.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "similar <book-id>",
		Short: "Find books similar to one in the gallery",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}

			results, err := client.SimilarBooks(cmd.Context(), book.Title, book.Authors)
			if err != nil {
				return fmt.Errorf("search similar books: %w", err)
			}
			if len(results) == 0 {
				fmt.Printf("No similar books found for %s\n", truncate(book.Title, 50))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tAUTHORS\tRATING\tMATCH")
			for _, r := range results {
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\n",
					truncate(r.Title, 40), formatAuthors(r.Authors), r.Rating, r.MatchType)
			}
			return w.Flush()
		},
	}
}
