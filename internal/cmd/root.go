// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/cobra"

	"shelfscan/internal/bookdata"
	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

// NewRootCmd creates the root command for shelfscan.
func NewRootCmd(cfg *config.Config, store *shelf.Store, client *bookdata.Client) *cobra.Command {

	root := &cobra.Command{
		Use:   "shelfscan",
		Short: "Scan book covers and track your reading gallery",
		Long: `Scan book covers or ISBNs and keep a personal reading gallery.

shelfscan provides tools to:
- Scan covers and ISBNs through the book metadata service
- Keep a gallery of books with status tags (read, to-read, amazing, horrible, dnf)
- Track per-book reading progress and daily streaks
- Set yearly reading goals and watch statistics
- Attach a note to any book`,
	}

	root.AddCommand(newScanCmd(cfg, store, client))
	root.AddCommand(newGalleryCmd(cfg, store))
	root.AddCommand(newStatusCmd(cfg, store))
	root.AddCommand(newProgressCmd(cfg, store))
	root.AddCommand(newStatsCmd(cfg, store))
	root.AddCommand(newStreakCmd(cfg, store))
	root.AddCommand(newGoalsCmd(cfg, store))
	root.AddCommand(newNoteCmd(cfg, store))
	root.AddCommand(newSimilarCmd(cfg, store, client))
	root.AddCommand(newExportCmd(cfg, store))

	return root
}
