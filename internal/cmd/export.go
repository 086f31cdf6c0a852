// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newExportCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the gallery and stats to YAML or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap := store.Snapshot()
			doc := struct {
				Books []shelf.Book       `json:"books" yaml:"books"`
				Stats shelf.ReadingStats `json:"stats" yaml:"stats"`
			}{
				Books: snap.GalleryBooks,
				Stats: snap.Stats,
			}

			var (
				data []byte
				err  error
			)
			switch format {
			case "yaml":
				data, err = yaml.Marshal(doc)
			case "json":
				data, err = json.MarshalIndent(doc, "", "  ")
			default:
				return fmt.Errorf("unknown format %q (yaml, json)", format)
			}
			if err != nil {
				return fmt.Errorf("encode gallery: %w", err)
			}

			if output == "" || output == "-" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Printf("Exported %d book(s) to %s\n", len(doc.Books), output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
