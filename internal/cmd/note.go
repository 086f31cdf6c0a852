// Copyright (c) 2025 Shelfscan Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelfscan/internal/config"
	"shelfscan/internal/shelf"
)

func newNoteCmd(cfg *config.Config, store *shelf.Store) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Keep a note per gallery book",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <book-id> <text>...",
		Short: "Write the note for a book, replacing any previous one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}
			if err := store.SetNote(book.ID, strings.Join(args[1:], " ")); err != nil {
				return fmt.Errorf("save note: %w", err)
			}
			fmt.Printf("Note saved for %s\n", truncate(book.Title, 50))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <book-id>",
		Short: "Print the note for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}
			note, err := store.Note(book.ID)
			if err != nil {
				return fmt.Errorf("load note: %w", err)
			}
			if note == "" {
				fmt.Printf("No note for %s\n", truncate(book.Title, 50))
				return nil
			}
			fmt.Println(note)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <book-id>",
		Short: "Delete the note for a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := resolveGalleryBook(store, args[0])
			if err != nil {
				return err
			}
			if err := store.ClearNote(book.ID); err != nil {
				return fmt.Errorf("clear note: %w", err)
			}
			fmt.Printf("Note cleared for %s\n", truncate(book.Title, 50))
			return nil
		},
	})

	return cmd
}
