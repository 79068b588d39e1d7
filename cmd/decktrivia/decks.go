package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"decktrivia"
)

func newDecksCommand(configFlag *string) *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List decks recorded in the conversion catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			cfg.Catalog.Enabled = true
			if cmd.Flags().Changed("catalog-path") {
				cfg.Catalog.Path = catalogPath
			}

			conv, err := decktrivia.NewConverter(cfg)
			if err != nil {
				return err
			}
			defer conv.Close()

			decks, err := conv.ListDecks(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing decks: %w", err)
			}
			if len(decks) == 0 {
				fmt.Println("No decks recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(decks))
			for _, d := range decks {
				rows = append(rows, []string{
					d.Filename,
					d.Status,
					shortHash(d.ContentHash),
					d.UpdatedAt,
				})
			}
			fmt.Println(renderTable([]string{"Deck", "Status", "Hash", "Updated"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog-path", "", "Catalog database path")
	return cmd
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
