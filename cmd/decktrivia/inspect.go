package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"decktrivia/deck"
	"decktrivia/game"
)

func newInspectCommand(configFlag *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect DECK",
		Short: "Show how each slide would be classified, without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			d, err := deck.Open(args[0])
			if err != nil {
				return err
			}
			defer d.Close()

			markers := game.Markers{
				Round1: cfg.Round1Title,
				Round2: cfg.Round2Title,
				Final:  cfg.FinalTitle,
			}

			rows := make([][]string, 0, len(d.Slides()))
			for _, s := range d.Slides() {
				rows = append(rows, []string{
					strconv.Itoa(s.Number),
					markers.Classify(s.Title()).String(),
					truncate(s.Title(), 40),
					yesNo(s.Body() != ""),
					yesNo(s.Notes() != ""),
					strconv.Itoa(len(s.Pictures())),
					strconv.Itoa(len(d.AudioTargets(s.Number))),
				})
			}
			fmt.Println(renderTable(
				[]string{"Slide", "Kind", "Title", "Body", "Notes", "Pics", "Audio"},
				rows))
			return nil
		},
	}
	return cmd
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
