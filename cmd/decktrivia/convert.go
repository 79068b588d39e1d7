package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"decktrivia"
)

func newConvertCommand(configFlag *string) *cobra.Command {
	var (
		out         string
		assets      string
		round1      string
		round2      string
		final       string
		reviewXLSX  string
		catalogPath string
		useCatalog  bool
		force       bool
	)

	cmd := &cobra.Command{
		Use:   "convert DECK",
		Short: "Convert a PPTX deck to game content JSON and extracted assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}

			// Flags override config-file values only when set explicitly.
			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.OutputPath = out
			}
			if flags.Changed("assets") {
				cfg.AssetsDir = assets
			}
			if flags.Changed("round1-title") {
				cfg.Round1Title = round1
			}
			if flags.Changed("round2-title") {
				cfg.Round2Title = round2
			}
			if flags.Changed("final-title") {
				cfg.FinalTitle = final
			}
			if flags.Changed("review-xlsx") {
				cfg.ReviewWorkbook = reviewXLSX
			}
			if flags.Changed("catalog") {
				cfg.Catalog.Enabled = useCatalog
			}
			if flags.Changed("catalog-path") {
				cfg.Catalog.Path = catalogPath
			}

			conv, err := decktrivia.NewConverter(cfg)
			if err != nil {
				return err
			}
			defer conv.Close()

			var opts []decktrivia.ConvertOption
			if force {
				opts = append(opts, decktrivia.WithForce())
			}

			res, err := conv.Convert(cmd.Context(), args[0], opts...)
			if err != nil {
				return err
			}
			if res.Skipped {
				fmt.Println("Deck unchanged since last conversion (use --force to reconvert).")
				return nil
			}
			printSummary(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "game-data.json", "Output JSON path")
	cmd.Flags().StringVar(&assets, "assets", "assets", "Assets folder (images/ and audio/ are created under it)")
	cmd.Flags().StringVar(&round1, "round1-title", "ROUND 1", "Round 1 header slide title")
	cmd.Flags().StringVar(&round2, "round2-title", "ROUND 2", "Round 2 header slide title")
	cmd.Flags().StringVar(&final, "final-title", "FINAL JEOPARDY", "Final slide title")
	cmd.Flags().StringVar(&reviewXLSX, "review-xlsx", "", "Also write an xlsx review workbook to this path")
	cmd.Flags().BoolVar(&useCatalog, "catalog", false, "Record this conversion in the deck catalog")
	cmd.Flags().StringVar(&catalogPath, "catalog-path", "", "Catalog database path")
	cmd.Flags().BoolVar(&force, "force", false, "Convert even if the catalog says the deck is unchanged")

	return cmd
}

func printSummary(res *decktrivia.Result) {
	fmt.Printf("Wrote %s\n", res.JSONPath)
	if res.WorkbookPath != "" {
		fmt.Printf("Wrote %s\n", res.WorkbookPath)
	}
	fmt.Printf("Images: %s\n", res.ImagesDir)
	fmt.Printf("Audio:  %s\n", res.AudioDir)

	rows := [][]string{
		{"Round 1 categories", strconv.Itoa(res.Round1Categories)},
		{"Round 2 categories", strconv.Itoa(res.Round2Categories)},
		{"Clues", strconv.Itoa(res.Clues)},
		{"Dropped slides", strconv.Itoa(res.DroppedSlides)},
		{"Images extracted", strconv.Itoa(res.Images)},
		{"Audio clips extracted", strconv.Itoa(res.AudioClips)},
		{"Final present", yesNo(res.FinalPresent)},
	}
	fmt.Println(renderTable([]string{"Metric", "Value"}, rows))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
