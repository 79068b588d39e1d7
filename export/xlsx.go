package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"decktrivia/game"
)

var workbookHeader = []string{"Category", "Question", "Answer", "Images", "Audio"}

// WriteWorkbook writes an xlsx review workbook: one sheet per round plus a
// Final sheet when a final clue is present, one row per clue. Intended for
// proofreading a deck's content outside the game, not as a data format.
func WriteWorkbook(doc *game.Document, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, round := range doc.Rounds {
		if err := writeSheet(f, round); err != nil {
			return err
		}
	}

	if doc.Final != nil {
		if _, err := f.NewSheet("Final"); err != nil {
			return fmt.Errorf("creating sheet Final: %w", err)
		}
		if err := writeRow(f, "Final", 1, headerCells()); err != nil {
			return err
		}
		row := []any{doc.Final.Category, doc.Final.Question, doc.Final.Answer,
			joinRefs(doc.Final.Images), joinRefs(doc.Final.Audio)}
		if err := writeRow(f, "Final", 2, row); err != nil {
			return err
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, round game.Round) error {
	if _, err := f.NewSheet(round.Name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", round.Name, err)
	}
	if err := writeRow(f, round.Name, 1, headerCells()); err != nil {
		return err
	}

	rowNum := 2
	for _, cat := range round.Categories {
		for _, clue := range cat.Clues {
			row := []any{cat.Name, clue.Question, clue.Answer,
				joinRefs(clue.Images), joinRefs(clue.Audio)}
			if err := writeRow(f, round.Name, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func headerCells() []any {
	cells := make([]any, len(workbookHeader))
	for i, h := range workbookHeader {
		cells[i] = h
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name for column %d: %w", i+1, err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func joinRefs(refs []game.MediaRef) string {
	if len(refs) == 0 {
		return ""
	}
	srcs := make([]string, len(refs))
	for i, r := range refs {
		srcs[i] = r.Src
	}
	return strings.Join(srcs, "\n")
}
