package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	// Right-align the last column; counts read better that way.
	tw.SetColumnConfigs([]table.ColumnConfig{{
		Number:      len(headers),
		Align:       text.AlignRight,
		AlignHeader: text.AlignLeft,
	}})

	return tw.Render()
}
