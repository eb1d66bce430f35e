package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// summaryRow is one "label | value" line of a run summary.
type summaryRow struct {
	label string
	value string
}

func count(label string, n int) summaryRow {
	return summaryRow{label: label, value: strconv.Itoa(n)}
}

func field(label, value string) summaryRow {
	return summaryRow{label: label, value: value}
}

func printSummary(cmd *cobra.Command, title string, rows ...summaryRow) {
	body := make([][]string, 0, len(rows))
	for _, row := range rows {
		body = append(body, []string{row.label, row.value})
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, renderTable([]string{"Item", "Value"}, body, nil))
}

func printTable(cmd *cobra.Command, title string, headers []string, rows [][]string, aligns []columnAlignment) {
	if len(rows) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}
