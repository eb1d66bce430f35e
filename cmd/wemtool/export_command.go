package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wemtool/internal/analysis"
	"wemtool/internal/report"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var inPath string
	var outPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Convert the analysis JSON into a spreadsheet with one sheet per category",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, release, err := ctx.begin(cmd, "export")
			if err != nil {
				return err
			}
			defer release()
			source, err := outputPath(inPath, cfg.Paths.AnalysisJSON)
			if err != nil {
				return err
			}
			target, err := outputPath(outPath, cfg.Paths.AnalysisXLSX)
			if err != nil {
				return err
			}

			rep, err := analysis.Load(source)
			if err != nil {
				return err
			}
			summary, err := report.NewExporter(logger).Export(runCtx, rep, target)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}
			if !summary.Written {
				fmt.Fprintf(cmd.OutOrStdout(), "Analysis report %s lists no files; no workbook written\n", source)
				return nil
			}
			rows := make([][]string, 0, len(summary.Sheets))
			for _, sheet := range summary.Sheets {
				rows = append(rows, []string{sheet.Sheet, fmt.Sprint(sheet.Rows)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", target)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Sheet", "Rows"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Analysis JSON to read (default from config)")
	cmd.Flags().StringVar(&outPath, "out", "", "Workbook to write (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}
