package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wemtool/internal/analysis"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var root string
	var outPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Categorize a tree of named .wem files and record duplicates",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "root", root); err != nil {
				return err
			}
			runCtx, cfg, logger, release, err := ctx.begin(cmd, "analyze")
			if err != nil {
				return err
			}
			defer release()
			target, err := outputPath(outPath, cfg.Paths.AnalysisJSON)
			if err != nil {
				return err
			}

			classifier := analysis.NewClassifier(cfg.Analysis.Prefixes, cfg.Analysis.OtherCategory)
			report, err := analysis.NewAnalyzer(classifier, logger).Analyze(runCtx, root)
			if err != nil {
				return err
			}
			if err := analysis.Save(runCtx, target, report); err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, report)
			}

			rows := make([][]string, 0, len(report.Categories))
			for _, category := range report.Categories {
				paths := 0
				for _, file := range category.Files {
					paths += len(file.Paths)
				}
				rows = append(rows, []string{category.Name, fmt.Sprint(len(category.Files)), fmt.Sprint(paths)})
			}
			printSummary(cmd, "Analysis finished",
				field("Root", report.Root),
				count(".wem files", report.TotalFiles),
				count("Categories", len(report.Categories)),
				count("Duplicate names", len(report.Duplicates)),
				field("Output", target),
			)
			printTable(cmd, "Categories", []string{"Category", "Names", "Paths"}, rows,
				[]columnAlignment{alignLeft, alignRight, alignRight})
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory of named .wem files (searched recursively)")
	cmd.Flags().StringVar(&outPath, "out", "", "Analysis JSON to write (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")
	return cmd
}
