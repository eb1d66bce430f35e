package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wemtool/internal/config"
	"wemtool/internal/mapping"
	"wemtool/internal/rename"
)

func newRenameCommand(ctx *commandContext, direction rename.Direction) *cobra.Command {
	var wemDir string
	var outputDir string
	var mappingPath string
	var move bool
	var dryRun bool
	var overwrite bool
	var asJSON bool

	short := "Copy numeric-ID .wem files to their event names"
	if direction == rename.Reverse {
		short = "Copy event-named .wem files back to their numeric IDs"
	}

	cmd := &cobra.Command{
		Use:   direction.String(),
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "wem-dir", wemDir); err != nil {
				return err
			}
			if err := requireFlag(cmd, "output", outputDir); err != nil {
				return err
			}
			runCtx, cfg, logger, release, err := ctx.begin(cmd, direction.String())
			if err != nil {
				return err
			}
			defer release()
			path, err := outputPath(mappingPath, cfg.Paths.MappingFile)
			if err != nil {
				return err
			}
			m, err := mapping.Load(path)
			if err != nil {
				return err
			}

			opts := rename.Options{
				Direction: direction,
				Move:      cfg.Rename.Mode == config.RenameModeMove,
				DryRun:    dryRun,
				Overwrite: cfg.Rename.Overwrite,
			}
			if cmd.Flags().Changed("move") {
				opts.Move = move
			}
			if cmd.Flags().Changed("overwrite") {
				opts.Overwrite = overwrite
			}

			result, err := rename.NewRenamer(logger).Run(runCtx, m, wemDir, outputDir, opts)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, result)
			}
			printRenameResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&wemDir, "wem-dir", "", "Directory of .wem files to rename (searched recursively)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Directory that receives the renamed files")
	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping file to use (default from config)")
	cmd.Flags().BoolVar(&move, "move", false, "Move files instead of copying them")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be renamed without writing anything")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace files that already exist in the output directory")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func printRenameResult(cmd *cobra.Command, result rename.Result) {
	verb := "Copied"
	if result.Moved {
		verb = "Moved"
	}
	if result.DryRun {
		verb = "Would rename"
	}
	printSummary(cmd, fmt.Sprintf("%s finished", result.Direction),
		count(".wem files scanned", result.Scanned),
		count("Matched", result.Matched),
		count(verb, len(result.Renamed)),
		count("Unmatched", len(result.Unmatched)),
		count("Conflicts", len(result.Conflicts)),
		count("Failures", len(result.Failures)),
		count("Unreadable paths", len(result.Unreadable)),
		field("Dry run", yesNo(result.DryRun)),
	)

	if len(result.Conflicts) > 0 {
		rows := make([][]string, 0, len(result.Conflicts))
		for _, c := range result.Conflicts {
			rows = append(rows, []string{c.Source, c.Target, c.Winner})
		}
		printTable(cmd, "Conflicts (first file kept)", []string{"Source", "Target", "Kept from"}, rows, nil)
	}
	if len(result.Failures) > 0 {
		rows := make([][]string, 0, len(result.Failures))
		for _, f := range result.Failures {
			rows = append(rows, []string{f.Source, f.Target, f.Reason})
		}
		printTable(cmd, "Failures", []string{"Source", "Target", "Reason"}, rows, nil)
	}
	if len(result.Unreadable) > 0 {
		rows := make([][]string, 0, len(result.Unreadable))
		for _, u := range result.Unreadable {
			rows = append(rows, []string{u.Path, u.Reason})
		}
		printTable(cmd, "Unreadable paths (skipped)", []string{"Path", "Reason"}, rows, nil)
	}
	if len(result.Collisions) > 0 {
		rows := make([][]string, 0, len(result.Collisions))
		for _, c := range result.Collisions {
			rows = append(rows, []string{c.Name, c.Kept, fmt.Sprint(len(c.Dropped))})
		}
		printTable(cmd, "Names shared by several IDs", []string{"Event name", "Restored as", "Unrecoverable IDs"}, rows,
			[]columnAlignment{alignLeft, alignRight, alignRight})
	}
	if len(result.Unmatched) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d file(s) had no mapping entry; rerun with --json for the full list\n", len(result.Unmatched))
	}
}
