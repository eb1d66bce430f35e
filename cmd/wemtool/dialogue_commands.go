package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wemtool/internal/config"
	"wemtool/internal/dialogue"
	"wemtool/internal/language"
	"wemtool/internal/services"
)

func newDialogueCommand(ctx *commandContext) *cobra.Command {
	dialogueCmd := &cobra.Command{
		Use:   "dialogue",
		Short: "Organize and extract localized dialogue exports",
	}
	dialogueCmd.AddCommand(newDialogueOrganizeCommand(ctx))
	dialogueCmd.AddCommand(newDialogueExtractCommand(ctx))
	return dialogueCmd
}

func newDialogueOrganizeCommand(ctx *commandContext) *cobra.Command {
	var src string
	var dst string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Copy dialogue exports into folders named after their ObjectPath",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "src", src); err != nil {
				return err
			}
			if err := requireFlag(cmd, "dst", dst); err != nil {
				return err
			}
			runCtx, _, logger, release, err := ctx.begin(cmd, "dialogue")
			if err != nil {
				return err
			}
			defer release()
			result, err := dialogue.NewOrganizer(logger).Organize(runCtx, src, dst)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, result)
			}
			printSummary(cmd, "Dialogue organized",
				count("JSON files scanned", result.Scanned),
				count("Files skipped (unreadable)", result.Skipped),
				count("Files copied", len(result.Copies)),
				count("Unreadable paths", len(result.Unreadable)),
				field("Destination", dst),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "Directory of dialogue JSON exports (searched recursively)")
	cmd.Flags().StringVar(&dst, "dst", "", "Directory that receives the organized tree")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}

func newDialogueExtractCommand(ctx *commandContext) *cobra.Command {
	var dir string
	var languages string
	var outPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write the subtitle lines of chosen languages to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "dir", dir); err != nil {
				return err
			}
			langs := language.ParseList(languages)
			if len(langs) == 0 {
				return services.Wrap(services.ErrValidation, "cli", cmd.CommandPath(), "--languages must name at least one language", nil)
			}
			runCtx, _, logger, release, err := ctx.begin(cmd, "dialogue")
			if err != nil {
				return err
			}
			defer release()
			target := strings.TrimSpace(outPath)
			if target == "" {
				target = dialogue.DefaultOutputName(langs)
			}
			if target, err = config.ExpandPath(target); err != nil {
				return err
			}

			result, err := dialogue.NewExtractor(logger).Extract(runCtx, dir, langs)
			if err != nil {
				return err
			}
			if len(result.Rows) == 0 {
				if asJSON {
					return writeJSON(cmd, result)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "No dialogue lines found for %s; no workbook written\n", strings.Join(langs, ", "))
				return nil
			}
			sheets, err := dialogue.WriteWorkbook(runCtx, target, result.Rows)
			if err != nil {
				return services.Wrap(services.ErrTransient, "dialogue", "write workbook", target, err)
			}
			if asJSON {
				return writeJSON(cmd, struct {
					Output string                  `json:"output"`
					Files  int                     `json:"files"`
					Rows   int                     `json:"rows"`
					Sheets []dialogue.SheetSummary `json:"sheets"`
				}{Output: target, Files: result.Files, Rows: len(result.Rows), Sheets: sheets})
			}

			rows := make([][]string, 0, len(sheets))
			for _, sheet := range sheets {
				rows = append(rows, []string{sheet.Sheet, sheet.SubSection, fmt.Sprint(sheet.Rows)})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d line(s) from %d file(s) to %s\n", len(result.Rows), result.Files, target)
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Sheet", "SubSection", "Rows"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of dialogue JSON exports (not searched recursively)")
	cmd.Flags().StringVar(&languages, "languages", "", "Comma-separated languages, e.g. English,German")
	cmd.Flags().StringVar(&outPath, "out", "", "Workbook to write (default <Languages>_extracted_dialogue.xlsx)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	return cmd
}
