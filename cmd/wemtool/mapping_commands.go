package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wemtool/internal/config"
	"wemtool/internal/mapping"
)

func newMappingCommand(ctx *commandContext) *cobra.Command {
	mappingCmd := &cobra.Command{
		Use:   "mapping",
		Short: "Build or inspect the media ID mapping",
	}
	mappingCmd.AddCommand(newMappingBuildCommand(ctx))
	mappingCmd.AddCommand(newMappingShowCommand(ctx))
	return mappingCmd
}

type mappingBuildOutput struct {
	Output       string `json:"output"`
	FilesScanned int    `json:"files_scanned"`
	FilesSkipped int    `json:"files_skipped"`
	FilesEmpty   int    `json:"files_empty"`
	Pairs        int    `json:"pairs"`
	Entries      int    `json:"entries"`
	Overwritten  int    `json:"overwritten"`
}

func newMappingBuildCommand(ctx *commandContext) *cobra.Command {
	var jsonDir string
	var outPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan event exports and write the ID -> name mapping file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFlag(cmd, "json-dir", jsonDir); err != nil {
				return err
			}
			runCtx, cfg, logger, release, err := ctx.begin(cmd, "mapping")
			if err != nil {
				return err
			}
			defer release()
			target, err := outputPath(outPath, cfg.Paths.MappingFile)
			if err != nil {
				return err
			}

			result, err := mapping.NewBuilder(logger).Build(runCtx, jsonDir)
			if err != nil {
				return err
			}
			if err := mapping.Save(runCtx, target, result.Mapping); err != nil {
				return err
			}

			summary := mappingBuildOutput{
				Output:       target,
				FilesScanned: result.FilesScanned,
				FilesSkipped: result.FilesSkipped,
				FilesEmpty:   result.FilesEmpty,
				Pairs:        result.Pairs,
				Entries:      len(result.Mapping),
				Overwritten:  result.Overwritten,
			}
			if asJSON {
				return writeJSON(cmd, summary)
			}
			printSummary(cmd, "Mapping built",
				count("JSON files scanned", summary.FilesScanned),
				count("Files skipped (unreadable)", summary.FilesSkipped),
				count("Files without media", summary.FilesEmpty),
				count("Pairs found", summary.Pairs),
				count("Mapping entries", summary.Entries),
				count("IDs remapped", summary.Overwritten),
				field("Output", summary.Output),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&jsonDir, "json-dir", "", "Directory of event JSON exports (searched recursively)")
	cmd.Flags().StringVar(&outPath, "out", "", "Mapping file to write (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")
	return cmd
}

func newMappingShowCommand(ctx *commandContext) *cobra.Command {
	var mappingPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "List the entries of the mapping file",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, _, release, err := ctx.begin(cmd, "mapping")
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
			if asJSON {
				return writeJSON(cmd, m)
			}
			if len(m) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Mapping %s is empty\n", path)
				return nil
			}
			rows := make([][]string, 0, len(m))
			for _, id := range m.IDs() {
				rows = append(rows, []string{id, m[id]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Event name"}, rows, []columnAlignment{alignRight, alignLeft}))
			_, collisions := m.Invert()
			if len(collisions) > 0 {
				collisionRows := make([][]string, 0, len(collisions))
				for _, c := range collisions {
					collisionRows = append(collisionRows, []string{c.Name, c.Kept, strings.Join(c.Dropped, ", ")})
				}
				printTable(cmd, "Names shared by several IDs (obfuscate restores only the kept ID)",
					[]string{"Event name", "Kept", "Dropped"}, collisionRows, nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mappingPath, "mapping", "", "Mapping file to read (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the mapping as JSON")
	return cmd
}

// outputPath returns the expanded flag value, or fallback when the flag is
// blank. Config paths are already expanded.
func outputPath(flagValue, fallback string) (string, error) {
	if strings.TrimSpace(flagValue) == "" {
		return fallback, nil
	}
	return config.ExpandPath(strings.TrimSpace(flagValue))
}
