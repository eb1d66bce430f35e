package dialogue

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"wemtool/internal/fileutil"
	"wemtool/internal/language"
	"wemtool/internal/logging"
	"wemtool/internal/services"
	"wemtool/internal/wwise"
)

// NotAvailable fills fields missing from an export.
const NotAvailable = "N/A"

// Row is one localized dialogue line.
type Row struct {
	Language        string `json:"language"`
	DialogueKey     string `json:"dialogue_key"`
	Section         string `json:"section"`
	SubSection      string `json:"sub_section"`
	SubSectionType  string `json:"sub_section_type"`
	DialogueContext string `json:"dialogue_context"`
	IsPlaceholder   string `json:"is_placeholder"`
	CharacterName   string `json:"character_name"`
	DisplayText     string `json:"display_text"`
}

// ExtractResult holds the collected rows and file counters.
type ExtractResult struct {
	Files   int   `json:"files"`
	Skipped int   `json:"skipped"`
	Rows    []Row `json:"rows"`
}

// Extractor collects localized dialogue from a directory of exports.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor constructs an Extractor. A nil logger discards output.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logging.NewComponentLogger(logger, "dialogue")}
}

// Extract reads every .json file directly inside dir and returns the lines of
// the first PSExternalMediaAsset in each whose language is requested.
// Language names and codes are compared in canonical form.
func (e *Extractor) Extract(ctx context.Context, dir string, languages []string) (ExtractResult, error) {
	logger := logging.WithContext(ctx, e.logger)
	var result ExtractResult
	if err := fileutil.RequireDir(dir); err != nil {
		return result, services.Wrap(services.ErrValidation, "dialogue", "inspect input", "invalid dialogue directory", err)
	}
	wanted := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		if name := language.Canonical(lang); name != "" {
			wanted[name] = struct{}{}
		}
	}
	if len(wanted) == 0 {
		return result, services.Wrap(services.ErrValidation, "dialogue", "parse languages", "at least one language is required", nil)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return result, services.Wrap(services.ErrTransient, "dialogue", "list directory", "read dialogue directory", err)
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		result.Files++
		exports, err := wwise.ReadExports(path)
		if err != nil {
			result.Skipped++
			logging.WarnWithContext(logger, "skipping unreadable dialogue export",
				"dialogue_file_skipped",
				logging.String("file", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "lines from this file are missing from the workbook"))
			continue
		}
		asset, ok := wwise.FirstExternalMediaAsset(exports)
		if !ok || asset.Properties == nil {
			logger.Debug("no dialogue asset in export", logging.String("file", path))
			continue
		}
		for _, localised := range asset.Properties.LocalisedDialogueData {
			if localised.Key == "" || localised.Value == nil {
				continue
			}
			if _, ok := wanted[language.Canonical(localised.Key)]; !ok {
				continue
			}
			result.Rows = append(result.Rows, newRow(localised.Key, localised.Value))
		}
	}
	logger.Info("dialogue extracted",
		logging.Int("files", result.Files),
		logging.Int("skipped", result.Skipped),
		logging.Int("rows", len(result.Rows)))
	return result, nil
}

func newRow(lang string, v *wwise.DialogueLines) Row {
	placeholder := NotAvailable
	if v.IsPlaceholder != nil {
		placeholder = strconv.FormatBool(*v.IsPlaceholder)
	}
	var lines []string
	for _, line := range v.SubtitleLines {
		if line.DisplayText != nil && *line.DisplayText != "" {
			lines = append(lines, *line.DisplayText)
		}
	}
	return Row{
		Language:        lang,
		DialogueKey:     orNA(v.DialogueKey),
		Section:         orNA(v.Section),
		SubSection:      orNA(v.SubSection),
		SubSectionType:  orNA(v.SubSectionType),
		DialogueContext: orNA(v.DialogueContext),
		IsPlaceholder:   placeholder,
		CharacterName:   orNA(v.CharacterName),
		DisplayText:     strings.Join(lines, "\n"),
	}
}

func orNA(value *string) string {
	if value == nil {
		return NotAvailable
	}
	return *value
}

// GroupBySubSection returns the sub-section names in sorted order together
// with their rows, each group keeping extraction order.
func GroupBySubSection(rows []Row) ([]string, map[string][]Row) {
	groups := make(map[string][]Row)
	for _, row := range rows {
		groups[row.SubSection] = append(groups[row.SubSection], row)
	}
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, groups
}
