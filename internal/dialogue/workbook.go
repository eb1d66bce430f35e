package dialogue

import (
	"context"
	"strings"
	"unicode"

	"wemtool/internal/report"
)

const (
	defaultOutputSuffix = "extracted_dialogue.xlsx"
	emptySubSection     = "No_SubSection"
)

var rowColumns = []report.Column{
	{Header: "Language"},
	{Header: "DialogueKey"},
	{Header: "Section"},
	{Header: "SubSection"},
	{Header: "SubSectionType"},
	{Header: "DialogueContext"},
	{Header: "IsPlaceholder"},
	{Header: "CharacterName"},
	{Header: "DisplayText", Wrap: true},
}

// SheetSummary describes one written sub-section sheet.
type SheetSummary struct {
	Sheet      string `json:"sheet"`
	SubSection string `json:"sub_section"`
	Rows       int    `json:"rows"`
}

// WriteWorkbook writes rows to path, one sheet per sub-section in sorted
// order. Rows must not be empty.
func WriteWorkbook(ctx context.Context, path string, rows []Row) ([]SheetSummary, error) {
	wb, err := report.NewWorkbook()
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	names, groups := GroupBySubSection(rows)
	summaries := make([]SheetSummary, 0, len(names))
	for _, name := range names {
		title := name
		if strings.TrimSpace(title) == "" {
			title = emptySubSection
		}
		sheet, err := wb.AddSheet(title, rowColumns)
		if err != nil {
			return nil, err
		}
		for _, row := range groups[name] {
			err := sheet.Append(row.Language, row.DialogueKey, row.Section, row.SubSection,
				row.SubSectionType, row.DialogueContext, row.IsPlaceholder, row.CharacterName, row.DisplayText)
			if err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, SheetSummary{Sheet: sheet.Name(), SubSection: name, Rows: sheet.Rows()})
	}
	if err := wb.Save(ctx, path); err != nil {
		return nil, err
	}
	return summaries, nil
}

// DefaultOutputName returns "<Lang1>_<Lang2>_extracted_dialogue.xlsx" using
// only letters, digits, and single underscores in the language prefix.
func DefaultOutputName(languages []string) string {
	var b strings.Builder
	for _, r := range strings.Join(languages, "_") {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	parts := strings.FieldsFunc(b.String(), func(r rune) bool { return r == '_' })
	if len(parts) == 0 {
		return defaultOutputSuffix
	}
	return strings.Join(parts, "_") + "_" + defaultOutputSuffix
}
