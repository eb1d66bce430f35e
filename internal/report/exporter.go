package report

import (
	"context"
	"log/slog"
	"strings"

	"wemtool/internal/analysis"
	"wemtool/internal/logging"
	"wemtool/internal/services"
)

// DuplicatesSheet is the title of the duplicate summary worksheet.
const DuplicatesSheet = "Duplicates"

var categoryColumns = []Column{
	{Header: "Filename", Width: 45},
	{Header: "Relative Path", Width: 70},
	{Header: "All Categories", Width: 30},
	{Header: "Duplicate", Width: 12},
}

var duplicateColumns = []Column{
	{Header: "Filename", Width: 45},
	{Header: "Relative Path", Width: 70},
	{Header: "Occurrences", Width: 14},
}

// SheetSummary describes one written worksheet.
type SheetSummary struct {
	Sheet    string `json:"sheet"`
	Category string `json:"category"`
	Rows     int    `json:"rows"`
}

// Summary describes an export run. Written is false when the report was empty
// and no workbook was produced.
type Summary struct {
	Path    string         `json:"path"`
	Written bool           `json:"written"`
	Sheets  []SheetSummary `json:"sheets"`
}

// Exporter converts analysis reports into workbooks.
type Exporter struct {
	logger *slog.Logger
}

// NewExporter constructs an Exporter. A nil logger discards output.
func NewExporter(logger *slog.Logger) *Exporter {
	return &Exporter{logger: logging.NewComponentLogger(logger, "report")}
}

// Export writes one worksheet per category of rep to path, one row per
// relative path, followed by a duplicates sheet when any exist.
func (e *Exporter) Export(ctx context.Context, rep *analysis.Report, path string) (Summary, error) {
	logger := logging.WithContext(ctx, e.logger)
	summary := Summary{Path: path}
	if rep == nil || rep.Empty() {
		logger.Info("analysis report is empty; no workbook written", logging.String("path", path))
		return summary, nil
	}

	wb, err := NewWorkbook()
	if err != nil {
		return summary, services.Wrap(services.ErrTransient, "report", "create workbook", "", err)
	}
	defer wb.Close()

	for _, category := range rep.Categories {
		if len(category.Files) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		sheet, err := wb.AddSheet(category.Name, categoryColumns)
		if err != nil {
			return summary, services.Wrap(services.ErrTransient, "report", "add sheet", category.Name, err)
		}
		for _, file := range category.Files {
			for _, rel := range file.Paths {
				if err := sheet.Append(file.Name, rel, strings.Join(file.Categories, ", "), yesNo(file.Duplicate)); err != nil {
					return summary, services.Wrap(services.ErrTransient, "report", "write row", category.Name, err)
				}
			}
		}
		summary.Sheets = append(summary.Sheets, SheetSummary{Sheet: sheet.Name(), Category: category.Name, Rows: sheet.Rows()})
	}

	if len(rep.Duplicates) > 0 {
		sheet, err := wb.AddSheet(DuplicatesSheet, duplicateColumns)
		if err != nil {
			return summary, services.Wrap(services.ErrTransient, "report", "add sheet", DuplicatesSheet, err)
		}
		for _, dup := range rep.Duplicates {
			for _, rel := range dup.Paths {
				if err := sheet.Append(dup.Filename, rel, len(dup.Paths)); err != nil {
					return summary, services.Wrap(services.ErrTransient, "report", "write row", DuplicatesSheet, err)
				}
			}
		}
		summary.Sheets = append(summary.Sheets, SheetSummary{Sheet: sheet.Name(), Rows: sheet.Rows()})
	}

	if err := wb.Save(ctx, path); err != nil {
		return summary, services.Wrap(services.ErrTransient, "report", "save", "write workbook", err)
	}
	summary.Written = true
	logger.Info("workbook written",
		logging.String("path", path),
		logging.Int("sheets", len(summary.Sheets)))
	return summary, nil
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
