package report

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"wemtool/internal/fileutil"
	"wemtool/internal/textutil"
)

const defaultSheetName = "Sheet"

const (
	minAutoWidth = 10
	maxAutoWidth = 100
)

// Column describes one worksheet column. A zero Width sizes the column to
// its longest line when the workbook is saved.
type Column struct {
	Header string
	Width  float64
	Wrap   bool
}

// Workbook is an in-memory .xlsx document.
type Workbook struct {
	file        *excelize.File
	namer       *textutil.SheetNamer
	headerStyle int
	wrapStyle   int
	sheets      []*Sheet
}

// Sheet appends rows to one worksheet.
type Sheet struct {
	wb      *Workbook
	name    string
	columns []Column
	longest []int
	row     int
}

// NewWorkbook creates an empty workbook.
func NewWorkbook() (*Workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	wrap, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create wrap style: %w", err)
	}
	return &Workbook{
		file:        f,
		namer:       textutil.NewSheetNamer(defaultSheetName),
		headerStyle: header,
		wrapStyle:   wrap,
	}, nil
}

// AddSheet appends a worksheet named after title and writes its header row.
// The name is sanitized and made unique within the workbook.
func (w *Workbook) AddSheet(title string, columns []Column) (*Sheet, error) {
	name := w.namer.Name(title)
	if len(w.sheets) == 0 {
		if err := w.file.SetSheetName(w.file.GetSheetName(0), name); err != nil {
			return nil, fmt.Errorf("rename first sheet: %w", err)
		}
	} else if _, err := w.file.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	sheet := &Sheet{wb: w, name: name, columns: columns, longest: make([]int, len(columns)), row: 1}
	w.sheets = append(w.sheets, sheet)

	headers := make([]any, len(columns))
	for i, col := range columns {
		headers[i] = col.Header
		sheet.longest[i] = longestLine(col.Header)
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if col.Width > 0 {
			if err := w.file.SetColWidth(name, colName, colName, col.Width); err != nil {
				return nil, fmt.Errorf("set width of %s!%s: %w", name, colName, err)
			}
		}
	}
	if err := w.file.SetSheetRow(name, "A1", &headers); err != nil {
		return nil, fmt.Errorf("write header of %q: %w", name, err)
	}
	if len(columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(columns), 1)
		if err != nil {
			return nil, err
		}
		if err := w.file.SetCellStyle(name, "A1", last, w.headerStyle); err != nil {
			return nil, fmt.Errorf("style header of %q: %w", name, err)
		}
	}
	err := w.file.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
	if err != nil {
		return nil, fmt.Errorf("freeze header of %q: %w", name, err)
	}
	sheet.row = 2
	return sheet, nil
}

// Save writes the workbook to path atomically, holding the output lock.
func (w *Workbook) Save(ctx context.Context, path string) error {
	if len(w.sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}
	for _, sheet := range w.sheets {
		if err := sheet.autoFit(); err != nil {
			return err
		}
	}
	w.file.SetActiveSheet(0)
	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encode workbook: %w", err)
	}
	return fileutil.WithLock(ctx, path, func() error {
		return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
	})
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Name returns the sanitized worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Rows returns the number of data rows written so far.
func (s *Sheet) Rows() int {
	return s.row - 2
}

// Append writes values as the next row.
func (s *Sheet) Append(values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return err
	}
	if err := s.wb.file.SetSheetRow(s.name, cell, &values); err != nil {
		return fmt.Errorf("write row %d of %q: %w", s.row, s.name, err)
	}
	for i, col := range s.columns {
		if i >= len(values) {
			break
		}
		if n := longestLine(fmt.Sprint(values[i])); n > s.longest[i] {
			s.longest[i] = n
		}
		if !col.Wrap {
			continue
		}
		ref, err := excelize.CoordinatesToCellName(i+1, s.row)
		if err != nil {
			return err
		}
		if err := s.wb.file.SetCellStyle(s.name, ref, ref, s.wb.wrapStyle); err != nil {
			return fmt.Errorf("style %s!%s: %w", s.name, ref, err)
		}
	}
	s.row++
	return nil
}

func (s *Sheet) autoFit() error {
	for i, col := range s.columns {
		if col.Width > 0 {
			continue
		}
		width := float64(s.longest[i]+1) * 0.9
		width = min(max(width, minAutoWidth), maxAutoWidth)
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := s.wb.file.SetColWidth(s.name, colName, colName, width); err != nil {
			return fmt.Errorf("set width of %s!%s: %w", s.name, colName, err)
		}
	}
	return nil
}

func longestLine(value string) int {
	longest := 0
	for _, line := range strings.Split(value, "\n") {
		if n := utf8.RuneCountInString(line); n > longest {
			longest = n
		}
	}
	return longest
}
