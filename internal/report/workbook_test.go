package report_test

import (
	"context"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"wemtool/internal/report"
)

func openWorkbook(t *testing.T, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func readRows(t *testing.T, f *excelize.File, sheet string) [][]string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows of %s: %v", sheet, err)
	}
	return rows
}

func TestWorkbookSheetNamesAreSafeAndUnique(t *testing.T) {
	wb, err := report.NewWorkbook()
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	defer wb.Close()

	titles := []string{
		"Act",
		"act",
		"a/b:c?d*e[f]g",
		strings.Repeat("Long", 12),
		strings.Repeat("Long", 12),
		"''",
	}
	cols := []report.Column{{Header: "Name", Width: 20}, {Header: "Text", Wrap: true}}
	var names []string
	for _, title := range titles {
		sheet, err := wb.AddSheet(title, cols)
		if err != nil {
			t.Fatalf("AddSheet(%q): %v", title, err)
		}
		if err := sheet.Append("x", "line one\nline two"); err != nil {
			t.Fatalf("Append: %v", err)
		}
		if sheet.Rows() != 1 {
			t.Fatalf("expected 1 row, got %d", sheet.Rows())
		}
		names = append(names, sheet.Name())
	}

	seen := make(map[string]bool)
	for _, name := range names {
		if len([]rune(name)) > 31 {
			t.Fatalf("sheet name %q too long", name)
		}
		if strings.ContainsAny(name, `\/:?*[]`) {
			t.Fatalf("sheet name %q has forbidden characters", name)
		}
		key := strings.ToLower(name)
		if seen[key] {
			t.Fatalf("sheet name %q repeated", name)
		}
		seen[key] = true
	}
	if names[0] != "Act" || names[1] != "act (2)" || names[2] != "a_b_c_d_e_f_g" || names[5] != "Sheet" {
		t.Fatalf("unexpected sheet names %v", names)
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := wb.Save(context.Background(), path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	f := openWorkbook(t, path)
	if got := f.GetSheetList(); !reflect.DeepEqual(got, names) {
		t.Fatalf("saved sheets = %v, want %v", got, names)
	}
	rows := readRows(t, f, names[0])
	want := [][]string{{"Name", "Text"}, {"x", "line one\nline two"}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %q, want %q", rows, want)
	}
}

func TestWorkbookSaveRequiresSheet(t *testing.T) {
	wb, err := report.NewWorkbook()
	if err != nil {
		t.Fatalf("NewWorkbook: %v", err)
	}
	defer wb.Close()
	if err := wb.Save(context.Background(), filepath.Join(t.TempDir(), "empty.xlsx")); err == nil {
		t.Fatal("expected error saving workbook without sheets")
	}
}
