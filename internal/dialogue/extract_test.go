package dialogue_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"wemtool/internal/dialogue"
	"wemtool/internal/services"
	"wemtool/internal/testsupport"
)

func writeDialogueDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testsupport.WriteDialogueExport(t, filepath.Join(dir, "Line_001.json"), "/Game/Dialogue/Line_001",
		testsupport.DialogueLine{Language: "English", Key: "Line_001", Section: "Act1", SubSection: "Scene_B", Character: "Sam", Lines: []string{"Hello", "", "there"}},
		testsupport.DialogueLine{Language: "German", Key: "Line_001", Section: "Act1", SubSection: "Scene_B", Character: "Sam", Lines: []string{"Hallo"}},
		testsupport.DialogueLine{Language: "French", Key: "Line_001", Section: "Act1", SubSection: "Scene_B", Character: "Sam", Lines: []string{"Bonjour"}},
	)
	testsupport.WriteDialogueExport(t, filepath.Join(dir, "Line_002.json"), "/Game/Dialogue/Line_002",
		testsupport.DialogueLine{Language: "English", Key: "Line_002", Section: "Act1", SubSection: "Scene_A", Character: "Mike", Lines: []string{"Run!"}},
	)
	testsupport.WriteText(t, filepath.Join(dir, "broken.json"), "{")
	testsupport.WriteDialogueExport(t, filepath.Join(dir, "nested", "Line_003.json"), "/Game/Dialogue/Line_003",
		testsupport.DialogueLine{Language: "English", Key: "Line_003", SubSection: "Scene_C"},
	)
	return dir
}

func TestExtractSelectsLanguages(t *testing.T) {
	dir := writeDialogueDir(t)
	result, err := dialogue.NewExtractor(nil).Extract(context.Background(), dir, []string{"english", "de"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if result.Files != 3 || result.Skipped != 1 {
		t.Fatalf("unexpected counters: %+v", result)
	}
	if len(result.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %+v", result.Rows)
	}
	first := result.Rows[0]
	want := dialogue.Row{
		Language:        "English",
		DialogueKey:     "Line_001",
		Section:         "Act1",
		SubSection:      "Scene_B",
		SubSectionType:  "Scene",
		DialogueContext: "",
		IsPlaceholder:   "false",
		CharacterName:   "Sam",
		DisplayText:     "Hello\nthere",
	}
	if first != want {
		t.Fatalf("first row = %+v, want %+v", first, want)
	}
	if result.Rows[1].Language != "German" || result.Rows[2].DialogueKey != "Line_002" {
		t.Fatalf("unexpected row order: %+v", result.Rows)
	}
}

func TestExtractFillsMissingFields(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteText(t, filepath.Join(dir, "sparse.json"), `[
  {"Type": "AkAudioEvent"},
  {"Type": "PSExternalMediaAsset", "Properties": {"LocalisedDialogueData": [
    {"Key": "English", "Value": {"DialogueKey": "Line_9", "SubtitleLines": [{"DisplayText": null}, {}]}},
    {"Key": "English"}
  ]}}
]`)
	result, err := dialogue.NewExtractor(nil).Extract(context.Background(), dir, []string{"English"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %+v", result.Rows)
	}
	row := result.Rows[0]
	if row.DialogueKey != "Line_9" || row.Section != dialogue.NotAvailable || row.IsPlaceholder != dialogue.NotAvailable || row.DisplayText != "" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestExtractValidates(t *testing.T) {
	e := dialogue.NewExtractor(nil)
	if _, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing"), []string{"English"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for missing dir, got %v", err)
	}
	if _, err := e.Extract(context.Background(), t.TempDir(), []string{" "}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty languages, got %v", err)
	}
}

func TestWriteWorkbookGroupsBySubSection(t *testing.T) {
	dir := writeDialogueDir(t)
	result, err := dialogue.NewExtractor(nil).Extract(context.Background(), dir, []string{"English", "German"})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	result.Rows = append(result.Rows, dialogue.Row{Language: "English", DialogueKey: "Line_X"})

	path := filepath.Join(t.TempDir(), dialogue.DefaultOutputName([]string{"English", "German"}))
	sheets, err := dialogue.WriteWorkbook(context.Background(), path, result.Rows)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	if len(sheets) != 3 || sheets[0].Sheet != "No_SubSection" || sheets[1].Sheet != "Scene_A" || sheets[2].Rows != 2 {
		t.Fatalf("unexpected sheets %+v", sheets)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); !reflect.DeepEqual(got, []string{"No_SubSection", "Scene_A", "Scene_B"}) {
		t.Fatalf("unexpected sheet list %v", got)
	}
	rows, err := f.GetRows("Scene_B")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[0][8] != "DisplayText" || rows[1][8] != "Hello\nthere" || rows[2][0] != "German" {
		t.Fatalf("unexpected Scene_B rows %q", rows)
	}
}

func TestDefaultOutputName(t *testing.T) {
	tests := []struct {
		languages []string
		want      string
	}{
		{[]string{"English", "German"}, "English_German_extracted_dialogue.xlsx"},
		{[]string{"Brazilian Portuguese"}, "Brazilian_Portuguese_extracted_dialogue.xlsx"},
		{[]string{"__", "!"}, "extracted_dialogue.xlsx"},
		{nil, "extracted_dialogue.xlsx"},
	}
	for _, tt := range tests {
		if got := dialogue.DefaultOutputName(tt.languages); got != tt.want {
			t.Errorf("DefaultOutputName(%v) = %q, want %q", tt.languages, got, tt.want)
		}
	}
}
