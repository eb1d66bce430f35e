package testsupport

import (
	"fmt"
	"testing"
)

// EventMedia describes one Media entry of a synthetic event export.
type EventMedia struct {
	ID        string
	DebugName string
}

// WriteEventExport writes an event export file in the extraction tool's
// layout with one event whose language map lists the given media.
func WriteEventExport(t testing.TB, path, eventName string, media ...EventMedia) {
	t.Helper()
	entries := make([]map[string]string, 0, len(media))
	for _, m := range media {
		entries = append(entries, map[string]string{
			"MediaPathName": fmt.Sprintf("Media/%s.wem", m.ID),
			"DebugName":     m.DebugName,
		})
	}
	export := []map[string]any{{
		"Type": "AkAudioEvent",
		"Name": eventName,
		"EventCookedData": map[string]any{
			"EventLanguageMap": []map[string]any{{
				"Key":   map[string]any{"LanguageName": "SFX"},
				"Value": map[string]any{"Media": entries},
			}},
		},
	}}
	WriteJSON(t, path, export)
}

// DialogueLine describes one language entry of a synthetic dialogue export.
type DialogueLine struct {
	Language   string
	Key        string
	Section    string
	SubSection string
	Character  string
	Lines      []string
}

// WriteDialogueExport writes a PSExternalMediaAsset export with the given
// ObjectPath and localized lines.
func WriteDialogueExport(t testing.TB, path, objectPath string, lines ...DialogueLine) {
	t.Helper()
	localised := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		subtitles := make([]map[string]any, 0, len(line.Lines))
		for _, text := range line.Lines {
			subtitles = append(subtitles, map[string]any{"DisplayText": text})
		}
		localised = append(localised, map[string]any{
			"Key": line.Language,
			"Value": map[string]any{
				"Section":         line.Section,
				"SubSection":      line.SubSection,
				"SubSectionType":  "Scene",
				"DialogueContext": "",
				"DialogueKey":     line.Key,
				"bIsPlaceholder":  false,
				"CharacterName":   line.Character,
				"SubtitleLines":   subtitles,
			},
		})
	}
	export := []map[string]any{{
		"Type": "PSExternalMediaAsset",
		"Name": line0Key(lines),
		"Properties": map[string]any{
			"ObjectPath":            objectPath,
			"LocalisedDialogueData": localised,
		},
	}}
	WriteJSON(t, path, export)
}

func line0Key(lines []DialogueLine) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0].Key
}
