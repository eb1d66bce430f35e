package wwise

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
)

// TypeExternalMediaAsset is the export type carrying dialogue metadata.
const TypeExternalMediaAsset = "PSExternalMediaAsset"

// Export is one element of an export file.
type Export struct {
	Type            string           `json:"Type"`
	Name            string           `json:"Name"`
	EventCookedData *EventCookedData `json:"EventCookedData,omitempty"`
	Properties      *Properties      `json:"Properties,omitempty"`
}

// EventCookedData holds the per-language media tables of an event.
type EventCookedData struct {
	EventLanguageMap []LanguageMedia `json:"EventLanguageMap"`
}

// LanguageMedia is a single EventLanguageMap entry.
type LanguageMedia struct {
	Key   json.RawMessage `json:"Key"`
	Value *MediaSet       `json:"Value"`
}

// MediaSet lists the media referenced for one language.
type MediaSet struct {
	Media []Media `json:"Media"`
}

// Media links a numeric-ID media file to the recording it was built from.
type Media struct {
	MediaPathName string `json:"MediaPathName"`
	DebugName     string `json:"DebugName"`
}

// Properties carries PSExternalMediaAsset fields.
type Properties struct {
	ObjectPath            string             `json:"ObjectPath"`
	LocalisedDialogueData []LocalisedDialogue `json:"LocalisedDialogueData"`
}

// LocalisedDialogue is one language entry of LocalisedDialogueData.
type LocalisedDialogue struct {
	Key   string         `json:"Key"`
	Value *DialogueLines `json:"Value"`
}

// DialogueLines is the per-language dialogue payload. Fields are pointers so
// callers can distinguish absent values from empty strings.
type DialogueLines struct {
	Section         *string        `json:"Section"`
	SubSection      *string        `json:"SubSection"`
	SubSectionType  *string        `json:"SubSectionType"`
	DialogueContext *string        `json:"DialogueContext"`
	DialogueKey     *string        `json:"DialogueKey"`
	IsPlaceholder   *bool          `json:"bIsPlaceholder"`
	CharacterName   *string        `json:"CharacterName"`
	SubtitleLines   []SubtitleLine `json:"SubtitleLines"`
}

// SubtitleLine is one subtitle row of a dialogue line.
type SubtitleLine struct {
	DisplayText *string `json:"DisplayText"`
}

// MediaPair is a numeric media ID with the event name derived from DebugName.
type MediaPair struct {
	ID   string
	Name string
}

// DecodeExports parses an export file body.
func DecodeExports(data []byte) ([]Export, error) {
	var exports []Export
	if err := json.Unmarshal(data, &exports); err != nil {
		return nil, err
	}
	return exports, nil
}

// ReadExports reads and parses the export file at path.
func ReadExports(filePath string) ([]Export, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	exports, err := DecodeExports(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filePath, err)
	}
	return exports, nil
}

// MediaPairs returns every usable (ID, name) pair of the event exports in
// document order. Media entries missing either field are skipped.
func MediaPairs(exports []Export) []MediaPair {
	var pairs []MediaPair
	for _, export := range exports {
		if export.EventCookedData == nil {
			continue
		}
		for _, lang := range export.EventCookedData.EventLanguageMap {
			if lang.Value == nil {
				continue
			}
			for _, media := range lang.Value.Media {
				id := MediaID(media.MediaPathName)
				name := EventName(media.DebugName)
				if id == "" || name == "" {
					continue
				}
				pairs = append(pairs, MediaPair{ID: id, Name: name})
			}
		}
	}
	return pairs
}

// FirstExternalMediaAsset returns the first PSExternalMediaAsset export, if any.
func FirstExternalMediaAsset(exports []Export) (Export, bool) {
	for _, export := range exports {
		if export.Type == TypeExternalMediaAsset {
			return export, true
		}
	}
	return Export{}, false
}

// MediaID extracts the numeric ID from a MediaPathName such as
// "Media/12/123456.wem".
func MediaID(mediaPathName string) string {
	return stem(mediaPathName)
}

// EventName extracts the descriptive name from a DebugName such as
// `SFX\Doors\door_open.wav`.
func EventName(debugName string) string {
	return stem(debugName)
}

// ObjectDir returns the directory component of an ObjectPath using forward
// slashes, or "" when the path has no directory.
func ObjectDir(objectPath string) string {
	cleaned := strings.ReplaceAll(strings.TrimSpace(objectPath), "\\", "/")
	dir := path.Dir(cleaned)
	if dir == "." || dir == "/" {
		return ""
	}
	return strings.TrimPrefix(dir, "/")
}

func stem(value string) string {
	value = strings.TrimSpace(strings.ReplaceAll(value, "\\", "/"))
	if value == "" {
		return ""
	}
	base := path.Base(value)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
}
