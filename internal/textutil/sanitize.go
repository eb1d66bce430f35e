package textutil

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// MaxSheetNameLength is the longest worksheet name spreadsheet applications accept.
const MaxSheetNameLength = 31

var sheetNameReplacer = strings.NewReplacer(
	"\\", "_",
	"/", "_",
	":", "_",
	"?", "_",
	"*", "_",
	"[", "_",
	"]", "_",
)

// SanitizeSheetName converts name into a valid worksheet name. Forbidden
// characters become underscores, underscore runs collapse, apostrophes, spaces
// and dots are trimmed from both ends, and the result is truncated to
// MaxSheetNameLength characters. Empty results become fallback.
func SanitizeSheetName(name, fallback string) string {
	cleaned := sheetNameReplacer.Replace(strings.TrimSpace(name))
	for strings.Contains(cleaned, "__") {
		cleaned = strings.ReplaceAll(cleaned, "__", "_")
	}
	cleaned = strings.Trim(cleaned, "' .")
	cleaned = truncateRunes(cleaned, MaxSheetNameLength)
	cleaned = strings.TrimRight(cleaned, "'")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}

// SheetNamer hands out sanitized worksheet names that are unique within one
// workbook. Names compare case-insensitively, as spreadsheet applications do.
type SheetNamer struct {
	fallback string
	used     map[string]struct{}
}

// NewSheetNamer returns a namer that substitutes fallback for names that
// sanitize to nothing.
func NewSheetNamer(fallback string) *SheetNamer {
	return &SheetNamer{fallback: fallback, used: make(map[string]struct{})}
}

// Name returns a unique sanitized sheet name for name. Collisions receive a
// " (2)", " (3)", ... suffix, trimming the base so the result still fits.
func (n *SheetNamer) Name(name string) string {
	base := SanitizeSheetName(name, n.fallback)
	candidate := base
	for i := 2; ; i++ {
		key := strings.ToLower(candidate)
		if _, taken := n.used[key]; !taken {
			n.used[key] = struct{}{}
			return candidate
		}
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncateRunes(base, MaxSheetNameLength-utf8.RuneCountInString(suffix)) + suffix
	}
}

func truncateRunes(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= limit {
		return value
	}
	runes := []rune(value)
	return string(runes[:limit])
}
