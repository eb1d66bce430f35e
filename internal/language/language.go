package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlanguage "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1
	code3   string // ISO 639-2 primary
	alt3    string // ISO 639-2 bibliographic, when different
	display string
}

var languages = []entry{
	{"en", "eng", "", "English"},
	{"es", "spa", "", "Spanish"},
	{"fr", "fra", "fre", "French"},
	{"de", "deu", "ger", "German"},
	{"it", "ita", "", "Italian"},
	{"pt", "por", "", "Portuguese"},
	{"ja", "jpn", "", "Japanese"},
	{"ko", "kor", "", "Korean"},
	{"zh", "zho", "chi", "Chinese"},
	{"ru", "rus", "", "Russian"},
	{"ar", "ara", "", "Arabic"},
	{"nl", "nld", "dut", "Dutch"},
	{"pl", "pol", "", "Polish"},
	{"sv", "swe", "", "Swedish"},
	{"da", "dan", "", "Danish"},
	{"no", "nor", "", "Norwegian"},
	{"fi", "fin", "", "Finnish"},
	{"cs", "ces", "cze", "Czech"},
	{"tr", "tur", "", "Turkish"},
	{"hu", "hun", "", "Hungarian"},
}

var index map[string]*entry

func init() {
	index = make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		index[e.code2] = e
		index[e.code3] = e
		if e.alt3 != "" {
			index[e.alt3] = e
		}
		index[strings.ToLower(e.display)] = e
	}
}

// Canonical returns the display name for a language name or ISO 639 code.
// Unrecognized names are title-cased, so "brazilian portuguese" becomes
// "Brazilian Portuguese". Empty input returns "".
func Canonical(name string) string {
	trimmed := strings.Join(strings.Fields(name), " ")
	if trimmed == "" {
		return ""
	}
	if e, ok := index[strings.ToLower(trimmed)]; ok {
		return e.display
	}
	return cases.Title(xlanguage.Und).String(strings.ToLower(trimmed))
}

// ParseList splits a comma-separated list into canonical names, dropping
// blanks and repeats while keeping the first-seen order.
func ParseList(value string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		name := Canonical(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}
