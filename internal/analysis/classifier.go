package analysis

import "strings"

const separators = "_- ."

// Classifier maps file names to category names by prefix.
type Classifier struct {
	rules []rule
	other string
}

type rule struct {
	prefix   string
	category string
}

// NewClassifier builds a classifier from an ordered prefix list. Category
// names are the prefixes with trailing separators trimmed; prefixes that trim
// to an existing category name extend that category.
func NewClassifier(prefixes []string, other string) *Classifier {
	c := &Classifier{other: strings.TrimSpace(other)}
	if c.other == "" {
		c.other = "Other"
	}
	for _, prefix := range prefixes {
		prefix = strings.TrimSpace(prefix)
		category := strings.TrimRight(prefix, separators)
		if category == "" {
			continue
		}
		c.rules = append(c.rules, rule{prefix: strings.ToLower(prefix), category: category})
	}
	return c
}

// Categories returns every category name in report order, ending with Other.
func (c *Classifier) Categories() []string {
	names := make([]string, 0, len(c.rules)+1)
	seen := make(map[string]struct{}, len(c.rules)+1)
	for _, r := range c.rules {
		if _, ok := seen[r.category]; ok {
			continue
		}
		seen[r.category] = struct{}{}
		names = append(names, r.category)
	}
	if _, ok := seen[c.other]; !ok {
		names = append(names, c.other)
	}
	return names
}

// Classify returns the categories whose prefix occurs in name at the start or
// right after a separator, in prefix order. Matching ignores case. Names that
// match nothing belong to Other.
func (c *Classifier) Classify(name string) []string {
	lower := strings.ToLower(name)
	var categories []string
	for _, r := range c.rules {
		if !hasBoundedPrefix(lower, r.prefix) || contains(categories, r.category) {
			continue
		}
		categories = append(categories, r.category)
	}
	if len(categories) == 0 {
		return []string{c.other}
	}
	return categories
}

func hasBoundedPrefix(name, prefix string) bool {
	for offset := 0; offset < len(name); {
		idx := strings.Index(name[offset:], prefix)
		if idx < 0 {
			return false
		}
		pos := offset + idx
		if pos == 0 || strings.IndexByte(separators, name[pos-1]) >= 0 {
			return true
		}
		offset = pos + 1
	}
	return false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
