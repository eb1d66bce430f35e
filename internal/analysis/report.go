package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"wemtool/internal/fileutil"
	"wemtool/internal/services"
)

// File is one analyzed file name with every relative path it was found at.
type File struct {
	Name       string
	Paths      []string
	Categories []string
	Duplicate  bool
}

// Category is an ordered bucket of files.
type Category struct {
	Name  string
	Files []File
}

// Duplicate lists a file name found at several relative paths.
type Duplicate struct {
	Filename string   `json:"filename"`
	Paths    []string `json:"paths"`
}

// Report is the analyzer output. Categories keep analyzer order with the
// fallback bucket last.
type Report struct {
	Root       string
	TotalFiles int
	Categories []Category
	Duplicates []Duplicate
}

type fileRecord struct {
	Paths         []string `json:"paths"`
	AllCategories []string `json:"all_categories"`
	Duplicate     bool     `json:"duplicate"`
}

// Empty reports whether the report lists no files.
func (r *Report) Empty() bool {
	for _, c := range r.Categories {
		if len(c.Files) > 0 {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the report with categories and files as JSON objects in
// report order.
func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeField(&buf, "root", r.Root, false); err != nil {
		return nil, err
	}
	if err := writeField(&buf, "total_files", r.TotalFiles, true); err != nil {
		return nil, err
	}
	buf.WriteString(`,"categories":{`)
	for i, category := range r.Categories {
		if err := writeKey(&buf, category.Name, i > 0); err != nil {
			return nil, err
		}
		buf.WriteByte('{')
		for j, file := range category.Files {
			record := fileRecord{Paths: nonNil(file.Paths), AllCategories: nonNil(file.Categories), Duplicate: file.Duplicate}
			if err := writeField(&buf, file.Name, record, j > 0); err != nil {
				return nil, err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	duplicates := r.Duplicates
	if duplicates == nil {
		duplicates = []Duplicate{}
	}
	if err := writeField(&buf, "duplicates", duplicates, true); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a report written by MarshalJSON, preserving the
// order of categories and files. Unknown top-level keys are ignored.
func (r *Report) UnmarshalJSON(data []byte) error {
	*r = Report{}
	dec := json.NewDecoder(bytes.NewReader(data))
	return decodeObject(dec, func(key string) error {
		switch key {
		case "root":
			return dec.Decode(&r.Root)
		case "total_files":
			return dec.Decode(&r.TotalFiles)
		case "categories":
			return decodeObject(dec, func(name string) error {
				category := Category{Name: name}
				err := decodeObject(dec, func(filename string) error {
					var record fileRecord
					if err := dec.Decode(&record); err != nil {
						return fmt.Errorf("category %q file %q: %w", name, filename, err)
					}
					category.Files = append(category.Files, File{
						Name:       filename,
						Paths:      record.Paths,
						Categories: record.AllCategories,
						Duplicate:  record.Duplicate,
					})
					return nil
				})
				if err != nil {
					return err
				}
				r.Categories = append(r.Categories, category)
				return nil
			})
		case "duplicates":
			return dec.Decode(&r.Duplicates)
		default:
			var skip json.RawMessage
			return dec.Decode(&skip)
		}
	})
}

// Save writes the report as indented JSON, atomically and under a lock.
func Save(ctx context.Context, path string, report *Report) error {
	err := fileutil.WithLock(ctx, path, func() error {
		return fileutil.WriteJSONAtomic(path, report)
	})
	if err != nil {
		return services.Wrap(services.ErrTransient, "analysis", "save", "write analysis report", err)
	}
	return nil
}

// Load reads a report written by Save.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "analysis", "load", fmt.Sprintf("analysis report %s not found; run `wemtool analyze` first", path), err)
		}
		return nil, services.Wrap(services.ErrTransient, "analysis", "load", "read analysis report", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, services.Wrap(services.ErrValidation, "analysis", "load", fmt.Sprintf("analysis report %s is malformed", path), err)
	}
	return &report, nil
}

func decodeObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func writeKey(buf *bytes.Buffer, key string, comma bool) error {
	if comma {
		buf.WriteByte(',')
	}
	encoded, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	buf.WriteByte(':')
	return nil
}

func writeField(buf *bytes.Buffer, key string, value any, comma bool) error {
	if err := writeKey(buf, key, comma); err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(encoded)
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
