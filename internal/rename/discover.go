package rename

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// WemExt is the extension of compiled Wwise media files.
const WemExt = ".wem"

// Source is a .wem file found below the input directory.
type Source struct {
	Path string
	Rel  string
	Stem string
}

// IsWem reports whether name carries the .wem extension, ignoring case.
func IsWem(name string) bool {
	return strings.EqualFold(filepath.Ext(name), WemExt)
}

// Unreadable is a path the walk could not read. Files below it were not
// considered.
type Unreadable struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Discover lists every .wem file below root in lexical walk order. Directories
// listed in skip are not descended into. Paths that cannot be read are
// returned as Unreadable and the walk continues past them; only cancellation
// or an unreadable root is an error.
func Discover(ctx context.Context, root string, skip ...string) ([]Source, []Unreadable, error) {
	skipped := make(map[string]struct{}, len(skip))
	for _, dir := range skip {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			skipped[abs] = struct{}{}
		}
	}

	var sources []Source
	var unreadable []Unreadable
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			unreadable = append(unreadable, Unreadable{Path: filepath.ToSlash(rel), Reason: walkErr.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if abs, err := filepath.Abs(path); err == nil {
				if _, ok := skipped[abs]; ok {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() || !IsWem(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name := d.Name()
		sources = append(sources, Source{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Stem: strings.TrimSuffix(name, filepath.Ext(name)),
		})
		return nil
	})
	if err != nil {
		return nil, unreadable, err
	}
	return sources, unreadable, nil
}
