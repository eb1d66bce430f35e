package dialogue

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wemtool/internal/fileutil"
	"wemtool/internal/logging"
	"wemtool/internal/mapping"
	"wemtool/internal/services"
	"wemtool/internal/wwise"
)

// Copy is one export copied into the organized tree.
type Copy struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// OrganizeResult summarizes an Organize run. Unreadable lists directories
// and files the walk could not read.
type OrganizeResult struct {
	Scanned    int      `json:"scanned"`
	Skipped    int      `json:"skipped"`
	Copies     []Copy   `json:"copies"`
	Unreadable []string `json:"unreadable"`
}

// Organizer copies dialogue exports into an ObjectPath-shaped tree.
type Organizer struct {
	logger *slog.Logger
}

// NewOrganizer constructs an Organizer. A nil logger discards output.
func NewOrganizer(logger *slog.Logger) *Organizer {
	return &Organizer{logger: logging.NewComponentLogger(logger, "dialogue")}
}

// Organize walks src for primary .json exports and copies each file that
// holds a PSExternalMediaAsset with an ObjectPath into dst/<ObjectPath dir>/.
// Files that fail to decode and paths that cannot be read are skipped with a
// warning.
func (o *Organizer) Organize(ctx context.Context, src, dst string) (OrganizeResult, error) {
	logger := logging.WithContext(ctx, o.logger)
	var result OrganizeResult
	if err := fileutil.RequireDir(src); err != nil {
		return result, services.Wrap(services.ErrValidation, "dialogue", "inspect input", "invalid source directory", err)
	}
	if strings.TrimSpace(dst) == "" {
		return result, services.Wrap(services.ErrValidation, "dialogue", "inspect output", "destination directory is required", nil)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return result, services.Wrap(services.ErrValidation, "dialogue", "inspect output", "resolve destination directory", err)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == src {
				return walkErr
			}
			result.Unreadable = append(result.Unreadable, path)
			logging.WarnWithContext(logger, "cannot read path; skipping",
				"dialogue_walk_failed",
				logging.String("path", path),
				logging.Error(walkErr),
				logging.String(logging.FieldImpact, "exports below this path are not organized"))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && abs == absDst {
				return filepath.SkipDir
			}
			return nil
		}
		if !mapping.IsExportFile(d.Name()) {
			return nil
		}
		result.Scanned++
		exports, err := wwise.ReadExports(path)
		if err != nil {
			result.Skipped++
			logging.WarnWithContext(logger, "skipping unreadable dialogue export",
				"dialogue_file_skipped",
				logging.String("file", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "file was not organized"))
			return nil
		}
		for _, dir := range objectDirs(exports) {
			target, err := o.copyInto(path, absDst, dir)
			if err != nil {
				logging.WarnWithContext(logger, "dialogue copy failed",
					"dialogue_copy_failed",
					logging.String("file", path),
					logging.String("object_dir", dir),
					logging.Error(err),
					logging.String(logging.FieldImpact, "file was not organized"))
				continue
			}
			result.Copies = append(result.Copies, Copy{Source: path, Target: target})
			logger.Debug("dialogue export copied", logging.String("file", path), logging.String("target", target))
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, ctxErr
		}
		return result, services.Wrap(services.ErrTransient, "dialogue", "walk", "scan source directory", err)
	}
	logger.Info("dialogue exports organized",
		logging.Int("scanned", result.Scanned),
		logging.Int("copied", len(result.Copies)),
		logging.Int("skipped", result.Skipped),
		logging.Int("unreadable", len(result.Unreadable)))
	return result, nil
}

func (o *Organizer) copyInto(path, dst, objectDir string) (string, error) {
	dir := filepath.Join(dst, filepath.FromSlash(objectDir))
	if rel, err := filepath.Rel(dst, dir); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("object path %q escapes the destination", objectDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	target := filepath.Join(dir, filepath.Base(path))
	if err := fileutil.CopyFileMode(path, target, info.Mode().Perm()); err != nil {
		return "", err
	}
	_ = os.Chtimes(target, info.ModTime(), info.ModTime())
	return target, nil
}

func objectDirs(exports []wwise.Export) []string {
	var dirs []string
	seen := make(map[string]struct{})
	for _, export := range exports {
		if export.Type != wwise.TypeExternalMediaAsset || export.Properties == nil {
			continue
		}
		if strings.TrimSpace(export.Properties.ObjectPath) == "" {
			continue
		}
		dir := wwise.ObjectDir(export.Properties.ObjectPath)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
