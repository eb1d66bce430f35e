package mapping

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"wemtool/internal/fileutil"
	"wemtool/internal/logging"
	"wemtool/internal/services"
	"wemtool/internal/wwise"
)

// Result summarizes a Build run.
type Result struct {
	Mapping      Mapping
	FilesScanned int
	FilesSkipped int
	FilesEmpty   int
	Pairs        int
	Overwritten  int
}

// Builder collects media pairs from a directory of event exports.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder constructs a Builder. A nil logger discards output.
func NewBuilder(logger *slog.Logger) *Builder {
	return &Builder{logger: logging.NewComponentLogger(logger, "mapping")}
}

// Build walks dir recursively and accumulates every ID -> name pair found in
// its .json exports. Later pairs for an existing ID replace the earlier name.
// Files that cannot be parsed are skipped with a warning.
func (b *Builder) Build(ctx context.Context, dir string) (Result, error) {
	logger := logging.WithContext(ctx, b.logger)
	if err := fileutil.RequireDir(dir); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "mapping", "inspect input", "invalid json directory", err)
	}

	result := Result{Mapping: make(Mapping)}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logging.WarnWithContext(logger, "cannot read path; skipping",
				"mapping_walk_failed",
				logging.String("path", path),
				logging.Error(walkErr),
				logging.String(logging.FieldImpact, "exports below this path are not scanned"))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !IsExportFile(d.Name()) {
			return nil
		}
		b.scanFile(logger, path, &result)
		return nil
	})
	if err != nil {
		return result, services.Wrap(services.ErrTransient, "mapping", "walk", "scan json directory", err)
	}

	logger.Info("mapping built",
		logging.Int("files", result.FilesScanned),
		logging.Int("skipped", result.FilesSkipped),
		logging.Int("pairs", result.Pairs),
		logging.Int("entries", len(result.Mapping)),
		logging.Int("overwritten", result.Overwritten))
	return result, nil
}

func (b *Builder) scanFile(logger *slog.Logger, path string, result *Result) {
	result.FilesScanned++
	exports, err := wwise.ReadExports(path)
	if err != nil {
		result.FilesSkipped++
		logging.WarnWithContext(logger, "skipping unreadable export",
			"mapping_file_skipped",
			logging.String("file", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "re-export the file with the extraction tool"),
			logging.String(logging.FieldImpact, "ids from this file are missing from the mapping"))
		return
	}

	pairs := wwise.MediaPairs(exports)
	if len(pairs) == 0 {
		result.FilesEmpty++
		logger.Debug("no media pairs in export", logging.String("file", path))
		return
	}
	for _, pair := range pairs {
		result.Pairs++
		if previous, ok := result.Mapping[pair.ID]; ok && previous != pair.Name {
			result.Overwritten++
			logger.Debug("media id remapped",
				logging.String("id", pair.ID),
				logging.String("previous", previous),
				logging.String("name", pair.Name),
				logging.String("file", path))
		}
		result.Mapping[pair.ID] = pair.Name
	}
}

// IsExportFile reports whether name is a primary export file. Secondary
// "*.2.json" exports duplicate the primary file and are ignored.
func IsExportFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".json") && !strings.HasSuffix(lower, ".2.json")
}
