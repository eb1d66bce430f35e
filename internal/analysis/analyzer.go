package analysis

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"wemtool/internal/fileutil"
	"wemtool/internal/logging"
	"wemtool/internal/services"
)

// Analyzer walks a directory of named .wem files and builds a Report.
type Analyzer struct {
	classifier *Classifier
	logger     *slog.Logger
}

// NewAnalyzer constructs an Analyzer. A nil logger discards output.
func NewAnalyzer(classifier *Classifier, logger *slog.Logger) *Analyzer {
	return &Analyzer{classifier: classifier, logger: logging.NewComponentLogger(logger, "analysis")}
}

// Analyze enumerates every .wem file below root and groups the file names by
// category. Relative paths use forward slashes.
func (a *Analyzer) Analyze(ctx context.Context, root string) (*Report, error) {
	logger := logging.WithContext(ctx, a.logger)
	if err := fileutil.RequireDir(root); err != nil {
		return nil, services.Wrap(services.ErrValidation, "analysis", "inspect input", "invalid root directory", err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "analysis", "inspect input", "resolve root directory", err)
	}

	paths := make(map[string][]string)
	total := 0
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logging.WarnWithContext(logger, "cannot read path; skipping",
				"analysis_walk_failed",
				logging.String("path", path),
				logging.Error(walkErr),
				logging.String(logging.FieldImpact, "files below this path are missing from the report"))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".wem") {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		total++
		paths[d.Name()] = append(paths[d.Name()], filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "analysis", "walk", "scan root directory", err)
	}

	report := a.build(absRoot, total, paths)
	logger.Info("analysis finished",
		logging.String("root", absRoot),
		logging.Int("files", total),
		logging.Int("names", len(paths)),
		logging.Int("categories", len(report.Categories)),
		logging.Int("duplicates", len(report.Duplicates)))
	return report, nil
}

func (a *Analyzer) build(root string, total int, paths map[string][]string) *Report {
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Strings(names)

	buckets := make(map[string][]File)
	report := &Report{Root: root, TotalFiles: total}
	for _, name := range names {
		file := File{
			Name:       name,
			Paths:      paths[name],
			Categories: a.classifier.Classify(name),
			Duplicate:  len(paths[name]) > 1,
		}
		if file.Duplicate {
			report.Duplicates = append(report.Duplicates, Duplicate{Filename: name, Paths: file.Paths})
		}
		for _, category := range file.Categories {
			buckets[category] = append(buckets[category], file)
		}
	}
	for _, category := range a.classifier.Categories() {
		if files := buckets[category]; len(files) > 0 {
			report.Categories = append(report.Categories, Category{Name: category, Files: files})
		}
	}
	return report
}
