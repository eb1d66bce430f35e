package rename

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"wemtool/internal/fileutil"
	"wemtool/internal/logging"
	"wemtool/internal/mapping"
	"wemtool/internal/services"
	"wemtool/internal/textutil"
)

// Direction selects which side of the mapping is looked up.
type Direction int

const (
	// Forward renames numeric IDs to event names.
	Forward Direction = iota
	// Reverse renames event names back to numeric IDs.
	Reverse
)

func (d Direction) String() string {
	if d == Reverse {
		return "obfuscate"
	}
	return "unobfuscate"
}

// Options controls a rename run.
type Options struct {
	Direction Direction
	Move      bool
	DryRun    bool
	Overwrite bool
}

// Entry is a source file and the output name it was written to.
type Entry struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Conflict is a source whose output name was already claimed in the same run.
type Conflict struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Winner string `json:"winner"`
}

// Failure is a matched source that could not be written.
type Failure struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Reason string `json:"reason"`
}

// Result summarizes a rename run. Source paths are relative to the input
// directory; targets are file names inside the output directory.
type Result struct {
	Direction  string              `json:"direction"`
	DryRun     bool                `json:"dry_run"`
	Moved      bool                `json:"moved"`
	Scanned    int                 `json:"scanned"`
	Matched    int                 `json:"matched"`
	Renamed    []Entry             `json:"renamed"`
	Unmatched  []string            `json:"unmatched"`
	Conflicts  []Conflict          `json:"conflicts"`
	Failures   []Failure           `json:"failures"`
	Unreadable []Unreadable        `json:"unreadable"`
	Collisions []mapping.Collision `json:"collisions"`
}

// Renamer copies or moves .wem files according to a mapping.
type Renamer struct {
	logger *slog.Logger
}

// NewRenamer constructs a Renamer. A nil logger discards output.
func NewRenamer(logger *slog.Logger) *Renamer {
	return &Renamer{logger: logging.NewComponentLogger(logger, "rename")}
}

// Lookup returns the stem -> output stem table for the given direction.
// Event names are sanitized for use as file names before either table is
// built, so a reverse run resolves exactly the names a forward run wrote.
// Reverse tables keep the lexically smallest ID for a shared name and report
// the rest as collisions.
func Lookup(m mapping.Mapping, direction Direction) (map[string]string, []mapping.Collision) {
	names := make(mapping.Mapping, len(m))
	for id, name := range m {
		if cleaned := textutil.SanitizeFileName(name); cleaned != "" {
			names[id] = cleaned
		}
	}
	if direction == Forward {
		return names, nil
	}
	inverse, collisions := names.Invert()
	return inverse, collisions
}

// Run renames every .wem file below srcDir whose stem is in the lookup into
// outDir. Per-file problems are collected in the Result; only invalid input
// or cancellation returns an error.
func (r *Renamer) Run(ctx context.Context, m mapping.Mapping, srcDir, outDir string, opts Options) (Result, error) {
	logger := logging.WithContext(ctx, r.logger)
	if err := fileutil.RequireDir(srcDir); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "rename", "inspect input", "invalid wem directory", err)
	}
	if strings.TrimSpace(outDir) == "" {
		return Result{}, services.Wrap(services.ErrValidation, "rename", "inspect output", "output directory is required", nil)
	}
	if info, err := os.Stat(outDir); err == nil && !info.IsDir() {
		return Result{}, services.Wrap(services.ErrValidation, "rename", "inspect output", fmt.Sprintf("%s is not a directory", outDir), nil)
	}

	lookup, collisions := Lookup(m, opts.Direction)
	for _, c := range collisions {
		logging.WarnWithContext(logger, "event name shared by several ids",
			"rename_reverse_collision",
			logging.String("name", c.Name),
			logging.String("kept", c.Kept),
			logging.String("dropped", strings.Join(c.Dropped, ",")),
			logging.String(logging.FieldErrorHint, "only one id per name can be restored"),
			logging.String(logging.FieldImpact, "files for dropped ids keep the kept id"))
	}

	sources, unreadable, err := Discover(ctx, srcDir, outDir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		return Result{}, services.Wrap(services.ErrTransient, "rename", "discover", "scan wem directory", err)
	}
	for _, u := range unreadable {
		logging.WarnWithContext(logger, "cannot read path; skipping",
			"rename_walk_failed",
			logging.String("path", u.Path),
			logging.String("reason", u.Reason),
			logging.String(logging.FieldImpact, "files below this path are not renamed"))
	}

	result := Result{
		Direction:  opts.Direction.String(),
		DryRun:     opts.DryRun,
		Moved:      opts.Move,
		Scanned:    len(sources),
		Unreadable: unreadable,
		Collisions: collisions,
	}
	if !opts.DryRun && len(sources) > 0 {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return result, services.Wrap(services.ErrTransient, "rename", "prepare output", "create output directory", err)
		}
	}

	claimed := make(map[string]string)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		stem, ok := lookup[src.Stem]
		if !ok {
			result.Unmatched = append(result.Unmatched, src.Rel)
			logger.Debug("no mapping for file", logging.String("file", src.Rel))
			continue
		}
		result.Matched++
		target := stem + WemExt
		if winner, taken := claimed[target]; taken {
			result.Conflicts = append(result.Conflicts, Conflict{Source: src.Rel, Target: target, Winner: winner})
			logging.WarnWithContext(logger, "output name already claimed",
				"rename_conflict",
				logging.String("file", src.Rel),
				logging.String("target", target),
				logging.String("winner", winner),
				logging.String(logging.FieldImpact, "file was not renamed"))
			continue
		}
		claimed[target] = src.Rel

		if err := r.transfer(src, filepath.Join(outDir, target), opts); err != nil {
			result.Failures = append(result.Failures, Failure{Source: src.Rel, Target: target, Reason: err.Error()})
			logging.WarnWithContext(logger, "rename failed",
				"rename_file_failed",
				logging.String("file", src.Rel),
				logging.String("target", target),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "pass --overwrite to replace existing outputs"),
				logging.String(logging.FieldImpact, "file was not renamed"))
			continue
		}
		result.Renamed = append(result.Renamed, Entry{Source: src.Rel, Target: target})
		logger.Debug("renamed",
			logging.String("file", src.Rel),
			logging.String("target", target),
			logging.Bool("dry_run", opts.DryRun))
	}

	logger.Info("rename finished",
		logging.String("direction", result.Direction),
		logging.Int("scanned", result.Scanned),
		logging.Int("renamed", len(result.Renamed)),
		logging.Int("unmatched", len(result.Unmatched)),
		logging.Int("conflicts", len(result.Conflicts)),
		logging.Int("failures", len(result.Failures)),
		logging.Int("unreadable", len(result.Unreadable)),
		logging.Bool("dry_run", opts.DryRun))
	return result, nil
}

func (r *Renamer) transfer(src Source, dst string, opts Options) error {
	same, err := sameFile(src.Path, dst)
	if err != nil {
		return err
	}
	if same {
		return fmt.Errorf("source and destination are the same file")
	}
	exists, err := fileutil.Exists(dst)
	if err != nil {
		return fmt.Errorf("inspect destination: %w", err)
	}
	if exists && !opts.Overwrite {
		return fmt.Errorf("destination %s already exists", filepath.Base(dst))
	}
	if opts.DryRun {
		return nil
	}
	if opts.Move {
		return fileutil.MoveFile(src.Path, dst)
	}
	return fileutil.CopyFileVerified(src.Path, dst)
}

func sameFile(a, b string) (bool, error) {
	infoB, err := os.Stat(b)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("inspect destination: %w", err)
	}
	infoA, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("inspect source: %w", err)
	}
	return os.SameFile(infoA, infoB), nil
}
