package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	"wemtool/internal/fileutil"
	"wemtool/internal/services"
)

// Mapping maps numeric media IDs to event names.
type Mapping map[string]string

// Inverse maps event names back to numeric media IDs.
type Inverse map[string]string

// Collision records an event name claimed by several IDs. Kept is the ID the
// inverse resolves to; Dropped lists the IDs that cannot be recovered.
type Collision struct {
	Name    string   `json:"name"`
	Kept    string   `json:"kept"`
	Dropped []string `json:"dropped"`
}

// IDs returns the mapping keys in lexical order.
func (m Mapping) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Invert builds the name -> ID lookup. When several IDs share a name the
// lexically smallest ID is kept so repeated runs resolve identically.
func (m Mapping) Invert() (Inverse, []Collision) {
	inverse := make(Inverse, len(m))
	dropped := make(map[string][]string)
	for _, id := range m.IDs() {
		name := m[id]
		if _, taken := inverse[name]; taken {
			dropped[name] = append(dropped[name], id)
			continue
		}
		inverse[name] = id
	}

	names := make([]string, 0, len(dropped))
	for name := range dropped {
		names = append(names, name)
	}
	sort.Strings(names)
	collisions := make([]Collision, 0, len(names))
	for _, name := range names {
		collisions = append(collisions, Collision{Name: name, Kept: inverse[name], Dropped: dropped[name]})
	}
	return inverse, collisions
}

// Load reads a mapping file written by Save.
func Load(path string) (Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "mapping", "load", fmt.Sprintf("mapping file %s not found; run `wemtool mapping build` first", path), err)
		}
		return nil, services.Wrap(services.ErrTransient, "mapping", "load", "read mapping file", err)
	}
	var m Mapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, services.Wrap(services.ErrValidation, "mapping", "load", fmt.Sprintf("mapping file %s is not a JSON object of strings", path), err)
	}
	if m == nil {
		m = Mapping{}
	}
	return m, nil
}

// Save writes the mapping as an indented JSON object with sorted keys. The
// previous file is replaced atomically under an advisory lock.
func Save(ctx context.Context, path string, m Mapping) error {
	if m == nil {
		m = Mapping{}
	}
	err := fileutil.WithLock(ctx, path, func() error {
		return fileutil.WriteJSONAtomic(path, m)
	})
	if err != nil {
		return services.Wrap(services.ErrTransient, "mapping", "save", "write mapping file", err)
	}
	return nil
}
