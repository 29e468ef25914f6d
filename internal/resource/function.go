package resource

import (
	"cmp"
	"slices"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/registry"
)

// Function is the source of a tile behavior function.
type Function struct {
	ID     ident.ID
	Path   string
	Source string
}

func (m *Manager) loadFunction(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	name := stem(path)
	source := string(data)
	if m.cfg.CheckFunction != nil {
		if err := m.cfg.CheckFunction(name, source); err != nil {
			return parseErr(err)
		}
	}

	id := ident.Static(m.cfg.Namespace, name).Resolve(m.interner)
	if _, exists := m.functions[id]; exists && m.cfg.Duplicates == registry.RejectDuplicates {
		return insertErr(registry.ErrDuplicate)
	}
	m.functions[id] = Function{ID: id, Path: path, Source: source}
	return nil
}

// HasFunction reports whether a function was loaded for id.
func (m *Manager) HasFunction(id ident.ID) bool {
	_, ok := m.functions[id]
	return ok
}

// Function returns the function loaded for id.
func (m *Manager) Function(id ident.ID) (Function, bool) {
	f, ok := m.functions[id]
	return f, ok
}

// Functions returns every loaded function ordered by id.
func (m *Manager) Functions() []Function {
	out := make([]Function, 0, len(m.functions))
	for _, f := range m.functions {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b Function) int { return cmp.Compare(a.ID, b.ID) })
	return out
}
