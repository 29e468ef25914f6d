package registry

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/talgya/hexworks/internal/ident"
)

// DanglingRef is a reference field pointing at an id that has no definition
// of the expected category.
type DanglingRef struct {
	Owner    ident.ID // Definition holding the reference
	Field    string   // e.g. "tile.scripts", "script.output"
	Ref      ident.ID // Missing target
	Expected string   // Category the target should exist in
}

// Describe renders the reference with resolved names.
func (d DanglingRef) Describe(in *ident.Interner) string {
	return fmt.Sprintf("%s %s references undefined %s %s",
		in.Name(d.Owner), d.Field, d.Expected, in.Name(d.Ref))
}

// Validate checks every reference field against the registry and returns all
// dangling references, sorted. hasFunction and hasModel report whether a
// behavior function or a model exists; a nil check skips that category.
func (r *Registry) Validate(hasFunction, hasModel func(ident.ID) bool) []DanglingRef {
	var out []DanglingRef
	add := func(owner ident.ID, field string, ref ident.ID, expected string) {
		out = append(out, DanglingRef{Owner: owner, Field: field, Ref: ref, Expected: expected})
	}
	checkItem := func(owner ident.ID, field string, item ident.ID) {
		if _, ok := r.items[item]; !ok {
			add(owner, field, item, "item")
		}
	}

	for id, t := range r.tiles {
		switch t.Kind {
		case KindMachine:
			for _, s := range t.Scripts {
				if _, ok := r.scripts[s]; !ok {
					add(id, "tile.scripts", s, "script")
				}
			}
		case KindTransfer:
			if _, ok := r.tiles[t.Target]; !ok {
				add(id, "tile.target", t.Target, "tile")
			}
		case KindStorage:
			checkItem(id, "tile.storage", t.Storage.Item)
		}
		if t.HasFunction && hasFunction != nil && !hasFunction(t.Function) {
			add(id, "tile.function", t.Function, "function")
		}
		if hasModel != nil {
			for _, model := range t.Models {
				if !hasModel(model) {
					add(id, "tile.models", model, "model")
				}
			}
		}
	}

	if hasModel != nil {
		for id, it := range r.items {
			if it.HasModel && !hasModel(it.Model) {
				add(id, "item.model", it.Model, "model")
			}
		}
	}

	for id, s := range r.scripts {
		for _, in := range s.Inputs {
			checkItem(id, "script.inputs", in.Item)
		}
		checkItem(id, "script.output", s.Output.Item)
	}

	for id, t := range r.tags {
		for _, e := range t.Entries {
			if e == r.Any {
				continue
			}
			checkItem(id, "tag.entries", e)
		}
	}

	slices.SortFunc(out, func(a, b DanglingRef) int {
		return cmp.Or(
			cmp.Compare(a.Owner, b.Owner),
			cmp.Compare(a.Field, b.Field),
			cmp.Compare(a.Ref, b.Ref),
		)
	})
	return out
}
