// Package registry holds the resolved content definitions (tiles, scripts,
// tags, items) keyed by identifier. A Registry is assembled once by a Builder
// during loading and is read-only afterwards.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/talgya/hexworks/internal/ident"
)

// ErrDuplicate is returned by Builder puts under RejectDuplicates.
var ErrDuplicate = errors.New("duplicate definition")

// DuplicatePolicy decides what happens when two files define the same id.
type DuplicatePolicy uint8

const (
	// OverwriteDuplicates keeps the definition processed last.
	OverwriteDuplicates DuplicatePolicy = iota
	// RejectDuplicates keeps the first definition and reports the rest.
	RejectDuplicates
)

func (p DuplicatePolicy) String() string {
	if p == RejectDuplicates {
		return "reject"
	}
	return "overwrite"
}

// UnmarshalText parses "overwrite" or "reject".
func (p *DuplicatePolicy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "overwrite":
		*p = OverwriteDuplicates
	case "reject":
		*p = RejectDuplicates
	default:
		return fmt.Errorf("unknown duplicate policy %q", text)
	}
	return nil
}

// Registry is the immutable post-load content store. Getters return copies;
// absence is reported with ok == false, never a panic.
type Registry struct {
	interner *ident.Interner

	tiles   map[ident.ID]Tile
	scripts map[ident.ID]Script
	tags    map[ident.ID]Tag
	items   map[ident.ID]Item

	tileOrder []ident.ID

	None    ident.ID // The "no resource" sentinel
	Any     ident.ID // Wildcard matching every item
	TileIDs TileIDs
	GuiIDs  GuiIDs
}

// GetTile returns the tile defined for id.
func (r *Registry) GetTile(id ident.ID) (Tile, bool) {
	t, ok := r.tiles[id]
	if !ok {
		return Tile{}, false
	}
	return t.clone(), true
}

// GetScript returns the script defined for id.
func (r *Registry) GetScript(id ident.ID) (Script, bool) {
	s, ok := r.scripts[id]
	if !ok {
		return Script{}, false
	}
	return s.clone(), true
}

// GetTag returns the tag defined for id.
func (r *Registry) GetTag(id ident.ID) (Tag, bool) {
	t, ok := r.tags[id]
	if !ok {
		return Tag{}, false
	}
	return t.clone(), true
}

// GetItem returns the item defined for id.
func (r *Registry) GetItem(id ident.ID) (Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// TagMatches reports whether item belongs to tag. The Any tag matches every item.
func (r *Registry) TagMatches(tag, item ident.ID) bool {
	if tag == r.Any {
		return true
	}
	t, ok := r.tags[tag]
	if !ok {
		return false
	}
	return slices.Contains(t.Entries, item)
}

// OrderedTiles returns every defined tile id in ascending order.
func (r *Registry) OrderedTiles() []ident.ID {
	return slices.Clone(r.tileOrder)
}

// Counts returns the number of tiles, scripts, tags and items.
func (r *Registry) Counts() (tiles, scripts, tags, items int) {
	return len(r.tiles), len(r.scripts), len(r.tags), len(r.items)
}

// Interner returns the interner the registry's ids belong to.
func (r *Registry) Interner() *ident.Interner {
	return r.interner
}

// Builder accumulates definitions during loading. It is not safe for
// concurrent use and must not be used after Build.
type Builder struct {
	reg    *Registry
	policy DuplicatePolicy
}

// NewBuilder resolves the well-known ids through in and returns an empty builder.
func NewBuilder(in *ident.Interner, policy DuplicatePolicy) *Builder {
	none := ident.NoneRaw.Resolve(in)
	anyID := ident.AnyRaw.Resolve(in)
	gui := newGuiIDs(in)
	tile := newTileIDs(in)

	return &Builder{
		policy: policy,
		reg: &Registry{
			interner: in,
			tiles:    make(map[ident.ID]Tile),
			scripts:  make(map[ident.ID]Script),
			tags:     make(map[ident.ID]Tag),
			items:    make(map[ident.ID]Item),
			None:     none,
			Any:      anyID,
			TileIDs:  tile,
			GuiIDs:   gui,
		},
	}
}

// Interner returns the interner the builder resolves through.
func (b *Builder) Interner() *ident.Interner {
	return b.registry().interner
}

// Policy returns the duplicate policy in effect.
func (b *Builder) Policy() DuplicatePolicy {
	return b.policy
}

// PutTile stores a tile under id.
func (b *Builder) PutTile(id ident.ID, t Tile) error {
	return put(b, b.registry().tiles, "tile", id, t.clone())
}

// PutScript stores a script under its own id.
func (b *Builder) PutScript(s Script) error {
	return put(b, b.registry().scripts, "script", s.ID, s.clone())
}

// PutTag stores a tag under its own id.
func (b *Builder) PutTag(t Tag) error {
	return put(b, b.registry().tags, "tag", t.ID, t.clone())
}

// PutItem stores an item under its own id.
func (b *Builder) PutItem(it Item) error {
	return put(b, b.registry().items, "item", it.ID, it)
}

// Build finalizes the registry. The builder is unusable afterwards.
func (b *Builder) Build() *Registry {
	reg := b.registry()
	b.reg = nil

	reg.tileOrder = make([]ident.ID, 0, len(reg.tiles))
	for id := range reg.tiles {
		reg.tileOrder = append(reg.tileOrder, id)
	}
	slices.Sort(reg.tileOrder)
	return reg
}

func (b *Builder) registry() *Registry {
	if b.reg == nil {
		panic("registry: builder used after Build")
	}
	return b.reg
}

func put[T any](b *Builder, table map[ident.ID]T, category string, id ident.ID, v T) error {
	if _, exists := table[id]; exists && b.policy == RejectDuplicates {
		return fmt.Errorf("%w: %s %s", ErrDuplicate, category, b.reg.interner.Name(id))
	}
	table[id] = v
	return nil
}
