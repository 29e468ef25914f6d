// Package script runs tile behavior functions written in Lua. Functions only
// see the engine through the Host interface.
package script

import (
	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/registry"
	"github.com/talgya/hexworks/internal/resource"
)

// Host is the set of engine queries a tile function may make.
type Host interface {
	Lookup(raw ident.RawID) (ident.ID, bool)
	Name(id ident.ID) ident.RawID
	Tile(id ident.ID) (registry.Tile, bool)
	TileName(id ident.ID) string
	ItemName(id ident.ID) string
}

// ManagerHost serves Host queries from a loaded resource manager.
type ManagerHost struct {
	*resource.Manager
}

// NewHost wraps m. m must have finished loading.
func NewHost(m *resource.Manager) ManagerHost {
	return ManagerHost{Manager: m}
}

func (h ManagerHost) Lookup(raw ident.RawID) (ident.ID, bool) {
	return h.Interner().Lookup(raw.Namespace, raw.Name)
}

func (h ManagerHost) Name(id ident.ID) ident.RawID {
	return h.Interner().Resolve(id)
}

func (h ManagerHost) Tile(id ident.ID) (registry.Tile, bool) {
	return h.Registry().GetTile(id)
}
