package resource

import (
	"encoding/json"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/registry"
)

// ItemStackRaw is an item stack as written in data files. The item may be
// given as "id" or "item".
type ItemStackRaw struct {
	ID     ident.RawID `json:"id"`
	Item   ident.RawID `json:"item"`
	Amount uint64      `json:"amount"`
}

func (s ItemStackRaw) item() ident.RawID {
	if s.ID.IsZero() {
		return s.Item
	}
	return s.ID
}

func (s ItemStackRaw) validate() error {
	if s.item().IsZero() {
		return parseErrf("item stack: missing item id")
	}
	return nil
}

// Resolve interns the stack's item.
func (s ItemStackRaw) Resolve(in *ident.Interner) registry.ItemStack {
	return registry.ItemStack{Item: s.item().Resolve(in), Amount: s.Amount}
}

// TileRaw is a tile record. The kind payload sits in Param and its shape
// depends on Type.
type TileRaw struct {
	Type     string          `json:"type"`
	Param    json.RawMessage `json:"param"`
	ID       ident.RawID     `json:"id"`
	Function *ident.RawID    `json:"function"`
	Models   []ident.RawID   `json:"models"`
	Targeted *bool           `json:"targeted"`

	kind    registry.TileKind
	scripts []ident.RawID
	target  ident.RawID
	storage ItemStackRaw
}

// decodeTile parses a tile record including its kind payload. Nothing is
// interned until the whole record is known to be well formed.
func decodeTile(data []byte) (TileRaw, error) {
	var raw TileRaw
	if err := json.Unmarshal(data, &raw); err != nil {
		return TileRaw{}, parseErr(err)
	}
	if raw.ID.IsZero() {
		return TileRaw{}, parseErrf("tile: missing id")
	}

	kind, err := registry.ParseTileKind(raw.Type)
	if err != nil {
		return TileRaw{}, parseErr(err)
	}
	raw.kind = kind

	switch kind {
	case registry.KindMachine:
		if err := decodeParam(raw.Param, &raw.scripts); err != nil {
			return TileRaw{}, err
		}
	case registry.KindTransfer:
		if err := decodeParam(raw.Param, &raw.target); err != nil {
			return TileRaw{}, err
		}
		if raw.target.IsZero() {
			return TileRaw{}, parseErrf("tile %s: transfer without target", raw.ID)
		}
	case registry.KindStorage:
		if err := decodeParam(raw.Param, &raw.storage); err != nil {
			return TileRaw{}, err
		}
		if err := raw.storage.validate(); err != nil {
			return TileRaw{}, err
		}
	}
	return raw, nil
}

func decodeParam(param json.RawMessage, v any) error {
	if len(param) == 0 {
		return parseErrf("tile: missing param")
	}
	if err := json.Unmarshal(param, v); err != nil {
		return parseErr(err)
	}
	return nil
}

// Resolve interns the tile's own id and every id it references. Referenced
// names that have not been seen yet are interned on the spot.
func (raw TileRaw) Resolve(in *ident.Interner) (ident.ID, registry.Tile) {
	id := raw.ID.Resolve(in)

	tile := registry.Tile{
		Kind:     raw.kind,
		Targeted: raw.Targeted == nil || *raw.Targeted,
	}
	switch raw.kind {
	case registry.KindMachine:
		tile.Scripts = make([]ident.ID, len(raw.scripts))
		for i, s := range raw.scripts {
			tile.Scripts[i] = s.Resolve(in)
		}
	case registry.KindTransfer:
		tile.Target = raw.target.Resolve(in)
	case registry.KindStorage:
		tile.Storage = raw.storage.Resolve(in)
	}
	if raw.Function != nil {
		tile.Function = raw.Function.Resolve(in)
		tile.HasFunction = true
	}
	tile.Models = make([]ident.ID, len(raw.Models))
	for i, model := range raw.Models {
		tile.Models[i] = model.Resolve(in)
	}
	return id, tile
}

func (m *Manager) loadTile(path string) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	raw, err := decodeTile(data)
	if err != nil {
		return err
	}
	id, tile := raw.Resolve(m.interner)
	return insertErr(m.builder.PutTile(id, tile))
}

// ItemName returns the translated item name, or "<unnamed>".
func (m *Manager) ItemName(id ident.ID) string {
	if name, ok := m.translates.Items[id]; ok {
		return name
	}
	return "<unnamed>"
}

// TryItemName is ItemName for an optional id; absent ids read "<none>".
func (m *Manager) TryItemName(id ident.ID, ok bool) string {
	if !ok {
		return "<none>"
	}
	return m.ItemName(id)
}

// TileName returns the translated tile name, or "<unnamed>".
func (m *Manager) TileName(id ident.ID) string {
	if name, ok := m.translates.Tiles[id]; ok {
		return name
	}
	return "<unnamed>"
}

// TryTileName is TileName for an optional id; absent ids read "<none>".
func (m *Manager) TryTileName(id ident.ID, ok bool) string {
	if !ok {
		return "<none>"
	}
	return m.TileName(id)
}

// GuiName returns the translated GUI label, or "<unnamed>".
func (m *Manager) GuiName(id ident.ID) string {
	if name, ok := m.translates.Gui[id]; ok {
		return name
	}
	return "<unnamed>"
}
