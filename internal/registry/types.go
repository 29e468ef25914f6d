package registry

import (
	"fmt"
	"slices"

	"github.com/talgya/hexworks/internal/ident"
)

// TileKind enumerates what a placed tile does.
type TileKind uint8

const (
	KindEmpty    TileKind = iota // Nothing placed
	KindVoid                     // Swallows whatever is transferred into it
	KindModel                    // Decoration only
	KindMachine                  // Runs one of Scripts
	KindTransfer                 // Moves items toward Target
	KindStorage                  // Holds up to Storage.Amount of Storage.Item
)

var kindNames = [...]string{"Empty", "Void", "Model", "Machine", "Transfer", "Storage"}

func (k TileKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("TileKind(%d)", uint8(k))
}

// ParseTileKind maps a data-file type tag to a TileKind. The "Kind" suffixed
// spellings (EmptyKind, VoidKind, ModelKind) are accepted as well.
func ParseTileKind(s string) (TileKind, error) {
	switch s {
	case "Empty", "EmptyKind":
		return KindEmpty, nil
	case "Void", "VoidKind":
		return KindVoid, nil
	case "Model", "ModelKind":
		return KindModel, nil
	case "Machine":
		return KindMachine, nil
	case "Transfer":
		return KindTransfer, nil
	case "Storage":
		return KindStorage, nil
	}
	return 0, fmt.Errorf("unknown tile type %q", s)
}

// ItemStack is an item plus a quantity. It is a plain value, not a container.
type ItemStack struct {
	Item   ident.ID
	Amount uint64
}

// Tile is a fully resolved tile definition.
type Tile struct {
	Kind TileKind

	// Kind payloads; only the field matching Kind is meaningful.
	Scripts []ident.ID // KindMachine, in preference order
	Target  ident.ID   // KindTransfer
	Storage ItemStack  // KindStorage

	Function    ident.ID // Behavior function, valid when HasFunction
	HasFunction bool
	Models      []ident.ID
	Targeted    bool
}

func (t Tile) clone() Tile {
	t.Scripts = slices.Clone(t.Scripts)
	t.Models = slices.Clone(t.Models)
	return t
}

// Item is a resolved item definition.
type Item struct {
	ID       ident.ID
	Model    ident.ID
	HasModel bool
}

// Script is a machine recipe: consumes Inputs, produces Output.
type Script struct {
	ID     ident.ID
	Inputs []ItemStack
	Output ItemStack
}

func (s Script) clone() Script {
	s.Inputs = slices.Clone(s.Inputs)
	return s
}

// Tag groups items under one id.
type Tag struct {
	ID      ident.ID
	Entries []ident.ID
}

func (t Tag) clone() Tag {
	t.Entries = slices.Clone(t.Entries)
	return t
}
