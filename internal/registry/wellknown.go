package registry

import "github.com/talgya/hexworks/internal/ident"

// TileIDs are the tiles the engine refers to directly.
type TileIDs struct {
	Machine         ident.ID
	Transfer        ident.ID
	Storage         ident.ID
	InventoryLinker ident.ID
}

func newTileIDs(in *ident.Interner) TileIDs {
	return TileIDs{
		Machine:         ident.Static(ident.EngineNamespace, "machine").Resolve(in),
		Transfer:        ident.Static(ident.EngineNamespace, "transfer").Resolve(in),
		Storage:         ident.Static(ident.EngineNamespace, "storage").Resolve(in),
		InventoryLinker: ident.Static(ident.EngineNamespace, "inventory_linker").Resolve(in),
	}
}

// GuiIDs name the built-in GUI elements so translations can target them.
type GuiIDs struct {
	TileConfig  ident.ID
	ErrorPopup  ident.ID
	DebugMenu   ident.ID
	OptionsMenu ident.ID
}

func newGuiIDs(in *ident.Interner) GuiIDs {
	return GuiIDs{
		TileConfig:  ident.Static(ident.EngineNamespace, "gui/tile_config").Resolve(in),
		ErrorPopup:  ident.Static(ident.EngineNamespace, "gui/error_popup").Resolve(in),
		DebugMenu:   ident.Static(ident.EngineNamespace, "gui/debug_menu").Resolve(in),
		OptionsMenu: ident.Static(ident.EngineNamespace, "gui/options_menu").Resolve(in),
	}
}
