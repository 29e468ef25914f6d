// Command hexworks loads a content directory, reports every load problem,
// and seeds or restores a hex tile map from the loaded tiles.
package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/talgya/hexworks/internal/config"
	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/persistence"
	"github.com/talgya/hexworks/internal/resource"
	"github.com/talgya/hexworks/internal/script"
	"github.com/talgya/hexworks/internal/world"
)

const lastSaveKey = "last_save"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fatal("invalid configuration", "error", err)
	}
	slog.SetDefault(newLogger(os.Stdout, cfg.LogLevel))

	// ── Resources ─────────────────────────────────────────────────────
	rcfg := cfg.Resource()
	rcfg.CheckFunction = script.Check
	manager := resource.NewManager(rcfg)
	if err := manager.Load(); err != nil {
		var loadErrs *resource.LoadErrors
		if !errors.As(err, &loadErrs) {
			fatal("failed to load resources", "error", err)
		}
		for _, le := range loadErrs.Errors {
			slog.Error("resource problem", "path", le.Path, "kind", le.Kind, "error", le.Err)
		}
		if cfg.Strict {
			fatal("resource problems in strict mode", "count", len(loadErrs.Errors))
		}
	}
	reg := manager.Registry()
	slog.Info("content ready",
		"locale", manager.Locale(),
		"options_menu", manager.GuiName(reg.GuiIDs.OptionsMenu),
		"faces", len(manager.Faces),
		"clips", len(manager.AudioNames()),
	)

	rt := script.NewRuntime(script.NewHost(manager))
	if err := rt.LoadAll(manager); err != nil {
		slog.Warn("tile functions failed to load", "error", err)
	}

	// ── Map ───────────────────────────────────────────────────────────
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		fatal("failed to create data dir", "error", err)
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		fatal("failed to open database", "error", err)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	tiles, err := restoreOrGenerate(db, manager, cfg.Generation())
	if err != nil {
		db.Close()
		fatal("map unavailable", "error", err)
	}

	ran := 0
	for _, coord := range tiles.Coords() {
		id := tiles.Tiles[coord]
		tile, ok := reg.GetTile(id)
		if !ok || !tile.HasFunction || !rt.Loaded(tile.Function) {
			continue
		}
		target, ok, err := rt.Call(tile.Function, id, coord)
		if err != nil {
			slog.Warn("tile function failed", "coord", coord, "tile", manager.TileName(id), "error", err)
			continue
		}
		ran++
		if ok {
			slog.Debug("tile function target", "coord", coord, "target", target)
		}
	}

	slog.Info("world ready", "map", tiles.String(), "functions_run", ran)
}

// fatal logs msg at error level and exits with code 1.
func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}

// newLogger picks a text handler for terminals and JSON otherwise.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// restoreOrGenerate loads the last saved map, or seeds a new one from the
// loaded tiles and saves it.
func restoreOrGenerate(db *persistence.DB, manager *resource.Manager, gen world.GenConfig) (*world.Map[ident.ID], error) {
	if last, err := db.GetMeta(lastSaveKey); err == nil {
		if id, err := uuid.Parse(last); err == nil {
			m, err := db.LoadMap(id, manager.Interner())
			if err == nil {
				return m, nil
			}
			slog.Warn("saved map unreadable, generating", "save", id, "error", err)
		}
	}

	palette := manager.Registry().OrderedTiles()
	slog.Info("generating map", "radius", gen.Radius, "seed", gen.Seed, "palette", len(palette))
	m := world.Generate(gen, palette)

	id, err := db.SaveMap("generated", m, manager.Interner())
	if err != nil {
		return nil, err
	}
	if err := db.SaveMeta(lastSaveKey, id.String()); err != nil {
		return nil, err
	}
	return m, nil
}
