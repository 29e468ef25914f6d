package persistence

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/world"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadMapAcrossInterners(t *testing.T) {
	db := openTestDB(t)

	saved := ident.NewInterner()
	wall := saved.Intern("core", "wall")
	floor := saved.Intern("core", "floor")
	m := world.NewMap[ident.ID](2)
	for coord, tile := range map[world.HexCoord]ident.ID{
		world.Zero:               wall,
		world.NewHexCoord(1, -1): floor,
		world.NewHexCoord(-2, 2): wall,
	} {
		if err := m.Set(coord, tile); err != nil {
			t.Fatalf("set: %v", err)
		}
	}

	id, err := db.SaveMap("test", m, saved)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// A fresh interner hands out different handles for the same names.
	loaded := ident.NewInterner()
	loaded.Intern("mod", "first")
	back, err := db.LoadMap(id, loaded)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if back.Radius != 2 || back.Len() != 3 {
		t.Fatalf("loaded %v", back)
	}
	for coord, tile := range m.Tiles {
		got, ok := back.Get(coord)
		if !ok {
			t.Fatalf("%v missing after load", coord)
		}
		if loaded.Resolve(got) != saved.Resolve(tile) {
			t.Fatalf("%v holds %v, want %v", coord, loaded.Resolve(got), saved.Resolve(tile))
		}
	}
}

func TestSaveInfoAndList(t *testing.T) {
	db := openTestDB(t)
	in := ident.NewInterner()

	m := world.NewMap[ident.ID](1)
	if err := m.Set(world.Zero, in.Intern("core", "wall")); err != nil {
		t.Fatalf("set: %v", err)
	}
	first, err := db.SaveMap("first", m, in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := db.SaveMap("second", world.NewMap[ident.ID](4), in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := db.Save(first)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if info.ID != first || info.Name != "first" || info.Radius != 1 || info.Tiles != 1 {
		t.Fatalf("info = %+v", info)
	}
	if info.Created().IsZero() {
		t.Fatal("created time missing")
	}

	saves, err := db.ListSaves()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(saves) != 2 || saves[0].ID != second || saves[1].ID != first {
		t.Fatalf("saves = %+v", saves)
	}

	if err := db.DeleteSave(first); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.LoadMap(first, in); !errors.Is(err, ErrNoSave) {
		t.Fatalf("load deleted save: %v", err)
	}
	if err := db.DeleteSave(first); !errors.Is(err, ErrNoSave) {
		t.Fatalf("delete twice: %v", err)
	}
}

func TestUnknownSave(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Save(uuid.New()); !errors.Is(err, ErrNoSave) {
		t.Fatalf("err = %v, want ErrNoSave", err)
	}
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetMeta("last_save"); err == nil {
		t.Fatal("missing key returned no error")
	}
	if err := db.SaveMeta("last_save", "a"); err != nil {
		t.Fatalf("save meta: %v", err)
	}
	if err := db.SaveMeta("last_save", "b"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}
	got, err := db.GetMeta("last_save")
	if err != nil || got != "b" {
		t.Fatalf("meta = (%q, %v)", got, err)
	}
}
