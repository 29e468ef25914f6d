// Package persistence stores placed tile maps in SQLite. Tiles are written by
// their portable (namespace, name) identifiers, never by resolved handles.
package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexworks/internal/ident"
	"github.com/talgya/hexworks/internal/world"
)

// ErrNoSave is returned when a requested save does not exist.
var ErrNoSave = errors.New("save not found")

// DB wraps a SQLite connection for map persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		radius INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS save_tiles (
		save_id TEXT NOT NULL REFERENCES saves(id) ON DELETE CASCADE,
		q INTEGER NOT NULL,
		r INTEGER NOT NULL,
		namespace TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (save_id, q, r)
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveInfo describes one stored map.
type SaveInfo struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Radius    int32     `db:"radius"`
	CreatedAt int64     `db:"created_at"` // Unix nanoseconds
	Tiles     int       `db:"tiles"`
}

// Created returns CreatedAt as a time.
func (s SaveInfo) Created() time.Time {
	return time.Unix(0, s.CreatedAt)
}

type tileRow struct {
	Q         int32  `db:"q"`
	R         int32  `db:"r"`
	Namespace string `db:"namespace"`
	Name      string `db:"name"`
}

// SaveMap writes m as a new save and returns its id. Tiles are stored by the
// (namespace, name) that in resolves them to.
func (db *DB) SaveMap(name string, m *world.Map[ident.ID], in *ident.Interner) (uuid.UUID, error) {
	id := uuid.New()
	slog.Info("saving map", "save", id, "name", name, "tiles", m.Len())

	tx, err := db.conn.Beginx()
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO saves (id, name, radius, created_at) VALUES (?, ?, ?, ?)",
		id, name, m.Radius, time.Now().UnixNano(),
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert save: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO save_tiles
		(save_id, q, r, namespace, name) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return uuid.Nil, err
	}
	defer stmt.Close()

	for _, coord := range m.Coords() {
		raw := in.Resolve(m.Tiles[coord])
		if _, err := stmt.Exec(id, coord.Q, coord.R, raw.Namespace, raw.Name); err != nil {
			return uuid.Nil, fmt.Errorf("insert tile %s: %w", coord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit save: %w", err)
	}
	return id, nil
}

// LoadMap reads a save back. Tile identifiers are interned through in, so
// names the current content does not define still round-trip.
func (db *DB) LoadMap(id uuid.UUID, in *ident.Interner) (*world.Map[ident.ID], error) {
	info, err := db.Save(id)
	if err != nil {
		return nil, err
	}

	var rows []tileRow
	if err := db.conn.Select(&rows,
		"SELECT q, r, namespace, name FROM save_tiles WHERE save_id = ? ORDER BY q, r", id,
	); err != nil {
		return nil, fmt.Errorf("select tiles: %w", err)
	}

	m := world.NewMap[ident.ID](info.Radius)
	for _, row := range rows {
		coord := world.NewHexCoord(row.Q, row.R)
		if err := m.Set(coord, in.Intern(row.Namespace, row.Name)); err != nil {
			return nil, fmt.Errorf("load save %s: %w", id, err)
		}
	}
	slog.Info("map loaded", "save", id, "name", info.Name, "tiles", m.Len())
	return m, nil
}

// Save returns the description of one save.
func (db *DB) Save(id uuid.UUID) (SaveInfo, error) {
	var info SaveInfo
	err := db.conn.Get(&info, `SELECT s.id, s.name, s.radius, s.created_at,
		(SELECT COUNT(*) FROM save_tiles t WHERE t.save_id = s.id) AS tiles
		FROM saves s WHERE s.id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveInfo{}, fmt.Errorf("%w: %s", ErrNoSave, id)
	}
	if err != nil {
		return SaveInfo{}, fmt.Errorf("get save: %w", err)
	}
	return info, nil
}

// ListSaves returns every save, newest first.
func (db *DB) ListSaves() ([]SaveInfo, error) {
	var saves []SaveInfo
	err := db.conn.Select(&saves, `SELECT s.id, s.name, s.radius, s.created_at,
		(SELECT COUNT(*) FROM save_tiles t WHERE t.save_id = s.id) AS tiles
		FROM saves s ORDER BY s.created_at DESC, s.id`)
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return saves, nil
}

// DeleteSave removes a save and its tiles.
func (db *DB) DeleteSave(id uuid.UUID) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM save_tiles WHERE save_id = ?", id); err != nil {
		return fmt.Errorf("delete tiles: %w", err)
	}
	res, err := tx.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNoSave, id)
	}
	return tx.Commit()
}

// SaveMeta stores a key-value pair in world metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}
