// Package persistence stores generated worlds in SQLite: one metadata
// row per world plus its grids as compressed blobs.
package persistence

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite"

	"github.com/talgya/terraflow/internal/hydrology"
	"github.com/talgya/terraflow/internal/world"
)

// ErrNotFound indicates no world with the requested id.
var ErrNotFound = errors.New("persistence: world not found")

// Grid kinds stored per world. Flow directions are not stored — they
// are a pure function of elevation and get recomputed on load.
const (
	kindElevation    = "elevation"
	kindMoisture     = "moisture"
	kindTemperature  = "temperature"
	kindAccumulation = "accumulation"
	kindRivers       = "rivers"
	kindBasins       = "basins"
	kindBiomes       = "biomes"
)

// DB wraps a SQLite connection for world storage.
type DB struct {
	conn *sqlx.DB
}

// WorldRow is the metadata record for a stored world.
type WorldRow struct {
	ID             string  `db:"id" json:"id"`
	CreatedAt      string  `db:"created_at" json:"created_at"`
	Seed           int64   `db:"seed" json:"seed"`
	Width          int     `db:"width" json:"width"`
	Height         int     `db:"height" json:"height"`
	RiverThreshold float64 `db:"river_threshold" json:"river_threshold"`
	BasinCount     int     `db:"basin_count" json:"basin_count"`
	RiverCells     int     `db:"river_cells" json:"river_cells"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
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
	CREATE TABLE IF NOT EXISTS worlds (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		seed INTEGER NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		river_threshold REAL NOT NULL,
		basin_count INTEGER NOT NULL,
		river_cells INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS grids (
		world_id TEXT NOT NULL REFERENCES worlds(id),
		kind TEXT NOT NULL,
		data BLOB NOT NULL,
		PRIMARY KEY (world_id, kind)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveWorld writes a world and all of its grids in one transaction.
func (db *DB) SaveWorld(w *world.World) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT OR REPLACE INTO worlds
		(id, created_at, seed, width, height, river_threshold, basin_count, river_cells)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, time.Now().UTC().Format(time.RFC3339), w.Seed,
		w.Width(), w.Height(), w.RiverThreshold, w.BasinCount(), w.RiverCells(),
	)
	if err != nil {
		return fmt.Errorf("insert world %s: %w", w.ID, err)
	}

	grids := []struct {
		kind string
		grid any
	}{
		{kindElevation, w.Elevation},
		{kindMoisture, w.Moisture},
		{kindTemperature, w.Temperature},
		{kindAccumulation, w.Accumulation},
		{kindRivers, w.Rivers},
		{kindBasins, w.Basins},
		{kindBiomes, w.Biomes},
	}
	for _, g := range grids {
		blob, err := encodeGrid(g.grid)
		if err != nil {
			return fmt.Errorf("encode %s: %w", g.kind, err)
		}
		_, err = tx.Exec(
			"INSERT OR REPLACE INTO grids (world_id, kind, data) VALUES (?, ?, ?)",
			w.ID, g.kind, blob,
		)
		if err != nil {
			return fmt.Errorf("insert %s grid: %w", g.kind, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("world saved", "id", w.ID, "basins", w.BasinCount(), "river_cells", w.RiverCells())
	return nil
}

// LoadWorld reads a stored world back, recomputing the flow direction
// grid from the persisted elevation.
func (db *DB) LoadWorld(id string) (*world.World, error) {
	var row WorldRow
	if err := db.conn.Get(&row, "SELECT * FROM worlds WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	w := &world.World{
		ID:             row.ID,
		Seed:           row.Seed,
		RiverThreshold: row.RiverThreshold,
	}
	loads := []struct {
		kind string
		dst  any
	}{
		{kindElevation, &w.Elevation},
		{kindMoisture, &w.Moisture},
		{kindTemperature, &w.Temperature},
		{kindAccumulation, &w.Accumulation},
		{kindRivers, &w.Rivers},
		{kindBasins, &w.Basins},
		{kindBiomes, &w.Biomes},
	}
	for _, l := range loads {
		var blob []byte
		err := db.conn.Get(&blob, "SELECT data FROM grids WHERE world_id = ? AND kind = ?", id, l.kind)
		if err != nil {
			return nil, fmt.Errorf("load %s grid: %w", l.kind, err)
		}
		if err := decodeGrid(blob, l.dst); err != nil {
			return nil, fmt.Errorf("decode %s grid: %w", l.kind, err)
		}
	}

	dirs, err := hydrology.FlowDirections(w.Elevation)
	if err != nil {
		return nil, fmt.Errorf("rebuild flow directions: %w", err)
	}
	w.Directions = dirs
	return w, nil
}

// ListWorlds returns metadata for every stored world, newest first.
func (db *DB) ListWorlds() ([]WorldRow, error) {
	var rows []WorldRow
	err := db.conn.Select(&rows, "SELECT * FROM worlds ORDER BY created_at DESC")
	return rows, err
}

// DeleteWorld removes a world and its grids.
func (db *DB) DeleteWorld(id string) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM grids WHERE world_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM worlds WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

// encodeGrid serializes a grid with gob and compresses it with zstd.
// The grids are regular and repetitive, so compression pays for itself
// on anything bigger than toy maps.
func encodeGrid(grid any) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if err := gob.NewEncoder(zw).Encode(grid); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGrid(blob []byte, dst any) error {
	zr, err := zstd.NewReader(bytes.NewReader(blob))
	if err != nil {
		return err
	}
	defer zr.Close()
	return gob.NewDecoder(zr).Decode(dst)
}
