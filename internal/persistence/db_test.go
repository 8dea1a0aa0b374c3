package persistence_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/terraflow/internal/config"
	"github.com/talgya/terraflow/internal/persistence"
	"github.com/talgya/terraflow/internal/world"
)

func openTestDB(t *testing.T) *persistence.DB {
	t.Helper()
	db, err := persistence.Open(filepath.Join(t.TempDir(), "worlds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func generateTestWorld(t *testing.T, seed int64) *world.World {
	t.Helper()
	cfg := config.Defaults()
	cfg.World.Width = 20
	cfg.World.Height = 12
	cfg.World.Seed = seed
	cfg.World.Scale = 6
	cfg.World.Octaves = 2

	w, err := world.Generate(cfg)
	require.NoError(t, err)
	return w
}

func TestSaveLoadWorld_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	w := generateTestWorld(t, 42)

	require.NoError(t, db.SaveWorld(w))

	got, err := db.LoadWorld(w.ID)
	require.NoError(t, err)

	require.Equal(t, w.ID, got.ID)
	require.Equal(t, w.Seed, got.Seed)
	require.Equal(t, w.RiverThreshold, got.RiverThreshold)
	require.Equal(t, w.Elevation, got.Elevation)
	require.Equal(t, w.Moisture, got.Moisture)
	require.Equal(t, w.Temperature, got.Temperature)
	require.Equal(t, w.Accumulation, got.Accumulation)
	require.Equal(t, w.Rivers, got.Rivers)
	require.Equal(t, w.Basins, got.Basins)
	require.Equal(t, w.Biomes, got.Biomes)

	// Directions are rebuilt from elevation, not stored, and must match.
	require.Equal(t, w.Directions, got.Directions)
}

func TestLoadWorld_NotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.LoadWorld("no-such-id")
	require.ErrorIs(t, err, persistence.ErrNotFound)
}

func TestListWorlds(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.ListWorlds()
	require.NoError(t, err)
	require.Empty(t, rows)

	a := generateTestWorld(t, 1)
	b := generateTestWorld(t, 2)
	require.NoError(t, db.SaveWorld(a))
	require.NoError(t, db.SaveWorld(b))

	rows, err = db.ListWorlds()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ids := []string{rows[0].ID, rows[1].ID}
	require.Contains(t, ids, a.ID)
	require.Contains(t, ids, b.ID)
	for _, row := range rows {
		require.Equal(t, 20, row.Width)
		require.Equal(t, 12, row.Height)
		require.Greater(t, row.BasinCount, 0)
	}
}

func TestSaveWorld_Idempotent(t *testing.T) {
	db := openTestDB(t)
	w := generateTestWorld(t, 42)

	require.NoError(t, db.SaveWorld(w))
	require.NoError(t, db.SaveWorld(w), "re-saving the same world replaces, not duplicates")

	rows, err := db.ListWorlds()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestDeleteWorld(t *testing.T) {
	db := openTestDB(t)
	w := generateTestWorld(t, 42)
	require.NoError(t, db.SaveWorld(w))

	require.NoError(t, db.DeleteWorld(w.ID))
	_, err := db.LoadWorld(w.ID)
	require.ErrorIs(t, err, persistence.ErrNotFound)
}
