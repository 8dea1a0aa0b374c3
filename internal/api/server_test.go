package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talgya/terraflow/internal/api"
	"github.com/talgya/terraflow/internal/config"
	"github.com/talgya/terraflow/internal/persistence"
	"github.com/talgya/terraflow/internal/render"
	"github.com/talgya/terraflow/internal/world"
)

func testServer(t *testing.T) (*api.Server, *world.World) {
	t.Helper()

	db, err := persistence.Open(filepath.Join(t.TempDir(), "worlds.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Defaults()
	cfg.World.Width = 16
	cfg.World.Height = 12
	cfg.World.Seed = 42
	cfg.World.Scale = 5
	cfg.World.Octaves = 2

	w, err := world.Generate(cfg)
	require.NoError(t, err)
	require.NoError(t, db.SaveWorld(w))

	opts := render.DefaultOptions()
	opts.Scale = 1
	return &api.Server{DB: db, Render: opts}, w
}

func TestHandleWorlds_List(t *testing.T) {
	srv, w := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/worlds", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Worlds []persistence.WorldRow `json:"worlds"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Worlds, 1)
	require.Equal(t, w.ID, body.Worlds[0].ID)
}

func TestHandleWorldDetail(t *testing.T) {
	srv, w := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/world/"+w.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, w.ID, body["id"])
	require.EqualValues(t, 16, body["width"])
	require.EqualValues(t, 12, body["height"])
	require.NotEmpty(t, body["biomes"])
}

func TestHandleWorldDetail_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/world/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleWorldMap_PNG(t *testing.T) {
	srv, w := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/world/"+w.ID+"/map.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Body.Bytes())
}

func TestMethodNotAllowed(t *testing.T) {
	srv, _ := testServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/worlds", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := api.NewRateLimiter(2, time.Minute)

	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"), "third request in the window is rejected")
	require.True(t, rl.Allow("5.6.7.8"), "limits are per client")
}
