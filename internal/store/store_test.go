package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "world.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func generatorRecord(id string, pos geom.Pos, energy int) TileRecord {
	data := nbt.NewCompound()
	data.PutInt("BurnTime", 10)
	data.PutInt("TotalBurnTime", 1600)
	data.PutInt("Energy", energy)
	return TileRecord{
		ID:    id,
		Kind:  "coal_generator",
		Block: "mechanisms:coal_generator",
		Lit:   true,
		Pos:   pos,
		Data:  data,
	}
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoError(t, err, "open iteration %d", i)
		require.NoError(t, s.Close())
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"worlds", "tile_entities"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoError(t, err, "table %q missing", table)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := openTestStore(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("user_version", "2"))
}

func TestOpen_CreatesKindIndex(t *testing.T) {
	s := openTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='index' AND name='idx_tile_entities_kind'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "idx_tile_entities_kind", name)
}

func TestSaveLoadWorld_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tiles := []TileRecord{
		generatorRecord("gen-0002", geom.Pos{X: 0, Y: 1, Z: 0}, 500),
		generatorRecord("gen-0001", geom.Pos{X: 5, Y: 0, Z: 0}, 250),
	}
	require.NoError(t, s.SaveWorld(ctx, "overworld", 42, tiles))

	tick, got, err := s.LoadWorld(ctx, "overworld")
	require.NoError(t, err)
	assert.Equal(t, int64(42), tick)
	require.Len(t, got, 2)

	// Ordered by y before x.
	assert.Equal(t, "gen-0001", got[0].ID)
	assert.Equal(t, "gen-0002", got[1].ID)
	assert.Equal(t, geom.Pos{X: 5, Y: 0, Z: 0}, got[0].Pos)
	assert.True(t, got[0].Lit)
	assert.Equal(t, "mechanisms:coal_generator", got[0].Block)
	assert.Equal(t, 250, got[0].Data.GetInt("Energy"))
	assert.Equal(t, 1600, got[1].Data.GetInt("TotalBurnTime"))
}

func TestSaveWorld_ReplacesPreviousSave(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWorld(ctx, "w", 1, []TileRecord{
		generatorRecord("a", geom.Pos{}, 1),
		generatorRecord("b", geom.Pos{X: 1}, 2),
	}))
	require.NoError(t, s.SaveWorld(ctx, "w", 2, []TileRecord{
		generatorRecord("b", geom.Pos{X: 1}, 9),
	}))

	tick, got, err := s.LoadWorld(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, int64(2), tick)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, 9, got[0].Data.GetInt("Energy"))
}

func TestSaveWorld_DuplicatePositionRollsBack(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWorld(ctx, "w", 1, []TileRecord{generatorRecord("a", geom.Pos{}, 1)}))

	err := s.SaveWorld(ctx, "w", 2, []TileRecord{
		generatorRecord("x", geom.Pos{}, 1),
		generatorRecord("y", geom.Pos{}, 2),
	})
	require.Error(t, err)

	tick, got, err := s.LoadWorld(ctx, "w")
	require.NoError(t, err)
	assert.Equal(t, int64(1), tick, "failed save must not be visible")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestSaveWorld_RequiresName(t *testing.T) {
	s := openTestStore(t)
	assert.Error(t, s.SaveWorld(context.Background(), "", 0, nil))
}

func TestLoadWorld_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.LoadWorld(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrWorldNotFound)
}

func TestLoadWorld_EmptyWorldReturnsEmptySlice(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWorld(ctx, "empty", 7, nil))

	tick, got, err := s.LoadWorld(ctx, "empty")
	require.NoError(t, err)
	assert.Equal(t, int64(7), tick)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSaveWorld_DataIsCanonicalJSON(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWorld(ctx, "w", 0, []TileRecord{generatorRecord("a", geom.Pos{}, 3)}))

	var data string
	require.NoError(t, s.DB().QueryRow("SELECT data FROM tile_entities WHERE id = 'a'").Scan(&data))
	assert.Equal(t, `{"BurnTime":10,"Energy":3,"TotalBurnTime":1600}`, data)
}

func TestLoadWorld_CorruptDataFails(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveWorld(ctx, "w", 0, []TileRecord{generatorRecord("a", geom.Pos{}, 3)}))
	_, err := s.DB().Exec("UPDATE tile_entities SET data = 'not json' WHERE id = 'a'")
	require.NoError(t, err)

	_, _, err = s.LoadWorld(ctx, "w")
	assert.Error(t, err)
}

func TestListAndDeleteWorlds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	worlds, err := s.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Empty(t, worlds)

	require.NoError(t, s.SaveWorld(ctx, "nether", 3, nil))
	require.NoError(t, s.SaveWorld(ctx, "end", 5, []TileRecord{generatorRecord("a", geom.Pos{}, 1)}))

	worlds, err = s.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Equal(t, []WorldInfo{
		{Name: "end", Tick: 5, Tiles: 1, Kinds: map[string]int{"coal_generator": 1}},
		{Name: "nether", Tick: 3, Tiles: 0, Kinds: map[string]int{}},
	}, worlds)

	require.NoError(t, s.DeleteWorld(ctx, "end"))
	require.NoError(t, s.DeleteWorld(ctx, "never-saved"))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM tile_entities").Scan(&count))
	assert.Zero(t, count, "tiles cascade with their world")

	_, _, err = s.LoadWorld(ctx, "end")
	assert.ErrorIs(t, err, ErrWorldNotFound)
}

func TestSaveWorld_SameTileIDsInTwoWorlds(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	tiles := []TileRecord{generatorRecord("tile-0001", geom.Pos{}, 5)}

	require.NoError(t, s.SaveWorld(ctx, "world", 4, tiles))
	require.NoError(t, s.SaveWorld(ctx, "world_copy", 4, tiles))

	for _, name := range []string{"world", "world_copy"} {
		_, got, err := s.LoadWorld(ctx, name)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "tile-0001", got[0].ID)
	}
}

func TestOpen_MigratesVersion1Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	for _, stmt := range []string{
		`CREATE TABLE worlds (name TEXT PRIMARY KEY, tick INTEGER NOT NULL, tile_count INTEGER NOT NULL DEFAULT 0)`,
		`CREATE TABLE tile_entities (
			id TEXT PRIMARY KEY, world TEXT NOT NULL REFERENCES worlds(name) ON DELETE CASCADE,
			kind TEXT NOT NULL, block TEXT NOT NULL, lit INTEGER NOT NULL DEFAULT 0,
			x INTEGER NOT NULL, y INTEGER NOT NULL, z INTEGER NOT NULL, data TEXT NOT NULL,
			UNIQUE (world, x, y, z))`,
		`CREATE INDEX idx_tile_entities_kind ON tile_entities(world, kind)`,
		`INSERT INTO worlds VALUES ('world', 7, 1)`,
		`INSERT INTO tile_entities VALUES ('a', 'world', 'coal_generator', 'mechanisms:coal_generator', 1, 0, 0, 0, '{"Energy":9}')`,
		`PRAGMA user_version = 1`,
	} {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.NoError(t, s.verifyPragma("user_version", "2"))

	ctx := context.Background()
	tick, tiles, err := s.LoadWorld(ctx, "world")
	require.NoError(t, err)
	assert.Equal(t, int64(7), tick)
	require.Len(t, tiles, 1)
	assert.Equal(t, 9, tiles[0].Data.GetInt("Energy"))
	assert.True(t, tiles[0].Lit)

	require.NoError(t, s.SaveWorld(ctx, "copy", 7, tiles))
	worlds, err := s.ListWorlds(ctx)
	require.NoError(t, err)
	assert.Len(t, worlds, 2)
}

func TestOpen_RejectsNewerSaveFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.DB().Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	assert.ErrorContains(t, err, "newer than supported")
}
