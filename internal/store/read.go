package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrWorldNotFound is returned by LoadWorld for an unknown world name.
var ErrWorldNotFound = errors.New("world not found")

// WorldInfo summarizes one saved world. Kinds counts saved tiles per kind.
type WorldInfo struct {
	Name  string         `json:"name"`
	Tick  int64          `json:"tick"`
	Tiles int            `json:"tiles"`
	Kinds map[string]int `json:"kinds"`
}

// LoadWorld returns the saved tick and tiles of a world, tiles ordered by
// (y, z, x). Returns an empty slice (not nil) for a world with no tiles.
func (s *Store) LoadWorld(ctx context.Context, name string) (int64, []TileRecord, error) {
	var tick int64
	err := s.db.QueryRowContext(ctx, `SELECT tick FROM worlds WHERE name = ?`, name).Scan(&tick)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("load world %q: %w", name, ErrWorldNotFound)
	}
	if err != nil {
		return 0, nil, fmt.Errorf("load world %q: %w", name, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, block, lit, x, y, z, data
		FROM tile_entities
		WHERE world = ?
		ORDER BY y ASC, z ASC, x ASC
	`, name)
	if err != nil {
		return 0, nil, fmt.Errorf("query tiles: %w", err)
	}
	defer rows.Close()

	tiles := []TileRecord{}
	for rows.Next() {
		var (
			t    TileRecord
			lit  int
			data string
		)
		if err := rows.Scan(&t.ID, &t.Kind, &t.Block, &lit, &t.Pos.X, &t.Pos.Y, &t.Pos.Z, &data); err != nil {
			return 0, nil, fmt.Errorf("scan tile: %w", err)
		}
		t.Lit = lit != 0
		if t.Data, err = unmarshalData(data); err != nil {
			return 0, nil, fmt.Errorf("tile %s: %w", t.ID, err)
		}
		tiles = append(tiles, t)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, fmt.Errorf("iterate tiles: %w", err)
	}

	return tick, tiles, nil
}

// ListWorlds returns every saved world ordered by name, with tile counts
// per kind.
func (s *Store) ListWorlds(ctx context.Context) ([]WorldInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, tick, tile_count FROM worlds ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query worlds: %w", err)
	}
	defer rows.Close()

	worlds := []WorldInfo{}
	for rows.Next() {
		w := WorldInfo{Kinds: map[string]int{}}
		if err := rows.Scan(&w.Name, &w.Tick, &w.Tiles); err != nil {
			return nil, fmt.Errorf("scan world: %w", err)
		}
		worlds = append(worlds, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate worlds: %w", err)
	}
	byName := make(map[string]*WorldInfo, len(worlds))
	for i := range worlds {
		byName[worlds[i].Name] = &worlds[i]
	}

	kinds, err := s.db.QueryContext(ctx, `
		SELECT world, kind, COUNT(*) FROM tile_entities GROUP BY world, kind
	`)
	if err != nil {
		return nil, fmt.Errorf("count kinds: %w", err)
	}
	defer kinds.Close()

	for kinds.Next() {
		var (
			world, kind string
			n           int
		)
		if err := kinds.Scan(&world, &kind, &n); err != nil {
			return nil, fmt.Errorf("scan kind count: %w", err)
		}
		if w, ok := byName[world]; ok {
			w.Kinds[kind] = n
		}
	}
	if err := kinds.Err(); err != nil {
		return nil, fmt.Errorf("iterate kind counts: %w", err)
	}
	return worlds, nil
}
