package store

import (
	"context"
	"fmt"

	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

// TileRecord is one saved tile entity.
type TileRecord struct {
	ID    string
	Kind  string
	Block string
	Lit   bool
	Pos   geom.Pos
	Data  nbt.Compound
}

// SaveWorld replaces every tile of the named world and records its tick.
// The write is atomic: readers see either the previous save or this one.
func (s *Store) SaveWorld(ctx context.Context, name string, tick int64, tiles []TileRecord) error {
	if name == "" {
		return fmt.Errorf("save world: name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save world: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO worlds (name, tick, tile_count)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET tick = excluded.tick, tile_count = excluded.tile_count
	`, name, tick, len(tiles))
	if err != nil {
		return fmt.Errorf("save world: upsert world: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tile_entities WHERE world = ?`, name); err != nil {
		return fmt.Errorf("save world: clear tiles: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tile_entities (id, world, kind, block, lit, x, y, z, data)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("save world: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tiles {
		data, err := marshalData(t.Data)
		if err != nil {
			return fmt.Errorf("save world: tile %s: %w", t.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			t.ID, name, t.Kind, t.Block, boolToInt(t.Lit),
			t.Pos.X, t.Pos.Y, t.Pos.Z, data,
		)
		if err != nil {
			return fmt.Errorf("save world: insert tile %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save world: commit: %w", err)
	}
	return nil
}

// DeleteWorld removes a world and its tiles. Deleting a missing world is not
// an error.
func (s *Store) DeleteWorld(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM worlds WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete world: %w", err)
	}
	return nil
}
