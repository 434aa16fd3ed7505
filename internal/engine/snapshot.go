package engine

import (
	"context"
	"fmt"

	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
	"github.com/cebarrett/Silents-Mechanisms/internal/store"
	"github.com/cebarrett/Silents-Mechanisms/internal/world"
)

// Snapshot converts every tile of w into a save record, in position order.
func Snapshot(w *world.World) []store.TileRecord {
	tiles := w.Tiles()
	records := make([]store.TileRecord, 0, len(tiles))
	for _, p := range tiles {
		state := w.BlockState(p.Pos)
		records = append(records, store.TileRecord{
			ID:    p.ID,
			Kind:  p.Tile.Kind(),
			Block: state.Block,
			Lit:   state.Lit,
			Pos:   p.Pos,
			Data:  p.Tile.Save(nbt.NewCompound()),
		})
	}
	return records
}

// Restore places one freshly constructed tile per record into w and loads
// its saved state. Unknown kinds fail with a *LoadError.
func Restore(w *world.World, types *world.TileTypes, name string, records []store.TileRecord) error {
	for _, rec := range records {
		tt, ok := types.Lookup(rec.Kind)
		if !ok {
			return &LoadError{World: name, TileID: rec.ID, Kind: rec.Kind, Message: "unknown tile kind"}
		}
		if _, exists := w.TileEntity(rec.Pos); exists {
			return &LoadError{World: name, TileID: rec.ID, Kind: rec.Kind, Message: fmt.Sprintf("position %s already occupied", rec.Pos)}
		}
		block := rec.Block
		if block == "" {
			block = tt.Block
		}
		te := tt.New()
		w.PlaceWithID(rec.Pos, block, te, rec.ID)
		te.Load(rec.Data)
		w.SetBlockState(rec.Pos, world.BlockState{Block: block, Lit: rec.Lit})
	}
	return nil
}

// Load resumes a saved world. The returned engine owns a fresh authoritative
// world, a mirror built from it, and a clock at the saved tick. opts are
// applied after the store and clock so callers may still override them.
func Load(ctx context.Context, s *store.Store, name string, types *world.TileTypes, opts ...Option) (*Engine, error) {
	tick, records, err := s.LoadWorld(ctx, name)
	if err != nil {
		return nil, err
	}

	w := world.New()
	if err := Restore(w, types, name, records); err != nil {
		return nil, err
	}
	mirror, err := w.Mirror(types)
	if err != nil {
		return nil, &LoadError{World: name, Message: err.Error()}
	}

	base := []Option{WithStore(s, name), WithClock(NewClockAt(tick)), WithMirror(mirror)}
	return New(w, types, append(base, opts...)...)
}
