package world

import (
	"fmt"
	"sort"
)

// TileType describes how to construct a tile of one kind.
type TileType struct {
	Kind  string
	Block string
	New   func() TileEntity
}

// TileTypes maps kind names to constructors. Saves store only the kind, so
// every kind found in a save must be registered before loading it.
type TileTypes struct {
	types map[string]TileType
}

// NewTileTypes returns an empty registry.
func NewTileTypes() *TileTypes {
	return &TileTypes{types: make(map[string]TileType)}
}

// Register adds tt. Kinds must be unique.
func (r *TileTypes) Register(tt TileType) error {
	if tt.Kind == "" || tt.New == nil {
		return fmt.Errorf("register tile type: kind and constructor are required")
	}
	if _, exists := r.types[tt.Kind]; exists {
		return fmt.Errorf("register tile type: duplicate kind %q", tt.Kind)
	}
	if tt.Block == "" {
		tt.Block = tt.Kind
	}
	r.types[tt.Kind] = tt
	return nil
}

// Lookup returns the type registered for kind.
func (r *TileTypes) Lookup(kind string) (TileType, bool) {
	tt, ok := r.types[kind]
	return tt, ok
}

// Kinds returns registered kinds in sorted order.
func (r *TileTypes) Kinds() []string {
	kinds := make([]string, 0, len(r.types))
	for k := range r.types {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
