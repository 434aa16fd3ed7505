package engine

import (
	"errors"
	"fmt"
)

// LoadError reports a save record that could not be turned back into a tile.
type LoadError struct {
	// World is the save name.
	World string

	// TileID identifies the failing record.
	TileID string

	// Kind is the record's tile kind.
	Kind string

	// Message is a human-readable description.
	Message string
}

func (e *LoadError) Error() string {
	if e.TileID != "" {
		return fmt.Sprintf("load %s: tile %s (%s): %s", e.World, e.TileID, e.Kind, e.Message)
	}
	return fmt.Sprintf("load %s: %s", e.World, e.Message)
}

// IsLoadError returns true if err wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
