package store

import (
	"fmt"

	"github.com/cebarrett/Silents-Mechanisms/internal/nbt"
)

// marshalData converts a tile record to canonical JSON TEXT for storage.
func marshalData(data nbt.Compound) (string, error) {
	if data == nil {
		data = nbt.NewCompound()
	}
	b, err := nbt.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("marshal tile data: %w", err)
	}
	return string(b), nil
}

// unmarshalData parses TEXT written by marshalData.
func unmarshalData(text string) (nbt.Compound, error) {
	c, err := nbt.Unmarshal([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("unmarshal tile data: %w", err)
	}
	return c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
