package generator

import (
	"github.com/cebarrett/Silents-Mechanisms/internal/item"
	"github.com/cebarrett/Silents-Mechanisms/internal/world/geom"
)

var fuelSlots = []int{FuelSlot}

// SlotsForFace exposes the fuel slot on every side.
func (g *CoalGenerator) SlotsForFace(geom.Direction) []int { return fuelSlots }

// CanInsert accepts fuel only.
func (g *CoalGenerator) CanInsert(_ int, stack item.Stack, _ geom.Direction) bool {
	return g.items.IsFuel(stack)
}

// CanExtract lets out only the empty buckets left by liquid fuel.
func (g *CoalGenerator) CanExtract(_ int, stack item.Stack, _ geom.Direction) bool {
	return !stack.IsEmpty() && stack.Item.ID == item.Bucket
}
