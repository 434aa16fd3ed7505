package energy

import "github.com/cebarrett/Silents-Mechanisms/internal/world/geom"

// Lookup finds the energy capability of the block adjacent to a position.
// side is the face of the neighbor that touches the source block.
type Lookup interface {
	EnergyAt(pos geom.Pos, side geom.Direction) (Storage, bool)
}

// SendToNeighbors pushes energy from a store to the six adjacent blocks in
// geom.Directions order and returns the total moved.
//
// maxSend bounds the whole pass, not each neighbor: every real extraction
// draws from the allowance left over by earlier neighbors. Neighbors that are
// missing, cannot receive, or are full are skipped; undelivered energy stays
// in the source.
func SendToNeighbors(lookup Lookup, pos geom.Pos, from Storage, maxSend int) int {
	if lookup == nil || from == nil || !from.CanExtract() {
		return 0
	}

	remaining := maxSend
	sent := 0
	for _, dir := range geom.Directions {
		if remaining <= 0 {
			break
		}
		neighbor, ok := lookup.EnergyAt(pos.Offset(dir), dir.Opposite())
		if !ok || neighbor == nil || !neighbor.CanReceive() {
			continue
		}

		available := from.ExtractEnergy(remaining, true)
		if available <= 0 {
			break
		}
		accepted := neighbor.ReceiveEnergy(available, false)
		if accepted <= 0 {
			continue
		}
		moved := from.ExtractEnergy(accepted, false)
		sent += moved
		remaining -= moved
	}
	return sent
}
