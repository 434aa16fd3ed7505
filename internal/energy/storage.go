package energy

// Storage is the energy capability a machine exposes to its neighbors.
//
// ReceiveEnergy and ExtractEnergy return the amount actually accepted or
// released. With simulate set, the result is computed but nothing changes.
type Storage interface {
	ReceiveEnergy(maxReceive int, simulate bool) int
	ExtractEnergy(maxExtract int, simulate bool) int
	EnergyStored() int
	MaxEnergyStored() int
	CanReceive() bool
	CanExtract() bool
}

// Store is a bounded Storage with independent per-call rate limits.
type Store struct {
	capacity   int
	maxReceive int
	maxExtract int
	energy     int
}

// NewStore creates a store holding initial energy, clamped to [0, capacity].
func NewStore(capacity, maxReceive, maxExtract, initial int) *Store {
	s := &Store{
		capacity:   max(capacity, 0),
		maxReceive: max(maxReceive, 0),
		maxExtract: max(maxExtract, 0),
	}
	s.SetEnergyDirectly(initial)
	return s
}

// ReceiveEnergy accepts min(maxReceive, rate limit, free space), never negative.
func (s *Store) ReceiveEnergy(maxReceive int, simulate bool) int {
	if !s.CanReceive() {
		return 0
	}
	accepted := min(maxReceive, s.maxReceive, s.capacity-s.energy)
	if accepted <= 0 {
		return 0
	}
	if !simulate {
		s.energy += accepted
	}
	return accepted
}

// ExtractEnergy releases min(maxExtract, rate limit, stored), never negative.
func (s *Store) ExtractEnergy(maxExtract int, simulate bool) int {
	if !s.CanExtract() {
		return 0
	}
	released := min(maxExtract, s.maxExtract, s.energy)
	if released <= 0 {
		return 0
	}
	if !simulate {
		s.energy -= released
	}
	return released
}

// SetEnergyDirectly restores an exact amount, bypassing rate limits.
// Only persistence and client sync should call it.
func (s *Store) SetEnergyDirectly(value int) {
	s.energy = min(max(value, 0), s.capacity)
}

func (s *Store) EnergyStored() int    { return s.energy }
func (s *Store) MaxEnergyStored() int { return s.capacity }
func (s *Store) CanReceive() bool     { return s.maxReceive > 0 }
func (s *Store) CanExtract() bool     { return s.maxExtract > 0 }

// MaxReceive returns the per-call receive limit.
func (s *Store) MaxReceive() int { return s.maxReceive }

// MaxExtract returns the per-call extract limit.
func (s *Store) MaxExtract() int { return s.maxExtract }
