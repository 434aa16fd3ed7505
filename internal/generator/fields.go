package generator

// Field indices of the container data view.
const (
	FieldBurnTime = iota
	FieldTotalBurnTime
	FieldEnergy
	fieldCount
)

// Fields is an indexed integer view used by container screens.
type Fields struct {
	g *CoalGenerator
}

// Fields returns the container data view.
func (g *CoalGenerator) Fields() Fields { return Fields{g: g} }

// Get returns 0 for unknown indices.
func (f Fields) Get(index int) int {
	switch index {
	case FieldBurnTime:
		return f.g.burnTime
	case FieldTotalBurnTime:
		return f.g.totalBurnTime
	case FieldEnergy:
		return f.g.EnergyStored()
	}
	return 0
}

// Set ignores unknown indices.
func (f Fields) Set(index, value int) {
	switch index {
	case FieldBurnTime:
		f.g.burnTime = max(value, 0)
	case FieldTotalBurnTime:
		f.g.totalBurnTime = max(value, 0)
	case FieldEnergy:
		f.g.setEnergyStored(value)
	}
}

func (f Fields) Size() int { return fieldCount }
