package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirections_Order(t *testing.T) {
	names := make([]string, 0, len(Directions))
	for _, d := range Directions {
		names = append(names, d.String())
	}
	assert.Equal(t, []string{"down", "up", "north", "south", "west", "east"}, names)
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}
	_, ok := ParseDirection("sideways")
	assert.False(t, ok)
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range Directions {
		assert.Equal(t, d, d.Opposite().Opposite(), "double opposite of %s", d)
		assert.NotEqual(t, d, d.Opposite())
	}
}

func TestPos_OffsetRoundTrip(t *testing.T) {
	p := Pos{X: 3, Y: 64, Z: -2}
	for _, d := range Directions {
		assert.Equal(t, p, p.Offset(d).Offset(d.Opposite()), "offset %s", d)
	}
	assert.Equal(t, Pos{X: 4, Y: 64, Z: -2}, p.Offset(East))
	assert.Equal(t, Pos{X: 3, Y: 63, Z: -2}, p.Offset(Down))
}

func TestPos_Compare(t *testing.T) {
	assert.Negative(t, Pos{X: 5, Y: 0, Z: 0}.Compare(Pos{X: 0, Y: 1, Z: 0}))
	assert.Negative(t, Pos{X: 5, Y: 0, Z: 0}.Compare(Pos{X: 0, Y: 0, Z: 1}))
	assert.Negative(t, Pos{X: 0, Y: 0, Z: 0}.Compare(Pos{X: 1, Y: 0, Z: 0}))
	assert.Zero(t, Pos{X: 1, Y: 2, Z: 3}.Compare(Pos{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, "(1,2,3)", Pos{X: 1, Y: 2, Z: 3}.String())
}
