// Package geom holds block positions and the six axis directions.
package geom

import (
	"cmp"
	"fmt"
)

// Pos is an integer block position.
type Pos struct {
	X, Y, Z int
}

// Offset returns the position one block away in dir.
func (p Pos) Offset(dir Direction) Pos {
	dx, dy, dz := dir.Vector()
	return Pos{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Compare orders positions by Y, then Z, then X.
func (p Pos) Compare(o Pos) int {
	if c := cmp.Compare(p.Y, o.Y); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Z, o.Z); c != 0 {
		return c
	}
	return cmp.Compare(p.X, o.X)
}

// Direction is one of the six block faces.
type Direction int

const (
	Down Direction = iota
	Up
	North
	South
	West
	East
)

// Directions is the fixed enumeration order used for neighbor iteration.
var Directions = [...]Direction{Down, Up, North, South, West, East}

var directionNames = [...]string{"down", "up", "north", "south", "west", "east"}

func (d Direction) String() string {
	if d < Down || d > East {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection returns the direction named name, as printed by String.
func ParseDirection(name string) (Direction, bool) {
	for _, d := range Directions {
		if directionNames[d] == name {
			return d, true
		}
	}
	return 0, false
}

// Vector returns the unit offset for d. North is -Z, West is -X.
func (d Direction) Vector() (dx, dy, dz int) {
	switch d {
	case Down:
		return 0, -1, 0
	case Up:
		return 0, 1, 0
	case North:
		return 0, 0, -1
	case South:
		return 0, 0, 1
	case West:
		return -1, 0, 0
	case East:
		return 1, 0, 0
	}
	return 0, 0, 0
}

// Opposite returns the face pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Down:
		return Up
	case Up:
		return Down
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	}
	return d
}
