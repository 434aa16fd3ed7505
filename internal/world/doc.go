// Package world is a headless host for tile entities.
//
// A World owns block states and tile entities keyed by position. It plays
// the role the game engine plays for a real machine: it decides whether the
// simulation is authoritative or a client mirror, answers neighbor
// capability queries, and records which blocks need a client resync.
//
// Tiles are visited in geom.Pos.Compare order so a run is reproducible.
package world
