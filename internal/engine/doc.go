// Package engine drives a world one tick at a time.
//
// Each Step advances the clock, ticks every tile of the authoritative world
// in position order, then forwards the update tag of every tile that asked
// for a block update to the same position in the mirror world. The mirror
// stands in for an observing client: it never ticks and only changes through
// those forwarded packets.
//
// When a store is attached the engine also snapshots the world every
// SaveEvery ticks, and Load resumes a world from its last save.
//
// The engine is single-goroutine. Step and Run must not be called
// concurrently; Clock may be read from anywhere.
package engine
