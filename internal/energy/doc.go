// Package energy implements bounded energy storage and neighbor distribution.
//
// A Store is a capped accumulator with independent receive and extract rate
// limits. Every cross-machine transfer goes through the Storage interface so
// each store enforces its own invariants regardless of its neighbors:
//
//   - 0 <= EnergyStored() <= MaxEnergyStored() at all times
//   - a simulated receive or extract never changes the stored amount
//   - a single call never moves more than the relevant rate limit
package energy
