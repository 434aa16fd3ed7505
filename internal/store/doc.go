// Package store provides SQLite-backed durable storage for world saves.
//
// A save is one row in worlds plus one row per tile entity. Tile state is
// the tile's persistence record encoded with nbt.Marshal, so equal states
// always produce byte-identical rows.
//
// # Guarantees
//
//   - SaveWorld replaces a world atomically inside one transaction
//   - LoadWorld returns tiles ordered by (y, z, x), the tick order
//   - A missing world is reported as ErrWorldNotFound
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
