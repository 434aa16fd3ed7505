package store

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Save format versions, stored in PRAGMA user_version:
//
//	1 - kind index on tile_entities
//	2 - tile IDs unique per world instead of per database
const currentSchemaVersion = 2

// migration upgrades a database from version-1 to version.
type migration struct {
	version int
	apply   func(tx *sql.Tx) error
}

var migrations = []migration{
	{version: 2, apply: rekeyTilesPerWorld},
}

// Store is a SQLite database of world saves.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and brings it to the current
// save format. The connection runs in WAL mode with foreign keys enforced.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Pragmas are per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB.
func (s *Store) DB() *sql.DB {
	return s.db
}

func applyPragmas(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	return nil
}

// migrate runs every migration newer than the stored version, each in its
// own transaction together with the version bump.
func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read save format version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("save format version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	for _, m := range migrations {
		if m.version <= version {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		if err := m.apply(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate to v%d: %w", m.version, err)
		}
		version = m.version
	}

	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set save format version: %w", err)
		}
	}
	return nil
}

// rekeyTilesPerWorld rebuilds tile_entities of a v1 save, where id alone was
// the primary key. Databases already created with the (world, id) key are
// left untouched.
func rekeyTilesPerWorld(tx *sql.Tx) error {
	var keyColumns int
	err := tx.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('tile_entities') WHERE pk > 0`).Scan(&keyColumns)
	if err != nil {
		return fmt.Errorf("inspect tile key: %w", err)
	}
	if keyColumns != 1 {
		return nil
	}

	for _, stmt := range []string{
		`CREATE TABLE tile_entities_v2 (
			world  TEXT NOT NULL REFERENCES worlds(name) ON DELETE CASCADE,
			id     TEXT NOT NULL,
			kind   TEXT NOT NULL,
			block  TEXT NOT NULL,
			lit    INTEGER NOT NULL DEFAULT 0,
			x      INTEGER NOT NULL,
			y      INTEGER NOT NULL,
			z      INTEGER NOT NULL,
			data   TEXT NOT NULL,
			PRIMARY KEY (world, id),
			UNIQUE (world, x, y, z)
		)`,
		`INSERT INTO tile_entities_v2 (world, id, kind, block, lit, x, y, z, data)
			SELECT world, id, kind, block, lit, x, y, z, data FROM tile_entities`,
		`DROP TABLE tile_entities`,
		`ALTER TABLE tile_entities_v2 RENAME TO tile_entities`,
		`CREATE INDEX IF NOT EXISTS idx_tile_entities_kind ON tile_entities(world, kind)`,
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// verifyPragma reports whether a pragma holds the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow("PRAGMA " + name).Scan(&value); err != nil {
		return fmt.Errorf("query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
