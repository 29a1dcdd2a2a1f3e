// Package cache stores compiled programs keyed by the hash of their
// source text, so unchanged files skip the compile pipeline on the next
// run. The store is a single SQLite database file.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/goxlang/gox/internal/ircode"
)

const schema = `
CREATE TABLE IF NOT EXISTS programs (
	source_hash TEXT PRIMARY KEY,
	build_id    TEXT NOT NULL,
	data        BLOB NOT NULL,
	created_at  TIMESTAMP NOT NULL
);`

// Cache is an on-disk content-addressed store of compiled programs.
type Cache struct {
	db *sql.DB
}

// Open creates or opens the cache database at path. Use ":memory:" for
// an ephemeral cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}

// Key returns the cache key for a source text.
func Key(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Get looks up the compiled program for a source text. The second return
// is false on a cache miss; a corrupt entry is treated as a miss after
// eviction.
func (c *Cache) Get(source []byte) (*ircode.Program, bool, error) {
	key := Key(source)

	var data []byte
	err := c.db.QueryRow(`SELECT data FROM programs WHERE source_hash = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	program, err := ircode.Deserialize(data)
	if err != nil {
		c.evict(key)
		return nil, false, nil
	}
	return program, true, nil
}

// Put stores a compiled program under its source text's key, replacing
// any previous entry.
func (c *Cache) Put(source []byte, program *ircode.Program) error {
	data, err := program.Serialize()
	if err != nil {
		return err
	}

	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO programs (source_hash, build_id, data, created_at) VALUES (?, ?, ?, ?)`,
		Key(source), program.BuildID, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache store: %w", err)
	}
	return nil
}

// Len returns the number of cached programs.
func (c *Cache) Len() (int, error) {
	var n int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM programs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

func (c *Cache) evict(key string) {
	c.db.Exec(`DELETE FROM programs WHERE source_hash = ?`, key)
}
