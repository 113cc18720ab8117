// Package sqlite provides a SQLite-backed embedding cache.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/docsense-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EmbeddingCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS embedding_cache (
	key        TEXT PRIMARY KEY,
	vector     BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Cache is a content-addressed embedding cache stored in SQLite.
type Cache struct {
	db   *sql.DB
	path string
}

// NewCache opens (or creates) the cache database at the specified
// data directory. If dataDir is empty, defaults to ~/.docsense/data.
func NewCache(dataDir string) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docsense", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "embeddings.db")

	// WAL mode for better concurrency during batched writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, path: dbPath}, nil
}

// Get returns the cached vector for key, if present.
func (c *Cache) Get(ctx context.Context, key string) ([]float32, bool, error) {
	var blob []byte
	err := c.db.QueryRowContext(ctx,
		"SELECT vector FROM embedding_cache WHERE key = ?", key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	vec, err := decodeVector(blob)
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return vec, true, nil
}

// Put stores a vector under key, overwriting any previous value.
func (c *Cache) Put(ctx context.Context, key string, embedding []float32) error {
	_, err := c.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO embedding_cache (key, vector) VALUES (?, ?)",
		key, encodeVector(embedding))
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// encodeVector packs float32 values as little-endian bytes.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector unpacks little-endian bytes into float32 values.
func decodeVector(blob []byte) ([]float32, error) {
	if len(blob)%4 != 0 {
		return nil, fmt.Errorf("corrupt vector blob: %d bytes", len(blob))
	}
	vec := make([]float32, len(blob)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(blob[4*i:]))
	}
	return vec, nil
}
