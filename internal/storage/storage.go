// Package storage defines the seen-set persistence interface and its implementations.
package storage

import (
	"context"
	"path/filepath"
	"strings"
)

// Storage loads and persists the set of listings already alerted on.
type Storage interface {
	// Load returns the persisted seen set. Missing storage yields an empty set.
	Load(ctx context.Context) (*SeenSet, error)
	// Persist replaces the stored set with s atomically.
	Persist(ctx context.Context, s *SeenSet) error
	Close() error
}

// Open returns the backend for path: SQLite for .db, .sqlite and .sqlite3
// files, a plain text file with one id per line otherwise.
func Open(path string) (Storage, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLite(path)
	default:
		return NewFile(path), nil
	}
}
