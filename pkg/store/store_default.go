//go:build !wasm

package store

import "fmt"

// New creates a store for native builds.
func New(cfg Config) (Store, error) {
	switch {
	case cfg.Path == "":
		return nil, fmt.Errorf("path is required")
	case cfg.Path == MemoryPath:
		return NewMemory(), nil
	case IsPostgresURL(cfg.Path):
		return NewPostgres(cfg.Path)
	}
	return NewSQLite(cfg.Path)
}
