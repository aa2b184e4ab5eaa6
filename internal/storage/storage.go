// Package storage provides the durable key/value store used for client-side state.
package storage

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("storage: key not found")

// Store is a string-keyed byte store
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Driver names
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open opens a store with the named driver at path
func Open(driver, path string) (Store, error) {
	switch driver {
	case DriverFile, "":
		return OpenFile(path)
	case DriverSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
