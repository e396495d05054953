package store

import "errors"

// ErrNotFound is returned by Backend.Read for keys that were never written
// or have been erased.
var ErrNotFound = errors.New("key not found")

// Backend is a byte-level key-value store. Writes replace the whole value.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Erase(key string) error
	EraseAll() error
	Close() error
}
