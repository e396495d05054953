package store

import (
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

// diskvBackend stores one file per key under a base directory.
type diskvBackend struct {
	d *diskv.Diskv
}

func openDiskv(dir string) (*diskvBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create kv directory: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 4 * 1024 * 1024,
	})
	return &diskvBackend{d: d}, nil
}

func (b *diskvBackend) Read(key string) ([]byte, error) {
	if !b.d.Has(key) {
		return nil, ErrNotFound
	}
	v, err := b.d.Read(key)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", key, err)
	}
	return v, nil
}

func (b *diskvBackend) Write(key string, value []byte) error {
	if err := b.d.Write(key, value); err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

func (b *diskvBackend) Erase(key string) error {
	if !b.d.Has(key) {
		return nil
	}
	if err := b.d.Erase(key); err != nil {
		return fmt.Errorf("erase %q: %w", key, err)
	}
	return nil
}

// EraseAll removes every key file but keeps the base directory, so the
// backend stays usable after a reset.
func (b *diskvBackend) EraseAll() error {
	done := make(chan struct{})
	defer close(done)

	var keys []string
	for k := range b.d.Keys(done) {
		keys = append(keys, k)
	}
	for _, k := range keys {
		if err := b.d.Erase(k); err != nil {
			return fmt.Errorf("erase %q: %w", k, err)
		}
	}
	return nil
}

func (b *diskvBackend) Close() error { return nil }
