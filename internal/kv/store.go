// Package kv defines the durable key-value contract the identity and catalog
// stores persist through, together with an in-memory and a SQLite-backed
// implementation.
package kv

import "errors"

// ErrNotFound indicates a requested key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is a flat key-value store with whole-value replacement semantics:
// Set overwrites any previous value, Get returns the last completed write,
// and Delete of a missing key is a no-op.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
