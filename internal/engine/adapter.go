// Package engine defines the bottom-edge adapter the transactional
// column-family substrate is built on (§6.1), and ships a reference,
// pure-Go implementation of it.
//
// The adapter is intentionally small: create a column family, begin a
// transaction, get/put/delete within it, open a cursor, commit or roll
// back. Anything about compaction, WAL layout, or on-disk SST format is
// the concrete adapter's business, not this interface's — the core
// treats L1 as an external collaborator (§1) and never reaches past this
// boundary.
package engine

import "errors"

// ErrCorruption is returned by an adapter's Open/recovery path when the
// durable store cannot be trusted. The core never attempts to repair it.
var ErrCorruption = errors.New("engine: corruption detected")

// ErrColumnFamilyExists is returned by CreateColumnFamily for a cf_id that
// was already registered.
var ErrColumnFamilyExists = errors.New("engine: column family already exists")

// Adapter is the native embedded key-value engine the core is layered on.
type Adapter interface {
	// CreateColumnFamily registers cf as a disjoint keyspace. Called once
	// per column family at startup.
	CreateColumnFamily(cf uint64) error

	// Begin acquires a new transaction handle, or resets reuse (if
	// non-nil) and returns it. Reusing a handle avoids reallocating the
	// write buffer on every logical transaction.
	Begin(reuse Txn) Txn
}

// Txn is a single logical transaction against the engine: a read view
// over the last committed state, plus a write batch that becomes visible
// to other transactions only on Commit.
type Txn interface {
	// Get returns the value for (cf, key), reading this transaction's own
	// staged writes first and falling back to the committed state.
	Get(cf uint64, key []byte) (value []byte, found bool, err error)

	// Put stages a write. It is applied to the durable store atomically
	// with every other write in the same transaction, on Commit.
	Put(cf uint64, key, value []byte) error

	// Delete stages a tombstone for key.
	Delete(cf uint64, key []byte) error

	// NewCursor opens an ascending cursor over cf's committed records,
	// starting at the first key >= lowerBound (or the first key in the
	// family if lowerBound is nil).
	NewCursor(cf uint64, lowerBound []byte) Cursor

	// Commit atomically installs every staged write and clears the write
	// buffer so the handle can be reused for the next logical
	// transaction.
	Commit() error

	// Rollback discards every staged write without touching the durable
	// store.
	Rollback() error
}

// Cursor iterates a column family's committed records in ascending
// encoded-key order.
type Cursor interface {
	Valid() bool
	Key() []byte
	Value() []byte
	Next()
	Close()
}
