package engine

import (
	"encoding/binary"
	"sync"
)

// physicalKey returns the cf_id(8 bytes, big-endian) || encoded_key byte
// layout specified by §6.3: every record in the engine's single flat
// keyspace is addressed by this concatenation.
func physicalKey(cf uint64, key []byte) []byte {
	buf := make([]byte, 8+len(key))
	binary.BigEndian.PutUint64(buf, cf)
	copy(buf[8:], key)
	return buf
}

type record struct {
	value    []byte
	checksum uint64
}

// MemStore is the reference, pure-Go Adapter implementation: a single
// flat ordered map keyed by physicalKey, shared by every registered
// column family. It stands in for the "native embedded key-value engine"
// the spec treats as an external, black-box collaborator (§1); nothing
// about compaction, WAL layout, or on-disk format is modeled here.
type MemStore struct {
	mu   sync.Mutex
	data *skipList
	cfs  map[uint64]bool
}

// NewMemStore creates an empty store with no column families registered.
func NewMemStore() *MemStore {
	return &MemStore{
		data: newSkipList(),
		cfs:  make(map[uint64]bool),
	}
}

func (m *MemStore) CreateColumnFamily(cf uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfs[cf] {
		return ErrColumnFamilyExists
	}
	m.cfs[cf] = true
	return nil
}

func (m *MemStore) Begin(reuse Txn) Txn {
	if t, ok := reuse.(*memTxn); ok {
		t.reset(m)
		return t
	}
	return newMemTxn(m)
}

// get reads the committed value for (cf, key), verifying its checksum.
func (m *MemStore) get(cf uint64, key []byte) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getLocked(cf, key)
}

func (m *MemStore) getLocked(cf uint64, key []byte) ([]byte, bool, error) {
	raw, ok := m.data.get(physicalKey(cf, key))
	if !ok {
		return nil, false, nil
	}
	rec := raw.(record)
	if checksumRecord(cf, key, rec.value) != rec.checksum {
		return nil, false, &corruptionError{cf: cf, key: key}
	}
	return rec.value, true, nil
}

// applyLocked installs a batch of writes atomically. Callers must hold m.mu.
func (m *MemStore) applyLocked(ops []writeOp) {
	for _, op := range ops {
		pk := physicalKey(op.cf, op.key)
		if op.isDelete {
			m.data.delete(pk)
			continue
		}
		m.data.put(pk, record{value: op.value, checksum: checksumRecord(op.cf, op.key, op.value)})
	}
}

// VerifyIntegrity re-checksums every record in the store, returning the
// first corruption found (an error wrapping ErrCorruption). It runs only
// when called; the tables' Recover methods do not call it, and cursor
// reads do not verify checksums.
func (m *MemStore) VerifyIntegrity() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for n := m.data.first(); n != nil; n = n.next[0] {
		cf := binary.BigEndian.Uint64(n.key[:8])
		userKey := n.key[8:]
		rec := n.value.(record)
		if checksumRecord(cf, userKey, rec.value) != rec.checksum {
			return &corruptionError{cf: cf, key: userKey}
		}
	}
	return nil
}
