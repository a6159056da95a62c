package zeebe

// transaction.go implements L2 (§4.2): a scoped unit of work buffering
// writes in an in-memory overlay ahead of the engine's own write batch,
// so reads within the same transaction observe its own uncommitted
// mutations before falling through to the engine.
//
// Reference: RockyardKV's pessimistic_transaction.go Commit/Rollback
// shape, with locking and snapshot validation dropped — §5 rules out
// concurrent access to a partition's transaction, so there is nothing to
// lock against.

import (
	"bytes"
	"sort"

	"github.com/TitanUser/zeebe/internal/engine"
	"github.com/TitanUser/zeebe/internal/logging"
)

// VisitResult is returned by scan visitors to control iteration.
type VisitResult int

const (
	// Continue tells the scan to visit the next record.
	Continue VisitResult = iota
	// Stop halts the scan after the current record.
	Stop
)

// overlayEntry is one buffered write, keyed by its physical (cf, key).
type overlayEntry struct {
	cf       uint64
	key      []byte
	value    []byte
	isDelete bool
}

// Transaction is a scoped unit of work over the engine (§3.1, §4.2). It
// is created once and begun again for each input record, reusing (reset,
// not reallocated) the native handle across logical transactions, per
// §3.3.
type Transaction struct {
	adapter engine.Adapter
	handle  engine.Txn
	logger  logging.Logger

	// overlay buffers writes in the order they were first staged, one
	// slot per (cf, key); index maps a key to its slot. Each scan sorts
	// the entries of its CF by encoded key (overlayForCF) before merging
	// them with the engine's committed view (§5: "strict ascending
	// lexicographic order... including any uncommitted overlay
	// entries").
	overlay []overlayEntry
	index   map[string]int
}

// NewTransaction creates a Transaction bound to adapter. Call Begin before
// first use.
func NewTransaction(adapter engine.Adapter, logger logging.Logger) *Transaction {
	return &Transaction{
		adapter: adapter,
		logger:  logging.OrDefault(logger),
		index:   make(map[string]int),
	}
}

// Begin acquires or resets the native transaction handle (§4.2).
func (t *Transaction) Begin() {
	t.handle = t.adapter.Begin(t.handle)
	t.overlay = t.overlay[:0]
	for k := range t.index {
		delete(t.index, k)
	}
}

func overlayKey(cf uint64, key []byte) string {
	buf := make([]byte, 8+len(key))
	for i := 0; i < 8; i++ {
		buf[i] = byte(cf >> (56 - 8*i))
	}
	copy(buf[8:], key)
	return string(buf)
}

// Get reads the overlay first, then the engine snapshot (§4.2).
func (t *Transaction) Get(cf uint64, key []byte) ([]byte, bool, error) {
	if idx, ok := t.index[overlayKey(cf, key)]; ok {
		e := t.overlay[idx]
		if e.isDelete {
			return nil, false, nil
		}
		return e.value, true, nil
	}
	v, found, err := t.handle.Get(cf, key)
	if err != nil {
		return nil, false, wrapEngineErr(err)
	}
	return v, found, nil
}

// Exists is a short-circuited Get (§4.2).
func (t *Transaction) Exists(cf uint64, key []byte) (bool, error) {
	_, found, err := t.Get(cf, key)
	return found, err
}

// Put records a write in the overlay and the engine's write batch.
func (t *Transaction) Put(cf uint64, key, value []byte) error {
	if err := t.handle.Put(cf, key, value); err != nil {
		return wrapEngineErr(err)
	}
	t.stage(overlayEntry{cf: cf, key: key, value: value})
	return nil
}

// Delete stages a tombstone for key.
func (t *Transaction) Delete(cf uint64, key []byte) error {
	if err := t.handle.Delete(cf, key); err != nil {
		return wrapEngineErr(err)
	}
	t.stage(overlayEntry{cf: cf, key: key, isDelete: true})
	return nil
}

func (t *Transaction) stage(e overlayEntry) {
	k := overlayKey(e.cf, e.key)
	if idx, ok := t.index[k]; ok {
		t.overlay[idx] = e
		return
	}
	t.index[k] = len(t.overlay)
	t.overlay = append(t.overlay, e)
}

// IterPrefix iterates, in ascending encoded-key order, every record in cf
// whose encoded key starts with prefix, merging committed state with this
// transaction's own uncommitted overlay entries (§4.2).
func (t *Transaction) IterPrefix(cf uint64, prefix []byte, visit func(key, value []byte) VisitResult) error {
	return t.iter(cf, prefix, true, visit)
}

// IterFrom iterates, in ascending encoded-key order, every record in cf
// from the first key >= lowerBound, merging committed state with this
// transaction's own overlay (the engine for §4.3's while_true).
func (t *Transaction) IterFrom(cf uint64, lowerBound []byte, visit func(key, value []byte) VisitResult) error {
	return t.iter(cf, lowerBound, false, visit)
}

func (t *Transaction) iter(cf uint64, lowerOrPrefix []byte, prefixMode bool, visit func(key, value []byte) VisitResult) error {
	cur := t.handle.NewCursor(cf, lowerOrPrefix)
	defer cur.Close()

	pending := t.overlayForCF(cf)
	pi := 0
	for pi < len(pending) && bytes.Compare(pending[pi].key, lowerOrPrefix) < 0 {
		pi++
	}

	for {
		haveOverlay := pi < len(pending)
		haveCursor := cur.Valid()
		if !haveOverlay && !haveCursor {
			return nil
		}

		var key, value []byte
		var skip bool
		switch {
		case haveOverlay && (!haveCursor || bytes.Compare(pending[pi].key, cur.Key()) <= 0):
			e := pending[pi]
			pi++
			key = e.key
			skip = e.isDelete
			value = e.value
			if haveCursor && bytes.Equal(e.key, cur.Key()) {
				cur.Next()
			}
		default:
			key = cur.Key()
			value = cur.Value()
			cur.Next()
		}

		if skip {
			continue
		}
		if prefixMode && !bytes.HasPrefix(key, lowerOrPrefix) {
			return nil
		}
		if visit(key, value) == Stop {
			return nil
		}
	}
}

// overlayForCF returns this transaction's overlay entries for cf, sorted
// by encoded key, skipping any entry masked by a later write to the same
// key (the index map already keeps only the latest write per key).
func (t *Transaction) overlayForCF(cf uint64) []overlayEntry {
	var out []overlayEntry
	for _, e := range t.overlay {
		if e.cf == cf {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].key, out[j].key) < 0 })
	return out
}

// Commit flushes to the engine and clears the overlay (§4.2).
func (t *Transaction) Commit() error {
	if err := t.handle.Commit(); err != nil {
		return wrapEngineErr(err)
	}
	t.overlay = t.overlay[:0]
	for k := range t.index {
		delete(t.index, k)
	}
	return nil
}

// Abort discards the overlay and the engine-side batch (§4.2).
func (t *Transaction) Abort() error {
	err := t.handle.Rollback()
	t.overlay = t.overlay[:0]
	for k := range t.index {
		delete(t.index, k)
	}
	if err != nil {
		return wrapEngineErr(err)
	}
	return nil
}
