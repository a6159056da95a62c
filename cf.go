package zeebe

// cf.go implements L3's column-family handle (§4.3): a thin typed view
// binding (cf_id, key codec, value codec, transaction). FK-guarded writes
// additionally consult a ForeignKeyChecker when preconditions are on.
//
// Reference: RockyardKV's column_family.go binds (id, comparator,
// memtable) the same way a ColumnFamilyHandle binds to a dbImpl.

import "github.com/TitanUser/zeebe/codec"

// ColumnFamily is a typed handle over one physical column family. Callers
// construct one per table per role (e.g. a table with a primary CF and a
// secondary index CF each get their own ColumnFamily instance) and reuse
// it for the table's lifetime, per §4.1's "single-shot, one in-flight key
// at a time per table" contract.
type ColumnFamily[K, V any] struct {
	id      uint64
	keys    codec.Codec[K]
	vals    codec.Codec[V]
	txn     *Transaction
	fkc     *ForeignKeyChecker
	fkTgt   uint64
	fkKeyOf func(K) []byte
	hasFK   bool
}

// NewColumnFamily creates a handle with no FK guard.
func NewColumnFamily[K, V any](id uint64, keys codec.Codec[K], vals codec.Codec[V], txn *Transaction) *ColumnFamily[K, V] {
	return &ColumnFamily[K, V]{id: id, keys: keys, vals: vals, txn: txn}
}

// NewForeignKeyColumnFamily creates a handle whose key type carries an FK
// reference to targetCF. fkKeyOf extracts and encodes the referenced
// sub-key from a full key value — for a composite key this is just the
// encoding of its FK-tagged sub-codec, not the whole composite encoding.
// Every Put is guarded by checker when the process-wide
// EnablePreconditions option is on (§4.3, §4.5).
func NewForeignKeyColumnFamily[K, V any](id uint64, keys codec.Codec[K], vals codec.Codec[V], txn *Transaction, checker *ForeignKeyChecker, targetCF uint64, fkKeyOf func(K) []byte) *ColumnFamily[K, V] {
	return &ColumnFamily[K, V]{id: id, keys: keys, vals: vals, txn: txn, fkc: checker, fkTgt: targetCF, fkKeyOf: fkKeyOf, hasFK: true}
}

func (cf *ColumnFamily[K, V]) encodeKey(k K) []byte {
	return cf.keys.Encode(nil, k)
}

// Put writes (k, v), first invoking the ForeignKeyChecker if this CF is
// FK-guarded and preconditions are enabled (§4.3).
func (cf *ColumnFamily[K, V]) Put(k K, v V) error {
	if cf.hasFK && cf.fkc.enabled {
		if err := cf.fkc.AssertExists(cf.txn, cf.fkTgt, cf.fkKeyOf(k)); err != nil {
			return err
		}
	}
	ek := cf.encodeKey(k)
	ev := cf.vals.Encode(nil, v)
	return cf.txn.Put(cf.id, ek, ev)
}

// Get reads and decodes the value for k.
func (cf *ColumnFamily[K, V]) Get(k K) (v V, found bool, err error) {
	raw, found, err := cf.txn.Get(cf.id, cf.encodeKey(k))
	if err != nil || !found {
		return v, found, err
	}
	v, _, derr := cf.vals.Decode(raw)
	if derr != nil {
		return v, false, newDecodeError(derr)
	}
	return v, true, nil
}

// Delete removes k.
func (cf *ColumnFamily[K, V]) Delete(k K) error {
	return cf.txn.Delete(cf.id, cf.encodeKey(k))
}

// Exists is a short-circuited Get.
func (cf *ColumnFamily[K, V]) Exists(k K) (bool, error) {
	return cf.txn.Exists(cf.id, cf.encodeKey(k))
}

// ForEach visits every record in ascending encoded-key order.
func (cf *ColumnFamily[K, V]) ForEach(visit func(k K, v V) VisitResult) error {
	return cf.txn.IterFrom(cf.id, nil, func(key, value []byte) VisitResult {
		k, _, err := cf.keys.Decode(key)
		if err != nil {
			return Stop
		}
		v, _, err := cf.vals.Decode(value)
		if err != nil {
			return Stop
		}
		return visit(k, v)
	})
}

// WhileEqualPrefix visits every record whose encoded key starts with the
// encoding of prefix's leading sub-codec(s) (§4.3). prefixBytes is that
// leading encoding, the same bytes a composite codec's
// EncodePrefix/EncodePrefix2 produces.
func (cf *ColumnFamily[K, V]) WhileEqualPrefix(prefixBytes []byte, visit func(k K, v V) VisitResult) error {
	return cf.txn.IterPrefix(cf.id, prefixBytes, func(key, value []byte) VisitResult {
		k, _, err := cf.keys.Decode(key)
		if err != nil {
			return Stop
		}
		v, _, err := cf.vals.Decode(value)
		if err != nil {
			return Stop
		}
		return visit(k, v)
	})
}

// WhileTrue is the unrestricted ordered scan starting at the first key
// greater than or equal to the encoding of from (§4.3). It underlies the
// due-date index scan and the recovery pass.
func (cf *ColumnFamily[K, V]) WhileTrue(from K, visit func(k K, v V) bool) error {
	return cf.txn.IterFrom(cf.id, cf.encodeKey(from), func(key, value []byte) VisitResult {
		k, _, err := cf.keys.Decode(key)
		if err != nil {
			return Stop
		}
		v, _, err := cf.vals.Decode(value)
		if err != nil {
			return Stop
		}
		if visit(k, v) {
			return Continue
		}
		return Stop
	})
}
