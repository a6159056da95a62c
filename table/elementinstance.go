package table

// elementinstance.go implements the element-instance table (§4.4.3): the
// FK target of subscriptions and timers. It carries no FK guard of its
// own — it is the referenced side of the relation, not a referencing
// side.

import (
	"github.com/TitanUser/zeebe"
	"github.com/TitanUser/zeebe/codec"
	"github.com/TitanUser/zeebe/internal/compression"
)

// ElementInstanceKey is the primary key.
type ElementInstanceKey = int64

// ElementInstanceRecord is the durable value.
type ElementInstanceRecord struct {
	Key                  int64
	ProcessDefinitionKey int64
	ProcessInstanceKey   int64
	FlowScopeKey         int64
	ElementID            string
}

type elementInstanceValueCodec struct{}

func (elementInstanceValueCodec) Size(v ElementInstanceRecord) int {
	return 8 + 8 + 8 + 8 + codec.String{}.Size(v.ElementID)
}

func (elementInstanceValueCodec) Encode(dst []byte, v ElementInstanceRecord) []byte {
	dst = codec.Int64{}.Encode(dst, v.Key)
	dst = codec.Int64{}.Encode(dst, v.ProcessDefinitionKey)
	dst = codec.Int64{}.Encode(dst, v.ProcessInstanceKey)
	dst = codec.Int64{}.Encode(dst, v.FlowScopeKey)
	dst = codec.String{}.Encode(dst, v.ElementID)
	return dst
}

func (elementInstanceValueCodec) Decode(src []byte) (ElementInstanceRecord, int, error) {
	var v ElementInstanceRecord
	key, n, err := codec.Int64{}.Decode(src)
	if err != nil {
		return v, 0, err
	}
	off := n
	pdk, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	pik, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	fsk, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	eid, n, err := codec.String{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	v = ElementInstanceRecord{Key: key, ProcessDefinitionKey: pdk, ProcessInstanceKey: pik, FlowScopeKey: fsk, ElementID: eid}
	return v, off, nil
}

// ElementInstance is the table of §4.4.3.
type ElementInstance struct {
	cf *zeebe.ColumnFamily[ElementInstanceKey, ElementInstanceRecord]
}

// NewElementInstance creates the table, binding its CF to txn. The value
// codec is zstd-compressed: unlike a subscription's or timer's small
// fixed record, element-instance rows grow with the process model's
// variable set in the original system, making them the one value worth
// spending a compression pass on.
func NewElementInstance(cfID uint64, txn *zeebe.Transaction) *ElementInstance {
	vals := codec.Compressed[ElementInstanceRecord]{Inner: elementInstanceValueCodec{}, Algo: compression.Zstd}
	return &ElementInstance{
		cf: zeebe.NewColumnFamily[ElementInstanceKey, ElementInstanceRecord](cfID, codec.Int64{}, vals, txn),
	}
}

// Put writes record durably.
func (e *ElementInstance) Put(record ElementInstanceRecord) error {
	return e.cf.Put(record.Key, record)
}

// Get reads the durable record for key.
func (e *ElementInstance) Get(key int64) (ElementInstanceRecord, bool, error) {
	return e.cf.Get(key)
}

// Exists reports whether key has a durable element-instance row. Tables
// that reference this one via an FK-guarded write rely on this existing
// when preconditions are enabled (§4.4.3).
func (e *ElementInstance) Exists(key int64) (bool, error) {
	return e.cf.Exists(key)
}

// Delete removes the durable record for key. Callers are responsible for
// first removing every referring subscription and timer row — the
// ForeignKeyChecker only validates the forward direction (a referencing
// write requires a live target), not this reverse direction (§4.4.3,
// §4.5).
func (e *ElementInstance) Delete(key int64) error {
	return e.cf.Delete(key)
}
