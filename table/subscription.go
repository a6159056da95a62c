// Package table implements L4 (§4.4): typed tables layering domain
// semantics over column families, each owning its own CF(s) and
// enforcing its own invariants.
package table

// subscription.go implements the subscription table with pending overlay
// (§4.4.1). The durable column family is keyed by (element_instance_key,
// message_name); a purely in-memory overlay tracks the subset of rows in
// Opening or Closing state, ordered by commandSentTime for the scheduler's
// "what's due for a retry" query.
//
// Reference: original_source DbProcessMessageSubscriptionState.java —
// put/updateToOpenedState/updateToClosingState/remove/updateSentTime map
// 1:1 onto Put/TransitionToOpened/TransitionToClosing/Remove/
// UpdateSentTime below; the overlay insert on both put and
// transition-to-closing always starts a fresh entry at commandSentTime 0,
// matching transientState.add(record) being shared by both call sites in
// the original.

import (
	"fmt"

	"github.com/TitanUser/zeebe"
	"github.com/TitanUser/zeebe/codec"
	"github.com/TitanUser/zeebe/internal/logging"
	"github.com/google/btree"
)

// SubscriptionState is the lifecycle state of §4.7's state machine.
type SubscriptionState int8

const (
	Opening SubscriptionState = iota
	Opened
	Closing
	Closed
)

func (s SubscriptionState) String() string {
	switch s {
	case Opening:
		return "OPENING"
	case Opened:
		return "OPENED"
	case Closing:
		return "CLOSING"
	case Closed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// SubscriptionKey is the durable primary key: (element_instance_key,
// message_name).
type SubscriptionKey = codec.Pair[int64, string]

// SubscriptionRecord is the durable value.
type SubscriptionRecord struct {
	Key                int64
	ElementInstanceKey int64
	MessageName        string
	State              SubscriptionState
	CorrelationKey     string
}

// subscriptionValueCodec encodes SubscriptionRecord as
// key(8) || elementInstanceKey(8) || state(1) || messageName(4+n) ||
// correlationKey(4+n).
type subscriptionValueCodec struct{}

func (subscriptionValueCodec) Size(v SubscriptionRecord) int {
	return 8 + 8 + 1 + codec.Bytes{}.Size([]byte(v.MessageName)) + codec.Bytes{}.Size([]byte(v.CorrelationKey))
}

func (subscriptionValueCodec) Encode(dst []byte, v SubscriptionRecord) []byte {
	dst = codec.Int64{}.Encode(dst, v.Key)
	dst = codec.Int64{}.Encode(dst, v.ElementInstanceKey)
	dst = append(dst, byte(v.State))
	dst = codec.String{}.Encode(dst, v.MessageName)
	dst = codec.String{}.Encode(dst, v.CorrelationKey)
	return dst
}

func (subscriptionValueCodec) Decode(src []byte) (SubscriptionRecord, int, error) {
	var v SubscriptionRecord
	key, n1, err := codec.Int64{}.Decode(src)
	if err != nil {
		return v, 0, err
	}
	eik, n2, err := codec.Int64{}.Decode(src[n1:])
	if err != nil {
		return v, 0, err
	}
	off := n1 + n2
	if off >= len(src) {
		return v, 0, codec.ErrTruncated
	}
	state := SubscriptionState(src[off])
	off++
	name, n3, err := codec.String{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n3
	corr, n4, err := codec.String{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n4
	v = SubscriptionRecord{Key: key, ElementInstanceKey: eik, State: state, MessageName: name, CorrelationKey: corr}
	return v, off, nil
}

// pendingEntry is one row of the overlay, sorted by (commandSentTime,
// elementInstanceKey, messageName).
type pendingEntry struct {
	commandSentTime    int64
	elementInstanceKey int64
	messageName        string
}

func (e *pendingEntry) Less(than btree.Item) bool {
	o := than.(*pendingEntry)
	if e.commandSentTime != o.commandSentTime {
		return e.commandSentTime < o.commandSentTime
	}
	if e.elementInstanceKey != o.elementInstanceKey {
		return e.elementInstanceKey < o.elementInstanceKey
	}
	return e.messageName < o.messageName
}

func pendingMapKey(elementInstanceKey int64, messageName string) string {
	return fmt.Sprintf("%d\x00%s", elementInstanceKey, messageName)
}

// Subscription is the table of §4.4.1.
type Subscription struct {
	cf     *zeebe.ColumnFamily[SubscriptionKey, SubscriptionRecord]
	logger logging.Logger

	overlay  *btree.BTree
	byEntity map[string]*pendingEntry
}

// NewSubscription creates the table, binding its durable CF to txn with an
// FK guard against the element-instance CF.
func NewSubscription(cfID uint64, txn *zeebe.Transaction, checker *zeebe.ForeignKeyChecker, elementInstanceCF uint64, logger logging.Logger) *Subscription {
	keyCodec := codec.Composite2[int64, string]{
		First:  codec.ForeignKey[int64]{Inner: codec.Int64{}, TargetCF: elementInstanceCF},
		Second: codec.String{},
	}
	fkKeyOf := func(k SubscriptionKey) []byte {
		return codec.Int64{}.Encode(nil, k.First)
	}
	cf := zeebe.NewForeignKeyColumnFamily[SubscriptionKey, SubscriptionRecord](
		cfID, keyCodec, subscriptionValueCodec{}, txn, checker, elementInstanceCF, fkKeyOf)

	return &Subscription{
		cf:       cf,
		logger:   logging.OrDefault(logger),
		overlay:  btree.New(32),
		byEntity: make(map[string]*pendingEntry),
	}
}

// Put writes record durably and inserts it into the overlay with
// commandSentTime 0 (§4.4.1).
func (s *Subscription) Put(record SubscriptionRecord) error {
	k := SubscriptionKey{First: record.ElementInstanceKey, Second: record.MessageName}
	if err := s.cf.Put(k, record); err != nil {
		return err
	}
	s.overlayAdd(record.ElementInstanceKey, record.MessageName)
	return nil
}

// TransitionToOpened durably updates the record to Opened and removes it
// from the overlay. A missing record is a silent no-op (§9 open question).
func (s *Subscription) TransitionToOpened(record SubscriptionRecord) error {
	return s.update(record, Opened, func() { s.overlayRemove(record.ElementInstanceKey, record.MessageName) })
}

// TransitionToClosing durably updates the record to Closing and inserts a
// fresh overlay entry (§4.4.1).
func (s *Subscription) TransitionToClosing(record SubscriptionRecord) error {
	return s.update(record, Closing, func() { s.overlayAdd(record.ElementInstanceKey, record.MessageName) })
}

func (s *Subscription) update(record SubscriptionRecord, newState SubscriptionState, onSuccess func()) error {
	k := SubscriptionKey{First: record.ElementInstanceKey, Second: record.MessageName}
	existing, found, err := s.cf.Get(k)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	existing.State = newState
	if err := s.cf.Put(k, existing); err != nil {
		return err
	}
	onSuccess()
	return nil
}

// Remove durably deletes the row and removes any overlay entry for it.
func (s *Subscription) Remove(elementInstanceKey int64, messageName string) error {
	k := SubscriptionKey{First: elementInstanceKey, Second: messageName}
	if err := s.cf.Delete(k); err != nil {
		return err
	}
	s.overlayRemove(elementInstanceKey, messageName)
	return nil
}

// Get reads the durable record.
func (s *Subscription) Get(elementInstanceKey int64, messageName string) (SubscriptionRecord, bool, error) {
	return s.cf.Get(SubscriptionKey{First: elementInstanceKey, Second: messageName})
}

// Exists reports whether a subscription for (elementInstanceKey,
// messageName) exists durably.
func (s *Subscription) Exists(elementInstanceKey int64, messageName string) (bool, error) {
	return s.cf.Exists(SubscriptionKey{First: elementInstanceKey, Second: messageName})
}

// VisitElementSubscriptions visits every subscription for
// elementInstanceKey in ascending message-name order (§4.3
// while_equal_prefix).
func (s *Subscription) VisitElementSubscriptions(elementInstanceKey int64, visit func(SubscriptionRecord) zeebe.VisitResult) error {
	prefix := codec.Int64{}.Encode(nil, elementInstanceKey)
	return s.cf.WhileEqualPrefix(prefix, func(_ SubscriptionKey, v SubscriptionRecord) zeebe.VisitResult {
		return visit(v)
	})
}

// VisitPendingBefore enumerates overlay entries whose commandSentTime is
// at most deadline, oldest first, until visit returns Stop (§4.4.1).
func (s *Subscription) VisitPendingBefore(deadline int64, visit func(elementInstanceKey int64, messageName string, commandSentTime int64) zeebe.VisitResult) {
	s.overlay.Ascend(func(item btree.Item) bool {
		e := item.(*pendingEntry)
		if e.commandSentTime > deadline {
			return false
		}
		return visit(e.elementInstanceKey, e.messageName, e.commandSentTime) == zeebe.Continue
	})
}

// UpdateSentTime updates the overlay key for (elementInstanceKey,
// messageName) to t, without touching the durable value. A missing
// overlay entry is a silent no-op per §9's open question, logged at warn
// so an operator can notice an update racing a transition out of the
// pending states.
func (s *Subscription) UpdateSentTime(elementInstanceKey int64, messageName string, t int64) {
	mk := pendingMapKey(elementInstanceKey, messageName)
	e, ok := s.byEntity[mk]
	if !ok {
		s.logger.Warnf("%supdate_sent_time on missing pending subscription element=%d message=%q", logging.NSSubscription, elementInstanceKey, messageName)
		return
	}
	s.overlay.Delete(e)
	e.commandSentTime = t
	s.overlay.ReplaceOrInsert(e)
}

// Recover rebuilds the overlay from the durable CF, re-inserting every
// Opening or Closing subscription with commandSentTime 0 (§4.4.1,
// recovery pass, I6).
func (s *Subscription) Recover() error {
	s.overlay = btree.New(32)
	s.byEntity = make(map[string]*pendingEntry)
	return s.cf.ForEach(func(_ SubscriptionKey, v SubscriptionRecord) zeebe.VisitResult {
		if v.State == Opening || v.State == Closing {
			s.overlayAdd(v.ElementInstanceKey, v.MessageName)
		}
		return zeebe.Continue
	})
}

func (s *Subscription) overlayAdd(elementInstanceKey int64, messageName string) {
	mk := pendingMapKey(elementInstanceKey, messageName)
	if old, ok := s.byEntity[mk]; ok {
		s.overlay.Delete(old)
	}
	e := &pendingEntry{commandSentTime: 0, elementInstanceKey: elementInstanceKey, messageName: messageName}
	s.byEntity[mk] = e
	s.overlay.ReplaceOrInsert(e)
}

func (s *Subscription) overlayRemove(elementInstanceKey int64, messageName string) {
	mk := pendingMapKey(elementInstanceKey, messageName)
	e, ok := s.byEntity[mk]
	if !ok {
		return
	}
	delete(s.byEntity, mk)
	s.overlay.Delete(e)
}
