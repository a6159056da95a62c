package table

// timer.go implements the timer table with due-date index (§4.4.2): a
// primary CF keyed by (element_instance_key, timer_key) and a secondary
// CF keyed by (due_date, element_instance_key, timer_key) holding Nil
// values, maintained in lock-step so the scheduler can answer "what's due
// next" by scanning the secondary index instead of every timer.
//
// Reference: original_source DbTimerInstanceState.java —
// findTimersWithDueDateBefore's nextDueDate bookkeeping (set whenever the
// current entry was not consumed, left untouched when consumed) is
// reproduced exactly in FindDueBefore below, including the -1L "no timers
// pending" sentinel from a scan that consumes everything.

import (
	"github.com/TitanUser/zeebe"
	"github.com/TitanUser/zeebe/codec"
)

// NoTimerDue is the sentinel FindDueBefore returns when no timer remains
// pending after the scan (§9 open question: named instead of a bare -1).
const NoTimerDue int64 = -1

// TimerKey is the primary key: (element_instance_key, timer_key).
type TimerKey = codec.Pair[int64, int64]

// dueDateKey is the secondary key: (due_date, element_instance_key,
// timer_key).
type dueDateKey = codec.Triple[int64, int64, int64]

// TimerRecord is the durable value of the primary CF.
type TimerRecord struct {
	ElementInstanceKey   int64
	TimerKey             int64
	DueDate              int64
	Repetitions          int32
	HandlerFlowNodeID    string
	ProcessDefinitionKey int64
}

// timerValueCodec encodes TimerRecord as elementInstanceKey(8) ||
// timerKey(8) || dueDate(8) || repetitions(8) || processDefinitionKey(8)
// || handlerFlowNodeId(4+n).
type timerValueCodec struct{}

func (timerValueCodec) Size(v TimerRecord) int {
	return 8 + 8 + 8 + 8 + 8 + codec.String{}.Size(v.HandlerFlowNodeID)
}

func (timerValueCodec) Encode(dst []byte, v TimerRecord) []byte {
	dst = codec.Int64{}.Encode(dst, v.ElementInstanceKey)
	dst = codec.Int64{}.Encode(dst, v.TimerKey)
	dst = codec.Int64{}.Encode(dst, v.DueDate)
	dst = codec.Int64{}.Encode(dst, int64(v.Repetitions))
	dst = codec.Int64{}.Encode(dst, v.ProcessDefinitionKey)
	dst = codec.String{}.Encode(dst, v.HandlerFlowNodeID)
	return dst
}

func (timerValueCodec) Decode(src []byte) (TimerRecord, int, error) {
	var v TimerRecord
	eik, n, err := codec.Int64{}.Decode(src)
	if err != nil {
		return v, 0, err
	}
	off := n
	tk, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	due, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	reps, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	pdk, n, err := codec.Int64{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	handler, n, err := codec.String{}.Decode(src[off:])
	if err != nil {
		return v, 0, err
	}
	off += n
	v = TimerRecord{
		ElementInstanceKey:   eik,
		TimerKey:             tk,
		DueDate:              due,
		Repetitions:          int32(reps),
		ProcessDefinitionKey: pdk,
		HandlerFlowNodeID:    handler,
	}
	return v, off, nil
}

// Timer is the table of §4.4.2.
type Timer struct {
	primary *zeebe.ColumnFamily[TimerKey, TimerRecord]
	dueDate *zeebe.ColumnFamily[dueDateKey, struct{}]
}

// NewTimer creates the table, binding both CFs to txn. The primary CF's
// element-instance component is FK-guarded against elementInstanceCF; the
// due-date CF carries no FK guard of its own (its primary-key suffix is
// already checked when the corresponding primary row is written, per
// §4.4.2 Put writing both CFs atomically).
func NewTimer(primaryCFID, dueDateCFID uint64, txn *zeebe.Transaction, checker *zeebe.ForeignKeyChecker, elementInstanceCF uint64) *Timer {
	primaryKeyCodec := codec.Composite2[int64, int64]{
		First:  codec.ForeignKey[int64]{Inner: codec.Int64{}, TargetCF: elementInstanceCF},
		Second: codec.Int64{},
	}
	fkKeyOf := func(k TimerKey) []byte {
		return codec.Int64{}.Encode(nil, k.First)
	}
	primary := zeebe.NewForeignKeyColumnFamily[TimerKey, TimerRecord](
		primaryCFID, primaryKeyCodec, timerValueCodec{}, txn, checker, elementInstanceCF, fkKeyOf)

	dueDateKeyCodec := codec.Composite3[int64, int64, int64]{
		First:  codec.Int64{},
		Second: codec.Int64{},
		Third:  codec.Int64{},
	}
	dueDateCF := zeebe.NewColumnFamily[dueDateKey, struct{}](dueDateCFID, dueDateKeyCodec, codec.Nil{}, txn)

	return &Timer{primary: primary, dueDate: dueDateCF}
}

// Put writes both CFs atomically within the current transaction (§4.4.2).
func (t *Timer) Put(timer TimerRecord) error {
	pk := TimerKey{First: timer.ElementInstanceKey, Second: timer.TimerKey}
	if err := t.primary.Put(pk, timer); err != nil {
		return err
	}
	dk := dueDateKey{First: timer.DueDate, Second: timer.ElementInstanceKey, Third: timer.TimerKey}
	return t.dueDate.Put(dk, struct{}{})
}

// Remove deletes timer from both CFs.
func (t *Timer) Remove(timer TimerRecord) error {
	pk := TimerKey{First: timer.ElementInstanceKey, Second: timer.TimerKey}
	if err := t.primary.Delete(pk); err != nil {
		return err
	}
	dk := dueDateKey{First: timer.DueDate, Second: timer.ElementInstanceKey, Third: timer.TimerKey}
	return t.dueDate.Delete(dk)
}

// Get reads the primary record for (elementInstanceKey, timerKey).
func (t *Timer) Get(elementInstanceKey, timerKey int64) (TimerRecord, bool, error) {
	return t.primary.Get(TimerKey{First: elementInstanceKey, Second: timerKey})
}

// ForEachForElement visits every timer for elementInstanceKey in ascending
// timer-key order (§4.4.2, while_equal_prefix).
func (t *Timer) ForEachForElement(elementInstanceKey int64, visit func(TimerRecord) zeebe.VisitResult) error {
	prefix := codec.Int64{}.Encode(nil, elementInstanceKey)
	return t.primary.WhileEqualPrefix(prefix, func(_ TimerKey, v TimerRecord) zeebe.VisitResult {
		return visit(v)
	})
}

// FindDueBefore scans the due-date index in ascending order. For each
// entry with due_date <= now, it resolves the primary record and invokes
// visit; visit returns true if the entry is consumed. Scanning stops at
// the first entry visit does not consume, or the first entry whose
// due_date exceeds now. The return value is that entry's due date, or
// NoTimerDue if every visited entry before exhaustion was consumed
// (§4.4.2).
func (t *Timer) FindDueBefore(now int64, visit func(TimerRecord) bool) (int64, error) {
	nextDue := NoTimerDue
	var visitErr error

	err := t.dueDate.WhileTrue(dueDateKey{}, func(k dueDateKey, _ struct{}) bool {
		dueDate := k.First
		consumed := false
		if dueDate <= now {
			timer, found, gerr := t.primary.Get(TimerKey{First: k.Second, Second: k.Third})
			if gerr != nil {
				visitErr = gerr
				return false
			}
			if found {
				consumed = visit(timer)
			}
		}
		if !consumed {
			nextDue = dueDate
		}
		return consumed
	})
	if err != nil {
		return NoTimerDue, err
	}
	if visitErr != nil {
		return NoTimerDue, visitErr
	}
	return nextDue, nil
}
