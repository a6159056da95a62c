package table

import (
	"testing"

	"github.com/TitanUser/zeebe"
	"github.com/TitanUser/zeebe/internal/engine"
)

func newTestSetup(t *testing.T) (*zeebe.Transaction, *zeebe.ForeignKeyChecker) {
	t.Helper()
	m := engine.NewMemStore()
	for _, cf := range []uint64{1, 2, 3, 4} {
		if err := m.CreateColumnFamily(cf); err != nil {
			t.Fatalf("CreateColumnFamily(%d): %v", cf, err)
		}
	}
	txn := zeebe.NewTransaction(m, nil)
	txn.Begin()
	checker := zeebe.NewForeignKeyChecker(zeebe.Options{EnablePreconditions: true})
	return txn, checker
}

// TestTimerScheduling is scenario 1 of §8.2: a consuming visitor observes
// the earlier due timer exactly once and the scan reports the later due
// date as the next wake-up hint.
func TestTimerScheduling(t *testing.T) {
	txn, checker := newTestSetup(t)
	elems := NewElementInstance(1, txn)
	_ = elems.Put(ElementInstanceRecord{Key: 1})

	timers := NewTimer(3, 4, txn, checker, 1)
	_ = timers.Put(TimerRecord{ElementInstanceKey: 1, TimerKey: 10, DueDate: 100})
	_ = timers.Put(TimerRecord{ElementInstanceKey: 1, TimerKey: 11, DueDate: 200})

	var visited []int64
	next, err := timers.FindDueBefore(150, func(tr TimerRecord) bool {
		visited = append(visited, tr.DueDate)
		return true
	})
	if err != nil {
		t.Fatalf("FindDueBefore: %v", err)
	}
	if len(visited) != 1 || visited[0] != 100 {
		t.Fatalf("want exactly one visit at due=100, got %v", visited)
	}
	if next != 200 {
		t.Fatalf("want next due date 200, got %d", next)
	}
}

// TestTimerSchedulingNonConsumingVisitor is scenario 2 of §8.2.
func TestTimerSchedulingNonConsumingVisitor(t *testing.T) {
	txn, checker := newTestSetup(t)
	elems := NewElementInstance(1, txn)
	_ = elems.Put(ElementInstanceRecord{Key: 1})

	timers := NewTimer(3, 4, txn, checker, 1)
	_ = timers.Put(TimerRecord{ElementInstanceKey: 1, TimerKey: 10, DueDate: 100})
	_ = timers.Put(TimerRecord{ElementInstanceKey: 1, TimerKey: 11, DueDate: 200})

	var firstVisited int64 = -2
	next, err := timers.FindDueBefore(250, func(tr TimerRecord) bool {
		if firstVisited == -2 {
			firstVisited = tr.DueDate
		}
		return false
	})
	if err != nil {
		t.Fatalf("FindDueBefore: %v", err)
	}
	if firstVisited != 100 {
		t.Fatalf("want first visited timer due=100, got %d", firstVisited)
	}
	if next != 100 {
		t.Fatalf("want return value 100, got %d", next)
	}
}

func TestTimerSchedulingAllConsumedReturnsNoTimerDue(t *testing.T) {
	txn, checker := newTestSetup(t)
	elems := NewElementInstance(1, txn)
	_ = elems.Put(ElementInstanceRecord{Key: 1})

	timers := NewTimer(3, 4, txn, checker, 1)
	_ = timers.Put(TimerRecord{ElementInstanceKey: 1, TimerKey: 10, DueDate: 100})

	next, err := timers.FindDueBefore(200, func(TimerRecord) bool { return true })
	if err != nil {
		t.Fatalf("FindDueBefore: %v", err)
	}
	if next != NoTimerDue {
		t.Fatalf("want NoTimerDue, got %d", next)
	}
}

// TestSubscriptionLifecycle is scenario 3 of §8.2.
func TestSubscriptionLifecycle(t *testing.T) {
	txn, checker := newTestSetup(t)
	elems := NewElementInstance(1, txn)
	_ = elems.Put(ElementInstanceRecord{Key: 5})

	subs := NewSubscription(2, txn, checker, 1, nil)
	record := SubscriptionRecord{ElementInstanceKey: 5, MessageName: "M", State: Opening}
	if err := subs.Put(record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := subs.TransitionToOpened(record); err != nil {
		t.Fatalf("TransitionToOpened: %v", err)
	}

	var count int
	subs.VisitPendingBefore(1<<62, func(int64, string, int64) zeebe.VisitResult {
		count++
		return zeebe.Continue
	})
	if count != 0 {
		t.Fatalf("want zero pending entries after TransitionToOpened, got %d", count)
	}

	if err := subs.TransitionToClosing(record); err != nil {
		t.Fatalf("TransitionToClosing: %v", err)
	}
	count = 0
	subs.VisitPendingBefore(1<<62, func(int64, string, int64) zeebe.VisitResult {
		count++
		return zeebe.Continue
	})
	if count != 1 {
		t.Fatalf("want one pending entry after TransitionToClosing, got %d", count)
	}
}

// TestSubscriptionPrefixScan is scenario 4 of §8.2.
func TestSubscriptionPrefixScan(t *testing.T) {
	txn, checker := newTestSetup(t)
	elems := NewElementInstance(1, txn)
	_ = elems.Put(ElementInstanceRecord{Key: 7})
	_ = elems.Put(ElementInstanceRecord{Key: 9})

	subs := NewSubscription(2, txn, checker, 1, nil)
	_ = subs.Put(SubscriptionRecord{ElementInstanceKey: 7, MessageName: "A"})
	_ = subs.Put(SubscriptionRecord{ElementInstanceKey: 7, MessageName: "B"})
	_ = subs.Put(SubscriptionRecord{ElementInstanceKey: 9, MessageName: "A"})

	var names []string
	err := subs.VisitElementSubscriptions(7, func(r SubscriptionRecord) zeebe.VisitResult {
		names = append(names, r.MessageName)
		return zeebe.Continue
	})
	if err != nil {
		t.Fatalf("VisitElementSubscriptions: %v", err)
	}
	if len(names) != 2 || names[0] != "A" || names[1] != "B" {
		t.Fatalf("want [A B], got %v", names)
	}
}

// TestForeignKeyIntegrityOnMissingElementInstance is scenario 5 of §8.2.
func TestForeignKeyIntegrityOnMissingElementInstance(t *testing.T) {
	txn, checker := newTestSetup(t)
	timers := NewTimer(3, 4, txn, checker, 1)

	err := timers.Put(TimerRecord{ElementInstanceKey: 42, TimerKey: 1, DueDate: 100})
	if err == nil {
		t.Fatalf("expected IntegrityError for missing element instance 42")
	}

	if err := txn.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	if _, found, _ := timers.Get(42, 1); found {
		t.Fatalf("store should be unchanged after abort")
	}
}

// TestSubscriptionRecoveryFidelity is scenario 6 of §8.2.
func TestSubscriptionRecoveryFidelity(t *testing.T) {
	txn, checker := newTestSetup(t)
	elems := NewElementInstance(1, txn)
	_ = elems.Put(ElementInstanceRecord{Key: 5})

	subs := NewSubscription(2, txn, checker, 1, nil)
	record := SubscriptionRecord{ElementInstanceKey: 5, MessageName: "M", State: Opening}
	_ = subs.Put(record)
	if err := txn.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	txn.Begin()
	recovered := NewSubscription(2, txn, checker, 1, nil)
	if err := recovered.Recover(); err != nil {
		t.Fatalf("Recover: %v", err)
	}

	var count int
	recovered.VisitPendingBefore(1<<62, func(int64, string, int64) zeebe.VisitResult {
		count++
		return zeebe.Continue
	})
	if count != 1 {
		t.Fatalf("want exactly one pending subscription after recovery, got %d", count)
	}
}
