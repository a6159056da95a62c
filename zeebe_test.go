package zeebe

import (
	"errors"
	"testing"

	"github.com/TitanUser/zeebe/codec"
	"github.com/TitanUser/zeebe/internal/engine"
)

func newTestTransaction(t *testing.T) (*Transaction, *engine.MemStore) {
	t.Helper()
	m := engine.NewMemStore()
	for _, cf := range []uint64{1, 2} {
		if err := m.CreateColumnFamily(cf); err != nil {
			t.Fatalf("CreateColumnFamily(%d): %v", cf, err)
		}
	}
	txn := NewTransaction(m, nil)
	txn.Begin()
	return txn, m
}

func TestTransactionPutGetWithinSameTransaction(t *testing.T) {
	txn, _ := newTestTransaction(t)

	if err := txn.Put(1, []byte("k"), []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	v, found, err := txn.Get(1, []byte("k"))
	if err != nil || !found || string(v) != "v" {
		t.Fatalf("Get: found=%v v=%q err=%v", found, v, err)
	}
}

func TestTransactionAbortDiscardsWrites(t *testing.T) {
	txn, _ := newTestTransaction(t)

	_ = txn.Put(1, []byte("k"), []byte("v"))
	if err := txn.Abort(); err != nil {
		t.Fatalf("Abort: %v", err)
	}

	_, found, err := txn.Get(1, []byte("k"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatalf("expected aborted write to be absent")
	}
}

func TestTransactionIterPrefixMergesOverlayAndCommitted(t *testing.T) {
	txn, _ := newTestTransaction(t)

	_ = txn.Put(1, []byte("a-1"), []byte("committed"))
	_ = txn.Commit()

	txn.Begin()
	_ = txn.Put(1, []byte("a-2"), []byte("uncommitted"))

	var got []string
	err := txn.IterPrefix(1, []byte("a-"), func(key, _ []byte) VisitResult {
		got = append(got, string(key))
		return Continue
	})
	if err != nil {
		t.Fatalf("IterPrefix: %v", err)
	}
	if len(got) != 2 || got[0] != "a-1" || got[1] != "a-2" {
		t.Fatalf("want [a-1 a-2], got %v", got)
	}
}

func TestColumnFamilyForeignKeyCheckRejectsMissingTarget(t *testing.T) {
	txn, _ := newTestTransaction(t)

	opts := Options{EnablePreconditions: true}
	checker := NewForeignKeyChecker(opts)

	target := NewColumnFamily[int64, string](1, codec.Int64{}, codec.String{}, txn)
	_ = target

	fkCF := NewForeignKeyColumnFamily[int64, string](2, codec.Int64{}, codec.String{}, txn, checker, 1, func(k int64) []byte {
		return codec.Int64{}.Encode(nil, k)
	})

	err := fkCF.Put(42, "referring row")
	var integrityErr *IntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("want IntegrityError, got %v", err)
	}
	if !errors.Is(err, ErrIntegrity) {
		t.Fatalf("want errors.Is(err, ErrIntegrity)")
	}
}

func TestColumnFamilyForeignKeyCheckPassesWhenTargetExists(t *testing.T) {
	txn, _ := newTestTransaction(t)

	opts := Options{EnablePreconditions: true}
	checker := NewForeignKeyChecker(opts)

	target := NewColumnFamily[int64, string](1, codec.Int64{}, codec.String{}, txn)
	if err := target.Put(42, "element"); err != nil {
		t.Fatalf("target.Put: %v", err)
	}

	fkCF := NewForeignKeyColumnFamily[int64, string](2, codec.Int64{}, codec.String{}, txn, checker, 1, func(k int64) []byte {
		return codec.Int64{}.Encode(nil, k)
	})

	if err := fkCF.Put(42, "referring row"); err != nil {
		t.Fatalf("Put with live target should succeed: %v", err)
	}
}

func TestColumnFamilyForeignKeyCheckSkippedWhenDisabled(t *testing.T) {
	txn, _ := newTestTransaction(t)

	checker := NewForeignKeyChecker(Options{EnablePreconditions: false})

	fkCF := NewForeignKeyColumnFamily[int64, string](2, codec.Int64{}, codec.String{}, txn, checker, 1, func(k int64) []byte {
		return codec.Int64{}.Encode(nil, k)
	})

	if err := fkCF.Put(42, "referring row"); err != nil {
		t.Fatalf("Put should succeed when preconditions disabled: %v", err)
	}
}

func TestColumnFamilyWhileTrueOrdering(t *testing.T) {
	txn, _ := newTestTransaction(t)

	cf := NewColumnFamily[int64, string](1, codec.Int64{}, codec.String{}, txn)
	for _, k := range []int64{30, 10, 20} {
		_ = cf.Put(k, "v")
	}

	var got []int64
	err := cf.WhileTrue(0, func(k int64, _ string) bool {
		got = append(got, k)
		return true
	})
	if err != nil {
		t.Fatalf("WhileTrue: %v", err)
	}
	want := []int64{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}
