package usecase

import (
	"reflect"
	"testing"
)

func TestFrontier_AppendDeduplicates(t *testing.T) {
	f := NewFrontier()

	added := f.Append("L1", "L2", "L1", "", "L3", "L2")
	if added != 3 {
		t.Fatalf("unexpected added count: got=%d want=3", added)
	}

	if got := f.Snapshot(); !reflect.DeepEqual(got, []string{"L1", "L2", "L3"}) {
		t.Fatalf("unexpected queue order: got=%v", got)
	}

	if added := f.Append("L3"); added != 0 {
		t.Fatalf("re-appending a queued id should add nothing, got=%d", added)
	}
	if f.Len() != 3 {
		t.Fatalf("unexpected length: got=%d want=3", f.Len())
	}
}

func TestFrontier_RemoveKeepsOrder(t *testing.T) {
	f := NewFrontier()
	f.Append("L1", "L2", "L3", "L4")

	f.Remove("L2", "L4", "unknown")

	if got := f.Snapshot(); !reflect.DeepEqual(got, []string{"L1", "L3"}) {
		t.Fatalf("unexpected queue after remove: got=%v", got)
	}
	if f.Contains("L2") {
		t.Fatal("removed id still reported as queued")
	}

	// A removed id can be re-discovered later.
	if added := f.Append("L2"); added != 1 {
		t.Fatalf("re-adding removed id failed: got=%d want=1", added)
	}
	if got := f.Snapshot(); !reflect.DeepEqual(got, []string{"L1", "L3", "L2"}) {
		t.Fatalf("unexpected queue after re-add: got=%v", got)
	}
}

func TestFrontier_SnapshotIsACopy(t *testing.T) {
	f := NewFrontier()
	f.Append("L1", "L2")

	snap := f.Snapshot()
	snap[0] = "mutated"

	if got := f.Snapshot(); got[0] != "L1" {
		t.Fatalf("snapshot mutation leaked into the queue: got=%v", got)
	}
}
