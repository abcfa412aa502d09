package primitive

import (
	"testing"
)

func TestIterator_Exhaustion(t *testing.T) {
	list := NewList()
	const n = 5
	for i := 0; i < n; i++ {
		list.Append(i)
	}

	it := NewIterator(list)
	for i := 0; i < n; i++ {
		// HasNext is pure: repeated calls do not advance.
		for j := 0; j < 3; j++ {
			if !it.HasNext() {
				t.Fatalf("HasNext false before element %d", i)
			}
		}
		if _, ok := it.Next(); !ok {
			t.Fatalf("Next failed at element %d", i)
		}
	}

	if it.HasNext() {
		t.Fatal("HasNext should be false after size elements")
	}
	if _, ok := it.Next(); ok {
		t.Fatal("Next past the end should report !ok")
	}
	// Exhaustion is stable.
	if _, ok := it.Next(); ok {
		t.Fatal("Repeated Next past the end should keep reporting !ok")
	}
}

func TestIterator_EmptyList(t *testing.T) {
	it := NewIterator(NewList())
	if it.HasNext() {
		t.Fatal("Iterator over empty list should be exhausted immediately")
	}
	if _, ok := it.Next(); ok {
		t.Fatal("Next on empty list should report !ok")
	}
}

func TestIterator_ObservesAppends(t *testing.T) {
	list := NewList()
	list.Append("a")

	it := NewIterator(list)
	if v, _ := it.Next(); v != "a" {
		t.Fatalf("Expected 'a', got %v", v)
	}
	if it.HasNext() {
		t.Fatal("Iterator should be exhausted")
	}

	// Live view: appending after creation revives the iterator.
	list.Append("b")
	if !it.HasNext() {
		t.Fatal("HasNext should observe the appended element")
	}
	v, ok := it.Next()
	if !ok || v != "b" {
		t.Fatalf("Expected 'b', got %v, %v", v, ok)
	}
}
