package nbt

import "testing"

func TestListBasics(t *testing.T) {
	l := NewList()
	if l.Len() != 0 || l.ElementType() != TagEnd {
		t.Fatalf("fresh list: len=%d elem=%v", l.Len(), l.ElementType())
	}

	l.Add("a", "b")
	l.Insert(1, "between")
	if l.Len() != 3 {
		t.Fatalf("len = %d, want 3", l.Len())
	}
	if l.ElementType() != TagString {
		t.Fatalf("elem = %v, want %v", l.ElementType(), TagString)
	}
	if l.At(1).(string) != "between" {
		t.Fatalf("insert misplaced: %v", l.At(1))
	}

	// Duplicates are permitted.
	l.Add("a")
	if l.Len() != 4 {
		t.Fatalf("duplicate rejected")
	}

	got := make([]string, 0, l.Len())
	for v := range l.All() {
		got = append(got, v.(string))
	}
	want := []string{"a", "between", "b", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order: got %v, want %v", got, want)
		}
	}
}

func TestListMonomorphic(t *testing.T) {
	l := NewList()
	l.Add("text")

	// The policy is explicit rejection: a second insertion of a different
	// tag type panics instead of silently converting.
	expectPanic(t, func() { l.Add(int32(1)) })
	expectPanic(t, func() { l.Insert(0, int64(1)) })
	expectPanic(t, func() { l.SetAt(0, 1.5) })

	if l.Len() != 1 || l.ElementType() != TagString {
		t.Fatalf("failed insert mutated the list: len=%d elem=%v", l.Len(), l.ElementType())
	}

	// Emptying the list unlocks the element type for reuse.
	l.Clear()
	l.Add(int32(1))
	if l.ElementType() != TagInt {
		t.Fatalf("emptied list did not relock: %v", l.ElementType())
	}
}

func TestListRemove(t *testing.T) {
	l := NewList(int32(1), int32(2), int32(3), int32(2))

	if !l.Remove(int32(2)) {
		t.Fatalf("remove by value failed")
	}
	if l.Len() != 3 || l.At(1).(int32) != 3 {
		t.Fatalf("remove took the wrong element: len=%d", l.Len())
	}
	if l.Remove(int32(42)) {
		t.Fatalf("removed an element that is not present")
	}

	removed := l.RemoveAt(0)
	if removed.(int32) != 1 || l.Len() != 2 {
		t.Fatalf("positional remove: got %v, len=%d", removed, l.Len())
	}

	expectPanic(t, func() { l.RemoveAt(99) })
}

func TestListRemoveCompoundByValue(t *testing.T) {
	a := NewCompound()
	a.Set("id", int32(1))
	b := NewCompound()
	b.Set("id", int32(2))

	l := NewList(a, b)

	// Value-based removal compares native representations, so an equal but
	// distinct compound matches.
	probe := NewCompound()
	probe.Set("id", int32(1))
	if !l.Remove(probe) {
		t.Fatalf("equal compound not removed")
	}
	if l.Len() != 1 || l.At(0).(*Compound).GetInt("id", 0) != 2 {
		t.Fatalf("wrong element removed")
	}
}

func TestListWrapperIdentity(t *testing.T) {
	l := NewList()
	child := NewCompound()
	child.Set("v", int32(1))
	l.Add(child)

	if l.At(0).(*Compound) != child {
		t.Fatalf("read did not return the inserted wrapper")
	}
	if l.At(0) != l.At(0) {
		t.Fatalf("consecutive reads produced distinct wrappers")
	}
}

func TestListSetAt(t *testing.T) {
	l := NewList(int32(1), int32(2))
	l.SetAt(0, int32(9))
	if l.At(0).(int32) != 9 || l.Len() != 2 {
		t.Fatalf("SetAt: %v len=%d", l.At(0), l.Len())
	}
	expectPanic(t, func() { l.SetAt(5, int32(0)) })
}
