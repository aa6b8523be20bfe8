package buffer

import (
	"reflect"
	"testing"
)

func TestGapBuffer_InsertDelete(t *testing.T) {
	g := NewGapBuffer([]string{"one", "four"})
	if err := g.Insert(1, []string{"two", "three"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	want := []string{"one", "two", "three", "four"}
	if got := g.Slice(0, g.Len()); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if err := g.Delete(0, 2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	want = []string{"three", "four"}
	if got := g.Slice(0, g.Len()); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q after delete, got %q", want, got)
	}
}

func TestGapBuffer_GapMovesBothWays(t *testing.T) {
	g := NewGapBuffer([]string{"a", "b", "c", "d"})
	// move gap to the front, then past the end of the old gap
	if err := g.Insert(0, []string{"x"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := g.Insert(5, []string{"y"}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	g.SetLine(2, "B")
	want := []string{"x", "a", "B", "c", "d", "y"}
	if got := g.Slice(0, g.Len()); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestGapBuffer_Grows(t *testing.T) {
	g := NewGapBuffer(nil)
	for i := 0; i < 500; i++ {
		if err := g.Insert(g.Len()/2, []string{"l"}); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}
	if g.Len() != 500 {
		t.Fatalf("expected 500 lines, got %d", g.Len())
	}
}

func TestGapBuffer_RejectsBadRanges(t *testing.T) {
	g := NewGapBuffer([]string{"a"})
	if err := g.Insert(3, []string{"x"}); err == nil {
		t.Fatalf("expected error inserting past end")
	}
	if err := g.Delete(1, 0); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}
