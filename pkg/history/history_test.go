package history

import (
	"testing"
	"time"

	"example.com/wrapedit/pkg/buffer"
	"pgregory.net/rapid"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestHistory(capacity int) (*History, *fakeClock) {
	h := New(capacity)
	c := &fakeClock{t: time.Unix(0, 0)}
	h.Now = c.now
	return h, c
}

func pos(line, col int) buffer.Position { return buffer.Position{Line: line, Col: col} }

// insert applies and records a one-op transaction.
func insert(t *testing.T, h *History, d *buffer.Document, at buffer.Position, text string) {
	t.Helper()
	h.Begin(at)
	ch, err := d.Insert(at, text)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	h.Record(ch.Op)
	h.Commit(ch.Op.Span.End)
}

func TestHistory_UndoRedo_InsertDelete(t *testing.T) {
	d := buffer.FromString("abc")
	h, _ := newTestHistory(10)
	h.GroupWindow = 0

	insert(t, h, d, pos(0, 1), "X")
	h.Begin(pos(0, 3))
	ch, err := d.Delete(buffer.Span{Start: pos(0, 2), End: pos(0, 3)})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	h.Record(ch.Op)
	h.Commit(pos(0, 2))
	if d.Text() != "aXc" {
		t.Fatalf("expected aXc, got %q", d.Text())
	}

	tx, _, err := h.Undo(d)
	if err != nil || tx == nil {
		t.Fatalf("undo failed: %v", err)
	}
	if d.Text() != "aXbc" || tx.Before != pos(0, 3) {
		t.Fatalf("expected aXbc with cursor 0:3, got %q %v", d.Text(), tx.Before)
	}
	if _, _, err := h.Undo(d); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if d.Text() != "abc" {
		t.Fatalf("expected abc after undo, got %q", d.Text())
	}
	tx, _, err = h.Redo(d)
	if err != nil || d.Text() != "aXbc" || tx.After != pos(0, 2) {
		t.Fatalf("expected aXbc after redo, got %q (%v)", d.Text(), err)
	}
	if _, _, err := h.Redo(d); err != nil || d.Text() != "aXc" {
		t.Fatalf("expected aXc after redo, got %q (%v)", d.Text(), err)
	}
}

func TestUndoOnEmptyStackIsNoop(t *testing.T) {
	d := buffer.FromString("x")
	h, _ := newTestHistory(10)
	tx, changes, err := h.Undo(d)
	if tx != nil || changes != nil || err != nil {
		t.Fatalf("expected no-op, got %v %v %v", tx, changes, err)
	}
	if tx, _, _ := h.Redo(d); tx != nil {
		t.Fatalf("expected redo no-op")
	}
	if d.Text() != "x" {
		t.Fatalf("document changed: %q", d.Text())
	}
}

func TestEmptyTransactionNotPushed(t *testing.T) {
	h, _ := newTestHistory(10)
	h.Begin(pos(0, 0))
	if h.Commit(pos(0, 0)) {
		t.Fatalf("expected empty transaction to be dropped")
	}
	if h.CanUndo() {
		t.Fatalf("expected empty undo stack")
	}
}

func TestCommitClearsRedo(t *testing.T) {
	d := buffer.New()
	h, _ := newTestHistory(10)
	h.GroupWindow = 0
	insert(t, h, d, pos(0, 0), "a")
	if _, _, err := h.Undo(d); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if !h.CanRedo() {
		t.Fatalf("expected redo available")
	}
	insert(t, h, d, pos(0, 0), "b")
	if h.CanRedo() {
		t.Fatalf("expected redo stack cleared by new commit")
	}
}

func TestCapacityDropsOldest(t *testing.T) {
	d := buffer.New()
	h, _ := newTestHistory(3)
	h.GroupWindow = 0
	for i := 0; i < 5; i++ {
		insert(t, h, d, pos(0, i), "x")
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 transactions, got %d", h.Len())
	}
	for h.CanUndo() {
		if _, _, err := h.Undo(d); err != nil {
			t.Fatalf("undo failed: %v", err)
		}
	}
	if d.Text() != "xx" {
		t.Fatalf("expected the two oldest inserts to stay, got %q", d.Text())
	}
}

func TestTypingMerges(t *testing.T) {
	d := buffer.New()
	h, clock := newTestHistory(10)
	insert(t, h, d, pos(0, 0), "a")
	clock.t = clock.t.Add(100 * time.Millisecond)
	insert(t, h, d, pos(0, 1), "b")
	if h.Len() != 1 {
		t.Fatalf("expected keystrokes merged, got %d transactions", h.Len())
	}
	clock.t = clock.t.Add(5 * time.Second)
	insert(t, h, d, pos(0, 2), "c")
	if h.Len() != 2 {
		t.Fatalf("expected window to split groups, got %d", h.Len())
	}
	h.Seal()
	insert(t, h, d, pos(0, 3), "d")
	if h.Len() != 3 {
		t.Fatalf("expected seal to split groups, got %d", h.Len())
	}
}

func TestNewlineStartsGroup(t *testing.T) {
	d := buffer.New()
	h, _ := newTestHistory(10)
	insert(t, h, d, pos(0, 0), "a")
	insert(t, h, d, pos(0, 1), "b")
	insert(t, h, d, pos(0, 2), "\n")
	insert(t, h, d, pos(1, 0), "c")
	insert(t, h, d, pos(1, 1), "d")

	tx, _, err := h.Undo(d)
	if err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if d.Text() != "ab" || tx.Before != pos(0, 2) {
		t.Fatalf("expected [ab] at 0:2, got %q at %v", d.Text(), tx.Before)
	}
}

func TestStateIDChangesOnMerge(t *testing.T) {
	d := buffer.New()
	h, _ := newTestHistory(10)
	insert(t, h, d, pos(0, 0), "a")
	saved := h.StateID()
	insert(t, h, d, pos(0, 1), "b")
	if h.StateID() == saved {
		t.Fatalf("expected merged transaction to get a new state id")
	}
	if _, _, err := h.Undo(d); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if h.StateID() != 0 {
		t.Fatalf("expected initial state id after full undo, got %d", h.StateID())
	}
}

func TestAbortRollsBack(t *testing.T) {
	d := buffer.FromString("abc")
	h, _ := newTestHistory(10)
	h.Begin(pos(0, 0))
	ch1, _ := d.Insert(pos(0, 0), "12")
	h.Record(ch1.Op)
	ch2, _ := d.Delete(buffer.Span{Start: pos(0, 3), End: pos(0, 5)})
	h.Record(ch2.Op)
	if err := h.Abort(d); err != nil {
		t.Fatalf("abort failed: %v", err)
	}
	if d.Text() != "abc" {
		t.Fatalf("expected rollback to abc, got %q", d.Text())
	}
	if h.CanUndo() {
		t.Fatalf("aborted transaction must not be pushed")
	}
}

func TestNestedBeginJoinsOuter(t *testing.T) {
	d := buffer.New()
	h, _ := newTestHistory(10)
	h.GroupWindow = 0
	h.Begin(pos(0, 0))
	insert(t, h, d, pos(0, 0), "in")
	ch, _ := d.Insert(pos(0, 2), "ner")
	h.Record(ch.Op)
	h.Commit(pos(0, 5))
	if h.Len() != 1 {
		t.Fatalf("expected a single transaction, got %d", h.Len())
	}
}

// Undoing everything restores the initial document.
func TestUndoAllRestoresDocument(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.StringMatching(`[ab\n]{0,8}`).Draw(t, "initial")
		d := buffer.FromString(initial)
		h := New(100)
		n := rapid.IntRange(1, 20).Draw(t, "edits")
		for i := 0; i < n; i++ {
			end := d.End()
			line := rapid.IntRange(0, end.Line).Draw(t, "line")
			l, _ := d.Line(line)
			p := d.ClampPosition(buffer.Position{Line: line, Col: rapid.IntRange(0, len(l)).Draw(t, "col")})
			h.Begin(p)
			var ch buffer.Change
			var err error
			if rapid.Bool().Draw(t, "insert") {
				ch, err = d.Insert(p, rapid.StringMatching(`[xyé\n]{1,3}`).Draw(t, "text"))
			} else {
				ch, err = d.Delete(buffer.Span{Start: p, End: d.End()})
			}
			if err != nil {
				t.Fatalf("edit failed: %v", err)
			}
			h.Record(ch.Op)
			h.Commit(p)
		}
		for h.CanUndo() {
			if _, _, err := h.Undo(d); err != nil {
				t.Fatalf("undo failed: %v", err)
			}
		}
		if d.Text() != initial {
			t.Fatalf("expected %q after undoing everything, got %q", initial, d.Text())
		}
	})
}
