package history

import (
	"fmt"
	"strings"
	"time"

	"example.com/wrapedit/pkg/buffer"
)

// DefaultCapacity bounds the undo stack when New is given zero.
const DefaultCapacity = 1000

// DefaultGroupWindow is how long consecutive keystrokes keep merging.
const DefaultGroupWindow = time.Second

// Applier applies primitive ops to a document.
type Applier interface {
	Apply(op buffer.EditOp) (buffer.Change, error)
}

// Transaction is a group of ops undone and redone as one unit.
type Transaction struct {
	ID     uint64
	Ops    []buffer.EditOp
	Before buffer.Position
	After  buffer.Position

	at        time.Time
	groupable bool
}

// History keeps stacks of past/future transactions for undo/redo.
type History struct {
	past   []*Transaction
	future []*Transaction

	capacity int
	// GroupWindow limits how far apart merged keystrokes may be. Zero
	// disables merging.
	GroupWindow time.Duration
	// Now is the clock used for grouping.
	Now func() time.Time

	open   *Transaction
	depth  int
	sealed bool
	nextID uint64
}

// New creates an empty History holding at most capacity transactions.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity, GroupWindow: DefaultGroupWindow, Now: time.Now}
}

// Begin opens a transaction. Nested calls join the outer transaction.
func (h *History) Begin(before buffer.Position) {
	h.depth++
	if h.open == nil {
		h.open = &Transaction{Before: before}
	}
}

// Record adds an applied op to the open transaction.
func (h *History) Record(op buffer.EditOp) {
	if h.open == nil {
		return
	}
	if op.Text == "" {
		return
	}
	h.open.Ops = append(h.open.Ops, op)
}

// Commit closes the transaction. It reports whether anything was added to
// the undo stack; empty transactions are dropped.
func (h *History) Commit(after buffer.Position) bool {
	if h.open == nil {
		return false
	}
	h.depth--
	if h.depth > 0 {
		return false
	}
	t := h.open
	h.open = nil
	if len(t.Ops) == 0 {
		return false
	}
	t.After = after
	t.at = h.Now()
	h.future = nil
	h.nextID++
	t.ID = h.nextID

	typing, newline := classify(t)
	if typing && h.mergeable(t) {
		top := h.past[len(h.past)-1]
		top.Ops = append(top.Ops, t.Ops...)
		top.After = t.After
		top.at = t.at
		top.ID = t.ID
		h.sealed = false
		return true
	}
	t.groupable = typing || newline
	h.past = append(h.past, t)
	if len(h.past) > h.capacity {
		h.past[0] = nil
		h.past = h.past[1:]
	}
	h.sealed = false
	return true
}

func classify(t *Transaction) (typing, newline bool) {
	if len(t.Ops) != 1 || t.Ops[0].Kind != buffer.InsertOp {
		return false, false
	}
	if strings.Contains(t.Ops[0].Text, "\n") {
		return false, true
	}
	return true, false
}

func (h *History) mergeable(t *Transaction) bool {
	if h.sealed || h.GroupWindow <= 0 || len(h.past) == 0 {
		return false
	}
	top := h.past[len(h.past)-1]
	if !top.groupable || top.After != t.Before || t.Ops[0].Span.Start != top.After {
		return false
	}
	return t.at.Sub(top.at) <= h.GroupWindow
}

// Abort rolls back every op recorded in the open transaction and discards it.
func (h *History) Abort(a Applier) error {
	t := h.open
	h.open = nil
	h.depth = 0
	if t == nil {
		return nil
	}
	_, err := applyReverse(a, t.Ops)
	return err
}

// Seal stops the next committed transaction from merging with the current
// top of the undo stack.
func (h *History) Seal() { h.sealed = true }

// CanUndo reports whether there is a transaction to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is a transaction to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Len returns the depth of the undo stack.
func (h *History) Len() int { return len(h.past) }

// StateID identifies the document state the history currently describes.
func (h *History) StateID() uint64 {
	if len(h.past) == 0 {
		return 0
	}
	return h.past[len(h.past)-1].ID
}

// Undo reverts the last transaction. It returns nil when there is nothing
// to undo.
func (h *History) Undo(a Applier) (*Transaction, []buffer.Change, error) {
	if !h.CanUndo() {
		return nil, nil, nil
	}
	t := h.past[len(h.past)-1]
	changes, err := applyReverse(a, t.Ops)
	if err != nil {
		return nil, nil, fmt.Errorf("undo: %w", err)
	}
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, t)
	h.sealed = true
	return t, changes, nil
}

// Redo reapplies the last undone transaction. It returns nil when there is
// nothing to redo.
func (h *History) Redo(a Applier) (*Transaction, []buffer.Change, error) {
	if !h.CanRedo() {
		return nil, nil, nil
	}
	t := h.future[len(h.future)-1]
	changes := make([]buffer.Change, 0, len(t.Ops))
	for i, op := range t.Ops {
		ch, err := a.Apply(op)
		if err != nil {
			_, _ = applyReverse(a, t.Ops[:i])
			return nil, nil, fmt.Errorf("redo: %w", err)
		}
		changes = append(changes, ch)
	}
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, t)
	h.sealed = true
	return t, changes, nil
}

// applyReverse applies the inverses of ops in reverse order. On failure it
// reapplies what it already reverted.
func applyReverse(a Applier, ops []buffer.EditOp) ([]buffer.Change, error) {
	changes := make([]buffer.Change, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		ch, err := a.Apply(ops[i].Inverse())
		if err != nil {
			for j := i + 1; j < len(ops); j++ {
				_, _ = a.Apply(ops[j])
			}
			return nil, err
		}
		changes = append(changes, ch)
	}
	return changes, nil
}
