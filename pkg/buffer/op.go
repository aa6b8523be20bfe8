package buffer

// OpKind is the kind of an EditOp.
type OpKind int

const (
	InsertOp OpKind = iota
	DeleteOp
)

func (k OpKind) String() string {
	if k == InsertOp {
		return "insert"
	}
	return "delete"
}

// EditOp is a single primitive mutation. For an insert, Span is the region
// the text occupies after insertion; for a delete, Span is the removed region
// and Text the removed text.
type EditOp struct {
	Kind OpKind
	Span Span
	Text string
}

// Inverse returns the op that undoes o.
func (o EditOp) Inverse() EditOp {
	inv := o
	if o.Kind == InsertOp {
		inv.Kind = DeleteOp
	} else {
		inv.Kind = InsertOp
	}
	return inv
}

// Change describes an applied mutation.
type Change struct {
	Op      EditOp
	Inverse EditOp
	// FirstLine and LastLine bound the changed lines after the edit.
	FirstLine int
	LastLine  int
	// Delta is the change in line count.
	Delta int
}
