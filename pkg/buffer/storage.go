package buffer

// LineStorage defines the line operations a Document is built on.
// Indices count lines, not bytes.
type LineStorage interface {
	Insert(pos int, lines []string) error
	Delete(start, end int) error
	Line(i int) string
	SetLine(i int, s string)
	Slice(start, end int) []string
	Len() int
}

var _ LineStorage = (*GapBuffer)(nil)
