package buffer

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewDocumentHasOneLine(t *testing.T) {
	d := New()
	if d.LineCount() != 1 {
		t.Fatalf("expected 1 line, got %d", d.LineCount())
	}
	if l, _ := d.Line(0); l != "" {
		t.Fatalf("expected empty line, got %q", l)
	}
}

func TestInsertSplitsLines(t *testing.T) {
	d := FromString("hello world")
	ch, err := d.Insert(Position{0, 5}, ",\nnew\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello,", "new", " world"}, d.Lines())
	assert.Equal(t, Span{Position{0, 5}, Position{2, 0}}, ch.Op.Span)
	assert.Equal(t, 0, ch.FirstLine)
	assert.Equal(t, 2, ch.LastLine)
	assert.Equal(t, 2, ch.Delta)
	assert.Equal(t, DeleteOp, ch.Inverse.Kind)
}

func TestDeleteJoinsLines(t *testing.T) {
	d := FromString("ab\ncd\nef")
	ch, err := d.Delete(Span{Position{0, 1}, Position{2, 1}})
	require.NoError(t, err)
	assert.Equal(t, []string{"af"}, d.Lines())
	assert.Equal(t, "b\ncd\ne", ch.Op.Text)
	assert.Equal(t, -2, ch.Delta)

	_, err = d.Apply(ch.Inverse)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "cd", "ef"}, d.Lines())
}

func TestJoinThenEmptyDocumentKeepsALine(t *testing.T) {
	d := FromString("x")
	_, err := d.Delete(Span{Position{0, 0}, Position{0, 1}})
	require.NoError(t, err)
	assert.Equal(t, 1, d.LineCount())
}

func TestOutOfBounds(t *testing.T) {
	d := FromString("h\u00e9llo")
	cases := []struct {
		name string
		pos  Position
	}{
		{"negative line", Position{-1, 0}},
		{"past last line", Position{1, 0}},
		{"past line end", Position{0, 7}},
		{"inside rune", Position{0, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := d.Insert(tc.pos, "x")
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}
	if _, err := d.Line(3); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for line lookup, got %v", err)
	}
	if _, err := d.Delete(Span{Position{0, 3}, Position{0, 1}}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for inverted span, got %v", err)
	}
	if got := d.Text(); got != "h\u00e9llo" {
		t.Fatalf("document changed by failed edits: %q", got)
	}
}

func TestClampPosition(t *testing.T) {
	d := FromString("a\u00e9\nb")
	assert.Equal(t, Position{0, 1}, d.ClampPosition(Position{0, 2}))
	assert.Equal(t, Position{1, 1}, d.ClampPosition(Position{9, 0}))
	assert.Equal(t, Position{0, 0}, d.ClampPosition(Position{-1, 4}))
}

func TestSlice(t *testing.T) {
	d := FromString("one\ntwo\nthree")
	got, err := d.Slice(NewSpan(Position{2, 2}, Position{0, 1}))
	require.NoError(t, err)
	assert.Equal(t, "ne\ntwo\nth", got)
}

// Applying an op and then its inverse restores the document.
func TestInverseRestoresDocument(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[a-cé ]{0,6}`), 1, 5).Draw(t, "lines")
		d := FromString(strings.Join(lines, "\n"))
		before := d.Lines()

		line := rapid.IntRange(0, d.LineCount()-1).Draw(t, "line")
		l, _ := d.Line(line)
		col := d.ClampPosition(Position{line, rapid.IntRange(0, len(l)).Draw(t, "col")})

		var ch Change
		var err error
		if rapid.Bool().Draw(t, "insert") {
			ch, err = d.Insert(col, rapid.StringMatching(`[xy\n]{0,4}`).Draw(t, "text"))
		} else {
			end := d.ClampPosition(Position{
				rapid.IntRange(line, d.LineCount()-1).Draw(t, "endLine"),
				rapid.IntRange(0, 8).Draw(t, "endCol"),
			})
			if end.Less(col) {
				end = col
			}
			ch, err = d.Delete(Span{col, end})
		}
		if err != nil {
			t.Fatalf("edit failed: %v", err)
		}
		if _, err := d.Apply(ch.Inverse); err != nil {
			t.Fatalf("inverse failed: %v", err)
		}
		if !reflect.DeepEqual(d.Lines(), before) {
			t.Fatalf("expected %q after inverse, got %q", before, d.Lines())
		}
	})
}
