package buffer

import "github.com/rivo/uniseg"

// Grapheme is one user-perceived character of a line.
type Grapheme struct {
	Text  string
	Start int
	End   int
	Width int
}

// Graphemes splits line into grapheme clusters.
func Graphemes(line string) []Grapheme {
	out := make([]Grapheme, 0, len(line))
	state := -1
	off := 0
	for rest := line; len(rest) > 0; {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		out = append(out, Grapheme{Text: cluster, Start: off, End: off + len(cluster), Width: width})
		off += len(cluster)
	}
	return out
}

// NextGrapheme returns the offset of the boundary after the cluster at col.
func NextGrapheme(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(line[col:], -1)
	return col + len(cluster)
}

// PrevGrapheme returns the start of the cluster that ends at or contains
// the byte before col.
func PrevGrapheme(line string, col int) int {
	if col <= 0 {
		return 0
	}
	prev, off, state := 0, 0, -1
	for rest := line; off < col && len(rest) > 0; {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		prev = off
		off += len(cluster)
	}
	return prev
}

// GraphemeWidth returns the display width of a single cluster.
func GraphemeWidth(cluster string) int {
	return uniseg.StringWidth(cluster)
}
