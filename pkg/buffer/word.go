package buffer

import (
	"unicode"
	"unicode/utf8"
)

// Class groups clusters for word motion.
type Class int

const (
	ClassSpace Class = iota
	ClassWord
	ClassPunct
)

// IsWordRune reports whether r is considered part of a word.
// Words consist of letters, digits, or underscore characters.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// ClassOf classifies a cluster by its first rune.
func ClassOf(cluster string) Class {
	r, _ := utf8.DecodeRuneInString(cluster)
	switch {
	case unicode.IsSpace(r):
		return ClassSpace
	case IsWordRune(r):
		return ClassWord
	}
	return ClassPunct
}

// WordRight returns the offset of the next word start after col within line.
// It skips the run of clusters sharing the class at col, then any spaces.
func WordRight(line string, col int) int {
	if col >= len(line) {
		return len(line)
	}
	start := NextGrapheme(line, col)
	class := ClassOf(line[col:start])
	col = start
	for col < len(line) {
		next := NextGrapheme(line, col)
		if ClassOf(line[col:next]) != class {
			break
		}
		col = next
	}
	for col < len(line) {
		next := NextGrapheme(line, col)
		if ClassOf(line[col:next]) != ClassSpace {
			break
		}
		col = next
	}
	return col
}

// WordLeft returns the offset of the word start before col within line.
// It skips spaces, then the run of clusters sharing the preceding class.
func WordLeft(line string, col int) int {
	if col > len(line) {
		col = len(line)
	}
	for col > 0 {
		prev := PrevGrapheme(line, col)
		if ClassOf(line[prev:col]) != ClassSpace {
			break
		}
		col = prev
	}
	if col == 0 {
		return 0
	}
	prev := PrevGrapheme(line, col)
	class := ClassOf(line[prev:col])
	col = prev
	for col > 0 {
		prev = PrevGrapheme(line, col)
		if ClassOf(line[prev:col]) != class {
			break
		}
		col = prev
	}
	return col
}
