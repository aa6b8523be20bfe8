package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrDecode is returned when file contents are not valid UTF-8.
var ErrDecode = errors.New("invalid UTF-8")

// Line terminators.
const (
	LF   = "\n"
	CRLF = "\r\n"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Format records how a file was encoded so it can be written back unchanged.
type Format struct {
	Terminator string
	BOM        bool
}

// DefaultFormat is used for new files.
var DefaultFormat = Format{Terminator: LF}

// Name returns a short label for the terminator style.
func (f Format) Name() string {
	if f.Terminator == CRLF {
		return "CRLF"
	}
	return "LF"
}

// Decode parses file contents into a Document. CRLF is adopted only when
// every "\n" is preceded by "\r"; otherwise carriage returns stay in the
// line text so the bytes round-trip.
func Decode(data []byte) (*Document, Format, error) {
	if !utf8.Valid(data) {
		return nil, Format{}, fmt.Errorf("%w at byte %d", ErrDecode, firstInvalid(data))
	}
	f := DefaultFormat
	if bytes.HasPrefix(data, bom) {
		f.BOM = true
		data = data[len(bom):]
	}
	s := string(data)
	if lf := strings.Count(s, LF); lf > 0 && strings.Count(s, CRLF) == lf {
		f.Terminator = CRLF
		s = strings.ReplaceAll(s, CRLF, LF)
	}
	return FromString(s), f, nil
}

// Encode renders d using format f.
func Encode(d *Document, f Format) []byte {
	var buf bytes.Buffer
	if f.BOM {
		buf.Write(bom)
	}
	term := f.Terminator
	if term == "" {
		term = LF
	}
	for i, line := range d.Lines() {
		if i > 0 {
			buf.WriteString(term)
		}
		buf.WriteString(line)
	}
	return buf.Bytes()
}

func firstInvalid(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(data)
}
