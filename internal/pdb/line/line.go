// Package line classifies one physical PDB line against a record layout.
package line

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrMalformedLine = errors.New("line: malformed line")

// MalformedLineError locates a line that does not fit its layout. Offset is
// the byte offset of the line start, Column the 1-based column at fault.
type MalformedLineError struct {
	Tag    string
	Offset int
	Column int
	Reason string
}

func (e MalformedLineError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line: %s record at offset %d: %s", e.Tag, e.Offset, e.Reason)
	}
	return fmt.Sprintf("line: %s record at offset %d column %d: %s", e.Tag, e.Offset, e.Column, e.Reason)
}

func (e MalformedLineError) Unwrap() error {
	return ErrMalformedLine
}

// Field is an inclusive, 1-based column range.
type Field struct {
	Start int
	End   int
}

func (f Field) IsZero() bool {
	return f.Start == 0 && f.End == 0
}

func (f Field) Width() int {
	if f.IsZero() {
		return 0
	}
	return f.End - f.Start + 1
}

// Layout describes the fixed columns of one record family.
type Layout struct {
	Tag          string
	Continuation Field
	// EntryKey is zero for records without secondary grouping.
	EntryKey     Field
	PayloadStart int
}

// Grouped reports whether lines carry an entry key.
func (l Layout) Grouped() bool {
	return !l.EntryKey.IsZero()
}

// firstCounterColumn is where the blank gap after the tag ends.
func (l Layout) firstCounterColumn() int {
	first := l.PayloadStart
	if !l.Continuation.IsZero() && l.Continuation.Start < first {
		first = l.Continuation.Start
	}
	if l.Grouped() && l.EntryKey.Start < first {
		first = l.EntryKey.Start
	}
	return first
}

// Line is one classified physical line. Payload aliases the input buffer and
// still carries any trailing column padding.
type Line struct {
	Tag          string
	Continuation uint
	EntryKey     uint
	Payload      []byte
}

// Matches reports whether b starts with a line carrying layout's tag.
func Matches(b []byte, layout Layout) bool {
	return hasTag(b, layout.Tag)
}

func hasTag(b []byte, tag string) bool {
	if tag == "" || len(b) < len(tag) || string(b[:len(tag)]) != tag {
		return false
	}
	if len(b) == len(tag) {
		return true
	}
	switch b[len(tag)] {
	case ' ', '\r', '\n':
		return true
	default:
		return false
	}
}

// Classify reads the line at the start of b. It returns the classified line
// and the number of bytes consumed, terminator included.
func Classify(b []byte, layout Layout) (Line, int, error) {
	end := bytes.IndexByte(b, '\n')
	if end < 0 {
		return Line{}, 0, MalformedLineError{Tag: layout.Tag, Reason: "missing line terminator"}
	}
	consumed := end + 1
	text := b[:end]
	if n := len(text); n > 0 && text[n-1] == '\r' {
		text = text[:n-1]
	}

	if !hasTag(text, layout.Tag) {
		return Line{}, 0, MalformedLineError{Tag: layout.Tag, Column: 1, Reason: "record tag mismatch"}
	}

	gapStart := len(layout.Tag) + 1
	gapEnd := layout.firstCounterColumn() - 1
	if col, ok := firstNonBlank(text, gapStart, gapEnd); ok {
		return Line{}, 0, MalformedLineError{Tag: layout.Tag, Column: col, Reason: "expected blank after record tag"}
	}

	out := Line{Tag: layout.Tag}
	if layout.Grouped() {
		key, err := counter(text, layout.EntryKey, layout.Tag, "entry key")
		if err != nil {
			return Line{}, 0, err
		}
		out.EntryKey = key
	}
	if !layout.Continuation.IsZero() {
		cont, err := counter(text, layout.Continuation, layout.Tag, "continuation")
		if err != nil {
			return Line{}, 0, err
		}
		out.Continuation = cont
	}
	if layout.PayloadStart > 0 && layout.PayloadStart <= len(text) {
		out.Payload = text[layout.PayloadStart-1:]
	}
	return out, consumed, nil
}

// columns returns the bytes of the inclusive 1-based range, clipped to text.
func columns(text []byte, start, end int) []byte {
	if start < 1 {
		start = 1
	}
	if end > len(text) {
		end = len(text)
	}
	if start > end {
		return nil
	}
	return text[start-1 : end]
}

func firstNonBlank(text []byte, start, end int) (int, bool) {
	for i, c := range columns(text, start, end) {
		if c != ' ' {
			return start + i, true
		}
	}
	return 0, false
}

// counter reads a right- or left-justified unsigned integer. A blank field
// is absent and reads as 0.
func counter(text []byte, f Field, tag, name string) (uint, error) {
	raw := columns(text, f.Start, f.End)
	lead := 0
	for lead < len(raw) && raw[lead] == ' ' {
		lead++
	}
	digits := bytes.TrimRight(raw[lead:], " ")
	if len(digits) == 0 {
		return 0, nil
	}
	var v uint
	for i, c := range digits {
		if c < '0' || c > '9' {
			return 0, MalformedLineError{
				Tag:    tag,
				Column: f.Start + lead + i,
				Reason: fmt.Sprintf("%s field %q is not an unsigned integer of width %d", name, raw, f.Width()),
			}
		}
		v = v*10 + uint(c-'0')
	}
	return v, nil
}
