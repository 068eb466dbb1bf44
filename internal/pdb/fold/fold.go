// Package fold reassembles runs of physical lines into logical entries.
//
// Ownership boundary:
// - continuation folding (one body per run of same-tag lines)
// - entry grouping (one body per run of equal entry keys)
// - UTF-8 validation of folded bodies
package fold

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/pdbfold/internal/pdb/line"
)

// Arity is how many matching lines a fold requires.
type Arity int

const (
	OneOrMore Arity = iota
	ZeroOrMore
)

var (
	ErrNoLines  = errors.New("fold: no matching lines")
	ErrEncoding = errors.New("fold: invalid utf-8")
)

// EncodingError reports a folded body that is not valid UTF-8. Offset is the
// start of the first line whose payload is invalid.
type EncodingError struct {
	Tag    string
	Offset int
}

func (e EncodingError) Error() string {
	return fmt.Sprintf("fold: %s record at offset %d: payload is not valid utf-8", e.Tag, e.Offset)
}

func (e EncodingError) Unwrap() error {
	return ErrEncoding
}

// Entry is one logical entry. Key is 0 for records without grouping.
type Entry struct {
	Key  uint
	Body string
}

type segment struct {
	line   line.Line
	offset int
}

// Continuation folds every leading line of b that carries layout's tag into a
// single entry and returns it with the number of bytes consumed. Continuation
// counters are read but never used to reorder lines.
func Continuation(b []byte, layout line.Layout, arity Arity) (Entry, int, error) {
	segs, n, err := collect(b, layout)
	if err != nil {
		return Entry{}, 0, err
	}
	if len(segs) == 0 {
		if arity == OneOrMore {
			return Entry{}, 0, fmt.Errorf("%w: expected %s record", ErrNoLines, layout.Tag)
		}
		return Entry{}, 0, nil
	}
	body, err := join(segs, layout.Tag)
	if err != nil {
		return Entry{}, 0, err
	}
	log.Trace().Str("tag", layout.Tag).Int("lines", len(segs)).Int("bytes", n).Msg("fold.Continuation")
	return Entry{Body: body}, n, nil
}

// Group folds the leading lines of b that carry layout's tag, splitting them
// into maximal runs of equal entry key. Runs that share a key but are not
// adjacent stay separate entries.
func Group(b []byte, layout line.Layout, arity Arity) ([]Entry, int, error) {
	segs, n, err := collect(b, layout)
	if err != nil {
		return nil, 0, err
	}
	if len(segs) == 0 {
		if arity == OneOrMore {
			return nil, 0, fmt.Errorf("%w: expected %s record", ErrNoLines, layout.Tag)
		}
		return []Entry{}, 0, nil
	}

	entries := make([]Entry, 0, 4)
	start := 0
	for i := 1; i <= len(segs); i++ {
		if i < len(segs) && segs[i].line.EntryKey == segs[start].line.EntryKey {
			continue
		}
		body, err := join(segs[start:i], layout.Tag)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, Entry{Key: segs[start].line.EntryKey, Body: body})
		start = i
	}
	log.Trace().Str("tag", layout.Tag).Int("lines", len(segs)).Int("entries", len(entries)).Msg("fold.Group")
	return entries, n, nil
}

func collect(b []byte, layout line.Layout) ([]segment, int, error) {
	segs := make([]segment, 0, 8)
	offset := 0
	for offset < len(b) && line.Matches(b[offset:], layout) {
		l, n, err := line.Classify(b[offset:], layout)
		if err != nil {
			var me line.MalformedLineError
			if errors.As(err, &me) {
				me.Offset += offset
				return nil, 0, me
			}
			return nil, 0, err
		}
		segs = append(segs, segment{line: l, offset: offset})
		offset += n
	}
	return segs, offset, nil
}

// join concatenates payloads with trailing padding removed. No separator is
// inserted; continuation payloads carry their own leading blank.
func join(segs []segment, tag string) (string, error) {
	var sb strings.Builder
	for _, s := range segs {
		sb.Write(trimPadding(s.line.Payload))
	}
	body := sb.String()
	if utf8.ValidString(body) {
		return body, nil
	}
	offset := segs[0].offset
	for _, s := range segs {
		if !utf8.Valid(s.line.Payload) {
			offset = s.offset
			break
		}
	}
	return "", EncodingError{Tag: tag, Offset: offset}
}

func trimPadding(p []byte) []byte {
	end := len(p)
	for end > 0 && (p[end-1] == ' ' || p[end-1] == '\t') {
		end--
	}
	return p[:end]
}
