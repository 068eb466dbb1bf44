package pdb

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/pdbfold/internal/pdb/line"
	"github.com/danmuck/pdbfold/internal/pdb/record"
)

var ErrNoProgress = errors.New("pdb: handler consumed no input")

// RecordError locates a failing record block within the file.
type RecordError struct {
	Tag    string
	Offset int
	Err    error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("pdb: %s block at offset %d: %v", e.Tag, e.Offset, e.Err)
}

func (e RecordError) Unwrap() error {
	return e.Err
}

// Options tune a single Parse call.
type Options struct {
	Policy record.Policy
}

// File holds every parsed record of one PDB file. Repeated blocks of the same
// tag are appended in file order.
type File struct {
	Compnd []record.Compnd       `json:"compnd,omitempty" yaml:"compnd,omitempty"`
	Source []record.Source       `json:"source,omitempty" yaml:"source,omitempty"`
	Revdat []record.RevdatResult `json:"revdat,omitempty" yaml:"revdat,omitempty"`
	Text   []record.Text         `json:"text,omitempty" yaml:"text,omitempty"`

	// Parsed counts blocks per tag; Skipped counts lines of unregistered tags.
	Parsed  map[string]int `json:"parsed" yaml:"parsed"`
	Skipped map[string]int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

func newFile() *File {
	return &File{Parsed: make(map[string]int), Skipped: make(map[string]int)}
}

// Tokens counts tokens across COMPND and SOURCE blocks.
func (f *File) Tokens() int {
	n := 0
	for _, c := range f.Compnd {
		n += len(c.Tokens)
	}
	for _, s := range f.Source {
		n += len(s.Tokens)
	}
	return n
}

// Substitutions counts REVDAT entries replaced by the sentinel.
func (f *File) Substitutions() int {
	n := 0
	for _, r := range f.Revdat {
		n += r.Substitutions()
	}
	return n
}

// Parse walks data line by line and runs the registered handler on each
// contiguous block of a known tag. A final line without a terminator is
// accepted.
func Parse(data []byte, reg *Registry, opts Options) (*File, error) {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(bytes.Clone(data), '\n')
	}

	f := newFile()
	offset := 0
	for offset < len(data) {
		rest := data[offset:]
		tag := lineTag(rest)
		h, ok := reg.Resolve(tag)
		if !ok {
			f.Skipped[tag]++
			offset += lineLength(rest)
			continue
		}

		n, err := h.Parse(rest, f, opts)
		if err != nil {
			return nil, RecordError{Tag: tag, Offset: offset, Err: err}
		}
		if n <= 0 {
			return nil, RecordError{Tag: tag, Offset: offset, Err: ErrNoProgress}
		}
		f.Parsed[tag]++
		log.Trace().Str("tag", tag).Int("offset", offset).Int("bytes", n).Msg("pdb block")
		offset += n
	}
	log.Debug().Int("bytes", len(data)).Int("blocks", sum(f.Parsed)).Int("skipped_lines", sum(f.Skipped)).Msg("pdb file parsed")
	return f, nil
}

// lineTag reads the record name from columns 1-6, without padding.
func lineTag(b []byte) string {
	end := 0
	for end < len(b) && end < 6 {
		c := b[end]
		if c == ' ' || c == '\r' || c == '\n' {
			break
		}
		end++
	}
	return string(b[:end])
}

func lineLength(b []byte) int {
	if i := bytes.IndexByte(b, '\n'); i >= 0 {
		return i + 1
	}
	return len(b)
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}

func parseCompnd(b []byte, f *File, _ Options) (int, error) {
	rec, n, err := record.ParseCompnd(b)
	if err != nil {
		return 0, err
	}
	f.Compnd = append(f.Compnd, rec)
	return n, nil
}

func parseSource(b []byte, f *File, _ Options) (int, error) {
	rec, n, err := record.ParseSource(b)
	if err != nil {
		return 0, err
	}
	f.Source = append(f.Source, rec)
	return n, nil
}

func parseRevdat(b []byte, f *File, opts Options) (int, error) {
	res, n, err := record.ParseRevdat(b, opts.Policy)
	if err != nil {
		return 0, err
	}
	f.Revdat = append(f.Revdat, res)
	return n, nil
}

func textParser(layout line.Layout) ParseFunc {
	return func(b []byte, f *File, _ Options) (int, error) {
		txt, n, err := record.ParseText(b, layout)
		if err != nil {
			return 0, err
		}
		f.Text = append(f.Text, txt)
		return n, nil
	}
}
