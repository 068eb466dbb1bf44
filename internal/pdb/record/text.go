package record

import (
	"fmt"
	"strings"

	"github.com/danmuck/pdbfold/internal/pdb/fold"
	"github.com/danmuck/pdbfold/internal/pdb/line"
)

// Text is a continuation record whose body is kept as folded text.
type Text struct {
	Tag  string `json:"tag" yaml:"tag"`
	Body string `json:"body" yaml:"body"`
}

// ParseText folds a plain text continuation record. Grouped layouts are
// rejected.
func ParseText(b []byte, layout line.Layout) (Text, int, error) {
	if layout.Grouped() {
		return Text{}, 0, fmt.Errorf("record: %s layout is grouped, not plain text", layout.Tag)
	}
	entry, n, err := fold.Continuation(b, layout, fold.OneOrMore)
	if err != nil {
		return Text{}, 0, err
	}
	return Text{Tag: layout.Tag, Body: strings.TrimSpace(entry.Body)}, n, nil
}

// Title returns the body of a TITLE record.
func (t Text) Title() string {
	return t.Body
}

// Keywords splits a KEYWDS body on commas.
func (t Text) Keywords() []string {
	return splitList(t.Body, ",")
}

// Authors splits an AUTHOR body on commas.
func (t Text) Authors() []string {
	return splitList(t.Body, ",")
}

// Techniques splits an EXPDTA body on semicolons.
func (t Text) Techniques() []string {
	return splitList(t.Body, ";")
}

func splitList(body, sep string) []string {
	parts := strings.Split(body, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
