// Package record assembles folded PDB bodies into typed records.
//
// Ownership boundary:
// - COMPND and SOURCE token records
// - REVDAT modification entries and their failure policy
// - plain text continuation records (TITLE, KEYWDS, EXPDTA, AUTHOR)
//
// Every parser takes the bytes at the start of a record block and returns the
// record with the number of bytes it consumed.
package record

import (
	"github.com/rs/zerolog/log"

	"github.com/danmuck/pdbfold/internal/pdb/fold"
	"github.com/danmuck/pdbfold/internal/pdb/line"
	"github.com/danmuck/pdbfold/internal/pdb/token"
)

// Compnd describes the macromolecular contents of an entry.
type Compnd struct {
	Tokens []token.Token `json:"tokens" yaml:"tokens"`
}

// Source describes the biological origin of each molecule.
type Source struct {
	Tokens []token.Token `json:"tokens" yaml:"tokens"`
}

func ParseCompnd(b []byte) (Compnd, int, error) {
	tokens, n, err := parseTokens(b, CompndLayout)
	if err != nil {
		return Compnd{}, 0, err
	}
	return Compnd{Tokens: tokens}, n, nil
}

func ParseSource(b []byte) (Source, int, error) {
	tokens, n, err := parseTokens(b, SourceLayout)
	if err != nil {
		return Source{}, 0, err
	}
	return Source{Tokens: tokens}, n, nil
}

func parseTokens(b []byte, layout line.Layout) ([]token.Token, int, error) {
	entry, n, err := fold.Continuation(b, layout, fold.OneOrMore)
	if err != nil {
		return nil, 0, err
	}
	tokens, err := token.ParseBody(entry.Body)
	if err != nil {
		return nil, 0, err
	}
	log.Debug().Str("tag", layout.Tag).Int("bytes", n).Int("tokens", len(tokens)).Msg("record parsed")
	return tokens, n, nil
}

// Molecules splits tokens into per-molecule groups, each starting at a
// MOL_ID token. Tokens before the first MOL_ID form their own group.
func Molecules(tokens []token.Token) [][]token.Token {
	var out [][]token.Token
	for _, tok := range tokens {
		if tok.Kind() == token.KindMoleculeID || len(out) == 0 {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], tok)
	}
	return out
}
