// Package token splits folded COMPND and SOURCE bodies into typed tokens.
//
// Ownership boundary:
// - delimiter splitting of folded bodies
// - key dispatch over the closed rule table
// - leaf grammar selection per key
package token

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/pdbfold/internal/pdb/leaf"
)

// Delimiter separates tokens inside a folded body.
const Delimiter = ";"

var (
	ErrUnknownToken = errors.New("token: unknown token")
	ErrFieldFormat  = leaf.ErrFieldFormat
)

// UnknownTokenError carries a slice whose key matched no rule.
type UnknownTokenError struct {
	Slice string
}

func (e UnknownTokenError) Error() string {
	return fmt.Sprintf("token: no field key matches %q", e.Slice)
}

func (e UnknownTokenError) Unwrap() error {
	return ErrUnknownToken
}

// FieldFormatError reports a value that failed the leaf grammar of its key.
type FieldFormatError struct {
	Key       string
	Remainder string
	Grammar   string
	Err       error
}

func (e FieldFormatError) Error() string {
	return fmt.Sprintf("token: %s: expected %s at %q", e.Key, e.Grammar, e.Remainder)
}

func (e FieldFormatError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrFieldFormat
}

// Split cuts body on the delimiter and trims blanks from each slice. Empty
// slices are dropped, so a trailing delimiter produces nothing.
func Split(body string) []string {
	parts := strings.Split(body, Delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, " \t")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Parse turns one slice into a token. The first rule whose key is followed
// immediately by ':' wins.
func Parse(slice string) (Token, error) {
	for _, rl := range rules {
		value, ok := cutKey(slice, rl.key)
		if !ok {
			continue
		}
		tok, err := rl.g.parse(rl.kind, value)
		if err != nil {
			return Token{}, fieldError(rl, value, err)
		}
		return tok, nil
	}
	return Token{}, UnknownTokenError{Slice: slice}
}

// ParseBody splits body and parses every slice, stopping at the first error.
func ParseBody(body string) ([]Token, error) {
	parts := Split(body)
	out := make([]Token, 0, len(parts))
	for _, s := range parts {
		tok, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	log.Trace().Int("tokens", len(out)).Msg("token.ParseBody")
	return out, nil
}

func cutKey(slice, key string) (string, bool) {
	if len(slice) <= len(key) || slice[len(key)] != ':' || !strings.HasPrefix(slice, key) {
		return "", false
	}
	return slice[len(key)+1:], true
}

func fieldError(rl rule, value string, err error) error {
	fe := FieldFormatError{Key: rl.key, Remainder: value, Grammar: rl.g.name, Err: err}
	var le leaf.Error
	if errors.As(err, &le) {
		fe.Remainder = le.Remainder
		fe.Grammar = le.Grammar
	}
	return fe
}
