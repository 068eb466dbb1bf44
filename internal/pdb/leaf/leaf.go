// Package leaf holds the primitive value grammars used inside PDB record
// bodies: unsigned integers, dates, alphanumeric words and the comma
// separated lists built from them.
package leaf

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Grammar names reported in errors.
const (
	GrammarInteger           = "unsigned integer"
	GrammarIntegerWithSpaces = "unsigned integer with blanks"
	GrammarIntegerList       = "comma separated unsigned integers"
	GrammarWord              = "alphanumeric word"
	GrammarWords             = "alphanumeric words"
	GrammarWordList          = "comma separated alphanumeric words"
	GrammarWordSequence      = "blank separated alphanumeric words"
	GrammarECList            = "comma separated EC numbers"
	GrammarYesNo             = "YES or NO"
	GrammarDate              = "date DD-MON-YY"
)

// DateLayout is the PDB DD-MON-YY date form. Month names match case-insensitively.
const DateLayout = "02-Jan-06"

var ErrFieldFormat = errors.New("leaf: field format")

// Error reports a value that does not match its grammar. Remainder is the
// input from the first byte the grammar could not accept.
type Error struct {
	Grammar   string
	Remainder string
}

func (e Error) Error() string {
	return fmt.Sprintf("leaf: expected %s at %q", e.Grammar, e.Remainder)
}

func (e Error) Unwrap() error {
	return ErrFieldFormat
}

func fail(grammar, remainder string) error {
	return Error{Grammar: grammar, Remainder: remainder}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t'
}

// rejectFrom returns s from the first byte that fails accept, or "" when
// every byte is accepted.
func rejectFrom(s string, accept func(byte) bool) (string, bool) {
	for i := 0; i < len(s); i++ {
		if !accept(s[i]) {
			return s[i:], true
		}
	}
	return "", false
}

// Integer parses an unsigned decimal, ignoring surrounding blanks.
func Integer(s string) (uint, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, fail(GrammarInteger, s)
	}
	if rest, bad := rejectFrom(v, isDigit); bad {
		return 0, fail(GrammarInteger, rest)
	}
	n, err := strconv.ParseUint(v, 10, strconv.IntSize)
	if err != nil {
		return 0, fail(GrammarInteger, v)
	}
	return uint(n), nil
}

// IntegerWithSpaces parses digits that may be broken up by blanks, as ATCC
// collection numbers sometimes are.
func IntegerWithSpaces(s string) (uint, error) {
	v := strings.TrimSpace(s)
	if rest, bad := rejectFrom(v, func(c byte) bool { return isDigit(c) || isBlank(c) }); bad {
		return 0, fail(GrammarIntegerWithSpaces, rest)
	}
	digits := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, v)
	if digits == "" {
		return 0, fail(GrammarIntegerWithSpaces, s)
	}
	n, err := strconv.ParseUint(digits, 10, strconv.IntSize)
	if err != nil {
		return 0, fail(GrammarIntegerWithSpaces, v)
	}
	return uint(n), nil
}

// IntegerList parses "9606, 10090".
func IntegerList(s string) ([]uint, error) {
	parts := strings.Split(s, ",")
	out := make([]uint, 0, len(parts))
	for _, part := range parts {
		n, err := Integer(part)
		if err != nil {
			var le Error
			if errors.As(err, &le) {
				return nil, fail(GrammarIntegerList, le.Remainder)
			}
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// Word parses a single non-empty alphanumeric word such as an ID code.
func Word(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fail(GrammarWord, s)
	}
	if rest, bad := rejectFrom(v, isAlnum); bad {
		return "", fail(GrammarWord, rest)
	}
	return v, nil
}

// Words parses a phrase of letters, digits and blanks. The result is trimmed
// and may be empty.
func Words(s string) (string, error) {
	v := strings.TrimSpace(s)
	if rest, bad := rejectFrom(v, func(c byte) bool { return isAlnum(c) || isBlank(c) }); bad {
		return "", fail(GrammarWords, rest)
	}
	return v, nil
}

// WordList parses a comma separated list of Words. Every element is trimmed
// on its own, so "A,  C" yields ["A", "C"].
func WordList(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		w, err := Words(part)
		if err != nil {
			var le Error
			if errors.As(err, &le) {
				return nil, fail(GrammarWordList, le.Remainder)
			}
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// WordSequence parses blank separated alphanumeric words. Empty input yields
// an empty, non-nil slice.
func WordSequence(s string) ([]string, error) {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if rest, bad := rejectFrom(f, isAlnum); bad {
			return nil, fail(GrammarWordSequence, rest)
		}
		out = append(out, f)
	}
	return out, nil
}

// ECList parses enzyme commission numbers: "3.2.1.14, 3.2.1.17".
func ECList(s string) ([]string, error) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		v := strings.TrimSpace(part)
		if err := checkEC(v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func checkEC(v string) error {
	if v == "" {
		return fail(GrammarECList, v)
	}
	for i, segment := range strings.Split(v, ".") {
		if segment == "" {
			return fail(GrammarECList, v)
		}
		// Unassigned trailing levels are written as "-", as in 3.4.-.-.
		if i > 0 && segment == "-" {
			continue
		}
		if rest, bad := rejectFrom(segment, isDigit); bad {
			return fail(GrammarECList, rest)
		}
	}
	return nil
}

// YesNo accepts exactly "YES" or "NO".
func YesNo(s string) (bool, error) {
	switch v := strings.TrimSpace(s); v {
	case "YES":
		return true, nil
	case "NO":
		return false, nil
	default:
		return false, fail(GrammarYesNo, v)
	}
}

// Date parses DD-MON-YY. Two-digit years follow time.Parse: 69-99 map to the
// 1900s, 00-68 to the 2000s.
func Date(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if len(v) != len(DateLayout) {
		return time.Time{}, fail(GrammarDate, v)
	}
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		return time.Time{}, fail(GrammarDate, v)
	}
	return d, nil
}
