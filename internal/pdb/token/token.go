package token

import (
	"encoding/json"
	"errors"
	"slices"
)

var ErrValueShape = errors.New("token: value shape mismatch")

// Token is one typed key/value unit from a COMPND or SOURCE body. The zero
// value is invalid. Tokens are immutable: list accessors return copies.
type Token struct {
	kind     Kind
	integer  uint
	text     string
	list     []string
	integers []uint
	flag     bool
}

func newInteger(k Kind, v uint) Token { return Token{kind: k, integer: v} }
func newText(k Kind, v string) Token  { return Token{kind: k, text: v} }
func newList(k Kind, v []string) Token {
	return Token{kind: k, list: slices.Clone(v)}
}
func newIntegers(k Kind, v []uint) Token {
	return Token{kind: k, integers: slices.Clone(v)}
}
func newFlag(k Kind, v bool) Token { return Token{kind: k, flag: v} }

// NewInteger builds a token for a kind carrying ShapeInteger.
func NewInteger(k Kind, v uint) (Token, error) {
	if k.Shape() != ShapeInteger {
		return Token{}, ErrValueShape
	}
	return newInteger(k, v), nil
}

// NewText builds a token for a kind carrying ShapeText.
func NewText(k Kind, v string) (Token, error) {
	if k.Shape() != ShapeText {
		return Token{}, ErrValueShape
	}
	return newText(k, v), nil
}

// NewList builds a token for a kind carrying ShapeList.
func NewList(k Kind, v []string) (Token, error) {
	if k.Shape() != ShapeList {
		return Token{}, ErrValueShape
	}
	return newList(k, v), nil
}

// NewIntegers builds a token for a kind carrying ShapeIntegers.
func NewIntegers(k Kind, v []uint) (Token, error) {
	if k.Shape() != ShapeIntegers {
		return Token{}, ErrValueShape
	}
	return newIntegers(k, v), nil
}

// NewFlag builds a token for a kind carrying ShapeFlag.
func NewFlag(k Kind, v bool) (Token, error) {
	if k.Shape() != ShapeFlag {
		return Token{}, ErrValueShape
	}
	return newFlag(k, v), nil
}

func (t Token) Kind() Kind {
	return t.kind
}

func (t Token) Key() string {
	return t.kind.Key()
}

func (t Token) Shape() Shape {
	return t.kind.Shape()
}

// Integer returns the payload of MOL_ID and ATCC style tokens.
func (t Token) Integer() (uint, error) {
	if t.Shape() != ShapeInteger {
		return 0, ErrValueShape
	}
	return t.integer, nil
}

// Text returns the payload of free text tokens.
func (t Token) Text() (string, error) {
	if t.Shape() != ShapeText {
		return "", ErrValueShape
	}
	return t.text, nil
}

// List returns a copy of the payload of word and EC list tokens.
func (t Token) List() ([]string, error) {
	if t.Shape() != ShapeList {
		return nil, ErrValueShape
	}
	return slices.Clone(t.list), nil
}

// Integers returns a copy of the payload of taxonomy id tokens.
func (t Token) Integers() ([]uint, error) {
	if t.Shape() != ShapeIntegers {
		return nil, ErrValueShape
	}
	return slices.Clone(t.integers), nil
}

// Flag returns the payload of ENGINEERED and MUTATION tokens.
func (t Token) Flag() (bool, error) {
	if t.Shape() != ShapeFlag {
		return false, ErrValueShape
	}
	return t.flag, nil
}

// Value returns the payload as an untyped value for rendering.
func (t Token) Value() any {
	switch t.Shape() {
	case ShapeInteger:
		return t.integer
	case ShapeText:
		return t.text
	case ShapeList:
		return slices.Clone(t.list)
	case ShapeIntegers:
		return slices.Clone(t.integers)
	case ShapeFlag:
		return t.flag
	default:
		return nil
	}
}

// Equal compares kind and payload. go-cmp picks it up automatically.
func (t Token) Equal(o Token) bool {
	if t.kind != o.kind {
		return false
	}
	switch t.Shape() {
	case ShapeInteger:
		return t.integer == o.integer
	case ShapeText:
		return t.text == o.text
	case ShapeList:
		return slices.Equal(t.list, o.list)
	case ShapeIntegers:
		return slices.Equal(t.integers, o.integers)
	case ShapeFlag:
		return t.flag == o.flag
	default:
		return true
	}
}

type wire struct {
	Key   string `json:"key" yaml:"key"`
	Value any    `json:"value" yaml:"value"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	if !t.kind.Valid() {
		return nil, ErrValueShape
	}
	return json.Marshal(wire{Key: t.Key(), Value: t.Value()})
}

func (t Token) MarshalYAML() (any, error) {
	if !t.kind.Valid() {
		return nil, ErrValueShape
	}
	return wire{Key: t.Key(), Value: t.Value()}, nil
}
