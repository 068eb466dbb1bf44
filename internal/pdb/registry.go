package pdb

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/danmuck/pdbfold/internal/pdb/record"
)

var (
	ErrTagExists   = errors.New("pdb: record tag already registered")
	ErrHandlerNil  = errors.New("pdb: handler parse func is nil")
	ErrInvalidTag  = errors.New("pdb: invalid record tag")
	ErrUnsupported = errors.New("pdb: unsupported record tag")
)

// ParseFunc parses the block at the start of b, stores the result on f and
// returns the bytes consumed.
type ParseFunc func(b []byte, f *File, opts Options) (int, error)

// Handler binds a record tag to its parser.
type Handler struct {
	Tag   string
	Parse ParseFunc
}

// Registry stores handlers by record tag.
type Registry struct {
	items map[string]Handler
}

// NewRegistry creates an empty handler registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]Handler)}
}

// ValidateTag checks that tag fits columns 1-6 as uppercase letters and digits.
func ValidateTag(tag string) error {
	if tag == "" || len(tag) > 6 {
		return fmt.Errorf("%w: %q must be 1-6 characters", ErrInvalidTag, tag)
	}
	for i := 0; i < len(tag); i++ {
		c := tag[i]
		if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
		}
	}
	return nil
}

// Register adds a handler to the registry.
func (r *Registry) Register(h Handler) error {
	if h.Parse == nil {
		return ErrHandlerNil
	}
	if err := ValidateTag(h.Tag); err != nil {
		return err
	}
	if _, ok := r.items[h.Tag]; ok {
		return fmt.Errorf("%w: %s", ErrTagExists, h.Tag)
	}
	r.items[h.Tag] = h
	return nil
}

// Resolve returns the handler for tag.
func (r *Registry) Resolve(tag string) (Handler, bool) {
	h, ok := r.items[tag]
	return h, ok
}

// Tags returns registered tags in sorted order.
func (r *Registry) Tags() []string {
	list := make([]string, 0, len(r.items))
	for tag := range r.items {
		list = append(list, tag)
	}
	sort.Strings(list)
	return list
}

// SupportedTags lists every tag DefaultRegistry can register.
func SupportedTags() []string {
	list := make([]string, 0, len(builtin))
	for _, h := range builtin {
		list = append(list, h.Tag)
	}
	sort.Strings(list)
	return list
}

// DefaultRegistry registers the built-in handlers. With no tags every
// supported record is registered; otherwise only the named ones.
func DefaultRegistry(tags ...string) (*Registry, error) {
	r := NewRegistry()
	if len(tags) == 0 {
		for _, h := range builtin {
			if err := r.Register(h); err != nil {
				return nil, err
			}
		}
		return r, nil
	}
	for _, raw := range tags {
		tag := strings.ToUpper(strings.TrimSpace(raw))
		h, ok := builtinByTag(tag)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupported, raw)
		}
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func builtinByTag(tag string) (Handler, bool) {
	for _, h := range builtin {
		if h.Tag == tag {
			return h, true
		}
	}
	return Handler{}, false
}

var builtin = []Handler{
	{Tag: record.TagCompnd, Parse: parseCompnd},
	{Tag: record.TagSource, Parse: parseSource},
	{Tag: record.TagRevdat, Parse: parseRevdat},
	{Tag: record.TagTitle, Parse: textParser(record.TitleLayout)},
	{Tag: record.TagKeywds, Parse: textParser(record.KeywdsLayout)},
	{Tag: record.TagExpdta, Parse: textParser(record.ExpdtaLayout)},
	{Tag: record.TagAuthor, Parse: textParser(record.AuthorLayout)},
}
