package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/pdbfold/internal/pdb/fold"
	"github.com/danmuck/pdbfold/internal/pdb/leaf"
)

// ModificationKind is the closed REVDAT modType set.
type ModificationKind uint8

const (
	ModInitialRelease ModificationKind = iota
	ModOtherModification
	// ModLegacy covers codes 2 through 5 from older format revisions.
	ModLegacy
)

func (k ModificationKind) String() string {
	switch k {
	case ModInitialRelease:
		return "initial_release"
	case ModOtherModification:
		return "other_modification"
	case ModLegacy:
		return "legacy"
	default:
		return "ModificationKind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k ModificationKind) MarshalText() ([]byte, error) {
	if k > ModLegacy {
		return nil, fmt.Errorf("record: cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

// ParseModificationKind reads a modType code.
func ParseModificationKind(s string) (ModificationKind, error) {
	n, err := leaf.Integer(s)
	if err != nil {
		return 0, fieldError("modType", err)
	}
	switch {
	case n == 0:
		return ModInitialRelease, nil
	case n == 1:
		return ModOtherModification, nil
	case n <= 5:
		return ModLegacy, nil
	default:
		return 0, FieldFormatError{Field: "modType", Remainder: s, Grammar: "modification type 0-5", Err: leaf.ErrFieldFormat}
	}
}

// Policy selects what ParseRevdat does with an entry that fails its grammar.
type Policy uint8

const (
	// PolicySentinel substitutes SentinelModification and keeps going.
	PolicySentinel Policy = iota
	// PolicyStrict returns the first entry failure.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "sentinel"
}

// FieldFormatError reports a REVDAT field that failed its leaf grammar.
type FieldFormatError struct {
	Field     string
	Remainder string
	Grammar   string
	Err       error
}

func (e FieldFormatError) Error() string {
	return fmt.Sprintf("record: REVDAT %s: expected %s at %q", e.Field, e.Grammar, e.Remainder)
}

func (e FieldFormatError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return leaf.ErrFieldFormat
}

func fieldError(field string, err error) error {
	var le leaf.Error
	if errors.As(err, &le) {
		return FieldFormatError{Field: field, Remainder: le.Remainder, Grammar: le.Grammar, Err: err}
	}
	return err
}

// Modification is one REVDAT entry.
type Modification struct {
	Number  uint             `json:"number" yaml:"number"`
	Date    time.Time        `json:"date" yaml:"date"`
	IDCode  string           `json:"id_code" yaml:"id_code"`
	Kind    ModificationKind `json:"kind" yaml:"kind"`
	Records []string         `json:"records" yaml:"records"`
}

// SentinelModification is the entry substituted for an unparseable body.
func SentinelModification() Modification {
	return Modification{
		Number:  0,
		Date:    time.Time{},
		IDCode:  "",
		Kind:    ModInitialRelease,
		Records: []string{},
	}
}

// IsSentinel reports whether m equals SentinelModification.
func (m Modification) IsSentinel() bool {
	return m.Number == 0 && m.Date.IsZero() && m.IDCode == "" && m.Kind == ModInitialRelease && len(m.Records) == 0
}

// Revdat is the revision history of an entry in encounter order.
type Revdat struct {
	Entries []Modification `json:"entries" yaml:"entries"`
}

// EntryOutcome records how one grouped entry fared. Err is nil for entries
// that parsed.
type EntryOutcome struct {
	Key  uint
	Body string
	Err  error
}

// Substituted reports whether the entry was replaced by the sentinel.
func (o EntryOutcome) Substituted() bool {
	return o.Err != nil
}

type outcomeWire struct {
	Key   uint   `json:"key" yaml:"key"`
	Body  string `json:"body" yaml:"body"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (o EntryOutcome) wire() outcomeWire {
	w := outcomeWire{Key: o.Key, Body: o.Body}
	if o.Err != nil {
		w.Error = o.Err.Error()
	}
	return w
}

func (o EntryOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.wire())
}

func (o EntryOutcome) MarshalYAML() (any, error) {
	return o.wire(), nil
}

// RevdatResult pairs the record with one outcome per entry.
type RevdatResult struct {
	Record   Revdat         `json:"record" yaml:"record"`
	Outcomes []EntryOutcome `json:"outcomes" yaml:"outcomes"`
}

// Substitutions counts entries replaced by the sentinel.
func (r RevdatResult) Substitutions() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Substituted() {
			n++
		}
	}
	return n
}

// EntryError wraps the failure of one REVDAT entry under PolicyStrict.
type EntryError struct {
	Key uint
	Err error
}

func (e EntryError) Error() string {
	return fmt.Sprintf("record: REVDAT entry %d: %v", e.Key, e.Err)
}

func (e EntryError) Unwrap() error {
	return e.Err
}

// ParseRevdat groups REVDAT lines by modNum and parses each entry body. The
// line key is stamped as Modification.Number.
func ParseRevdat(b []byte, policy Policy) (RevdatResult, int, error) {
	entries, n, err := fold.Group(b, RevdatLayout, fold.OneOrMore)
	if err != nil {
		return RevdatResult{}, 0, err
	}

	res := RevdatResult{
		Record:   Revdat{Entries: make([]Modification, 0, len(entries))},
		Outcomes: make([]EntryOutcome, 0, len(entries)),
	}
	for _, e := range entries {
		mod, err := ParseModification(e.Body)
		res.Outcomes = append(res.Outcomes, EntryOutcome{Key: e.Key, Body: e.Body, Err: err})
		if err != nil {
			if policy == PolicyStrict {
				return RevdatResult{}, 0, EntryError{Key: e.Key, Err: err}
			}
			log.Warn().Uint("mod_num", e.Key).Err(err).Msg("REVDAT entry replaced with sentinel")
			res.Record.Entries = append(res.Record.Entries, SentinelModification())
			continue
		}
		mod.Number = e.Key
		res.Record.Entries = append(res.Record.Entries, mod)
	}
	log.Debug().Int("entries", len(entries)).Int("substituted", res.Substitutions()).Str("policy", policy.String()).Msg("REVDAT parsed")
	return res, n, nil
}

// ParseModification parses one folded REVDAT body:
// modDate, modId, modType, then zero or more record names. Number is left 0.
func ParseModification(body string) (Modification, error) {
	fields := strings.Fields(body)
	if len(fields) < 3 {
		return Modification{}, FieldFormatError{
			Field:     "entry",
			Remainder: strings.TrimSpace(body),
			Grammar:   "date, id code and modification type",
			Err:       leaf.ErrFieldFormat,
		}
	}
	date, err := leaf.Date(fields[0])
	if err != nil {
		return Modification{}, fieldError("modDate", err)
	}
	id, err := leaf.Word(fields[1])
	if err != nil {
		return Modification{}, fieldError("modId", err)
	}
	kind, err := ParseModificationKind(fields[2])
	if err != nil {
		return Modification{}, err
	}
	records, err := leaf.WordSequence(strings.Join(fields[3:], " "))
	if err != nil {
		return Modification{}, fieldError("record", err)
	}
	return Modification{Date: date, IDCode: id, Kind: kind, Records: records}, nil
}
