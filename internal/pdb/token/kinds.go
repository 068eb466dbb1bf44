package token

import "fmt"

// Kind identifies one of the closed set of COMPND/SOURCE field kinds.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindMolecule
	KindMoleculeID
	KindChain
	KindFragment
	KindSynonym
	KindEC
	KindEngineered
	KindMutation
	KindOtherDetails
	KindSynthetic
	KindOrganismScientific
	KindOrganismCommon
	KindOrganismTaxID
	KindStrain
	KindVariant
	KindCellLine
	KindATCC
	KindOrgan
	KindTissue
	KindCell
	KindOrganelle
	KindSecretion
	KindCellularLocation
	KindPlasmid
	KindGene
	KindExpressionSystem
	KindExpressionSystemCommon
	KindExpressionSystemTaxID
	KindExpressionSystemStrain
	KindExpressionSystemVariant
	KindExpressionSystemCellLine
	KindExpressionSystemATCC
	KindExpressionSystemOrgan
	KindExpressionSystemTissue
	KindExpressionSystemCell
	KindExpressionSystemOrganelle
	KindExpressionSystemCellularLocation
	KindExpressionSystemVectorType
	KindExpressionSystemVector
	KindExpressionSystemPlasmid
	KindExpressionSystemGene

	kindCount
)

// Shape is the Go type a token payload carries.
type Shape uint8

const (
	ShapeInvalid Shape = iota
	ShapeInteger       // uint
	ShapeText          // string
	ShapeList          // []string
	ShapeIntegers      // []uint
	ShapeFlag          // bool
)

func (s Shape) String() string {
	switch s {
	case ShapeInteger:
		return "integer"
	case ShapeText:
		return "text"
	case ShapeList:
		return "list"
	case ShapeIntegers:
		return "integers"
	case ShapeFlag:
		return "flag"
	default:
		return "invalid"
	}
}

// Kinds returns every valid kind in dispatch priority order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(rules))
	for _, r := range rules {
		out = append(out, r.kind)
	}
	return out
}

// Key is the literal that introduces the kind in a record body, e.g. "MOL_ID".
func (k Kind) Key() string {
	if r, ok := ruleByKind[k]; ok {
		return r.key
	}
	return ""
}

// Shape returns the payload shape carried by tokens of this kind.
func (k Kind) Shape() Shape {
	if r, ok := ruleByKind[k]; ok {
		return r.shape
	}
	return ShapeInvalid
}

// Valid reports whether k is one of the defined field kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

func (k Kind) String() string {
	if key := k.Key(); key != "" {
		return key
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("token: cannot marshal %s", k)
	}
	return []byte(k.Key()), nil
}

// KindForKey resolves a body key literal to its kind.
func KindForKey(key string) (Kind, bool) {
	r, ok := ruleByKey[key]
	if !ok {
		return KindInvalid, false
	}
	return r.kind, true
}
