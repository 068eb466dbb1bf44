package token

import (
	"fmt"

	"github.com/danmuck/pdbfold/internal/pdb/leaf"
)

// grammar parses the value that follows "KEY:" into a token of kind.
type grammar struct {
	name  string
	shape Shape
	parse func(kind Kind, value string) (Token, error)
}

type rule struct {
	key   string
	kind  Kind
	shape Shape
	g     grammar
}

var (
	integer = grammar{leaf.GrammarInteger, ShapeInteger, func(k Kind, v string) (Token, error) {
		n, err := leaf.Integer(v)
		return newInteger(k, n), err
	}}
	integerWithSpaces = grammar{leaf.GrammarIntegerWithSpaces, ShapeInteger, func(k Kind, v string) (Token, error) {
		n, err := leaf.IntegerWithSpaces(v)
		return newInteger(k, n), err
	}}
	words = grammar{leaf.GrammarWords, ShapeText, func(k Kind, v string) (Token, error) {
		s, err := leaf.Words(v)
		return newText(k, s), err
	}}
	wordList = grammar{leaf.GrammarWordList, ShapeList, func(k Kind, v string) (Token, error) {
		l, err := leaf.WordList(v)
		return newList(k, l), err
	}}
	ecList = grammar{leaf.GrammarECList, ShapeList, func(k Kind, v string) (Token, error) {
		l, err := leaf.ECList(v)
		return newList(k, l), err
	}}
	integerList = grammar{leaf.GrammarIntegerList, ShapeIntegers, func(k Kind, v string) (Token, error) {
		l, err := leaf.IntegerList(v)
		return newIntegers(k, l), err
	}}
	yesNo = grammar{leaf.GrammarYesNo, ShapeFlag, func(k Kind, v string) (Token, error) {
		b, err := leaf.YesNo(v)
		return newFlag(k, b), err
	}}
)

func r(key string, kind Kind, g grammar) rule {
	return rule{key: key, kind: kind, shape: g.shape, g: g}
}

// rules is the dispatch table in priority order. The first row whose key is
// followed by ':' owns the slice.
var rules = []rule{
	r("MOLECULE", KindMolecule, words),
	r("MOL_ID", KindMoleculeID, integer),
	r("CHAIN", KindChain, wordList),
	r("FRAGMENT", KindFragment, words),
	r("SYNONYM", KindSynonym, wordList),
	r("EC", KindEC, ecList),
	r("ENGINEERED", KindEngineered, yesNo),
	r("MUTATION", KindMutation, yesNo),
	r("OTHER_DETAILS", KindOtherDetails, words),
	r("SYNTHETIC", KindSynthetic, words),
	r("ORGANISM_SCIENTIFIC", KindOrganismScientific, words),
	r("ORGANISM_COMMON", KindOrganismCommon, wordList),
	r("ORGANISM_TAXID", KindOrganismTaxID, integerList),
	r("STRAIN", KindStrain, words),
	r("VARIANT", KindVariant, words),
	r("CELL_LINE", KindCellLine, words),
	r("ATCC", KindATCC, integerWithSpaces),
	r("ORGAN", KindOrgan, words),
	r("TISSUE", KindTissue, words),
	r("CELL", KindCell, words),
	r("ORGANELLE", KindOrganelle, words),
	r("SECRETION", KindSecretion, words),
	r("CELLULAR_LOCATION", KindCellularLocation, words),
	r("PLASMID", KindPlasmid, words),
	r("GENE", KindGene, wordList),
	r("EXPRESSION_SYSTEM", KindExpressionSystem, words),
	r("EXPRESSION_SYSTEM_COMMON", KindExpressionSystemCommon, wordList),
	r("EXPRESSION_SYSTEM_TAXID", KindExpressionSystemTaxID, integerList),
	r("EXPRESSION_SYSTEM_STRAIN", KindExpressionSystemStrain, words),
	r("EXPRESSION_SYSTEM_VARIANT", KindExpressionSystemVariant, words),
	r("EXPRESSION_SYSTEM_CELL_LINE", KindExpressionSystemCellLine, words),
	r("EXPRESSION_SYSTEM_ATCC_NUMBER", KindExpressionSystemATCC, integerWithSpaces),
	r("EXPRESSION_SYSTEM_ORGAN", KindExpressionSystemOrgan, words),
	r("EXPRESSION_SYSTEM_TISSUE", KindExpressionSystemTissue, words),
	r("EXPRESSION_SYSTEM_CELL", KindExpressionSystemCell, words),
	r("EXPRESSION_SYSTEM_ORGANELLE", KindExpressionSystemOrganelle, words),
	r("EXPRESSION_SYSTEM_CELLULAR_LOCATION", KindExpressionSystemCellularLocation, words),
	r("EXPRESSION_SYSTEM_VECTOR_TYPE", KindExpressionSystemVectorType, words),
	r("EXPRESSION_SYSTEM_VECTOR", KindExpressionSystemVector, words),
	r("EXPRESSION_SYSTEM_PLASMID", KindExpressionSystemPlasmid, words),
	r("EXPRESSION_SYSTEM_GENE", KindExpressionSystemGene, words),
}

var (
	ruleByKind = make(map[Kind]rule, len(rules))
	ruleByKey  = make(map[string]rule, len(rules))
)

func init() {
	for _, rl := range rules {
		if !rl.kind.Valid() {
			panic(fmt.Sprintf("token: rule %q has invalid kind %d", rl.key, rl.kind))
		}
		if _, dup := ruleByKind[rl.kind]; dup {
			panic(fmt.Sprintf("token: kind %d has more than one rule", rl.kind))
		}
		if _, dup := ruleByKey[rl.key]; dup {
			panic(fmt.Sprintf("token: key %q has more than one rule", rl.key))
		}
		ruleByKind[rl.kind] = rl
		ruleByKey[rl.key] = rl
	}
	if len(ruleByKind) != int(kindCount)-1 {
		panic(fmt.Sprintf("token: %d rules for %d kinds", len(ruleByKind), int(kindCount)-1))
	}
}
