package formula

import (
	"strings"
	"unicode"

	"github.com/alecthomas/participle"
	"github.com/alecthomas/participle/lexer"
	"github.com/pkg/errors"
)

var (
	formulaLexer = lexer.Must(
		lexer.Regexp(`(\s+)` +
			`|(?P<Atom>[` + Atoms + `])` +
			`|(?P<Punct>[()>])`,
		),
	)
	formulaParser = participle.MustBuild(&formulaAST{}, formulaLexer)
)

type formulaAST struct {
	Atom        *string         `parser:"  @Atom"`
	Implication *implicationAST `parser:"| \"(\" @@"`
}

// every implication is parenthesized, so no precedence rules are needed
type implicationAST struct {
	Antecedent *formulaAST `parser:"@@ \">\""`
	Consequent *formulaAST `parser:"@@ \")\""`
}

func (ast *formulaAST) toFormula() (*Formula, error) {
	if ast == nil {
		return nil, errors.New("missing formula")
	}
	if ast.Atom != nil {
		if len(*ast.Atom) != 1 {
			return nil, errors.Errorf("bad atom %q", *ast.Atom)
		}
		return Atom((*ast.Atom)[0]), nil
	}
	if ast.Implication == nil {
		return nil, errors.New("empty formula")
	}
	antecedent, err := ast.Implication.Antecedent.toFormula()
	if err != nil {
		return nil, errors.Wrap(err, "antecedent")
	}
	consequent, err := ast.Implication.Consequent.toFormula()
	if err != nil {
		return nil, errors.Wrap(err, "consequent")
	}
	return Implies(antecedent, consequent), nil
}

// Parse parses formula text such as `((p>q)>p)`.
func Parse(text string) (*Formula, error) {
	ast := &formulaAST{}
	if err := formulaParser.ParseString(text, ast); err != nil {
		return nil, &MalformedFormula{Input: text, Err: err}
	}
	result, err := ast.toFormula()
	if err != nil {
		return nil, &MalformedFormula{Input: text, Err: err}
	}
	// The grammar accepts a prefix; anything left over is garbage.
	if stripSpace(text) != result.String() {
		return nil, &MalformedFormula{Input: text, Err: errors.New("trailing input")}
	}
	return result, nil
}

// MustParse panics on malformed text. For tests and fixed tables.
func MustParse(text string) *Formula {
	f, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return f
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
