// internal/formula/parser.go
package formula

import (
	"fmt"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Condition-formula parser for alias formulas.
 *
 * Grammar:
 *   expression := operand (operator operand)*
 *   operand    := constant | '(' expression ')'
 *   operator   := "and" | "or"
 *   constant   := [A-Z]+
 *
 * Whitespace separates tokens and is otherwise ignored. Operators are
 * lowercase only, so "A AND B" is rejected rather than read as three aliases.
 * A letter run mixing cases ("Aand") is rejected as an unknown word.
 *
 * The parser records every constant with its byte offset and length so
 * substitution can rebuild the text around them without re-lexing.
 */

type tokenKind int

const (
	tokConstant tokenKind = iota
	tokOperator
	tokOpenParen
	tokCloseParen
)

type lexToken struct {
	kind tokenKind
	text string
	pos  int
}

// Token is an alias occurrence within a parsed formula.
type Token struct {
	Value  types.Alias
	Pos    int // byte offset in the formula
	Length int // byte length of the alias
}

// Parsed is the result of parsing an alias formula.
type Parsed struct {
	Text      string
	Constants []Token // in position order, duplicates included
}

// Aliases returns the distinct aliases referenced by the formula in order of
// first appearance.
func (p *Parsed) Aliases() []types.Alias {
	seen := make(map[types.Alias]bool, len(p.Constants))
	var out []types.Alias
	for _, tok := range p.Constants {
		if seen[tok.Value] {
			continue
		}
		seen[tok.Value] = true
		out = append(out, tok.Value)
	}
	return out
}

// SyntaxError describes where and why a formula was rejected.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v: %s at position %d", types.ErrInvalidFormula, e.Msg, e.Pos)
}

// Unwrap allows errors.Is(err, types.ErrInvalidFormula).
func (e *SyntaxError) Unwrap() error {
	return types.ErrInvalidFormula
}

// Parse validates an alias formula and returns its constants.
// Returns *SyntaxError for empty input, unknown characters, unbalanced
// parentheses, misplaced operators, or nesting beyond types.MaxFormulaDepth.
func Parse(text string) (*Parsed, error) {
	tokens, err := lex(text)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &SyntaxError{Pos: 0, Msg: "empty formula"}
	}

	p := &parser{text: text, tokens: tokens}
	if err := p.parseExpression(); err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		tok := p.tokens[p.pos]
		return nil, &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}

	return &Parsed{Text: text, Constants: p.constants}, nil
}

// lex splits text into tokens, rejecting anything outside the grammar.
func lex(text string) ([]lexToken, error) {
	var tokens []lexToken
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			tokens = append(tokens, lexToken{kind: tokOpenParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, lexToken{kind: tokCloseParen, text: ")", pos: i})
			i++
		case isLetter(c):
			start := i
			for i < len(text) && isLetter(text[i]) {
				i++
			}
			word := text[start:i]
			switch {
			case word == opAnd || word == opOr:
				tokens = append(tokens, lexToken{kind: tokOperator, text: word, pos: start})
			case types.IsAlias(word):
				tokens = append(tokens, lexToken{kind: tokConstant, text: word, pos: start})
			default:
				return nil, &SyntaxError{Pos: start, Msg: fmt.Sprintf("unknown word %q", word)}
			}
		default:
			return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
		}
	}
	return tokens, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

type parser struct {
	text      string
	tokens    []lexToken
	pos       int
	depth     int
	constants []Token
}

func (p *parser) parseExpression() error {
	if err := p.parseOperand(); err != nil {
		return err
	}
	for p.pos < len(p.tokens) && p.tokens[p.pos].kind == tokOperator {
		p.pos++
		if err := p.parseOperand(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseOperand() error {
	if p.pos >= len(p.tokens) {
		return &SyntaxError{Pos: len(p.text), Msg: "unexpected end of formula"}
	}

	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokConstant:
		p.constants = append(p.constants, Token{
			Value:  types.Alias(tok.text),
			Pos:    tok.pos,
			Length: len(tok.text),
		})
		p.pos++
		return nil

	case tokOpenParen:
		p.depth++
		if p.depth > types.MaxFormulaDepth {
			return &SyntaxError{Pos: tok.pos, Msg: "parentheses nested too deeply"}
		}
		p.pos++
		if err := p.parseExpression(); err != nil {
			return err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].kind != tokCloseParen {
			return &SyntaxError{Pos: tok.pos, Msg: "unclosed parenthesis"}
		}
		p.pos++
		p.depth--
		return nil

	default:
		return &SyntaxError{Pos: tok.pos, Msg: fmt.Sprintf("unexpected %q", tok.text)}
	}
}
