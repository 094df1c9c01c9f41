// internal/formula/engine.go
package formula

import (
	"github.com/solatis/condformula/internal/types"
)

// Engine binds the formula operations that scan condition ids to an IDScanner.
// Stateless after construction; safe for concurrent use.
type Engine struct {
	scanner IDScanner
}

// Option configures an Engine.
type Option func(*Engine)

// WithScanner selects the id scanner used by Aliases and SortByFormula.
func WithScanner(s IDScanner) Option {
	return func(e *Engine) {
		if s != nil {
			e.scanner = s
		}
	}
}

// NewEngine creates an engine. Defaults to DigitScanner.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{scanner: DigitScanner{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewEngineStrict returns an engine that only reads ids inside braces.
func NewEngineStrict() *Engine {
	return NewEngine(WithScanner(BraceScanner{}))
}

var defaultEngine = NewEngine()

// Scanner returns the engine's id scanner.
func (e *Engine) Scanner() IDScanner {
	return e.scanner
}

// Aliases allocates aliases for the distinct ids of formula in order of first appearance.
func (e *Engine) Aliases(formula string) AliasMap {
	return NewAliasMap(e.scanner.ScanIDs(formula))
}

// Aliases allocates aliases using the default (digit-run) scanner.
// Aliases("{5} or ({2} and {3}) or {2}") maps 5->A, 2->B, 3->C.
func Aliases(formula string) AliasMap {
	return defaultEngine.Aliases(formula)
}

// ranks maps each id to the position of its first occurrence in formula.
func (e *Engine) ranks(formula string) map[types.ConditionID]int {
	ids := e.scanner.ScanIDs(formula)
	rank := make(map[types.ConditionID]int, len(ids))
	for i, id := range ids {
		if _, exists := rank[id]; !exists {
			rank[id] = i
		}
	}
	return rank
}
