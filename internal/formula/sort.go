// internal/formula/sort.go
package formula

import (
	"fmt"
	"sort"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Condition ordering.
 *
 * SortByFormula orders items by the first position their id takes in a
 * formula. The first occurrence wins: a later reference to the same id never
 * moves it. Sorting is stable, so items sharing an id keep their input order.
 *
 * Every item must be referenced by the formula; an unreferenced id is a
 * caller error and is reported instead of being sorted to an arbitrary end.
 */

// SortByFormula returns a copy of items ordered by where key(item) first
// appears in formula. Returns ErrConditionNotInFormula for unreferenced ids.
// A nil engine uses the default (digit-run) scanner.
func SortByFormula[T any](e *Engine, items []T, formula string, key func(T) (types.ConditionID, error)) ([]T, error) {
	if e == nil {
		e = defaultEngine
	}
	rank := e.ranks(formula)

	type ranked struct {
		item T
		rank int
	}
	entries := make([]ranked, len(items))
	for i, item := range items {
		id, err := key(item)
		if err != nil {
			return nil, err
		}
		r, ok := rank[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrConditionNotInFormula, id)
		}
		entries[i] = ranked{item: item, rank: r}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].rank < entries[j].rank
	})

	out := make([]T, len(entries))
	for i, entry := range entries {
		out[i] = entry.item
	}
	return out, nil
}

// SortConditionsByFormula orders conditions by where their pkField value first
// appears in formula. pkField names a ConditionRecord field ("id", "formulaid", ...).
func (e *Engine) SortConditionsByFormula(conditions []types.ConditionRecord, formula, pkField string) ([]types.ConditionRecord, error) {
	return SortByFormula(e, conditions, formula, func(c types.ConditionRecord) (types.ConditionID, error) {
		v, err := c.Field(pkField)
		if err != nil {
			return "", err
		}
		return types.ConditionID(v), nil
	})
}

// SortConditionsByFormula uses the default (digit-run) scanner.
func SortConditionsByFormula(conditions []types.ConditionRecord, formula, pkField string) ([]types.ConditionRecord, error) {
	return defaultEngine.SortConditionsByFormula(conditions, formula, pkField)
}

// SortConditionsByAlias returns a copy of conditions ordered by FormulaID
// using alias ordering (B before AA). Conditions without an alias sort first.
func SortConditionsByAlias(conditions []types.ConditionRecord) []types.ConditionRecord {
	out := append([]types.ConditionRecord(nil), conditions...)
	sort.SliceStable(out, func(i, j int) bool {
		return CompareAliases(out[i].FormulaID, out[j].FormulaID) < 0
	})
	return out
}
