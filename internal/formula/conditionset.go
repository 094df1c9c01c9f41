// internal/formula/conditionset.go
package formula

import (
	"fmt"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Condition-set level operations.
 *
 * Condition sets store their formula with numeric ids; editors show it with
 * aliases. For AND_OR/AND/OR sets the formula is generated from the
 * conditions, for EXPRESSION sets it is the stored custom formula.
 *
 * Custom formulas are validated against the set both ways: every alias used
 * must belong to a condition, and every condition must be used.
 */

// Validate checks an alias formula against the aliases of a condition set.
// Returns the parse error, ErrUndefinedAlias, or ErrUnusedCondition.
func Validate(formula string, defined []types.Alias) error {
	parsed, err := Parse(formula)
	if err != nil {
		return err
	}

	known := make(map[types.Alias]bool, len(defined))
	for _, alias := range defined {
		known[alias] = true
	}

	used := make(map[types.Alias]bool, len(parsed.Constants))
	for _, tok := range parsed.Constants {
		if !known[tok.Value] {
			return fmt.Errorf("%w: %q", types.ErrUndefinedAlias, tok.Value)
		}
		used[tok.Value] = true
	}

	for _, alias := range defined {
		if !used[alias] {
			return fmt.Errorf("%w: %q", types.ErrUnusedCondition, alias)
		}
	}
	return nil
}

// AssignAliases returns a copy of conditions where every record without a
// FormulaID receives the next free alias, in input order.
// Existing aliases are kept; malformed or duplicate ones are rejected.
func AssignAliases(conditions []types.ConditionRecord) ([]types.ConditionRecord, error) {
	out := append([]types.ConditionRecord(nil), conditions...)

	existing := make([]types.Alias, 0, len(out))
	seen := make(map[types.Alias]bool, len(out))
	for _, c := range out {
		if c.FormulaID == "" {
			continue
		}
		if !types.IsAlias(string(c.FormulaID)) {
			return nil, fmt.Errorf("condition %s: %w: %q", c.ID, types.ErrInvalidAlias, c.FormulaID)
		}
		if seen[c.FormulaID] {
			return nil, fmt.Errorf("condition %s: %w: %q", c.ID, types.ErrDuplicateAlias, c.FormulaID)
		}
		seen[c.FormulaID] = true
		existing = append(existing, c.FormulaID)
	}

	for i := range out {
		if out[i].FormulaID != "" {
			continue
		}
		next, err := NextAlias(existing)
		if err != nil {
			return nil, err
		}
		out[i].FormulaID = next
		existing = append(existing, next)
	}
	return out, nil
}

// DisplayFormula returns the alias form of a set's formula and the id -> alias
// mapping used to build it.
func (e *Engine) DisplayFormula(set *types.ConditionSet) (string, map[types.ConditionID]types.Alias, error) {
	if len(set.Conditions) == 0 {
		return "", nil, types.ErrEmptyConditionSet
	}

	if set.EvalType != types.EvalTypeExpression {
		numeric := Generate(set.Conditions, set.EvalType)
		idToAlias := e.Aliases(numeric).IDToAlias()
		return ReplaceNumericIDs(numeric, idToAlias), idToAlias, nil
	}

	if set.Formula == "" {
		return "", nil, fmt.Errorf("%w: custom expression without formula", types.ErrInvalidFormula)
	}

	idToAlias, ok := conditionAliases(set.Conditions)
	if !ok {
		idToAlias = e.Aliases(set.Formula).IDToAlias()
	}
	return ReplaceNumericIDs(set.Formula, idToAlias), idToAlias, nil
}

// DisplayFormula uses the default (digit-run) scanner.
func DisplayFormula(set *types.ConditionSet) (string, map[types.ConditionID]types.Alias, error) {
	return defaultEngine.DisplayFormula(set)
}

// StorageFormula validates an edited alias formula against the set's
// condition aliases and converts it to numeric-id form.
// Every condition must carry a FormulaID (see AssignAliases).
func StorageFormula(set *types.ConditionSet, aliasFormula string) (string, error) {
	if len(set.Conditions) == 0 {
		return "", types.ErrEmptyConditionSet
	}

	aliasToID := make(map[types.Alias]types.ConditionID, len(set.Conditions))
	defined := make([]types.Alias, 0, len(set.Conditions))
	for _, c := range set.Conditions {
		if !types.IsAlias(string(c.FormulaID)) {
			return "", fmt.Errorf("condition %s: %w: %q", c.ID, types.ErrInvalidAlias, c.FormulaID)
		}
		if _, dup := aliasToID[c.FormulaID]; dup {
			return "", fmt.Errorf("condition %s: %w: %q", c.ID, types.ErrDuplicateAlias, c.FormulaID)
		}
		aliasToID[c.FormulaID] = c.ID
		defined = append(defined, c.FormulaID)
	}

	if err := Validate(aliasFormula, defined); err != nil {
		return "", err
	}
	return ReplaceLetterIDs(aliasFormula, aliasToID)
}

// conditionAliases collects FormulaIDs when every condition carries one.
func conditionAliases(conditions []types.ConditionRecord) (map[types.ConditionID]types.Alias, bool) {
	out := make(map[types.ConditionID]types.Alias, len(conditions))
	for _, c := range conditions {
		if c.FormulaID == "" {
			return nil, false
		}
		out[c.ID] = c.FormulaID
	}
	return out, true
}
