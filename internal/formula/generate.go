// internal/formula/generate.go
package formula

import (
	"strings"

	"github.com/solatis/condformula/internal/types"
)

/*
 * Formula generation.
 *
 * Builds the canonical formula for a list of conditions:
 *   1. Group ids by condition type (first-seen order of types, insertion
 *      order within each group)
 *   2. Pick operators from the eval type
 *   3. Parenthesise groups with more than one member
 *   4. Join groups with the group operator
 *
 * A single group has no outer structure to show, so "(" and ")" are trimmed
 * from both ends of the result. Single-member groups render without parens
 * and are unaffected by the trim.
 *
 * Example (AND_OR): {1: X, 2: X, 5: Y} -> ({1} or {2}) and {5}
 */

const (
	opAnd = "and"
	opOr  = "or"
)

// Generate builds the formula for conditions combined according to evalType.
// Ids render as {id}. Empty input yields an empty string.
func Generate(conditions []types.ConditionRecord, evalType types.EvalType) string {
	ids := make([]types.ConditionID, len(conditions))
	condTypes := make(map[types.ConditionID]types.ConditionType, len(conditions))
	for i, cond := range conditions {
		ids[i] = cond.ID
		condTypes[cond.ID] = cond.Type
	}
	return GenerateFromTypes(ids, condTypes, evalType)
}

// GenerateFromTypes builds the formula for ids in the given order, grouping
// them by the type recorded in condTypes. Ids without an entry share the zero type.
func GenerateFromTypes(ids []types.ConditionID, condTypes map[types.ConditionID]types.ConditionType, evalType types.EvalType) string {
	var order []types.ConditionType
	groups := make(map[types.ConditionType][]types.ConditionID)
	for _, id := range ids {
		t := condTypes[id]
		if _, ok := groups[t]; !ok {
			order = append(order, t)
		}
		groups[t] = append(groups[t], id)
	}

	condOp, groupOp := operators(evalType)

	rendered := make([]string, 0, len(order))
	for _, t := range order {
		rendered = append(rendered, renderGroup(groups[t], condOp))
	}

	formula := strings.Join(rendered, " "+groupOp+" ")

	if len(order) == 1 {
		formula = strings.Trim(formula, "()")
	}

	return formula
}

// operators returns the within-group and between-group operators for evalType.
// Anything other than AND or OR falls back to AND_OR semantics.
func operators(evalType types.EvalType) (condOp, groupOp string) {
	switch evalType {
	case types.EvalTypeAnd:
		return opAnd, opAnd
	case types.EvalTypeOr:
		return opOr, opOr
	default:
		return opOr, opAnd
	}
}

func renderGroup(ids []types.ConditionID, condOp string) string {
	if len(ids) == 1 {
		return atom(ids[0])
	}

	atoms := make([]string, len(ids))
	for i, id := range ids {
		atoms[i] = atom(id)
	}
	return "(" + strings.Join(atoms, " "+condOp+" ") + ")"
}

// atom renders the formula reference of a condition id.
func atom(id types.ConditionID) string {
	return "{" + string(id) + "}"
}
