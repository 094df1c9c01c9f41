// Package types provides domain models shared across condformula components.
//
// Zero-dependency design: types.go and errors.go use only the standard library so
// the formula engine can be embedded without pulling in the CLI stack. ID
// utilities in ids.go import uuid but are isolated for selective inclusion.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// ConditionID identifies a single condition instance.
// Numeric ids are kept as strings so large database keys survive unchanged.
type ConditionID string

// ConditionType classifies a condition (host group, trigger name, ...).
// Used only for grouping; the engine never interprets the value.
type ConditionType int

// Alias is the human-readable label of a condition inside a formula (A, B, ..., AA).
type Alias string

// EvalType selects how conditions are combined into a formula.
type EvalType int

const (
	// EvalTypeAndOr joins same-type conditions with "or" and groups with "and".
	EvalTypeAndOr EvalType = iota
	// EvalTypeAnd joins everything with "and".
	EvalTypeAnd
	// EvalTypeOr joins everything with "or".
	EvalTypeOr
	// EvalTypeExpression marks a user-supplied custom formula.
	EvalTypeExpression
)

// String returns the canonical configuration name of the eval type.
func (e EvalType) String() string {
	switch e {
	case EvalTypeAndOr:
		return "and_or"
	case EvalTypeAnd:
		return "and"
	case EvalTypeOr:
		return "or"
	case EvalTypeExpression:
		return "expression"
	default:
		return "evaltype(" + strconv.Itoa(int(e)) + ")"
	}
}

// ParseEvalType converts a configuration or CLI value to EvalType.
// Accepts names (and_or, and/or, and, or, expression, custom) or numeric values 0-3.
func ParseEvalType(s string) (EvalType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "and_or", "and/or", "andor", "0":
		return EvalTypeAndOr, nil
	case "and", "1":
		return EvalTypeAnd, nil
	case "or", "2":
		return EvalTypeOr, nil
	case "expression", "custom", "3":
		return EvalTypeExpression, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidEvalType, s)
	}
}

// ConditionRecord is a single condition as supplied by condition-list editors.
// Operator, Value and Value2 are opaque to the formula engine.
type ConditionRecord struct {
	ID        ConditionID   `yaml:"id" json:"id"`
	Type      ConditionType `yaml:"type" json:"type"`
	Operator  int           `yaml:"operator" json:"operator"`
	Value     string        `yaml:"value" json:"value"`
	Value2    string        `yaml:"value2,omitempty" json:"value2,omitempty"`
	FormulaID Alias         `yaml:"formulaid,omitempty" json:"formulaid,omitempty"`
}

// Field returns the named field as a string for key-based lookups.
// Returns ErrUnknownField for names the record does not carry.
func (r ConditionRecord) Field(name string) (string, error) {
	switch name {
	case "id", "conditionid":
		return string(r.ID), nil
	case "formulaid":
		return string(r.FormulaID), nil
	case "type", "conditiontype":
		return strconv.Itoa(int(r.Type)), nil
	case "operator":
		return strconv.Itoa(r.Operator), nil
	case "value":
		return r.Value, nil
	case "value2":
		return r.Value2, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// ConditionSet is a list of conditions with the policy combining them.
// Formula holds the custom formula in numeric-id form ({12} and {15}) and is
// only meaningful for EvalTypeExpression.
type ConditionSet struct {
	Name       string            `yaml:"name,omitempty" json:"name,omitempty"`
	EvalType   EvalType          `yaml:"evaltype" json:"evaltype"`
	Formula    string            `yaml:"formula,omitempty" json:"formula,omitempty"`
	Conditions []ConditionRecord `yaml:"conditions" json:"conditions"`
}

// Limits enforced by the formula parser.
const (
	// MaxFormulaDepth bounds parenthesis nesting to keep parsing recursion shallow.
	// Generated formulas never nest deeper than 1; 32 leaves room for hand-written ones.
	MaxFormulaDepth = 32
)
