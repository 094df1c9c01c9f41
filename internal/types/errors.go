package types

import "errors"

// Sentinel errors for condition-formula operations.
// All of them describe caller contract violations, not operational failures.
var (
	// ErrInvalidConditionID indicates a condition id that is not a digit string.
	ErrInvalidConditionID = errors.New("invalid condition id")

	// ErrInvalidAlias indicates an alias containing characters other than A-Z.
	ErrInvalidAlias = errors.New("invalid formula alias")

	// ErrInvalidEvalType indicates an unknown evaluation type.
	ErrInvalidEvalType = errors.New("invalid evaluation type")

	// ErrInvalidFormula indicates formula text the parser rejects.
	ErrInvalidFormula = errors.New("invalid formula")

	// ErrUnknownAlias indicates a formula alias with no condition id mapped to it.
	ErrUnknownAlias = errors.New("alias has no condition id")

	// ErrConditionNotInFormula indicates a condition whose id the formula never references.
	ErrConditionNotInFormula = errors.New("condition id not present in formula")

	// ErrUnknownField indicates a key field the condition record does not carry.
	ErrUnknownField = errors.New("unknown condition field")

	// ErrUndefinedAlias indicates a formula referencing an alias no condition carries.
	ErrUndefinedAlias = errors.New("formula alias is not defined")

	// ErrUnusedCondition indicates a condition whose alias the formula never uses.
	ErrUnusedCondition = errors.New("condition is not used in formula")

	// ErrDuplicateAlias indicates two conditions sharing the same alias.
	ErrDuplicateAlias = errors.New("duplicate formula alias")

	// ErrDuplicateConditionID indicates a condition set listing the same id twice.
	ErrDuplicateConditionID = errors.New("duplicate condition id")

	// ErrEmptyConditionSet indicates a condition set without conditions.
	ErrEmptyConditionSet = errors.New("condition set is empty")
)
