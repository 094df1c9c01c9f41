package types

import (
	"fmt"

	"github.com/google/uuid"
)

// NewRunID generates a UUIDv7 identifier for one CLI invocation.
// Time-ordered IDs keep log lines of consecutive runs sortable.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ParseConditionID validates and converts a string to ConditionID.
// Only non-empty ASCII digit strings are accepted; formulas reference ids as {digits}.
func ParseConditionID(s string) (ConditionID, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidConditionID)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidConditionID, s)
		}
	}
	return ConditionID(s), nil
}

// ParseAlias validates and converts a string to Alias.
// Rejects lowercase letters, digits and empty strings.
func ParseAlias(s string) (Alias, error) {
	if !IsAlias(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAlias, s)
	}
	return Alias(s), nil
}

// IsAlias reports whether s consists only of uppercase A-Z letters.
func IsAlias(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
