// internal/formula/replace_test.go
package formula

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/condformula/internal/types"
)

func TestReplaceNumericIDs(t *testing.T) {
	tests := []struct {
		name      string
		formula   string
		idToAlias map[types.ConditionID]types.Alias
		want      string
	}{
		{
			name:      "grouped formula",
			formula:   "({1} or {2}) and {5}",
			idToAlias: map[types.ConditionID]types.Alias{"1": "A", "2": "B", "5": "C"},
			want:      "(A or B) and C",
		},
		{
			name:      "prefix ids do not collide",
			formula:   "{1} or {12} or {121}",
			idToAlias: map[types.ConditionID]types.Alias{"1": "A", "12": "B", "121": "C"},
			want:      "A or B or C",
		},
		{
			name:      "repeated id",
			formula:   "{7} and ({8} or {7})",
			idToAlias: map[types.ConditionID]types.Alias{"7": "A", "8": "B"},
			want:      "A and (B or A)",
		},
		{
			name:      "unmapped id left as is",
			formula:   "{1} and {2}",
			idToAlias: map[types.ConditionID]types.Alias{"1": "A"},
			want:      "A and {2}",
		},
		{
			name:      "bare digits untouched",
			formula:   "1 or {1}",
			idToAlias: map[types.ConditionID]types.Alias{"1": "A"},
			want:      "1 or A",
		},
		{
			name:      "empty map",
			formula:   "{1}",
			idToAlias: nil,
			want:      "{1}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceNumericIDs(tt.formula, tt.idToAlias); got != tt.want {
				t.Errorf("ReplaceNumericIDs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReplaceLetterIDs(t *testing.T) {
	aliasToID := map[types.Alias]types.ConditionID{
		"A":  "1",
		"B":  "12",
		"C":  "5",
		"AA": "100",
	}

	tests := []struct {
		name    string
		formula string
		want    string
	}{
		{"grouped", "(A or B) and C", "({1} or {12}) and {5}"},
		{"longer replacement shifts nothing", "B and A and B", "{12} and {1} and {12}"},
		{"multi-letter alias", "AA or A", "{100} or {1}"},
		{"whitespace preserved", "  A   or\tC ", "  {1}   or\t{5} "},
		{"adjacent parentheses", "(A)and(C)", "({1})and({5})"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReplaceLetterIDs(tt.formula, aliasToID)
			if err != nil {
				t.Fatalf("ReplaceLetterIDs(%q) error = %v, want nil", tt.formula, err)
			}
			if got != tt.want {
				t.Errorf("ReplaceLetterIDs(%q) = %q, want %q", tt.formula, got, tt.want)
			}
		})
	}
}

func TestReplaceLetterIDs_Errors(t *testing.T) {
	aliasToID := map[types.Alias]types.ConditionID{"A": "1", "B": "2"}

	if _, err := ReplaceLetterIDs("A and D", aliasToID); !errors.Is(err, types.ErrUnknownAlias) {
		t.Errorf("ReplaceLetterIDs(missing alias) error = %v, want ErrUnknownAlias", err)
	}
	if _, err := ReplaceLetterIDs("A and (B", aliasToID); !errors.Is(err, types.ErrInvalidFormula) {
		t.Errorf("ReplaceLetterIDs(unbalanced) error = %v, want ErrInvalidFormula", err)
	}
	if _, err := ReplaceLetterIDs("", aliasToID); !errors.Is(err, types.ErrInvalidFormula) {
		t.Errorf("ReplaceLetterIDs(empty) error = %v, want ErrInvalidFormula", err)
	}
}

// Property-based test: numeric -> alias -> numeric reproduces the formula
func TestReplace_PropertyRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("ReplaceLetterIDs inverts ReplaceNumericIDs", prop.ForAll(
		func(ids []int, condTypes []int, evalType int) bool {
			conditions := uniqueConditions(ids, condTypes)
			if len(conditions) == 0 {
				return true
			}
			numeric := Generate(conditions, types.EvalType(evalType))
			aliases := Aliases(numeric)

			aliased := ReplaceNumericIDs(numeric, aliases.IDToAlias())
			back, err := ReplaceLetterIDs(aliased, aliases.AliasToID())
			if err != nil {
				return false
			}
			return back == numeric
		},
		gen.SliceOf(gen.IntRange(0, 1000000)),
		gen.SliceOfN(3, gen.IntRange(0, 5)),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
