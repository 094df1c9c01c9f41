// internal/formula/generate_test.go
package formula

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/condformula/internal/types"
)

const (
	typeHostGroup types.ConditionType = 0
	typeHost      types.ConditionType = 1
	typeTrigger   types.ConditionType = 2
)

func conds(pairs ...any) []types.ConditionRecord {
	out := make([]types.ConditionRecord, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, types.ConditionRecord{
			ID:   types.ConditionID(pairs[i].(string)),
			Type: pairs[i+1].(types.ConditionType),
		})
	}
	return out
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		conditions []types.ConditionRecord
		evalType   types.EvalType
		want       string
	}{
		{
			name:       "and/or groups same type with or",
			conditions: conds("1", typeHost, "2", typeHost, "5", typeTrigger),
			evalType:   types.EvalTypeAndOr,
			want:       "({1} or {2}) and {5}",
		},
		{
			name:       "single group strips parentheses",
			conditions: conds("1", typeHost, "2", typeHost),
			evalType:   types.EvalTypeAndOr,
			want:       "{1} or {2}",
		},
		{
			name:       "and uses and everywhere",
			conditions: conds("1", typeHost, "2", typeHost, "5", typeTrigger),
			evalType:   types.EvalTypeAnd,
			want:       "({1} and {2}) and {5}",
		},
		{
			name:       "or uses or everywhere",
			conditions: conds("1", typeHost, "2", typeHost, "5", typeTrigger),
			evalType:   types.EvalTypeOr,
			want:       "({1} or {2}) or {5}",
		},
		{
			name:       "expression falls back to and/or",
			conditions: conds("1", typeHost, "2", typeHost, "5", typeTrigger),
			evalType:   types.EvalTypeExpression,
			want:       "({1} or {2}) and {5}",
		},
		{
			name:       "unknown eval type falls back to and/or",
			conditions: conds("1", typeHost, "5", typeTrigger),
			evalType:   types.EvalType(42),
			want:       "{1} and {5}",
		},
		{
			name:       "single condition",
			conditions: conds("7", typeHost),
			evalType:   types.EvalTypeAndOr,
			want:       "{7}",
		},
		{
			name:       "group order follows first appearance of type",
			conditions: conds("9", typeTrigger, "3", typeHostGroup, "4", typeTrigger, "8", typeHost),
			evalType:   types.EvalTypeAndOr,
			want:       "({9} or {4}) and {3} and {8}",
		},
		{
			name:       "member order follows input order",
			conditions: conds("30", typeHost, "10", typeHost, "20", typeHost),
			evalType:   types.EvalTypeAnd,
			want:       "{30} and {10} and {20}",
		},
		{
			name:       "empty",
			conditions: nil,
			evalType:   types.EvalTypeAndOr,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.conditions, tt.evalType); got != tt.want {
				t.Errorf("Generate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFromTypes_MissingTypeSharesZeroGroup(t *testing.T) {
	ids := []types.ConditionID{"1", "2", "3"}
	condTypes := map[types.ConditionID]types.ConditionType{"2": typeTrigger}

	got := GenerateFromTypes(ids, condTypes, types.EvalTypeAndOr)
	want := "({1} or {3}) and {2}"
	if got != want {
		t.Errorf("GenerateFromTypes() = %q, want %q", got, want)
	}
}

func TestGenerate_OutputParsesAfterAliasing(t *testing.T) {
	numeric := Generate(conds("1", typeHost, "2", typeHost, "5", typeTrigger, "6", typeHostGroup), types.EvalTypeAndOr)
	aliased := ReplaceNumericIDs(numeric, Aliases(numeric).IDToAlias())

	if aliased != "(A or B) and C and D" {
		t.Errorf("aliased formula = %q, want %q", aliased, "(A or B) and C and D")
	}
	if _, err := Parse(aliased); err != nil {
		t.Errorf("Parse(%q) error = %v, want nil", aliased, err)
	}
}

// uniqueConditions pairs ids with types, dropping repeated ids.
func uniqueConditions(ids []int, condTypes []int) []types.ConditionRecord {
	seen := make(map[int]bool)
	var out []types.ConditionRecord
	for i, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, types.ConditionRecord{
			ID:   types.ConditionID(strconv.Itoa(id)),
			Type: types.ConditionType(condTypes[i%len(condTypes)]),
		})
	}
	return out
}

// Property-based test: generated formulas allocate one alias per condition
func TestGenerate_PropertyAliasCountMatchesConditions(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("aliases cover every condition and leave no digits", prop.ForAll(
		func(ids []int, condTypes []int, evalType int) bool {
			conditions := uniqueConditions(ids, condTypes)
			numeric := Generate(conditions, types.EvalType(evalType))

			aliases := Aliases(numeric)
			if aliases.Len() != len(conditions) {
				return false
			}

			aliased := ReplaceNumericIDs(numeric, aliases.IDToAlias())
			return !digitRun.MatchString(aliased)
		},
		gen.SliceOf(gen.IntRange(1, 100000)),
		gen.SliceOfN(4, gen.IntRange(0, 3)),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
