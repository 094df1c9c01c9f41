// internal/formula/sort_test.go
package formula

import (
	"errors"
	"reflect"
	"testing"

	"github.com/solatis/condformula/internal/types"
)

func ids(conditions []types.ConditionRecord) []types.ConditionID {
	out := make([]types.ConditionID, len(conditions))
	for i, c := range conditions {
		out[i] = c.ID
	}
	return out
}

func TestSortConditionsByFormula(t *testing.T) {
	tests := []struct {
		name       string
		conditions []types.ConditionRecord
		formula    string
		want       []types.ConditionID
	}{
		{
			name:       "bare digits",
			conditions: []types.ConditionRecord{{ID: "5"}, {ID: "1"}, {ID: "3"}},
			formula:    "1 or 3 or 5",
			want:       []types.ConditionID{"1", "3", "5"},
		},
		{
			name:       "braced formula",
			conditions: []types.ConditionRecord{{ID: "10"}, {ID: "20"}, {ID: "30"}},
			formula:    "({30} or {10}) and {20}",
			want:       []types.ConditionID{"30", "10", "20"},
		},
		{
			name:       "first occurrence wins",
			conditions: []types.ConditionRecord{{ID: "1"}, {ID: "2"}, {ID: "3"}},
			formula:    "{3} or ({1} and {3}) or {2} or {1}",
			want:       []types.ConditionID{"3", "1", "2"},
		},
		{
			name: "equal ids keep input order",
			conditions: []types.ConditionRecord{
				{ID: "2", Value: "first"},
				{ID: "1"},
				{ID: "2", Value: "second"},
			},
			formula: "{1} and {2}",
			want:    []types.ConditionID{"1", "2", "2"},
		},
		{
			name:       "empty",
			conditions: nil,
			formula:    "{1}",
			want:       []types.ConditionID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SortConditionsByFormula(tt.conditions, tt.formula, "id")
			if err != nil {
				t.Fatalf("SortConditionsByFormula() error = %v, want nil", err)
			}
			if !reflect.DeepEqual(ids(got), tt.want) {
				t.Errorf("SortConditionsByFormula() = %v, want %v", ids(got), tt.want)
			}
		})
	}
}

func TestSortConditionsByFormula_StableForEqualIDs(t *testing.T) {
	conditions := []types.ConditionRecord{
		{ID: "2", Value: "first"},
		{ID: "1"},
		{ID: "2", Value: "second"},
	}

	got, err := SortConditionsByFormula(conditions, "{1} and {2}", "id")
	if err != nil {
		t.Fatalf("SortConditionsByFormula() error = %v", err)
	}
	if got[1].Value != "first" || got[2].Value != "second" {
		t.Errorf("equal ids reordered: %+v", got)
	}
}

func TestSortConditionsByFormula_DoesNotMutateInput(t *testing.T) {
	conditions := []types.ConditionRecord{{ID: "2"}, {ID: "1"}}

	if _, err := SortConditionsByFormula(conditions, "{1} or {2}", "id"); err != nil {
		t.Fatalf("SortConditionsByFormula() error = %v", err)
	}
	if conditions[0].ID != "2" || conditions[1].ID != "1" {
		t.Errorf("input mutated: %v", ids(conditions))
	}
}

func TestSortConditionsByFormula_PKField(t *testing.T) {
	// Records keyed by their value field, e.g. operation ids stored alongside.
	conditions := []types.ConditionRecord{
		{ID: "1", Value: "300"},
		{ID: "2", Value: "100"},
	}

	got, err := SortConditionsByFormula(conditions, "{100} and {300}", "value")
	if err != nil {
		t.Fatalf("SortConditionsByFormula() error = %v", err)
	}
	if want := []types.ConditionID{"2", "1"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("SortConditionsByFormula(value) = %v, want %v", ids(got), want)
	}
}

func TestSortConditionsByFormula_Errors(t *testing.T) {
	conditions := []types.ConditionRecord{{ID: "1"}, {ID: "9"}}

	if _, err := SortConditionsByFormula(conditions, "{1}", "id"); !errors.Is(err, types.ErrConditionNotInFormula) {
		t.Errorf("missing id error = %v, want ErrConditionNotInFormula", err)
	}
	if _, err := SortConditionsByFormula(conditions, "{1} or {9}", "hostid"); !errors.Is(err, types.ErrUnknownField) {
		t.Errorf("unknown field error = %v, want ErrUnknownField", err)
	}
}

func TestSortConditionsByFormula_StrictEngine(t *testing.T) {
	conditions := []types.ConditionRecord{{ID: "2"}, {ID: "10"}}
	formula := "10 {2} {10}"

	permissive, err := NewEngine().SortConditionsByFormula(conditions, formula, "id")
	if err != nil {
		t.Fatalf("permissive error = %v", err)
	}
	if want := []types.ConditionID{"10", "2"}; !reflect.DeepEqual(ids(permissive), want) {
		t.Errorf("permissive order = %v, want %v", ids(permissive), want)
	}

	strict, err := NewEngineStrict().SortConditionsByFormula(conditions, formula, "id")
	if err != nil {
		t.Fatalf("strict error = %v", err)
	}
	if want := []types.ConditionID{"2", "10"}; !reflect.DeepEqual(ids(strict), want) {
		t.Errorf("strict order = %v, want %v", ids(strict), want)
	}
}

func TestSortByFormula_Generic(t *testing.T) {
	type operation struct {
		opID types.ConditionID
		name string
	}
	ops := []operation{{"7", "mail"}, {"3", "script"}}

	got, err := SortByFormula(nil, ops, "{3} and {7}", func(o operation) (types.ConditionID, error) {
		return o.opID, nil
	})
	if err != nil {
		t.Fatalf("SortByFormula() error = %v", err)
	}
	if got[0].name != "script" || got[1].name != "mail" {
		t.Errorf("SortByFormula() = %+v, want script then mail", got)
	}
}

func TestSortConditionsByAlias(t *testing.T) {
	conditions := []types.ConditionRecord{
		{ID: "1", FormulaID: "AA"},
		{ID: "2", FormulaID: "B"},
		{ID: "3", FormulaID: "Z"},
		{ID: "4", FormulaID: "A"},
	}

	got := SortConditionsByAlias(conditions)
	if want := []types.ConditionID{"4", "2", "3", "1"}; !reflect.DeepEqual(ids(got), want) {
		t.Errorf("SortConditionsByAlias() = %v, want %v", ids(got), want)
	}
	if conditions[0].ID != "1" {
		t.Errorf("input mutated: %v", ids(conditions))
	}
}
