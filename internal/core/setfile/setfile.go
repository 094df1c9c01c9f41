// Package setfile reads and writes condition sets as YAML documents.
//
// JSON is a subset of YAML, so JSON condition sets load through the same path.
// Example document:
//
//	name: web availability
//	evaltype: expression
//	formula: "{11} and ({12} or {15})"
//	conditions:
//	  - id: 11
//	    type: 0
//	    value: "4"
//	    formulaid: A
package setfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/solatis/condformula/internal/types"
	"gopkg.in/yaml.v3"
)

// document is the on-disk shape; evaltype is kept as text so both names
// (and_or, expression) and numeric values are accepted.
type document struct {
	Name       string                  `yaml:"name,omitempty"`
	EvalType   string                  `yaml:"evaltype,omitempty"`
	Formula    string                  `yaml:"formula,omitempty"`
	Conditions []types.ConditionRecord `yaml:"conditions"`
}

// Load reads a condition set from path.
// defaultEvalType applies when the document has no evaltype.
func Load(path string, defaultEvalType types.EvalType) (*types.ConditionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open condition set: %w", err)
	}
	defer f.Close()

	set, err := Decode(f, defaultEvalType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// Decode reads one condition set document from r.
// Unknown keys are rejected.
func Decode(r io.Reader, defaultEvalType types.EvalType) (*types.ConditionSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, types.ErrEmptyConditionSet
		}
		return nil, fmt.Errorf("failed to decode condition set: %w", err)
	}

	set := &types.ConditionSet{
		Name:       doc.Name,
		EvalType:   defaultEvalType,
		Formula:    doc.Formula,
		Conditions: doc.Conditions,
	}

	if doc.EvalType != "" {
		evalType, err := types.ParseEvalType(doc.EvalType)
		if err != nil {
			return nil, err
		}
		set.EvalType = evalType
	}

	if err := validate(set); err != nil {
		return nil, err
	}
	return set, nil
}

// validate checks ids and aliases of every condition.
func validate(set *types.ConditionSet) error {
	if len(set.Conditions) == 0 {
		return types.ErrEmptyConditionSet
	}

	seenIDs := make(map[types.ConditionID]bool, len(set.Conditions))
	seenAliases := make(map[types.Alias]bool, len(set.Conditions))
	for i, c := range set.Conditions {
		if _, err := types.ParseConditionID(string(c.ID)); err != nil {
			return fmt.Errorf("conditions[%d]: %w", i, err)
		}
		if seenIDs[c.ID] {
			return fmt.Errorf("conditions[%d]: %w: %s", i, types.ErrDuplicateConditionID, c.ID)
		}
		seenIDs[c.ID] = true

		if c.FormulaID == "" {
			continue
		}
		if _, err := types.ParseAlias(string(c.FormulaID)); err != nil {
			return fmt.Errorf("conditions[%d]: %w", i, err)
		}
		if seenAliases[c.FormulaID] {
			return fmt.Errorf("conditions[%d]: %w: %s", i, types.ErrDuplicateAlias, c.FormulaID)
		}
		seenAliases[c.FormulaID] = true
	}
	return nil
}

// Encode writes set as a YAML document with a named evaltype.
func Encode(w io.Writer, set *types.ConditionSet) error {
	doc := document{
		Name:       set.Name,
		EvalType:   set.EvalType.String(),
		Formula:    set.Formula,
		Conditions: set.Conditions,
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode condition set: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode condition set: %w", err)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
