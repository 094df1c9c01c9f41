package cmd

import (
	"fmt"

	"github.com/solatis/condformula/internal/core/setfile"
	"github.com/solatis/condformula/internal/formula"
	"github.com/solatis/condformula/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadSet reads the condition set named by --file.
// An explicit --eval-type overrides the document's evaltype.
func (rt *runtime) loadSet(cmd *cobra.Command) (*types.ConditionSet, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return nil, fmt.Errorf("--file required")
	}

	set, err := setfile.Load(path, rt.cfg.DefaultEvalType)
	if err != nil {
		return nil, err
	}

	if f := cmd.Flags().Lookup("eval-type"); f != nil && f.Changed {
		set.EvalType = rt.cfg.DefaultEvalType
	}

	rt.log.Debug("condition set loaded",
		zap.String("path", path),
		zap.String("name", set.Name),
		zap.Stringer("eval_type", set.EvalType),
		zap.Int("conditions", len(set.Conditions)),
	)
	return set, nil
}

// numericFormula returns the set's formula in {id} form.
func numericFormula(set *types.ConditionSet) string {
	if set.EvalType == types.EvalTypeExpression {
		return set.Formula
	}
	return formula.Generate(set.Conditions, set.EvalType)
}

func newGenerateCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build the formula of a condition set",
		Example: `  condformula generate -f conditions.yaml --eval-type and_or
  formula: ({12} or {15}) and {11}
  display: (A or B) and C`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rt.loadSet(cmd)
			if err != nil {
				return err
			}

			display, idToAlias, err := rt.engine.DisplayFormula(set)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "formula: %s\n", numericFormula(set))
			fmt.Fprintf(out, "display: %s\n", display)
			for _, c := range set.Conditions {
				fmt.Fprintf(out, "%s\t%s\n", idToAlias[c.ID], c.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "condition set file (YAML or JSON)")
	cmd.Flags().String("eval-type", "and_or", "evaluation type (and_or, and, or, expression)")
	return cmd
}

func newSortCmd(rt *runtime) *cobra.Command {
	var pkField string

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Reorder conditions to follow their formula",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rt.loadSet(cmd)
			if err != nil {
				return err
			}

			sorted, err := rt.engine.SortConditionsByFormula(set.Conditions, numericFormula(set), pkField)
			if err != nil {
				return err
			}
			set.Conditions = sorted

			return setfile.Encode(cmd.OutOrStdout(), set)
		},
	}

	cmd.Flags().StringP("file", "f", "", "condition set file (YAML or JSON)")
	cmd.Flags().String("eval-type", "and_or", "evaluation type (and_or, and, or, expression)")
	cmd.Flags().StringVar(&pkField, "by", "id", "condition field matched against formula ids")
	return cmd
}

func newValidateCmd(rt *runtime) *cobra.Command {
	var aliasFormula string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check an alias formula against a condition set and print its stored form",
		Example: `  condformula validate -f conditions.yaml --formula "C or (A and B)"
  {11} or ({12} and {15})`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := rt.loadSet(cmd)
			if err != nil {
				return err
			}

			set.Conditions, err = formula.AssignAliases(set.Conditions)
			if err != nil {
				return err
			}

			if aliasFormula == "" {
				idToAlias := make(map[types.ConditionID]types.Alias, len(set.Conditions))
				for _, c := range set.Conditions {
					idToAlias[c.ID] = c.FormulaID
				}
				aliasFormula = formula.ReplaceNumericIDs(numericFormula(set), idToAlias)
			}

			stored, err := formula.StorageFormula(set, aliasFormula)
			if err != nil {
				rt.log.Warn("formula rejected", zap.String("formula", aliasFormula), zap.Error(err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), stored)
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "condition set file (YAML or JSON)")
	cmd.Flags().StringVar(&aliasFormula, "formula", "", "alias formula to validate (defaults to the set's own formula)")
	return cmd
}
