package cmd

import (
	"fmt"
	"strings"

	"github.com/solatis/condformula/internal/formula"
	"github.com/solatis/condformula/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAliasesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "aliases <formula>",
		Short: "Allocate aliases for the condition ids of a numeric formula",
		Example: `  condformula aliases "({12} or {15}) and {11}"
  12	A
  15	B
  11	C`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aliases := rt.engine.Aliases(args[0])
			rt.log.Debug("aliases allocated", zap.Int("count", aliases.Len()))

			out := cmd.OutOrStdout()
			for _, id := range aliases.IDs() {
				alias, _ := aliases.Alias(id)
				fmt.Fprintf(out, "%s\t%s\n", id, alias)
			}
			return nil
		},
	}
}

func newNextCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "next [alias...]",
		Short: "Print the alias following the greatest of the given aliases",
		Example: `  condformula next A B Z
  AA`,
		RunE: func(cmd *cobra.Command, args []string) error {
			existing := make([]types.Alias, len(args))
			for i, arg := range args {
				existing[i] = types.Alias(arg)
			}

			next, err := formula.NextAlias(existing)
			if err != nil {
				return err
			}
			rt.log.Debug("next alias computed", zap.String("alias", string(next)))

			fmt.Fprintln(cmd.OutOrStdout(), next)
			return nil
		},
	}
}

func newToAliasesCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "to-aliases <formula>",
		Short: "Replace {id} references with allocated aliases",
		Example: `  condformula to-aliases "({12} or {15}) and {11}"
  (A or B) and C`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aliases := rt.engine.Aliases(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), formula.ReplaceNumericIDs(args[0], aliases.IDToAlias()))
			return nil
		},
	}
}

func newToIDsCmd(rt *runtime) *cobra.Command {
	var mappings []string

	cmd := &cobra.Command{
		Use:   "to-ids <formula>",
		Short: "Replace aliases with {id} references",
		Example: `  condformula to-ids "(A or B) and C" --map A=12 --map B=15 --map C=11
  ({12} or {15}) and {11}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			aliasToID, err := parseMappings(mappings)
			if err != nil {
				return err
			}

			numeric, err := formula.ReplaceLetterIDs(args[0], aliasToID)
			if err != nil {
				rt.log.Warn("formula rejected", zap.String("formula", args[0]), zap.Error(err))
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), numeric)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&mappings, "map", nil, "alias to condition id mapping, ALIAS=ID (repeatable)")
	return cmd
}

// parseMappings converts ALIAS=ID pairs into an alias -> id map.
func parseMappings(mappings []string) (map[types.Alias]types.ConditionID, error) {
	out := make(map[types.Alias]types.ConditionID, len(mappings))
	for _, m := range mappings {
		aliasText, idText, ok := strings.Cut(m, "=")
		if !ok {
			return nil, fmt.Errorf("mapping %q must have the form ALIAS=ID", m)
		}

		alias, err := types.ParseAlias(strings.TrimSpace(aliasText))
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", m, err)
		}
		id, err := types.ParseConditionID(strings.TrimSpace(idText))
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", m, err)
		}
		if _, dup := out[alias]; dup {
			return nil, fmt.Errorf("mapping %q: %w", m, types.ErrDuplicateAlias)
		}
		out[alias] = id
	}
	return out, nil
}
