package cmd

import (
	"fmt"

	"github.com/solatis/condformula/internal/core/config"
	"github.com/solatis/condformula/internal/core/logging"
	"github.com/solatis/condformula/internal/formula"
	"github.com/solatis/condformula/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const Version = "0.1.0"

// runtime carries what every subcommand needs once flags are parsed.
type runtime struct {
	cfg    *config.Config
	engine *formula.Engine
	log    *zap.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "condformula",
		Short:         "Condition formula toolkit",
		Long:          `condformula generates, aliases and reorders trigger/action condition formulas such as "(A or B) and C".`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if rt.log != nil {
				_ = rt.log.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file path")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "json", "log format (json, console)")
	flags.Bool("strict-ids", false, "only read condition ids inside {braces}")

	rootCmd.AddCommand(
		newGenerateCmd(rt),
		newAliasesCmd(rt),
		newNextCmd(rt),
		newToAliasesCmd(rt),
		newToIDsCmd(rt),
		newSortCmd(rt),
		newValidateCmd(rt),
	)

	return rootCmd
}

// init loads configuration and builds the engine and logger.
func (rt *runtime) init(cmd *cobra.Command) error {
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadConfigWithFlags(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewWithWriter(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	rt.cfg = cfg
	rt.log = logger.With(
		zap.String("run_id", types.NewRunID()),
		zap.String("command", cmd.Name()),
	)

	if cfg.StrictIDs {
		rt.engine = formula.NewEngineStrict()
	} else {
		rt.engine = formula.NewEngine()
	}

	rt.log.Debug("configuration loaded",
		zap.Stringer("default_eval_type", cfg.DefaultEvalType),
		zap.Bool("strict_ids", cfg.StrictIDs),
	)
	return nil
}

// Execute runs the root command against os.Args.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		return err
	}
	return nil
}
