package config

import (
	"fmt"
	"strings"

	"github.com/solatis/condformula/internal/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithFlags(configPath, nil)
}

// LoadConfigWithFlags is LoadConfig with CLI flag overrides.
// Flags are bound by name: log-level, log-format, strict-ids, eval-type.
// Only flags explicitly set on the command line override lower layers.
func LoadConfigWithFlags(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Set defaults matching DefaultConfig
	v.SetDefault("formula.default_eval_type", "and_or")
	v.SetDefault("formula.strict_ids", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Bind environment variables with CF_ prefix
	v.SetEnvPrefix("CF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	evalType, err := types.ParseEvalType(v.GetString("formula.default_eval_type"))
	if err != nil {
		return nil, fmt.Errorf("formula.default_eval_type: %w", err)
	}

	cfg := &Config{
		DefaultEvalType: evalType,
		StrictIDs:       v.GetBool("formula.strict_ids"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
		LogFormat:       strings.ToLower(v.GetString("log.format")),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// flagKeys maps CLI flag names to configuration keys.
var flagKeys = map[string]string{
	"log-level":  "log.level",
	"log-format": "log.format",
	"strict-ids": "formula.strict_ids",
	"eval-type":  "formula.default_eval_type",
}

// bindFlags binds flags that were explicitly set; defaults stay with viper.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
