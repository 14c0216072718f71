package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FAIRSPLIT_CONFIG is set
//  3. env (prefix FAIRSPLIT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FAIRSPLIT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: FAIRSPLIT_GROUP_COUNT, FAIRSPLIT_INPUT_FILE, ...
	// Underscores are preserved so keys match the koanf tags on the struct.
	envProvider := env.Provider("FAIRSPLIT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "fairsplit_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations no run could use. Roster-dependent checks
// (group count vs roster size) happen after the roster is read.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return fmt.Errorf("%w: input_file must not be empty", ErrInvalidConfig)
	}
	if c.GroupCount <= 0 {
		return fmt.Errorf("%w: group_count must be positive", ErrInvalidConfig)
	}
	if c.TimeBudgetSeconds <= 0 {
		return fmt.Errorf("%w: time_budget_seconds must be positive", ErrInvalidConfig)
	}
	if c.CoolingFactor <= 0 || c.CoolingFactor >= 1 {
		return fmt.Errorf("%w: cooling_factor must lie in (0,1)", ErrInvalidConfig)
	}
	if c.SwapProbability < 0 || c.SwapProbability > 1 {
		return fmt.Errorf("%w: swap_probability must lie in [0,1]", ErrInvalidConfig)
	}
	return nil
}
