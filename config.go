package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/sirkon/pyrevu/internal/pyrules"
	"github.com/sirkon/pyrevu/internal/review"
)

// defaultConfigName is looked up in the working directory when no explicit
// --config path is given.
const defaultConfigName = ".pyrevu.yaml"

// Config is the content of a .pyrevu.yaml file plus CLI overrides.
type Config struct {
	// DisabledRules lists PYR codes whose issues are dropped from reports.
	// The engine still computes the full sequence.
	DisabledRules []string `yaml:"disabled_rules"`

	// Jobs caps parallel file processing; 0 or negative means NumCPU.
	Jobs int `yaml:"jobs"`

	// Color controls report colorization.
	Color ColorMode `yaml:"color"`

	// Codes prefixes every issue line with its PYR code.
	Codes bool `yaml:"codes"`

	disabled map[pyrules.Rule]bool
}

func defaultConfig() *Config {
	return &Config{Color: ColorModeAuto}
}

// loadConfig reads and validates the config file. A missing file is only
// an error when the path was given explicitly.
func loadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if cfg.Color == ColorModeInvalid {
		cfg.Color = ColorModeAuto
	}
	if err := cfg.buildDisabled(); err != nil {
		return nil, fmt.Errorf("validate config file %s: %w", path, err)
	}

	return &cfg, nil
}

// buildDisabled resolves disabled rule codes against the known PYR series.
func (c *Config) buildDisabled() error {
	known := make(map[string]pyrules.Rule)
	for _, r := range pyrules.All() {
		known[r.Code()] = r
	}

	c.disabled = make(map[pyrules.Rule]bool, len(c.DisabledRules))
	for _, code := range c.DisabledRules {
		r, ok := known[code]
		if !ok {
			return fmt.Errorf("unknown rule code %q in disabled_rules", code)
		}
		c.disabled[r] = true
	}
	return nil
}

// filterIssues drops issues of disabled rules, keeping the engine order.
func (c *Config) filterIssues(issues []review.Issue) []review.Issue {
	if len(c.disabled) == 0 {
		return issues
	}

	out := make([]review.Issue, 0, len(issues))
	for _, issue := range issues {
		if c.disabled[issue.Rule] {
			continue
		}
		out = append(out, issue)
	}
	return out
}

// jobs returns the effective parallelism.
func (c *Config) jobs() int {
	if c.Jobs > 0 {
		return c.Jobs
	}
	return runtime.NumCPU()
}
