// Package config handles the optional dvaudit.toml configuration file.
// Every setting has a default, so the tool runs with no file at all.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the top-level configuration.
type Config struct {
	Output OutputConfig `toml:"output"`
	Checks ChecksConfig `toml:"checks"`
}

// OutputConfig controls where the report file is written.
type OutputConfig struct {
	// Dir is the directory the report is written to.
	Dir string `toml:"dir"`
	// File is the report file name, overwritten on each run.
	File string `toml:"file"`
}

// ChecksConfig selects the subjects of the compliance checks.
type ChecksConfig struct {
	// AdminAccount is the local account that must be disabled.
	AdminAccount string `toml:"admin_account"`
	// AdminGroup is the local group whose membership is verified.
	AdminGroup string `toml:"admin_group"`
	// RequiredMember must appear among AdminGroup's members.
	RequiredMember string `toml:"required_member"`
	// IgnoreMemberCase makes the membership match case-insensitive.
	// Off by default: the name must match the group listing exactly.
	IgnoreMemberCase bool `toml:"ignore_member_case"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:  ".",
			File: "SystemAuditReport.txt",
		},
		Checks: ChecksConfig{
			AdminAccount:   "Administrator",
			AdminGroup:     "Administrators",
			RequiredMember: "DeltaVADM",
		},
	}
}

// Load reads a TOML config file, filling unset fields from the defaults.
// A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.File == "" {
		return fmt.Errorf("output.file must not be empty")
	}
	if c.Checks.AdminAccount == "" {
		return fmt.Errorf("checks.admin_account must not be empty")
	}
	if c.Checks.AdminGroup == "" {
		return fmt.Errorf("checks.admin_group must not be empty")
	}
	if c.Checks.RequiredMember == "" {
		return fmt.Errorf("checks.required_member must not be empty")
	}
	return nil
}
