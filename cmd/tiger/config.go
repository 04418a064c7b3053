package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/project"
)

// loadConfig reads tiger.toml (explicit --config or the nearest one above the
// working directory) and applies command-line flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (project.Config, error) {
	root := cmd.Root().PersistentFlags()

	configPath, err := root.GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg project.Config
	if configPath != "" {
		cfg, err = project.LoadConfig(configPath)
		if err != nil {
			return project.Config{}, err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return project.Config{}, err
		}
		manifest, _, err := project.LoadManifest(wd)
		if err != nil {
			return project.Config{}, err
		}
		cfg = manifest.Config
	}

	if root.Changed("max-diagnostics") {
		if cfg.Diagnostics.Max, err = root.GetInt("max-diagnostics"); err != nil {
			return project.Config{}, err
		}
	}
	if root.Changed("columns") {
		if cfg.Diagnostics.Columns, err = root.GetString("columns"); err != nil {
			return project.Config{}, err
		}
	}
	if root.Changed("color") {
		if cfg.Diagnostics.Color, err = root.GetString("color"); err != nil {
			return project.Config{}, err
		}
	}

	local := cmd.Flags()
	overrideString := func(name string, dst *string) error {
		if local.Lookup(name) == nil || !local.Changed(name) {
			return nil
		}
		v, err := local.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}
	if err := overrideString("diagnostics", &cfg.Diagnostics.Format); err != nil {
		return project.Config{}, err
	}
	if err := overrideString("paths", &cfg.Diagnostics.Paths); err != nil {
		return project.Config{}, err
	}
	if err := overrideString("expect", &cfg.Parse.Expect); err != nil {
		return project.Config{}, err
	}
	if local.Lookup("context") != nil && local.Changed("context") {
		if cfg.Diagnostics.Context, err = local.GetInt("context"); err != nil {
			return project.Config{}, err
		}
	}
	if local.Lookup("jobs") != nil && local.Changed("jobs") {
		if cfg.Parse.Jobs, err = local.GetInt("jobs"); err != nil {
			return project.Config{}, err
		}
	}
	if local.Lookup("cache") != nil && local.Changed("cache") {
		if cfg.Parse.Cache, err = local.GetBool("cache"); err != nil {
			return project.Config{}, err
		}
	}
	if local.Lookup("positions") != nil && local.Changed("positions") {
		if cfg.Parse.Positions, err = local.GetBool("positions"); err != nil {
			return project.Config{}, err
		}
	}
	if local.Lookup("exclude") != nil && local.Changed("exclude") {
		if cfg.Parse.Exclude, err = local.GetStringSlice("exclude"); err != nil {
			return project.Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return project.Config{}, err
	}
	return cfg, nil
}

// colorEnabled resolves the auto|on|off setting against f.
func colorEnabled(cfg project.Config, f *os.File) bool {
	switch cfg.Diagnostics.Color {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
