// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The "config" command.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeranaias/zeste-tui/internal/config"
)

// HandleConfig dispatches "config show|path|init|get|set".
func HandleConfig(cfg *config.Config, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(cfg, args)
	case "path":
		return configPath(args)
	case "init":
		return configInit(args)
	case "get":
		return configGet(cfg, args)
	case "set":
		return configSet(args)
	case "keys":
		for _, k := range config.GetAllKeys() {
			stdoutf("%s\n", k)
		}
		return nil
	default:
		return &UsageError{
			Message: fmt.Sprintf("unknown config subcommand %q", args.Subcommand),
			Hint:    "use show, path, init, get, set or keys",
		}
	}
}

func configShow(cfg *config.Config, args Args) error {
	if args.JSON {
		return NewJSONResponse("config show", cfg).Print()
	}
	stdoutf("%s\n", TitleStyle.Render("zeste configuration"))
	for _, k := range config.GetAllKeys() {
		v, err := cfg.Get(k)
		if err != nil {
			continue
		}
		stdoutf("  %-32s %s\n", k, formatValue(v))
	}
	return nil
}

func configPath(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	_, statErr := os.Stat(path)
	exists := statErr == nil

	if args.JSON {
		return NewJSONResponse("config path", ConfigPathData{Path: path, Exists: exists}).Print()
	}
	stdoutf("%s\n", path)
	if !exists && !args.Quiet {
		stderrf("%s\n", DimStyle.Render("(not created yet; run 'zeste config init')"))
	}
	return nil
}

func configInit(args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return &UsageError{
			Message: "config file already exists: " + path,
			Hint:    "edit it or use 'zeste config set KEY VALUE'",
		}
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return err
	}
	if args.JSON {
		return NewJSONResponse("config init", ConfigPathData{Path: path, Exists: true}).Print()
	}
	stdoutf("%s %s\n", SuccessStyle.Render("Created"), path)
	return nil
}

func configGet(cfg *config.Config, args Args) error {
	if args.ConfigKey == "" {
		return &UsageError{Message: "missing key", Hint: "usage: zeste config get KEY"}
	}
	v, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return &UsageError{Message: err.Error(), Hint: "run 'zeste config keys' for valid keys"}
	}
	if args.JSON {
		return NewJSONResponse("config get", ConfigValueData{Key: args.ConfigKey, Value: v}).Print()
	}
	stdoutf("%s\n", formatValue(v))
	return nil
}

// configSet edits the file on disk rather than the loaded config so that
// environment overrides are not written back.
func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return &UsageError{Message: "missing key or value", Hint: "usage: zeste config set KEY VALUE"}
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		cfg.Labels.DefaultDataset = ""
		if err := config.LoadTOML(cfg, path); err != nil {
			return err
		}
		cfg.SetDefaults()
	}

	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &UsageError{Message: err.Error(), Hint: "run 'zeste config keys' for valid keys"}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return err
	}

	v, _ := cfg.Get(args.ConfigKey)
	if args.JSON {
		return NewJSONResponse("config set", ConfigValueData{Key: args.ConfigKey, Value: v}).Print()
	}
	if !args.Quiet {
		stdoutf("%s %s = %s\n", SuccessStyle.Render("Set"), args.ConfigKey, formatValue(v))
	}
	return nil
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case string:
		if val == "" {
			return `""`
		}
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
