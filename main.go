// zeste - a terminal front end for the ZeSTE zero-shot topic classifier.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zeste-tui/internal/cli"
	"github.com/jeranaias/zeste-tui/internal/config"
	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/ui/predict"
	"github.com/jeranaias/zeste-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// Commands that need no configuration.
	switch cmd {
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	case cli.CmdVersion:
		exit(cli.HandleVersion(args))
		return
	case cli.CmdUnknown:
		exit(cli.HandleUnknown(args))
		return
	}

	cfg, err := loadConfig(args)
	if err != nil && cmd != cli.CmdConfig {
		exit(err)
		return
	}
	if cfg == nil {
		cfg = config.Default()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case cli.CmdTUI:
		err = runTUI(cfg, args)
	case cli.CmdPredict:
		setupCLILogging(args)
		err = cli.HandlePredict(ctx, cfg, args)
	case cli.CmdSuggest:
		setupCLILogging(args)
		err = cli.HandleSuggest(ctx, cfg, args)
	case cli.CmdShell:
		setupCLILogging(args)
		err = cli.RunShell(ctx, cfg, args)
	case cli.CmdConfig:
		setupCLILogging(args)
		err = cli.HandleConfig(cfg, args)
	}
	stop()
	exit(err)
}

// exit prints err and leaves with its exit code. A nil err returns.
func exit(err error) {
	if err == nil {
		return
	}
	cli.PrintError(err)
	os.Exit(cli.ExitCode(err))
}

// loadConfig reads the config file and applies --config and --server.
// A config file that fails to load is reported but the defaults are used;
// only an invalid final configuration is an error.
func loadConfig(args cli.Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		os.Setenv("ZESTE_CONFIG", args.ConfigPath)
	}

	cfg, err := config.Load()
	if cfg == nil {
		return nil, err
	}
	if err != nil && !args.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	if args.Server != "" {
		cfg.Server.URL = strings.TrimRight(args.Server, "/")
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// setupCLILogging sends log output to stderr with --verbose and discards
// it otherwise.
func setupCLILogging(args cli.Args) {
	if args.Verbose {
		log.SetOutput(os.Stderr)
		log.SetFlags(log.Ltime | log.Lmicroseconds)
		return
	}
	log.SetOutput(io.Discard)
}

func debugEnabled(args cli.Args) bool {
	if args.Debug {
		return true
	}
	switch strings.ToLower(os.Getenv("ZESTE_DEBUG")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// runTUI starts the interactive screen.
func runTUI(cfg *config.Config, args cli.Args) error {
	// The screen owns the terminal, so logs go to a file or nowhere.
	log.SetOutput(io.Discard)
	if debugEnabled(args) {
		if err := config.EnsureConfigDir(); err == nil {
			if dir, err := config.ConfigDir(); err == nil {
				f, err := tea.LogToFile(filepath.Join(dir, "debug.log"), "zeste")
				if err == nil {
					defer f.Close()
				}
			}
		}
	}

	client := cli.NewClient(cfg)
	var opts []session.Option
	if cfg.UI.SampleText {
		opts = append(opts, session.WithText(config.DefaultSampleText))
	}
	ctrl := cli.NewController(cfg, client, opts...)
	log.Printf("TUI_START | session=%s server=%s", ctrl.ID(), client.BaseURL())

	m := predict.New(ctrl, styles.NewThemeMode(cfg.UI.Theme), predict.Options{
		Datasets:       cfg.Labels.Datasets,
		DefaultDataset: cfg.Labels.DefaultDataset,
		ServerURL:      client.BaseURL(),
		ConceptURL:     cfg.Explain.ConceptURL,
		Hyperlinks:     cfg.UI.Hyperlinks,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running zeste: %w", err)
	}
	return nil
}
