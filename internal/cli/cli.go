// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for zeste.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output streams. Tests swap them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdPredict
	CmdSuggest
	CmdShell
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

// String returns the command name as typed.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdPredict:
		return "predict"
	case CmdSuggest:
		return "suggest"
	case CmdShell:
		return "shell"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Server     string
	JSON       bool
	Verbose    bool
	Quiet      bool
	Debug      bool

	// predict
	Datasets []string
	Customs  []string
	File     string
	Text     string
	Stdin    bool
	Watch    bool

	// suggest
	Query string

	// config
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Unknown holds the unrecognised command name.
	Unknown string

	// Raw args (remaining after the command name)
	Raw []string
}

const usageText = `zeste - Zero-Shot Topic Extraction client

Classify a document against labels you choose. Every predicted topic
comes with an explanation built from ConceptNet relations.

Usage:
  zeste                        Start the interactive screen (default)
  zeste tui                    Start the interactive screen
  zeste predict [flags] [-]    Classify a document once
  zeste suggest QUERY          Look up label names
  zeste shell                  Line-mode session with label completion
  zeste config [show|path|init|keys|get KEY|set KEY VALUE]
                               Configuration
  zeste version                Show version information
  zeste help                   Show this help

Predict Flags:
  -l, --label NAME             Add a dataset label (repeatable)
  -c, --custom NAME            Add a custom label (repeatable)
  -f, --file PATH              Read the document from PATH
  -t, --text TEXT              Use TEXT as the document
  -                            Read the document from stdin
  -w, --watch                  Predict again whenever --file changes

Global Flags:
  --config PATH                Use PATH as the configuration file
  --server URL                 Override the ZeSTE server URL
  --json                       Output in JSON format
  -v, --verbose                Log requests to stderr
  -q, --quiet                  Minimal output
  --debug                      Write TUI logs to ~/.zeste/debug.log

Environment:
  ZESTE_SERVER_URL             Server URL (also read from .env)
  ZESTE_TIMEOUT_SECS           Request timeout in seconds
  ZESTE_CONCEPT_URL            Term link prefix
  ZESTE_THEME                  dark, light or auto
  ZESTE_CONFIG                 Configuration file path
  ZESTE_DEBUG                  Same as --debug
  NO_COLOR                     Disable colored output

Examples:
  zeste predict -l space -l sport -c astronomy -f article.txt
  echo "Bennu is an asteroid" | zeste predict -l space - --json
  zeste predict -l space -l sport -f notes.txt --watch
  zeste suggest spa
  zeste config set server.url http://zeste.example.org

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Fprintf(stdout, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Fprintf(stdout, "zeste version %s\n", Version)
	fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(stdout, "  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args and returns the command and its arguments.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "predict", "p":
		parsePredictArgs(&parsedArgs, remaining)
		return CmdPredict, parsedArgs

	case "suggest", "autocomplete":
		parsedArgs.Query = strings.Join(NewArgParser(remaining).PositionalFrom(0), " ")
		return CmdSuggest, parsedArgs

	case "shell", "repl":
		return CmdShell, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		parsedArgs.Unknown = cmd
		return CmdUnknown, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--debug":
			parsedArgs.Debug = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		case "--server":
			if i+1 < len(args) {
				i++
				parsedArgs.Server = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--server="):
				parsedArgs.Server = strings.TrimPrefix(arg, "--server=")
			default:
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, parsedArgs
}

// parsePredictArgs parses predict command specific arguments. Label flags
// repeat; everything positional after the flags is joined into the text.
func parsePredictArgs(args *Args, remaining []string) {
	var text []string

	for i := 0; i < len(remaining); i++ {
		arg := remaining[i]

		next := func() (string, bool) {
			if i+1 < len(remaining) {
				i++
				return remaining[i], true
			}
			return "", false
		}

		switch arg {
		case "-l", "--label":
			if v, ok := next(); ok {
				args.Datasets = append(args.Datasets, v)
			}
		case "-c", "--custom":
			if v, ok := next(); ok {
				args.Customs = append(args.Customs, v)
			}
		case "-f", "--file":
			if v, ok := next(); ok {
				args.File = v
			}
		case "-t", "--text":
			if v, ok := next(); ok {
				args.Text = v
			}
		case "-w", "--watch":
			args.Watch = true
		case "-":
			args.Stdin = true
		default:
			switch {
			case strings.HasPrefix(arg, "--label="):
				args.Datasets = append(args.Datasets, strings.TrimPrefix(arg, "--label="))
			case strings.HasPrefix(arg, "--custom="):
				args.Customs = append(args.Customs, strings.TrimPrefix(arg, "--custom="))
			case strings.HasPrefix(arg, "--file="):
				args.File = strings.TrimPrefix(arg, "--file=")
			case strings.HasPrefix(arg, "--text="):
				args.Text = strings.TrimPrefix(arg, "--text=")
			case !strings.HasPrefix(arg, "-"):
				text = append(text, arg)
			}
		}
	}

	if args.Text == "" && len(text) > 0 {
		args.Text = strings.Join(text, " ")
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	p := NewArgParser(remaining)
	args.Subcommand = p.Subcommand()
	if args.Subcommand == "" {
		args.Subcommand = "show"
	}
	args.ConfigKey = p.Positional(1)
	args.ConfigVal = strings.Join(p.PositionalFrom(2), " ")
}

// =============================================================================
// SIMPLE COMMANDS
// =============================================================================

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args) error {
	if args.JSON {
		return NewJSONResponse("version", VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}).Print()
	}
	PrintVersion()
	return nil
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}

// HandleUnknown reports an unrecognised command with a suggestion.
func HandleUnknown(args Args) error {
	err := &UsageError{Message: fmt.Sprintf("unknown command %q", args.Unknown)}
	if s := SuggestCommand(args.Unknown); s != "" {
		err.Hint = fmt.Sprintf("did you mean %q?", s)
	} else {
		err.Hint = "run 'zeste help' for usage"
	}
	return err
}
