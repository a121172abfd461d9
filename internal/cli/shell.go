// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - Line-mode session with label completion.
//
// The shell keeps one session controller alive across lines. Plain lines
// are appended to the document; lines starting with ':' are commands.
// Line history lives in memory for the length of the session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/zeste-tui/internal/config"
	"github.com/jeranaias/zeste-tui/internal/explain"
	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/ui/components"
)

const (
	shellPrompt = "zeste> "

	// completionTimeout bounds the autocomplete lookup behind Tab.
	completionTimeout = 2 * time.Second
)

// errShellQuit ends the read loop.
var errShellQuit = errors.New("quit")

const shellHelp = `Commands:
  :label NAME      Add a dataset label (Tab completes)
  :custom NAME     Add a custom label
  :rm N            Remove dataset label N
  :rmc N           Remove custom label N
  :labels          List labels
  :text [TEXT]     Show the document, or replace it with TEXT
  :clear           Empty the document
  :predict         Classify the document
  :explain N       Explain other topic N of the last result
  :help            Show this help
  :quit            Leave the shell
Any other line is appended to the document.
`

// Shell is a line-mode session. It is driven by RunShell, and by tests
// through HandleLine.
type Shell struct {
	ctrl       *session.Controller
	suggester  session.Suggester
	conceptURL string
	out        io.Writer
	report     explain.Report
	hasReport  bool
}

// NewShell creates a shell around ctrl writing to out.
func NewShell(ctrl *session.Controller, suggester session.Suggester, conceptURL string, out io.Writer) *Shell {
	sh := &Shell{
		ctrl:       ctrl,
		suggester:  suggester,
		conceptURL: conceptURL,
		out:        out,
	}
	ctrl.Subscribe(func(s session.State) {
		if s.Loading() {
			fmt.Fprintln(sh.out, DimStyle.Render(components.LoadingMessage+"..."))
		}
	})
	return sh
}

// RunShell starts the interactive shell on the terminal.
func RunShell(ctx context.Context, cfg *config.Config, args Args) error {
	client := NewClient(cfg)
	ctrl := NewController(cfg, client)
	sh := NewShell(ctrl, client, cfg.Explain.ConceptURL, stdout)

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(func(l string) []string {
		return sh.Complete(ctx, l)
	})

	if !args.Quiet {
		stdoutf("%s\n", TitleStyle.Render("zeste shell")+" "+DimStyle.Render("connected to "+client.BaseURL()))
		stdoutf("%s\n", DimStyle.Render("Type :help for commands, :quit to leave."))
	}

	for {
		input, err := line.Prompt(shellPrompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		if err := sh.HandleLine(ctx, input); err != nil {
			if errors.Is(err, errShellQuit) {
				return nil
			}
			sh.printError(err)
		}
	}
}

// printError reports a failed line without leaving the shell.
func (sh *Shell) printError(err error) {
	fmt.Fprintln(sh.out, formatError(err))
}

// =============================================================================
// LINE HANDLING
// =============================================================================

// HandleLine runs one line of input.
func (sh *Shell) HandleLine(ctx context.Context, input string) error {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil
	}
	if !strings.HasPrefix(trimmed, ":") {
		sh.appendText(input)
		return nil
	}

	cmd, rest, _ := strings.Cut(trimmed[1:], " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "label", "l":
		return sh.addLabel(rest, sh.ctrl.AddDataset, "dataset")
	case "custom", "c":
		return sh.addLabel(rest, sh.ctrl.AddCustom, "custom")
	case "rm":
		return sh.remove(rest, sh.ctrl.RemoveDataset)
	case "rmc":
		return sh.remove(rest, sh.ctrl.RemoveCustom)
	case "labels", "ls":
		sh.printLabels()
	case "text":
		if rest == "" {
			sh.printText()
		} else {
			sh.ctrl.SetText(rest)
		}
	case "clear":
		sh.ctrl.SetText("")
	case "predict", "p":
		return sh.predict(ctx)
	case "explain", "e":
		return sh.explain(rest)
	case "help", "h", "?":
		fmt.Fprint(sh.out, shellHelp)
	case "quit", "q", "exit":
		return errShellQuit
	default:
		return &UsageError{Message: fmt.Sprintf("unknown shell command :%s", cmd), Hint: "type :help"}
	}
	return nil
}

func (sh *Shell) appendText(line string) {
	text := sh.ctrl.Text()
	if text != "" {
		text += "\n"
	}
	sh.ctrl.SetText(text + line)
}

func (sh *Shell) addLabel(value string, add func(string) bool, kind string) error {
	if value == "" {
		return &UsageError{Message: "missing label name"}
	}
	if add(value) {
		fmt.Fprintf(sh.out, "%s %s label %s\n", SuccessStyle.Render("Added"), kind, LabelStyle.Render(value))
	}
	return nil
}

func (sh *Shell) remove(arg string, remove func(int) error) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return &UsageError{Message: fmt.Sprintf("not a label number: %q", arg)}
	}
	return remove(n - 1)
}

func (sh *Shell) printLabels() {
	section := func(title string, list []string) {
		fmt.Fprintln(sh.out, SectionStyle.Render(title))
		if len(list) == 0 {
			fmt.Fprintln(sh.out, DimStyle.Render("  (none)"))
			return
		}
		for i, l := range list {
			fmt.Fprintf(sh.out, "  %d. %s\n", i+1, LabelStyle.Render(l))
		}
	}
	section("Dataset labels", sh.ctrl.DatasetLabels())
	section("Custom labels", sh.ctrl.CustomLabels())
}

func (sh *Shell) printText() {
	text := sh.ctrl.Text()
	if text == "" {
		fmt.Fprintln(sh.out, DimStyle.Render("(empty document)"))
		return
	}
	fmt.Fprintln(sh.out, text)
}

func (sh *Shell) predict(ctx context.Context) error {
	state, err := sh.ctrl.Predict(ctx)
	if err != nil {
		return err
	}
	sh.report = explain.NewReport(state.Predictions)
	sh.hasReport = true
	fmt.Fprint(sh.out, sh.report.Text(explain.RenderOptions{ConceptURL: sh.conceptURL}))
	return nil
}

// explain prints the terms of other topic n, counted from 1.
func (sh *Shell) explain(arg string) error {
	if !sh.hasReport || sh.report.Empty {
		return &UsageError{Message: "nothing to explain", Hint: "run :predict first"}
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(sh.report.Others) {
		return &UsageError{Message: fmt.Sprintf("other topic must be between 1 and %d", len(sh.report.Others))}
	}

	topic := sh.report.Others[n-1]
	fmt.Fprintf(sh.out, "%s  Confidence: %s\n", SectionStyle.Render(topic.Label), topic.Confidence)
	if len(topic.Terms) == 0 {
		fmt.Fprintln(sh.out, "  No supporting terms.")
		return nil
	}
	fmt.Fprintln(sh.out, explain.TermsHeading)
	for _, sentences := range topic.Terms {
		parts := make([]string, 0, len(sentences))
		for _, s := range sentences {
			parts = append(parts, s.String())
		}
		fmt.Fprintf(sh.out, "  - %s\n", strings.Join(parts, " "))
	}
	return nil
}

// =============================================================================
// COMPLETION
// =============================================================================

var shellCommands = []string{
	":label ", ":custom ", ":rm ", ":rmc ", ":labels", ":text ",
	":clear", ":predict", ":explain ", ":help", ":quit",
}

// Complete returns completions for line. ":label " completes from the
// autocomplete service; a bare ":" prefix completes command names.
func (sh *Shell) Complete(ctx context.Context, line string) []string {
	if prefix, ok := strings.CutPrefix(line, ":label "); ok {
		return sh.completeLabel(ctx, ":label ", prefix)
	}
	if strings.HasPrefix(line, ":") && !strings.Contains(line, " ") {
		var out []string
		for _, c := range shellCommands {
			if strings.HasPrefix(c, line) {
				out = append(out, c)
			}
		}
		return out
	}
	return nil
}

func (sh *Shell) completeLabel(ctx context.Context, head, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" || sh.suggester == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	list, err := sh.suggester.FetchSuggestions(ctx, query)
	if err != nil {
		log.Printf("SHELL_COMPLETE_FAILED | query=%q err=%v", query, err)
		return nil
	}
	out := suggestionNames(list)
	for i := range out {
		out[i] = head + out[i]
	}
	return out
}
