// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// predict_cmd.go - One-shot classification from the command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/zeste-tui/internal/config"
	"github.com/jeranaias/zeste-tui/internal/explain"
	"github.com/jeranaias/zeste-tui/internal/session"
	"github.com/jeranaias/zeste-tui/internal/ui/components"
	"github.com/jeranaias/zeste-tui/internal/zeste"
)

// maxDocumentBytes bounds documents read from a file or stdin.
const maxDocumentBytes = 4 << 20

// HandlePredict classifies one document against the labels given with
// -l and -c and prints the explanation. With --watch it keeps running and
// classifies the file again after every change.
func HandlePredict(ctx context.Context, cfg *config.Config, args Args) error {
	if args.Watch && args.File == "" {
		return &UsageError{Message: "--watch needs --file", Hint: "usage: zeste predict -l NAME -f PATH --watch"}
	}
	text, err := readDocument(args)
	if err != nil {
		return err
	}

	ctrl := NewController(cfg, NewClient(cfg), session.WithText(text))
	for _, l := range args.Datasets {
		ctrl.AddDataset(l)
	}
	for _, l := range args.Customs {
		ctrl.AddCustom(l)
	}
	// Labels made only of separators are dropped by the store.
	if len(ctrl.DatasetLabels())+len(ctrl.CustomLabels()) == 0 {
		return &UsageError{
			Message: "no labels given",
			Hint:    "add at least one -l NAME or -c NAME",
		}
	}

	if !args.Quiet && !args.JSON && IsStdoutTTY() {
		unsubscribe := ctrl.Subscribe(func(s session.State) {
			if s.Loading() {
				stderrf("%s\n", DimStyle.Render(components.LoadingMessage+"..."))
			}
		})
		defer unsubscribe()
	}

	if !args.Watch {
		return runPrediction(ctx, cfg, ctrl, args)
	}

	first := true
	return watchFile(ctx, args.File, func() {
		if !first {
			text, err := readLimited(args.File)
			if err != nil {
				PrintError(err)
				return
			}
			if strings.TrimSpace(text) == "" {
				return
			}
			ctrl.SetText(text)
		}
		first = false

		if !args.JSON && !args.Quiet {
			stdoutf("%s\n", DimStyle.Render(fmt.Sprintf("--- %s  %s", args.File, time.Now().Format("15:04:05"))))
		}
		if err := runPrediction(ctx, cfg, ctrl, args); err != nil {
			PrintError(err)
		}
	})
}

// runPrediction sends the controller's document and labels and prints the
// result in the requested format.
func runPrediction(ctx context.Context, cfg *config.Config, ctrl *session.Controller, args Args) error {
	labels := zeste.SplitLabels(ctrl.JoinedLabels())
	start := time.Now()
	state, err := ctrl.Predict(ctx)
	log.Printf("CLI_PREDICT | session=%s labels=%d phase=%s elapsed=%s", ctrl.ID(), len(labels), state.Phase, time.Since(start))

	if args.JSON {
		if err != nil {
			NewJSONErrorResponse("predict", err).Print()
			return err
		}
		preds := state.Predictions
		if preds == nil {
			preds = []zeste.Prediction{}
		}
		return NewJSONResponse("predict", PredictData{
			Session:      ctrl.ID(),
			SessionStart: ctrl.StartTime().UTC().Format(time.RFC3339),
			Labels:       labels,
			Predictions:  preds,
			DurationMs:   time.Since(start).Milliseconds(),
		}).Print()
	}
	if err != nil {
		return err
	}

	report := explain.NewReport(state.Predictions)
	if args.Quiet {
		if report.Empty {
			stdoutf("%s\n", explain.NoTopicsMessage)
			return nil
		}
		stdoutf("%s %s\n", report.Main.Label, report.Main.Confidence)
		return nil
	}

	opts := explain.RenderOptions{ConceptURL: cfg.Explain.ConceptURL, ExpandOthers: true}
	stdoutf("%s", renderReport(report, opts))
	return nil
}

// renderReport returns Markdown rendered by glamour on a color terminal
// and plain text otherwise.
func renderReport(report explain.Report, opts explain.RenderOptions) string {
	if !IsStdoutTTY() || !ColorsEnabled() {
		return report.Text(opts)
	}

	width := min(GetTerminalWidth(), MaxReportWidth)
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Printf("GLAMOUR_FAILED | err=%v", err)
		return report.Text(opts)
	}
	out, err := renderer.Render(report.Markdown(opts))
	if err != nil {
		log.Printf("GLAMOUR_FAILED | err=%v", err)
		return report.Text(opts)
	}
	return out
}

// readDocument picks the document from --text, --file or stdin, in that
// order.
func readDocument(args Args) (string, error) {
	var text string
	switch {
	case args.Text != "":
		text = args.Text
	case args.File != "":
		data, err := readLimited(args.File)
		if err != nil {
			return "", err
		}
		text = data
	case args.Stdin:
		data, err := readCapped(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = data
	}

	if strings.TrimSpace(text) == "" {
		return "", &UsageError{
			Message: "no document given",
			Hint:    "pass --text TEXT, --file PATH or - to read stdin",
		}
	}
	return text, nil
}

func readLimited(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	data, err := readCapped(f)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// errDocumentTooLarge is returned instead of classifying a truncated document.
var errDocumentTooLarge = &UsageError{
	Message: fmt.Sprintf("document exceeds %d MB", maxDocumentBytes>>20),
	Hint:    "split the document and classify the parts separately",
}

// readCapped reads all of r, failing when it holds more than
// maxDocumentBytes.
func readCapped(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxDocumentBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > maxDocumentBytes {
		return "", errDocumentTooLarge
	}
	return string(data), nil
}
