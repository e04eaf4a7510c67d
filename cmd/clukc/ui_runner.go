package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"clukc/internal/driver"
	"clukc/internal/source"
	"clukc/internal/ui"
)

type compileOutcome struct {
	fs    *source.FileSet
	units []*driver.Unit
	err   error
}

// runCompileWithUI compiles files while a progress view renders the events.
func runCompileWithUI(ctx context.Context, title string, files []string, opts driver.Options) (*source.FileSet, []*driver.Unit, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan compileOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, units, err := driver.CompileFiles(ctx, files, opts)
		outcomeCh <- compileOutcome{fs: fs, units: units, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// the view may quit early; keep the compiler from blocking on a full channel
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.units, uiErr
	}
	return outcome.fs, outcome.units, outcome.err
}

// uiMode is the --ui setting.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	mode := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return mode, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI resolves auto against stderr, where the progress view draws.
func shouldUseTUI(mode uiMode) bool {
	if mode == uiModeAuto {
		return isTerminal(os.Stderr)
	}
	return mode == uiModeOn
}
