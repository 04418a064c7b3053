package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tiger/internal/driver"
	"tiger/internal/source"
	"tiger/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []*driver.ParseResult
	err     error
}

// runCheckWithUI parses dir while a progress view consumes driver events.
func runCheckWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options) (*source.FileSet, []*driver.ParseResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Sink = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// Keep the producer from blocking on a full channel.
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
