package main

import (
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"

	"tiger/internal/diag"
	"tiger/internal/diagfmt"
	"tiger/internal/driver"
	"tiger/internal/project"
	"tiger/internal/source"
)

// driverOptions maps the configuration onto driver options. With the emit
// format, single-unit commands stream diagnostics to stderr as they arise.
func driverOptions(cfg project.Config, stream bool) (driver.Options, *diag.StreamReporter) {
	opts := driver.Options{
		MaxDiagnostics: cfg.Diagnostics.Max,
		CharColumns:    cfg.Diagnostics.Columns == "chars",
		Jobs:           cfg.Parse.Jobs,
		Exclude:        cfg.Parse.Exclude,
	}
	if !stream || cfg.Diagnostics.Format != "emit" {
		return opts, nil
	}
	rep := diag.NewStreamReporter(os.Stderr)
	opts.Reporter = rep
	return opts, rep
}

// writeDiagnostics renders bag in the configured format. Emit-format output
// was already streamed unless prefixPath is set, in which case the bag is
// replayed with every line prefixed by the unit path.
func writeDiagnostics(cfg project.Config, fs *source.FileSet, bag *diag.Bag, prefixPath string) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	pathMode, _ := diagfmt.ParsePathMode(cfg.Diagnostics.Paths)
	if cfg.Diagnostics.Format != "emit" {
		bag.Sort()
	}
	switch cfg.Diagnostics.Format {
	case "emit":
		if prefixPath == "" {
			return nil
		}
		for _, d := range bag.Items() {
			if _, err := fmt.Fprintf(os.Stderr, "%s:", prefixPath); err != nil {
				return err
			}
			if err := diag.Emit(os.Stderr, d.Pos, d.Message); err != nil {
				return err
			}
		}
		return nil
	case "pretty":
		contextLines, err := safecast.Conv[int8](min(cfg.Diagnostics.Context, 127))
		if err != nil {
			return err
		}
		width, err := safecast.Conv[uint8](min(terminalWidth(os.Stderr), 255))
		if err != nil {
			return err
		}
		return diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
			Color:     colorEnabled(cfg, os.Stderr),
			Context:   contextLines,
			PathMode:  pathMode,
			Width:     width,
			ShowNotes: true,
		})
	case "json":
		return diagfmt.JSON(os.Stdout, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     true,
		})
	case "short":
		_, err := io.WriteString(os.Stderr, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		if err == nil {
			_, err = io.WriteString(os.Stderr, "\n")
		}
		return err
	default:
		return fmt.Errorf("unknown diagnostics format %q", cfg.Diagnostics.Format)
	}
}

// mergeBags collects the diagnostics of every result in file order.
func mergeBags(results []*driver.ParseResult) *diag.Bag {
	out := diag.NewBag(0)
	for _, res := range results {
		out.Merge(res.Bag)
	}
	return out
}
