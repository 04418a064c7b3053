package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"tiger/internal/diag"
	"tiger/internal/driver"
	"tiger/internal/project"
	"tiger/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.tig|dir]",
	Short: "Parse Tiger sources and report errors",
	Long: `Check parses a single file or every .tig file below a directory.
With --expect, the listed files must fail and every other file must parse.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	f := checkCmd.Flags()
	f.String("diagnostics", "", "diagnostics format (emit|pretty|json|short)")
	f.String("paths", "", "path display (auto|absolute|relative|basename)")
	f.Int("context", 0, "source lines shown above each pretty diagnostic")
	f.Int("jobs", 0, "parallel workers for directories (0 = number of CPUs)")
	f.Bool("cache", false, "reuse results of unchanged files from the disk cache")
	f.String("expect", "", "JSON list of files that must fail to parse")
	f.StringSlice("exclude", nil, "glob patterns of files to skip")
	f.String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	target := "."
	if len(args) == 1 {
		target = args[0]
	}
	st, err := os.Stat(target)
	if err != nil {
		return err
	}

	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if !st.IsDir() {
		return checkFile(cmd, cfg, target, timings)
	}

	opts, _ := driverOptions(cfg, false)
	if cfg.Parse.Cache {
		cache, err := driver.OpenDiskCache("tiger")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	// Emit lines stream as units are parsed unless the progress view owns
	// the terminal or an expectation list decides afterwards what is shown.
	useTUI := !quiet && shouldUseTUI(mode)
	var stream *diag.StreamReporter
	if cfg.Diagnostics.Format == "emit" && cfg.Parse.Expect == "" && !useTUI {
		stream = diag.NewStreamReporter(os.Stderr)
		opts.UnitReporter = stream.Prefixed
	}

	start := time.Now()
	fs, results, err := runDir(cmd, target, opts, useTUI)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	if err := stream.Err(); err != nil {
		return err
	}

	// With an expectation list only units that disagree with it are shown.
	var (
		mismatches []driver.Mismatch
		mismatched map[string]bool
	)
	if cfg.Parse.Expect != "" {
		mismatches, err = driver.CheckExpectations(results, cfg.Parse.Expect)
		if err != nil {
			return err
		}
		mismatched = make(map[string]bool, len(mismatches))
		for _, m := range mismatches {
			mismatched[m.Path] = true
		}
	}

	shown := results
	if mismatched != nil {
		shown = shown[:0:0]
		for _, res := range results {
			if mismatched[res.Path] {
				shown = append(shown, res)
			}
		}
	}
	if cfg.Diagnostics.Format == "emit" {
		if stream != nil {
			shown = nil
		}
		for _, res := range shown {
			if err := writeDiagnostics(cfg, fs, res.Bag, res.Path); err != nil {
				return err
			}
		}
	} else if err := writeDiagnostics(cfg, fs, mergeBags(shown), ""); err != nil {
		return err
	}

	for _, m := range mismatches {
		fmt.Fprintln(os.Stderr, m.String())
	}

	if timings {
		for _, res := range results {
			printTimings(os.Stderr, res.Path, res.Timing)
		}
	}

	failed, cached := 0, 0
	for _, res := range results {
		if !res.OK() {
			failed++
		}
		if res.Cached {
			cached++
		}
	}
	if !quiet {
		fmt.Fprintf(os.Stderr, "checked %d files in %s: %d ok, %d failed",
			len(results), elapsed.Round(time.Millisecond), len(results)-failed, failed)
		if cached > 0 {
			fmt.Fprintf(os.Stderr, ", %d cached", cached)
		}
		fmt.Fprintln(os.Stderr)
	}

	if mismatched != nil {
		if len(mismatches) > 0 {
			return errReported
		}
		return nil
	}
	if failed > 0 {
		return errReported
	}
	return nil
}

func runDir(cmd *cobra.Command, dir string, opts driver.Options, useTUI bool) (fs *source.FileSet, results []*driver.ParseResult, err error) {
	if !useTUI {
		return driver.ParseDir(cmd.Context(), dir, opts)
	}
	files, err := driver.ListSources(dir, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}
	title := fmt.Sprintf("check %s", filepath.Clean(dir))
	return runCheckWithUI(cmd.Context(), title, files, dir, opts)
}

func checkFile(cmd *cobra.Command, cfg project.Config, path string, timings bool) error {
	opts, stream := driverOptions(cfg, true)
	res, err := driver.Parse(cmd.Context(), path, opts)
	if err != nil {
		return err
	}
	if err := stream.Err(); err != nil {
		return err
	}
	if err := writeDiagnostics(cfg, res.FileSet, res.Bag, ""); err != nil {
		return err
	}
	if timings {
		printTimings(os.Stderr, res.Path, res.Timing)
	}
	if !res.OK() {
		return errReported
	}
	return nil
}
