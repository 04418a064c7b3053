package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/diagfmt"
	"tiger/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.tig",
	Short: "Parse a Tiger source file and print its syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "", "tree format (tree|pretty|json|yaml|msgpack|sexpr)")
	parseCmd.Flags().Bool("positions", false, "include node positions")
	parseCmd.Flags().String("diagnostics", "", "diagnostics format (emit|pretty|json|short)")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format := cfg.Parse.Format
	if cmd.Flags().Changed("format") {
		if format, err = cmd.Flags().GetString("format"); err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
	}
	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, stream := driverOptions(cfg, true)
	res, err := driver.Parse(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if err := stream.Err(); err != nil {
		return err
	}
	if err := writeDiagnostics(cfg, res.FileSet, res.Bag, ""); err != nil {
		return err
	}
	if timings, _ := cmd.Root().PersistentFlags().GetBool("timings"); timings {
		printTimings(os.Stderr, res.Path, res.Timing)
	}
	if !res.OK() {
		return errReported
	}

	astOpts := diagfmt.ASTOpts{
		Color:         colorEnabled(cfg, os.Stdout),
		WithPositions: cfg.Parse.Positions,
	}
	switch format {
	case "tree":
		return diagfmt.FormatASTTree(os.Stdout, res.Exp, astOpts)
	case "pretty":
		return diagfmt.FormatASTPretty(os.Stdout, res.Exp, astOpts)
	case "json":
		return diagfmt.FormatASTJSON(os.Stdout, res.Exp, astOpts)
	case "yaml":
		return diagfmt.FormatASTYAML(os.Stdout, res.Exp, astOpts)
	case "msgpack":
		if isTerminal(os.Stdout) {
			return fmt.Errorf("refusing to write msgpack to a terminal; redirect the output")
		}
		return diagfmt.FormatASTMsgpack(os.Stdout, res.Exp, astOpts)
	case "sexpr":
		return diagfmt.FormatASTSexpr(os.Stdout, res.Exp, astOpts)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
