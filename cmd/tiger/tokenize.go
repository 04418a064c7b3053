package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tiger/internal/diagfmt"
	"tiger/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.tig",
	Short: "Tokenize a Tiger source file",
	Long:  `Tokenize scans a Tiger source file and prints its tokens with their positions`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().String("diagnostics", "", "diagnostics format (emit|pretty|json|short)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cleanup, err := startRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	opts, stream := driverOptions(cfg, true)
	result, err := driver.Tokenize(cmd.Context(), args[0], opts)
	if err != nil {
		return err
	}
	if err := stream.Err(); err != nil {
		return err
	}
	if err := writeDiagnostics(cfg, result.FileSet, result.Bag, ""); err != nil {
		return err
	}

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(os.Stdout, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(os.Stdout, result.Tokens)
	}
	if err != nil {
		return err
	}
	if result.Err != nil || result.Bag.HasErrors() {
		return errReported
	}
	return nil
}
