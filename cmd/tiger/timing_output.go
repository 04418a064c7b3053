package main

import (
	"fmt"
	"io"

	"tiger/internal/observ"
)

func printTimings(out io.Writer, label string, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", label)
	for _, p := range report.Phases {
		fmt.Fprintf(out, "  %-12s %8.3f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			fmt.Fprintf(out, "  (%s)", p.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "  %-12s %8.3f ms\n", "total", report.TotalMS)
}
