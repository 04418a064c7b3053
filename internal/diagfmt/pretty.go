package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tiger/internal/diag"
	"tiger/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note *color.Color
	loc, msg, gutter      *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		msg:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.msg, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty renders diagnostics for humans. Items are printed in bag order;
// call bag.Sort first for a stable layout. Each entry looks like
//
//	<path>:<line>.<col>: ERROR LEX1001: wrong token: @
//	   1 | a @ b
//	     |   ^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil || fs == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	if _, err := fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.loc.Sprintf("%s:%s", path, d.Pos),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		d.Code.ID(),
		pal.msg.Sprint(d.Message),
	); err != nil {
		return err
	}

	if f := fs.Get(d.Primary.File); f != nil && d.Pos.IsValid() {
		if err := writeSnippet(w, f, d.Primary, d.Pos.Line, opts, pal); err != nil {
			return err
		}
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			npath := formatPath(fs, n.Span.File, opts.PathMode)
			if _, err := fmt.Fprintf(w, "  %s %s:%s: %s\n", pal.note.Sprint("note:"), npath, n.Pos, n.Msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSnippet(w io.Writer, f *source.File, sp source.Span, line uint32, opts PrettyOpts, pal palette) error {
	first := line
	if opts.Context > 0 {
		ctx := uint32(opts.Context) // #nosec G115 -- checked positive
		if ctx >= line {
			first = 1
		} else {
			first = line - ctx
		}
	}
	gutterWidth := len(fmt.Sprint(line))

	for n := first; n <= line; n++ {
		text := expandTabs(f.GetLine(n))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "...")
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf(" %*d |", gutterWidth, n), text); err != nil {
			return err
		}
	}

	start, ok := f.Lines.LineStart(line)
	if !ok || sp.Start < start || int(sp.Start) > len(f.Content) {
		return nil
	}
	raw := f.GetLine(line)
	col := int(sp.Start - start)
	if col > len(raw) {
		col = len(raw)
	}
	pad := runewidth.StringWidth(expandTabs(raw[:col]))
	end := int(sp.End - start)
	if end > len(raw) {
		end = len(raw)
	}
	width := 1
	if !sp.Empty() && end > col {
		width = max(1, runewidth.StringWidth(expandTabs(raw[col:end])))
	}
	if opts.Width > 0 && pad+width > int(opts.Width) {
		width = max(1, int(opts.Width)-pad)
	}
	marker := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "%s %s%s\n",
		pal.gutter.Sprintf(" %*s |", gutterWidth, ""),
		strings.Repeat(" ", pad),
		pal.caret.Sprint(marker),
	)
	return err
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
