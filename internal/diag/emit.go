package diag

import (
	"fmt"
	"io"
	"sync"

	"tiger/internal/source"
)

// Emit writes one diagnostic line of the form "<line>.<column>:<message>".
func Emit(w io.Writer, pos source.Position, msg string) error {
	_, err := fmt.Fprintf(w, "%d.%d:%s\n", pos.Line, pos.Col, msg)
	return err
}

// StreamReporter writes every reported diagnostic to W as soon as it arrives.
// It neither buffers nor deduplicates: one call, one line.
type StreamReporter struct {
	W io.Writer

	mu  sync.Mutex
	err error
}

// NewStreamReporter returns a StreamReporter writing to w.
func NewStreamReporter(w io.Writer) *StreamReporter {
	return &StreamReporter{W: w}
}

func (r *StreamReporter) Report(code Code, sev Severity, primary source.Span, pos source.Position, msg string, notes []Note) {
	r.write("", pos, msg)
}

// Prefixed returns a Reporter that streams through r, starting every line
// with "<prefix>:". Lines of all prefixed reporters share r's lock, so
// concurrent units never interleave within a line.
func (r *StreamReporter) Prefixed(prefix string) Reporter {
	return prefixedReporter{stream: r, prefix: prefix}
}

func (r *StreamReporter) write(prefix string, pos source.Position, msg string) {
	if r == nil || r.W == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var err error
	if prefix != "" {
		_, err = fmt.Fprintf(r.W, "%s:", prefix)
	}
	if err == nil {
		err = Emit(r.W, pos, msg)
	}
	if err != nil && r.err == nil {
		r.err = err
	}
}

type prefixedReporter struct {
	stream *StreamReporter
	prefix string
}

func (p prefixedReporter) Report(code Code, sev Severity, primary source.Span, pos source.Position, msg string, notes []Note) {
	p.stream.write(p.prefix, pos, msg)
}

// Err returns the first write error, if any.
func (r *StreamReporter) Err() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
