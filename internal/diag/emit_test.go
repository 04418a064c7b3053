package diag

import (
	"bytes"
	"errors"
	"testing"

	"tiger/internal/source"
)

func TestEmitFormat(t *testing.T) {
	tests := []struct {
		pos  source.Position
		msg  string
		want string
	}{
		{source.Position{Line: 1, Col: 0}, "wrong token: @", "1.0:wrong token: @\n"},
		{source.Position{Line: 12, Col: 7}, "unexpected end of input", "12.7:unexpected end of input\n"},
		{source.Position{Line: 3, Col: 2}, "", "3.2:\n"},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := Emit(&buf, tt.pos, tt.msg); err != nil {
			t.Fatalf("Emit: %v", err)
		}
		if buf.String() != tt.want {
			t.Errorf("Emit(%v, %q) = %q, want %q", tt.pos, tt.msg, buf.String(), tt.want)
		}
	}
}

func TestStreamReporterDoesNotDedup(t *testing.T) {
	var buf bytes.Buffer
	r := NewStreamReporter(&buf)
	pos := source.Position{Line: 2, Col: 4}
	r.Report(LexUnknownChar, SevError, source.Span{}, pos, "wrong token: @", nil)
	r.Report(LexUnknownChar, SevError, source.Span{}, pos, "wrong token: @", nil)

	want := "2.4:wrong token: @\n2.4:wrong token: @\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestStreamReporterKeepsFirstWriteError(t *testing.T) {
	r := NewStreamReporter(failingWriter{})
	r.Report(LexUnknownChar, SevError, source.Span{}, source.Position{Line: 1}, "x", nil)
	if !errors.Is(r.Err(), errWrite) {
		t.Fatalf("Err() = %v, want %v", r.Err(), errWrite)
	}
}

func TestMultiReporterFansOut(t *testing.T) {
	var buf bytes.Buffer
	bag := NewBag(10)
	r := MultiReporter{NewStreamReporter(&buf), nil, BagReporter{Bag: bag}}

	ReportError(r, SynUnexpectedToken, source.Span{Start: 3, End: 4}, source.Position{Line: 1, Col: 3}, "wrong token: )").
		WithNote(source.Span{Start: 0, End: 1}, source.Position{Line: 1, Col: 0}, "expression starts here").
		Emit()

	if buf.String() != "1.3:wrong token: )\n" {
		t.Fatalf("stream got %q", buf.String())
	}
	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != SynUnexpectedToken || d.Severity != SevError || len(d.Notes) != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, LexBadEscape, source.Span{}, source.Position{Line: 1}, "bad escape")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}
}

func TestPrefixedReporterSharesStream(t *testing.T) {
	var buf bytes.Buffer
	r := NewStreamReporter(&buf)
	a, b := r.Prefixed("a.tig"), r.Prefixed("dir/b.tig")
	a.Report(SynUnexpectedEOF, SevError, source.Span{}, source.Position{Line: 1, Col: 3}, "unexpected end of input", nil)
	b.Report(LexUnknownChar, SevError, source.Span{}, source.Position{Line: 2, Col: 0}, "wrong token: @", nil)
	r.Report(LexUnknownChar, SevError, source.Span{}, source.Position{Line: 4, Col: 1}, "wrong token: #", nil)

	want := "a.tig:1.3:unexpected end of input\ndir/b.tig:2.0:wrong token: @\n4.1:wrong token: #\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}

	failing := NewStreamReporter(failingWriter{})
	failing.Prefixed("x.tig").Report(LexUnknownChar, SevError, source.Span{}, source.Position{Line: 1}, "x", nil)
	if !errors.Is(failing.Err(), errWrite) {
		t.Fatalf("Err() = %v, want %v", failing.Err(), errWrite)
	}
}
