package source

import (
	"errors"
	"testing"
)

func indexOf(text string) *LineIndex {
	var li LineIndex
	li.Index([]byte(text))
	return &li
}

func TestLineIndexOffsetZeroIsLineOne(t *testing.T) {
	for _, text := range []string{"", "a", "\n", "\r\n", "abc\ndef", "\r"} {
		li := indexOf(text)
		if got := li.PositionOf(0); got != (Position{Line: 1, Col: 0}) {
			t.Fatalf("PositionOf(0) for %q = %v, want 1.0", text, got)
		}
	}
}

func TestLineIndexTerminators(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
	}{
		{"empty", "", 1},
		{"no terminator", "abc", 1},
		{"lf", "a\nb", 2},
		{"crlf counts once", "a\r\nb", 2},
		{"lone cr", "a\rb", 2},
		{"trailing cr", "a\r", 2},
		{"trailing crlf", "a\r\n", 2},
		{"lf cr is two", "a\n\rb", 3},
		{"mixed", "a\r\nb\nc\rd", 4},
		{"blank lines", "\n\n\n", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := indexOf(tt.text)
			if got := li.LineCount(); got != tt.lines {
				t.Fatalf("LineCount(%q) = %d, want %d", tt.text, got, tt.lines)
			}
		})
	}
}

func TestLineIndexPositionOf(t *testing.T) {
	text := "let\r\n  var a := 1\nin\rend"
	li := indexOf(text)

	tests := []struct {
		offset uint32
		want   Position
	}{
		{0, Position{1, 0}},
		{2, Position{1, 2}},
		{3, Position{1, 3}}, // '\r'
		{4, Position{1, 4}}, // '\n' of the pair
		{5, Position{2, 0}},
		{9, Position{2, 4}},
		{17, Position{2, 12}},
		{18, Position{3, 0}},
		{21, Position{4, 0}},
		{23, Position{4, 2}},
	}
	for _, tt := range tests {
		if got := li.PositionOf(tt.offset); got != tt.want {
			t.Errorf("PositionOf(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestLineIndexColumnsIncreaseOnOneLine(t *testing.T) {
	text := "first line\nsecond line here\nthird"
	li := indexOf(text)
	start, _ := li.LineStart(2)
	end, _ := li.LineStart(3)
	for o1 := start; o1 < end-1; o1++ {
		for o2 := o1 + 1; o2 < end-1; o2++ {
			p1, p2 := li.PositionOf(o1), li.PositionOf(o2)
			if p1.Line != p2.Line {
				t.Fatalf("offsets %d and %d on different lines: %v %v", o1, o2, p1, p2)
			}
			if p1.Col >= p2.Col {
				t.Fatalf("column order broken: %d -> %v, %d -> %v", o1, p1, o2, p2)
			}
		}
	}
}

func TestLineIndexColumnNearBoundary(t *testing.T) {
	// The column is measured from the containing line, never from the next one.
	li := indexOf("ab\ncd")
	if got := li.PositionOf(2); got != (Position{1, 2}) {
		t.Fatalf("PositionOf(2) = %v, want 1.2", got)
	}
	if got := li.PositionOf(3); got != (Position{2, 0}) {
		t.Fatalf("PositionOf(3) = %v, want 2.0", got)
	}
}

func TestLineIndexReindexIsIdempotent(t *testing.T) {
	text := []byte("a\r\nbb\nccc\rdddd")
	var li LineIndex
	li.Reset()
	li.Index(text)
	first := make([]Position, len(text)+1)
	for i := range first {
		first[i] = li.PositionOf(uint32(i))
	}
	li.Reset()
	li.Index(text)
	for i := range first {
		if got := li.PositionOf(uint32(i)); got != first[i] {
			t.Fatalf("offset %d: %v after reindex, %v before", i, got, first[i])
		}
	}
}

func TestLineIndexReindexDiscardsPreviousText(t *testing.T) {
	var li LineIndex
	li.Index([]byte("a\nb\nc\nd"))
	li.Index([]byte("abcdefg"))
	if got := li.LineCount(); got != 1 {
		t.Fatalf("LineCount after reindex = %d, want 1", got)
	}
	if got := li.PositionOf(6); got != (Position{1, 6}) {
		t.Fatalf("PositionOf(6) = %v, want 1.6", got)
	}
}

func TestLineIndexPanicsWhenNotIndexed(t *testing.T) {
	assertNotIndexedPanic := func(t *testing.T, li *LineIndex) {
		t.Helper()
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, ErrNotIndexed) {
				t.Fatalf("expected ErrNotIndexed panic, got %v", r)
			}
		}()
		li.PositionOf(0)
	}

	var fresh LineIndex
	assertNotIndexedPanic(t, &fresh)

	li := indexOf("x")
	li.Reset()
	if li.Indexed() {
		t.Fatalf("Indexed() = true after Reset")
	}
	assertNotIndexedPanic(t, li)
}

func TestLineIndexCharColumn(t *testing.T) {
	text := []byte("x\n\u00e9t\u00e9 := 1")
	li := indexOf(string(text))
	off := uint32(len("x\n\u00e9t\u00e9 "))
	if got := li.PositionOf(off); got.Col != 6 {
		t.Fatalf("byte column = %d, want 6", got.Col)
	}
	if got := li.CharColumn(text, off); got != 4 {
		t.Fatalf("char column = %d, want 4", got)
	}

	// A decomposed accent composes to one character.
	decomposed := []byte("e\u0301x")
	li2 := indexOf(string(decomposed))
	if got := li2.CharColumn(decomposed, uint32(len("e\u0301"))); got != 1 {
		t.Fatalf("char column of decomposed text = %d, want 1", got)
	}
}
