package source

import (
	"errors"
	"fmt"
	"slices"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// ErrNotIndexed is the panic value raised when a position is requested from
// an index that was never built or has been reset.
var ErrNotIndexed = errors.New("source: position requested before line index was built")

// LineIndex maps byte offsets of one compilation unit to line/column pairs.
// It holds the offset at which every line starts; offset 0 is always the
// start of line 1 and the slice is strictly increasing.
//
// A LineIndex belongs to exactly one unit. Index discards any previous
// contents, so one value must not be shared by units compiled concurrently.
type LineIndex struct {
	starts  []uint32
	indexed bool
}

// Reset discards the index. PositionOf panics until Index is called again.
func (li *LineIndex) Reset() {
	li.starts = li.starts[:0]
	li.indexed = false
}

// Index scans text once and records the start of every line.
// "\r\n" is a single terminator; a lone "\n" or "\r" (trailing included)
// terminates a line on its own.
func (li *LineIndex) Index(text []byte) {
	li.Reset()
	if _, err := safecast.Conv[uint32](len(text)); err != nil {
		panic(fmt.Errorf("source text too large to index: %w", err))
	}
	li.starts = append(li.starts, 0)
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			li.starts = append(li.starts, uint32(i+1)) // #nosec G115 -- bounded by the check above
		case '\n':
			li.starts = append(li.starts, uint32(i+1)) // #nosec G115 -- bounded by the check above
		}
	}
	li.indexed = true
}

// Indexed reports whether the index currently describes a text.
func (li *LineIndex) Indexed() bool {
	return li.indexed
}

// LineCount returns the number of indexed lines (0 when not indexed).
func (li *LineIndex) LineCount() int {
	if !li.indexed {
		return 0
	}
	return len(li.starts)
}

// LineStart returns the byte offset where the 1-based line begins.
func (li *LineIndex) LineStart(line uint32) (uint32, bool) {
	if !li.indexed || line == 0 || int(line) > len(li.starts) {
		return 0, false
	}
	return li.starts[line-1], true
}

// PositionOf locates the greatest line start <= offset.
// Line is the 1-based rank of that start, Col is offset minus the start.
func (li *LineIndex) PositionOf(offset uint32) Position {
	if !li.indexed {
		panic(ErrNotIndexed)
	}
	i, found := slices.BinarySearch(li.starts, offset)
	if !found {
		i--
	}
	line, err := safecast.Conv[uint32](i + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return Position{Line: line, Col: offset - li.starts[i]}
}

// CharColumn returns the 0-based column of offset counted in code points
// of the NFC-normalized line prefix instead of bytes. text must be the text
// the index was built from.
func (li *LineIndex) CharColumn(text []byte, offset uint32) uint32 {
	pos := li.PositionOf(offset)
	start := li.starts[pos.Line-1]
	end := min(int(offset), len(text))
	if int(start) >= end {
		return 0
	}
	prefix := norm.NFC.Bytes(text[start:end])
	col, err := safecast.Conv[uint32](utf8.RuneCount(prefix))
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return col
}
