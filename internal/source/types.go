package source

import "fmt"

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	// FileHasCRLF marks content containing "\r\n" terminators. The bytes are
	// kept as-is so offsets stay exact; the line index folds each pair.
	FileHasCRLF
)

// File captures metadata and content for a single compilation unit.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Lines   LineIndex
	Hash    [32]byte
	Flags   FileFlags
}

// Position is a human-readable location: 1-based line, 0-based byte column.
type Position struct {
	Line uint32
	Col  uint32
}

// IsValid reports whether the position was produced by an index lookup.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Before orders positions by line, then column.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// String renders the position the way diagnostics print it: "line.col".
func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Line, p.Col)
}
