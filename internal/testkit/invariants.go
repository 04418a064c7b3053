// Package testkit holds structural checks shared by parser and driver tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tiger/internal/ast"
	"tiger/internal/source"
)

// CheckPositionInvariants walks the tree rooted at root and verifies that:
//  1. every node carries a valid position;
//  2. no child starts before its parent;
//  3. siblings appear in source order;
//  4. when file is non-nil, every position lies inside the file, with the
//     column bounded by the byte length of its line.
func CheckPositionInvariants(root ast.Node, file *source.File) error {
	if root == nil {
		return fmt.Errorf("nil tree")
	}
	return checkNode(root, file)
}

func checkNode(n ast.Node, file *source.File) error {
	pos := n.Pos()
	if !pos.IsValid() {
		return fmt.Errorf("%s has invalid position %s", ast.KindName(n), pos)
	}
	if file != nil {
		if err := checkInFile(n, pos, file); err != nil {
			return err
		}
	}
	var prev ast.Node
	for _, c := range ast.Children(n) {
		cp := c.Pos()
		if cp.Before(pos) {
			return fmt.Errorf("%s at %s starts before its parent %s at %s",
				ast.KindName(c), cp, ast.KindName(n), pos)
		}
		if prev != nil && cp.Before(prev.Pos()) {
			return fmt.Errorf("%s at %s precedes its earlier sibling %s at %s",
				ast.KindName(c), cp, ast.KindName(prev), prev.Pos())
		}
		if err := checkNode(c, file); err != nil {
			return err
		}
		prev = c
	}
	return nil
}

func checkInFile(n ast.Node, pos source.Position, file *source.File) error {
	lines, err := safecast.Conv[uint32](file.Lines.LineCount())
	if err != nil {
		return fmt.Errorf("line count overflow: %w", err)
	}
	if pos.Line > lines {
		return fmt.Errorf("%s at %s is past the last line %d", ast.KindName(n), pos, lines)
	}
	width, err := safecast.Conv[uint32](len(file.GetLine(pos.Line)))
	if err != nil {
		return fmt.Errorf("line length overflow: %w", err)
	}
	if pos.Col > width {
		return fmt.Errorf("%s at %s is past the end of line %d (%d bytes)", ast.KindName(n), pos, pos.Line, width)
	}
	return nil
}
