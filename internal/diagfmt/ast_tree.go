package diagfmt

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tiger/internal/ast"
)

type treeNode struct {
	label    string
	children []*treeNode
}

type treeBlock struct {
	lines []string
	width int
	root  int
}

func textWidth(s string) int {
	return runewidth.StringWidth(s)
}

// nodeLabel renders the one-line summary of an output node:
// "role: Type text [k=v ...] @line.col".
func nodeLabel(n ASTNodeOutput) string {
	var sb strings.Builder
	if n.Role != "" {
		sb.WriteString(n.Role)
		sb.WriteString(": ")
	}
	sb.WriteString(n.Type)
	if n.Text != "" {
		sb.WriteByte(' ')
		if n.Type == "StringLit" {
			sb.WriteString(strconv.Quote(n.Text))
		} else {
			sb.WriteString(n.Text)
		}
	}
	if len(n.Fields) > 0 {
		keys := make([]string, 0, len(n.Fields))
		for k := range n.Fields {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		sb.WriteString(" [")
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%s=%s", k, n.Fields[k])
		}
		sb.WriteByte(']')
	}
	if n.Pos != "" {
		sb.WriteString(" @")
		sb.WriteString(n.Pos)
	}
	return sb.String()
}

func buildTreeNode(n ASTNodeOutput) *treeNode {
	t := &treeNode{label: nodeLabel(n)}
	for _, c := range n.Children {
		t.children = append(t.children, buildTreeNode(c))
	}
	return t
}

// FormatASTTree draws the tree top-down with the root centred over its
// children.
func FormatASTTree(w io.Writer, n ast.Node, opts ASTOpts) error {
	block := renderTree(buildTreeNode(BuildASTNode(n, opts.WithPositions)))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// FormatASTSexpr prints the tree on one line as nested lists:
// (AddExp + (IdentExp a) (IntLit 1)).
func FormatASTSexpr(w io.Writer, n ast.Node, opts ASTOpts) error {
	var sb strings.Builder
	writeSexpr(&sb, BuildASTNode(n, opts.WithPositions))
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSexpr(sb *strings.Builder, n ASTNodeOutput) {
	sb.WriteByte('(')
	sb.WriteString(nodeLabel(ASTNodeOutput{Type: n.Type, Text: n.Text, Fields: n.Fields, Pos: n.Pos}))
	for _, c := range n.Children {
		sb.WriteByte(' ')
		writeSexpr(sb, c)
	}
	sb.WriteByte(')')
}

// FormatASTPretty prints the tree as an indented outline. With opts.Color
// node types are highlighted when w is a terminal.
func FormatASTPretty(w io.Writer, n ast.Node, opts ASTOpts) error {
	r := lipgloss.NewRenderer(w)
	typeStyle := r.NewStyle()
	roleStyle := r.NewStyle()
	if opts.Color {
		typeStyle = typeStyle.Bold(true).Foreground(lipgloss.Color("12"))
		roleStyle = roleStyle.Faint(true)
	}
	style := func(n ASTNodeOutput) string {
		label := nodeLabel(ASTNodeOutput{Type: n.Type, Text: n.Text, Fields: n.Fields, Pos: n.Pos})
		label = typeStyle.Render(n.Type) + strings.TrimPrefix(label, n.Type)
		if n.Role != "" {
			label = roleStyle.Render(n.Role+":") + " " + label
		}
		return label
	}

	var sb strings.Builder
	var walk func(n ASTNodeOutput, prefix string, last, root bool)
	walk = func(n ASTNodeOutput, prefix string, last, root bool) {
		childPrefix := prefix
		switch {
		case root:
			sb.WriteString(style(n))
		case last:
			sb.WriteString(prefix + "└─ " + style(n))
			childPrefix += "   "
		default:
			sb.WriteString(prefix + "├─ " + style(n))
			childPrefix += "│  "
		}
		sb.WriteByte('\n')
		for i, c := range n.Children {
			walk(c, childPrefix, i == len(n.Children)-1, false)
		}
	}
	walk(BuildASTNode(n, opts.WithPositions), "", true, true)
	_, err := io.WriteString(w, sb.String())
	return err
}

// renderTree converts a treeNode into a treeBlock containing an ASCII-art representation.
//
// The returned treeBlock.lines is a slice of strings representing the rendered lines of
// the node and its descendants arranged as a tree with connector characters. The block's
// width is the horizontal extent of the rendered lines and root is the column index of
// the root node's vertical connector within those lines.
func renderTree(node *treeNode) treeBlock {
	label := node.label
	labelWidth := textWidth(label)

	if len(node.children) == 0 {
		return treeBlock{
			lines: []string{label},
			width: labelWidth,
			root:  labelWidth / 2,
		}
	}

	childBlocks := make([]treeBlock, len(node.children))
	maxChildHeight := 0
	for i, child := range node.children {
		childBlocks[i] = renderTree(child)
		if len(childBlocks[i].lines) > maxChildHeight {
			maxChildHeight = len(childBlocks[i].lines)
		}
	}

	const spacing = 3

	positions := make([]int, len(childBlocks))
	totalWidth := 0
	for i, block := range childBlocks {
		positions[i] = totalWidth + block.root
		totalWidth += block.width
		if i != len(childBlocks)-1 {
			totalWidth += spacing
		}
	}

	childrenCenter := (positions[0] + positions[len(positions)-1]) / 2
	rootPos := labelWidth / 2
	shift := childrenCenter - rootPos

	childPrefix := 0
	if shift < 0 {
		childPrefix = -shift
		for i := range positions {
			positions[i] += childPrefix
		}
		totalWidth += childPrefix
		shift = 0
		rootPos = labelWidth / 2
	} else {
		rootPos += shift
	}

	width := totalWidth
	rootLine := label
	if shift > 0 {
		rootLine = strings.Repeat(" ", shift) + label
	}
	if textWidth(rootLine) < width {
		rootLine += strings.Repeat(" ", width-textWidth(rootLine))
	} else if textWidth(rootLine) > width {
		width = textWidth(rootLine)
		for i := range positions {
			if positions[i] >= width {
				width = positions[i] + 1
			}
		}
		if textWidth(rootLine) < width {
			rootLine += strings.Repeat(" ", width-textWidth(rootLine))
		}
	}

	connector := make([]byte, width)
	for i := range connector {
		connector[i] = ' '
	}
	if rootPos >= width {
		needed := rootPos - width + 1
		rootLine += strings.Repeat(" ", needed)
		connector = append(connector, make([]byte, needed)...)
		for i := width; i < len(connector); i++ {
			connector[i] = ' '
		}
		width = len(connector)
	}
	connector[rootPos] = '|'
	for _, pos := range positions {
		switch {
		case pos < rootPos:
			connector[pos] = '/'
		case pos > rootPos:
			connector[pos] = '\\'
		default:
			connector[pos] = '|'
		}
	}
	connectorLine := string(connector)

	childLines := make([]string, maxChildHeight)
	for row := range maxChildHeight {
		var sb strings.Builder
		if childPrefix > 0 {
			sb.WriteString(strings.Repeat(" ", childPrefix))
		}
		for i, block := range childBlocks {
			line := ""
			if row < len(block.lines) {
				line = block.lines[row]
			}
			if lw := textWidth(line); lw < block.width {
				line += strings.Repeat(" ", block.width-lw)
			}
			sb.WriteString(line)
			if i != len(childBlocks)-1 {
				sb.WriteString(strings.Repeat(" ", spacing))
			}
		}
		rowStr := sb.String()
		if rw := textWidth(rowStr); rw < width {
			rowStr += strings.Repeat(" ", width-rw)
		}
		childLines[row] = rowStr
	}

	lines := make([]string, 0, 2+len(childLines))
	lines = append(lines, rootLine, connectorLine)
	lines = append(lines, childLines...)

	return treeBlock{
		lines: lines,
		width: width,
		root:  rootPos,
	}
}
