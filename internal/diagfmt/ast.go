package diagfmt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"tiger/internal/ast"
)

// ASTNodeOutput is the serializable form of a syntax tree node. Role names
// the slot the node fills in its parent ("cond", "then", "arg"...).
type ASTNodeOutput struct {
	Type     string            `json:"type" yaml:"type" msgpack:"type"`
	Role     string            `json:"role,omitempty" yaml:"role,omitempty" msgpack:"role,omitempty"`
	Pos      string            `json:"pos,omitempty" yaml:"pos,omitempty" msgpack:"pos,omitempty"`
	Text     string            `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Fields   map[string]string `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Children []ASTNodeOutput   `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
}

type astBuilder struct {
	positions bool
}

// BuildASTNode converts a tree into its serializable form. Positions are
// included when withPositions is set.
func BuildASTNode(n ast.Node, withPositions bool) ASTNodeOutput {
	b := astBuilder{positions: withPositions}
	return b.node("", n)
}

func (b astBuilder) node(role string, n ast.Node) ASTNodeOutput {
	out := ASTNodeOutput{Type: ast.KindName(n), Role: role}
	if b.positions {
		out.Pos = n.Pos().String()
	}
	add := func(role string, c ast.Node) {
		out.Children = append(out.Children, b.node(role, c))
	}
	field := func(k, v string) {
		if out.Fields == nil {
			out.Fields = make(map[string]string)
		}
		out.Fields[k] = v
	}

	switch n := n.(type) {
	case *ast.TypeDec:
		out.Text = n.Name.Name
		add("type", n.Ty)
	case *ast.VarDec:
		out.Text = n.Name.Name
		if n.Type != nil {
			field("type", n.Type.Name)
		}
		add("init", n.Init)
	case *ast.FunDec:
		out.Text = n.Name.Name
		if n.Result != nil {
			field("result", n.Result.Name)
		}
		for _, p := range n.Params {
			out.Children = append(out.Children, b.fieldNode("param", p))
		}
		add("body", n.Body)
	case *ast.NameTy:
		out.Text = n.Name.Name
	case *ast.RecordTy:
		for _, f := range n.Fields {
			out.Children = append(out.Children, b.fieldNode("field", f))
		}
	case *ast.ArrayTy:
		field("elem", n.Elem.Name)

	case *ast.IfThenElse:
		add("cond", n.Cond)
		add("then", n.Then)
		add("else", n.Else)
	case *ast.IfThenElseOpen:
		add("cond", n.Cond)
		add("then", n.Then)
		add("else", n.Else)
	case *ast.IfThen:
		add("cond", n.Cond)
		add("then", n.Then)
	case *ast.While:
		add("cond", n.Cond)
		add("body", n.Body)
	case *ast.WhileOpen:
		add("cond", n.Cond)
		add("body", n.Body)
	case *ast.For:
		field("var", n.Var.Name)
		add("lo", n.Lo)
		add("hi", n.Hi)
		add("body", n.Body)
	case *ast.ForOpen:
		field("var", n.Var.Name)
		add("lo", n.Lo)
		add("hi", n.Hi)
		add("body", n.Body)
	case *ast.Assign:
		add("target", n.Target)
		add("value", n.Value)
	case *ast.Break:

	case *ast.ArrayExp:
		field("type", n.Type.Name)
		add("len", n.Len)
		add("init", n.Init)
	case *ast.RecordExp:
		field("type", n.Type.Name)
		for _, f := range n.Fields {
			add(f.Name.Name, f.Value)
		}
	case *ast.OrExp:
		out.Text = "|"
		add("lhs", n.X)
		add("rhs", n.Y)
	case *ast.AndExp:
		out.Text = "&"
		add("lhs", n.X)
		add("rhs", n.Y)
	case *ast.CompareExp:
		out.Text = n.Op.Spelling()
		add("lhs", n.X)
		add("rhs", n.Y)
	case *ast.AddExp:
		out.Text = n.Op.Spelling()
		add("lhs", n.X)
		add("rhs", n.Y)
	case *ast.MulExp:
		out.Text = n.Op.Spelling()
		add("lhs", n.X)
		add("rhs", n.Y)
	case *ast.NegExp:
		out.Text = "-"
		add("operand", n.X)

	case *ast.IntLit:
		out.Text = strconv.FormatUint(n.Value, 10)
	case *ast.StringLit:
		out.Text = n.Value
	case *ast.NilLit:
	case *ast.IdentExp:
		out.Text = n.Name.Name
	case *ast.RefExp:
		add("ref", n.Ref)
	case *ast.SeqExp:
		for _, e := range n.Exps {
			add("exp", e)
		}
	case *ast.CallExp:
		out.Text = n.Func.Name
		for _, a := range n.Args {
			add("arg", a)
		}
	case *ast.LetExp:
		for _, d := range n.Decs {
			add("dec", d)
		}
		for _, e := range n.Body {
			add("body", e)
		}

	case *ast.IdentLV:
		out.Text = n.Name.Name
	case *ast.FieldRef:
		out.Text = n.Field.Name
		field("root", n.Root.Name)
	case *ast.ChainFieldRef:
		out.Text = n.Field.Name
		add("base", n.Base)
	case *ast.IndexRef:
		field("root", n.Root.Name)
		add("index", n.Index)
	case *ast.ChainIndexRef:
		add("base", n.Base)
		add("index", n.Index)
	default:
		panic(fmt.Sprintf("diagfmt: unexpected node %T", n))
	}
	return out
}

func (b astBuilder) fieldNode(role string, f ast.Field) ASTNodeOutput {
	out := ASTNodeOutput{
		Type:   "Field",
		Role:   role,
		Text:   f.Name.Name,
		Fields: map[string]string{"type": f.Type.Name},
	}
	if b.positions {
		out.Pos = f.Name.Pos.String()
	}
	return out
}

// FormatASTJSON writes the tree as indented JSON.
func FormatASTJSON(w io.Writer, n ast.Node, opts ASTOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildASTNode(n, opts.WithPositions))
}

// FormatASTYAML writes the tree as a YAML document.
func FormatASTYAML(w io.Writer, n ast.Node, opts ASTOpts) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(BuildASTNode(n, opts.WithPositions)); err != nil {
		return err
	}
	return enc.Close()
}

// FormatASTMsgpack writes the tree in MessagePack encoding. Map keys are
// sorted so equal trees encode to equal bytes.
func FormatASTMsgpack(w io.Writer, n ast.Node, opts ASTOpts) error {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(BuildASTNode(n, opts.WithPositions)); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
