package diagfmt

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"tiger/internal/ast"
	"tiger/internal/lexer"
	"tiger/internal/parser"
	"tiger/internal/source"
)

func mustParse(t *testing.T, input string) ast.Exp {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.tig", []byte(input)))
	exp, perr := parser.Parse(lexer.New(file, lexer.Options{}), parser.Options{})
	if perr != nil {
		t.Fatalf("parse %q: %v", input, perr)
	}
	return exp
}

func TestBuildASTNode(t *testing.T) {
	got := BuildASTNode(mustParse(t, `f(1, "s") + x.y`), true)
	want := ASTNodeOutput{
		Type: "AddExp", Pos: "1.0", Text: "+",
		Children: []ASTNodeOutput{
			{Type: "CallExp", Role: "lhs", Pos: "1.0", Text: "f", Children: []ASTNodeOutput{
				{Type: "IntLit", Role: "arg", Pos: "1.2", Text: "1"},
				{Type: "StringLit", Role: "arg", Pos: "1.5", Text: "s"},
			}},
			{Type: "RefExp", Role: "rhs", Pos: "1.12", Children: []ASTNodeOutput{
				{Type: "FieldRef", Role: "ref", Pos: "1.12", Text: "y", Fields: map[string]string{"root": "x"}},
			}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildASTNode mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestBuildASTNodeDeclarations(t *testing.T) {
	src := `let
  type rec = {a : int, b : string}
  type arr = array of int
  var v : rec := rec{a = 1, b = "x"}
  function f(n : int) : int = n * 2
in
  for i := 0 to 3 do v.a := arr[2] of 0; break
end`
	got := BuildASTNode(mustParse(t, src), false)
	if got.Type != "LetExp" {
		t.Fatalf("root = %s", got.Type)
	}
	var roles []string
	for _, c := range got.Children {
		roles = append(roles, c.Role+":"+c.Type)
	}
	wantRoles := []string{"dec:TypeDec", "dec:TypeDec", "dec:VarDec", "dec:FunDec", "body:For", "body:Break"}
	if !reflect.DeepEqual(roles, wantRoles) {
		t.Fatalf("roles = %v, want %v", roles, wantRoles)
	}
	rec := got.Children[0].Children[0]
	if rec.Type != "RecordTy" || len(rec.Children) != 2 || rec.Children[1].Fields["type"] != "string" {
		t.Fatalf("unexpected record type %+v", rec)
	}
	fn := got.Children[3]
	if fn.Fields["result"] != "int" || fn.Children[0].Type != "Field" || fn.Children[0].Role != "param" {
		t.Fatalf("unexpected function %+v", fn)
	}
	loop := got.Children[4]
	if loop.Fields["var"] != "i" || loop.Children[2].Type != "Assign" {
		t.Fatalf("unexpected loop %+v", loop)
	}
	if loop.Children[2].Children[1].Type != "ArrayExp" {
		t.Fatalf("assignment value = %s, want ArrayExp", loop.Children[2].Children[1].Type)
	}
}

func TestFormatASTJSONRoundTrip(t *testing.T) {
	exp := mustParse(t, `if a < b then c else d`)
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, exp, ASTOpts{WithPositions: true}); err != nil {
		t.Fatal(err)
	}
	var got ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if want := BuildASTNode(exp, true); !reflect.DeepEqual(got, want) {
		t.Fatalf("JSON round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestFormatASTYAML(t *testing.T) {
	exp := mustParse(t, `a := -1`)
	var buf bytes.Buffer
	if err := FormatASTYAML(&buf, exp, ASTOpts{}); err != nil {
		t.Fatal(err)
	}
	var got ASTNodeOutput
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if got.Type != "Assign" || len(got.Children) != 2 || got.Children[1].Type != "NegExp" {
		t.Fatalf("unexpected YAML tree %+v", got)
	}
	if strings.Contains(buf.String(), "pos:") {
		t.Fatalf("positions were not requested:\n%s", buf.String())
	}
}

func TestFormatASTMsgpackIsDeterministic(t *testing.T) {
	exp := mustParse(t, `let var r := p{x = 1, y = 2} in r end`)
	var a, b bytes.Buffer
	if err := FormatASTMsgpack(&a, exp, ASTOpts{WithPositions: true}); err != nil {
		t.Fatal(err)
	}
	if err := FormatASTMsgpack(&b, exp, ASTOpts{WithPositions: true}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("equal trees encoded differently")
	}
	var got ASTNodeOutput
	if err := msgpack.Unmarshal(a.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if want := BuildASTNode(exp, true); !reflect.DeepEqual(got, want) {
		t.Fatalf("msgpack round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestFormatASTPretty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, mustParse(t, `f(1, "s") + x.y`), ASTOpts{}); err != nil {
		t.Fatal(err)
	}
	want := `AddExp +
├─ lhs: CallExp f
│  ├─ arg: IntLit 1
│  └─ arg: StringLit "s"
└─ rhs: RefExp
   └─ ref: FieldRef y [root=x]
`
	if got := buf.String(); got != want {
		t.Fatalf("unexpected outline:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatASTTree(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTTree(&buf, mustParse(t, `a + b`), ASTOpts{}); err != nil {
		t.Fatal(err)
	}
	want := strings.Repeat(" ", 12) + "AddExp +\n" +
		strings.Repeat(" ", 7) + "/" + strings.Repeat(" ", 8) + "|" + strings.Repeat(" ", 8) + "\\\n" +
		"lhs: IdentExp a   rhs: IdentExp b\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected tree:\nwant:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatASTSexpr(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatASTSexpr(&buf, mustParse(t, `a := b[1] of "x"`), ASTOpts{}); err != nil {
		t.Fatal(err)
	}
	want := `(Assign (IdentLV a) (ArrayExp [type=b] (IntLit 1) (StringLit "x")))` + "\n"
	if got := buf.String(); got != want {
		t.Fatalf("sexpr = %q, want %q", got, want)
	}
}
