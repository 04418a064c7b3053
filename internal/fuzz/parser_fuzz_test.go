package fuzztests

import (
	"testing"
	"time"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/parser"
	"tiger/internal/source"
	"tiger/internal/testkit"
)

// parseTimeout bounds one parse; exceeding it indicates a loop.
const parseTimeout = 5 * time.Second

type parseOutcome struct {
	exp  ast.Exp
	perr *parser.ParseError
	file *source.File
	bag  *diag.Bag
}

func parseInput(input []byte) parseOutcome {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.tig", input))
	bag := diag.NewBag(128)
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	exp, perr := parser.Parse(lx, parser.Options{Reporter: rep})
	return parseOutcome{exp: exp, perr: perr, file: file, bag: bag}
}

func FuzzParserInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		out := parseInput(clampInput(input))
		switch {
		case out.perr == nil && out.exp == nil:
			t.Fatal("parser returned neither a tree nor an error")
		case out.perr != nil && out.exp != nil:
			t.Fatal("parser returned both a tree and an error")
		case out.perr != nil:
			if !out.bag.HasErrors() {
				t.Fatalf("parse error %v was not reported", out.perr)
			}
		default:
			if err := testkit.CheckPositionInvariants(out.exp, out.file); err != nil {
				t.Fatalf("%v\ninput: %q", err, truncateForLog(input, 200))
			}
		}
	})
}

// FuzzParserNoHang fails when a single parse does not finish in time.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("((((((((((((((((((((a))))))))))))))))))))"))
	f.Add([]byte("if if if a then b then c then d"))
	f.Add([]byte("let let let in end in end in end"))
	f.Add([]byte("a[a[a[a[a[1]]]]] of a[2] of 3"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		done := make(chan struct{})
		go func() {
			defer close(done)
			parseInput(input)
		}()
		select {
		case <-done:
		case <-time.After(parseTimeout):
			t.Fatalf("parser hang: no result after %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], "..."...)
}
