package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const maxSeedBytes = 64 << 10

// inlineSeeds cover constructs that the testdata programs do not.
var inlineSeeds = []string{
	"",
	"0",
	"18446744073709551616",
	"nil",
	"()",
	"(a; b; c)",
	"a := b",
	"a.b[c].d := -e",
	"if a then if b then c else d",
	"while a do if b then break",
	"for i := 0 to 10 do (x := x + i)",
	"let type t = {a: int} var r := t{a = 1} in r.a end",
	"let type a = array of int in a[3] of 0 end",
	"let function f(x: int): int = x in f(1) end",
	"a < b < c",
	"a & b | c = d",
	"\"str\\n\\t\\^@\\101\\ \n \\\"",
	"\"unterminated",
	"/* comment */ 1 /* never closed",
	"a @ b # c",
	"x\r\ny\rz\n",
	"\xff\xfe",
	"é := \"ü\"",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tig" {
			return nil
		}
		// #nosec G304 -- path comes from the repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
