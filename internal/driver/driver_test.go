package driver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/trace"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParseSource(t *testing.T) {
	res := ParseSource(context.Background(), "ok.tig", []byte("let var x := 1 in x end"), Options{})
	if !res.OK() || res.Exp == nil {
		t.Fatalf("expected success, got err=%v diags=%d", res.Err, res.Bag.Len())
	}
	if res.Tokens != 8 {
		t.Errorf("tokens = %d, want 8", res.Tokens)
	}
	var names []string
	for _, p := range res.Timing.Phases {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"index", "lex", "parse"}) {
		t.Errorf("phases = %v", names)
	}
}

func TestParseSourceFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
	}{
		{"eof", "a :=", diag.SynUnexpectedEOF},
		{"token", "a + + b", diag.SynUnexpectedToken},
		{"lexical", "a @ b", diag.LexUnknownChar},
		{"comment", "a /* open", diag.LexUnterminatedBlockComment},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseSource(context.Background(), "bad.tig", []byte(tt.input), Options{})
			if res.OK() {
				t.Fatal("expected failure")
			}
			if items := res.Bag.Items(); len(items) == 0 || items[0].Code != tt.code {
				t.Fatalf("first diagnostic = %v, want %v", items, tt.code)
			}
			if res.Exp != nil || res.Err == nil {
				t.Fatalf("lexical errors must reach the parser: exp=%v err=%v", res.Exp, res.Err)
			}
		})
	}
}

func TestParseSourceIntOverflow(t *testing.T) {
	res := ParseSource(context.Background(), "big.tig", []byte("99999999999999999999999"), Options{})
	if res.OK() || !errors.Is(res.LexErr, lexer.ErrIntOverflow) {
		t.Fatalf("LexErr = %v, want ErrIntOverflow", res.LexErr)
	}
}

func TestStreamReporterSeesDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	rep := diag.NewStreamReporter(&buf)
	ParseSource(context.Background(), "t.tig", []byte("a\n  @"), Options{Reporter: rep})
	if !strings.HasPrefix(buf.String(), "2.2:wrong token: @\n") {
		t.Fatalf("stream output = %q", buf.String())
	}
}

func TestCharColumns(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Reporter: diag.NewStreamReporter(&buf), CharColumns: true}
	ParseSource(context.Background(), "t.tig", []byte(`"héllo" @`), opts)
	if !strings.HasPrefix(buf.String(), "1.8:") {
		t.Fatalf("stream output = %q, want column 8", buf.String())
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(context.Background(), filepath.Join(t.TempDir(), "nope.tig"), Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestTokenize(t *testing.T) {
	dir := writeFiles(t, map[string]string{"t.tig": "x := 1 /* c */ + 2"})
	res, err := Tokenize(context.Background(), filepath.Join(dir, "t.tig"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 5 || res.Bag.Len() != 0 || res.Err != nil {
		t.Fatalf("tokens=%d diags=%d err=%v", len(res.Tokens), res.Bag.Len(), res.Err)
	}
}

func TestListSources(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.tig":        "1",
		"a.tig":        "1",
		"sub/c.tig":    "1",
		"sub/skip.tig": "1",
		"notes.txt":    "x",
	})
	got, err := ListSources(dir, []string{"skip.tig"})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a.tig", "b.tig", "sub/c.tig"}; !slices.Equal(got, want) {
		t.Fatalf("ListSources = %v, want %v", got, want)
	}
	if _, err := ListSources(dir, []string{"["}); err == nil {
		t.Fatal("malformed pattern accepted")
	}
}

func TestParseDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.tig":     "let var x := 1 in x end",
		"b.tig":     "if a then",
		"sub/c.tig": "f(1, \"two\")",
	})

	var mu sync.Mutex
	var events []Event
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})

	ring := trace.NewRingTracer(256, trace.LevelUnit)
	ctx := trace.WithTracer(context.Background(), ring)
	fs, results, err := ParseDir(ctx, dir, Options{Jobs: 2, Sink: sink})
	if err != nil {
		t.Fatal(err)
	}
	if fs.Len() != 3 || len(results) != 3 {
		t.Fatalf("files=%d results=%d", fs.Len(), len(results))
	}
	var paths []string
	for _, r := range results {
		paths = append(paths, r.Path)
	}
	if want := []string{"a.tig", "b.tig", "sub/c.tig"}; !slices.Equal(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	if !results[0].OK() || results[1].OK() || !results[2].OK() {
		t.Fatalf("verdicts: %v %v %v", results[0].OK(), results[1].OK(), results[2].OK())
	}

	final := map[string]Status{}
	for _, ev := range events {
		if ev.File != "" && ev.Stage == StageParse && ev.Status != StatusWorking {
			final[ev.File] = ev.Status
		}
	}
	if final["a.tig"] != StatusDone || final["b.tig"] != StatusError {
		t.Fatalf("final statuses = %v", final)
	}
	if last := events[len(events)-1]; last.File != "" || last.Status != StatusDone {
		t.Fatalf("last event = %+v", last)
	}

	units := 0
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin && strings.HasPrefix(ev.Name, "unit:") {
			units++
		}
	}
	if units != 3 {
		t.Fatalf("traced %d units, want 3", units)
	}
}

func TestParseDirEmptyAndCancelled(t *testing.T) {
	_, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || results != nil {
		t.Fatalf("empty dir: results=%v err=%v", results, err)
	}

	dir := writeFiles(t, map[string]string{"a.tig": "1", "b.tig": "2"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := ParseDir(ctx, dir, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDiskCacheReplaysOutcome(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"good.tig": "1 + 2",
		"bad.tig":  "1 +",
		"open.tig": "1 /* x",
	})
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	_, first, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].Cached || !second[i].Cached {
			t.Fatalf("%s: cached flags %v -> %v", first[i].Path, first[i].Cached, second[i].Cached)
		}
		if first[i].OK() != second[i].OK() {
			t.Fatalf("%s: verdict changed", first[i].Path)
		}
		a, b := first[i].Bag.Items(), second[i].Bag.Items()
		if len(a) != len(b) {
			t.Fatalf("%s: %d vs %d diagnostics", first[i].Path, len(a), len(b))
		}
		for j := range a {
			if a[j].Code != b[j].Code || a[j].Pos != b[j].Pos || a[j].Message != b[j].Message {
				t.Fatalf("%s: diagnostic %d differs: %+v vs %+v", first[i].Path, j, a[j], b[j])
			}
			sameNote := func(x, y diag.Note) bool { return x.Pos == y.Pos && x.Msg == y.Msg }
			if !slices.EqualFunc(a[j].Notes, b[j].Notes, sameNote) {
				t.Fatalf("%s: notes differ: %+v vs %+v", first[i].Path, a[j].Notes, b[j].Notes)
			}
		}
	}
	if open := second[2].Bag.Items(); second[2].Path != "open.tig" || len(open) == 0 || len(open[0].Notes) != 1 {
		t.Fatalf("cached comment diagnostic lost its note: %s %+v", second[2].Path, open)
	}

	// Other options must not hit entries written under different settings.
	_, third, err := ParseDir(context.Background(), dir, Options{Cache: cache, CharColumns: true})
	if err != nil {
		t.Fatal(err)
	}
	if third[0].Cached {
		t.Fatal("cache ignored CharColumns")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	_, fourth, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth[0].Cached {
		t.Fatal("entry survived DropAll")
	}
}

func TestExpectations(t *testing.T) {
	results := []*ParseResult{
		ParseSource(context.Background(), "ok.tig", []byte("1"), Options{}),
		ParseSource(context.Background(), "bad.tig", []byte("1 +"), Options{}),
		ParseSource(context.Background(), "surprise.tig", []byte("("), Options{}),
	}
	expect := filepath.Join(t.TempDir(), "expect.json")
	if err := os.WriteFile(expect, []byte(`["bad.tig", "ok.tig", "gone.tig"]`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := CheckExpectations(results, expect)
	if err != nil {
		t.Fatal(err)
	}
	want := []Mismatch{
		{Path: "gone.tig", WantFail: true, Missing: true},
		{Path: "ok.tig", WantFail: true},
		{Path: "surprise.tig", WantFail: false},
	}
	if !slices.Equal(got, want) {
		t.Fatalf("mismatches = %+v, want %+v", got, want)
	}
	if s := got[2].String(); s != "surprise.tig: expected to parse, failed" {
		t.Errorf("String() = %q", s)
	}

	if err := os.WriteFile(expect, []byte(`{"a": 1}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := CheckExpectations(results, expect); err == nil {
		t.Fatal("malformed expectation file accepted")
	}
}

func TestParseDirUnitReporterStreams(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.tig":       "1",
		"bad.tig":      "a\n  @",
		"sub/open.tig": "/* x",
	})
	var buf bytes.Buffer
	stream := diag.NewStreamReporter(&buf)
	opts := Options{
		Jobs:         1,
		UnitReporter: func(rel string) diag.Reporter { return stream.Prefixed(rel) },
	}
	_, results, err := ParseDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("results = %d", len(results))
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, want := range []string{
		"bad.tig:2.2:wrong token: @",
		"sub/open.tig:1.0:unterminated comment",
	} {
		if !slices.Contains(lines, want) {
			t.Errorf("missing line %q in:\n%s", want, buf.String())
		}
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "bad.tig:") && !strings.HasPrefix(line, "sub/open.tig:") {
			t.Errorf("line %q lacks a unit prefix", line)
		}
	}
	if err := stream.Err(); err != nil {
		t.Fatal(err)
	}
}
