package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tiger/internal/observ"
	"tiger/internal/project"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in      string
		want    uiMode
		wantErr bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{" ON ", uiModeOn, false},
		{"off", uiModeOff, false},
		{"sometimes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Error("explicit modes must win over terminal detection")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitThenCheck(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := execute(t, "init", "proj")
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if !strings.Contains(out, "Initialized tiger project in proj") {
		t.Errorf("init output = %q", out)
	}
	proj := filepath.Join(dir, "proj")
	cfg, err := project.LoadConfig(filepath.Join(proj, project.ManifestName))
	if err != nil {
		t.Fatalf("generated manifest does not load: %v", err)
	}
	if cfg.Diagnostics.Format != "emit" {
		t.Errorf("format = %q", cfg.Diagnostics.Format)
	}
	if _, err := execute(t, "init", "proj"); err == nil {
		t.Fatal("second init must refuse to overwrite")
	}

	if _, err := execute(t, "--quiet", "check", "--ui", "off", proj); err != nil {
		t.Fatalf("check of fresh project: %v", err)
	}

	if err := os.WriteFile(filepath.Join(proj, "bad.tig"), []byte("1 +"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--quiet", "check", "--ui", "off", proj); !errors.Is(err, errReported) {
		t.Fatalf("check with a broken file: err = %v, want errReported", err)
	}

	expect := filepath.Join(dir, "expect.json")
	if err := os.WriteFile(expect, []byte(`["bad.tig"]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--quiet", "check", "--ui", "off", "--expect", expect, proj); err != nil {
		t.Fatalf("check with matching expectations: %v", err)
	}
	if err := os.WriteFile(expect, []byte(`["main.tig"]`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--quiet", "check", "--ui", "off", "--expect", expect, proj); !errors.Is(err, errReported) {
		t.Fatalf("check with wrong expectations: err = %v, want errReported", err)
	}

	if _, err := execute(t, "--quiet", "check", "--ui", "off", "--expect", "", filepath.Join(proj, "main.tig")); err != nil {
		t.Fatalf("check single file: %v", err)
	}
	if _, err := execute(t, "--quiet", "check", "--ui", "off", filepath.Join(proj, "bad.tig")); !errors.Is(err, errReported) {
		t.Fatalf("check single broken file: err = %v", err)
	}
}

func TestLoadConfigRejectsBadFlagValue(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("a.tig", []byte("1"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, "check", "--ui", "off", "--diagnostics", "fancy", "a.tig")
	if err == nil || !strings.Contains(err.Error(), "[diagnostics].format") {
		t.Fatalf("err = %v", err)
	}
	rootCmd.SetArgs(nil)
	if err := checkCmd.Flags().Set("diagnostics", "emit"); err != nil {
		t.Fatal(err)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := versionInfo{Version: "1.2.3", GitCommit: "abc"}
	if err := renderVersionJSON(&buf, info, versionOptions{showHash: true, showDate: true}); err != nil {
		t.Fatal(err)
	}
	var got versionPayload
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	want := versionPayload{Tool: "tiger", Version: "1.2.3", GitCommit: "abc", BuildDate: "unknown"}
	if got != want {
		t.Errorf("payload = %+v, want %+v", got, want)
	}
}

func TestRenderVersionPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	renderVersionPretty(&buf, versionInfo{Version: "0.1.0-dev"}, versionOptions{showMessage: true}, false)
	want := "tiger 0.1.0-dev\nmessage: unknown\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestPrintTimings(t *testing.T) {
	var buf bytes.Buffer
	printTimings(&buf, "a.tig", observ.Report{
		TotalMS: 1.5,
		Phases: []observ.PhaseReport{
			{Name: "lex", DurationMS: 0.5},
			{Name: "parse", DurationMS: 1, Note: "12 tokens"},
		},
	})
	got := buf.String()
	for _, want := range []string{"a.tig:\n", "lex", "(12 tokens)", "total           1.500 ms"} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%s", want, got)
		}
	}
	buf.Reset()
	printTimings(&buf, "empty", observ.Report{})
	if buf.Len() != 0 {
		t.Errorf("empty report printed %q", buf.String())
	}
}
