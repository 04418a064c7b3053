package driver

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
)

// Mismatch is a unit whose outcome disagrees with the expectation list.
type Mismatch struct {
	Path     string
	WantFail bool
	// Missing is set for listed files that were not among the results.
	Missing bool
}

func (m Mismatch) String() string {
	switch {
	case m.Missing:
		return fmt.Sprintf("%s: listed as failing but not found", m.Path)
	case m.WantFail:
		return fmt.Sprintf("%s: expected a parse error, parsed cleanly", m.Path)
	default:
		return fmt.Sprintf("%s: expected to parse, failed", m.Path)
	}
}

// LoadExpectations reads a JSON array of paths, relative to the parsed
// directory, that must fail to parse.
func LoadExpectations(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user
	if err != nil {
		return nil, fmt.Errorf("read expectations: %w", err)
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON array of file names: %w", path, err)
	}
	return names, nil
}

// CheckExpectations compares results against the expectation file: listed
// files must fail, every other file must parse.
func CheckExpectations(results []*ParseResult, expectFile string) ([]Mismatch, error) {
	names, err := LoadExpectations(expectFile)
	if err != nil {
		return nil, err
	}
	return MatchExpectations(results, names), nil
}

// MatchExpectations is CheckExpectations with the list already loaded.
// Mismatches are sorted by path.
func MatchExpectations(results []*ParseResult, mustFail []string) []Mismatch {
	want := make(map[string]bool, len(mustFail))
	for _, n := range mustFail {
		want[n] = true
	}
	seen := make(map[string]bool, len(results))
	var out []Mismatch
	for _, r := range results {
		seen[r.Path] = true
		if failed := !r.OK(); failed != want[r.Path] {
			out = append(out, Mismatch{Path: r.Path, WantFail: want[r.Path]})
		}
	}
	for n := range want {
		if !seen[n] {
			out = append(out, Mismatch{Path: n, WantFail: true, Missing: true})
		}
	}
	slices.SortFunc(out, func(a, b Mismatch) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		}
		return 0
	})
	return out
}
