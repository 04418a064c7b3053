package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project file looked up from the working directory.
const ManifestName = "tiger.toml"

// Config mirrors tiger.toml. Zero values mean "not set"; Default fills them.
type Config struct {
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Parse       ParseConfig       `toml:"parse"`
}

// DiagnosticsConfig is the [diagnostics] table.
type DiagnosticsConfig struct {
	Max     int    `toml:"max"`
	Columns string `toml:"columns"` // "bytes" or "chars"
	Color   string `toml:"color"`   // "auto", "on", "off"
	Format  string `toml:"format"`  // "pretty", "json", "short", "emit"
	Context int    `toml:"context"`
	Paths   string `toml:"paths"` // "auto", "absolute", "relative", "basename"
}

// ParseConfig is the [parse] table.
type ParseConfig struct {
	Format    string   `toml:"format"` // "tree", "pretty", "json", "yaml", "msgpack", "sexpr"
	Jobs      int      `toml:"jobs"`
	Cache     bool     `toml:"cache"`
	Expect    string   `toml:"expect"`
	Positions bool     `toml:"positions"`
	Exclude   []string `toml:"exclude"`
}

// Manifest is a loaded tiger.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Diagnostics: DiagnosticsConfig{
			Max:     100,
			Columns: "bytes",
			Color:   "auto",
			Format:  "emit",
			Paths:   "auto",
		},
		Parse: ParseConfig{
			Format: "tree",
			Jobs:   runtime.GOMAXPROCS(0),
		},
	}
}

// FindManifest walks up from startDir to locate tiger.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest finds and decodes tiger.toml starting at startDir. ok is
// false when no manifest exists; the returned Manifest then holds defaults.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return &Manifest{Config: Default()}, false, nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

// LoadConfig decodes path over the defaults and validates the result.
// Unknown keys are rejected so typos do not pass silently.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c Config) Validate() error {
	d := c.Diagnostics
	if d.Max < 0 {
		return fmt.Errorf("[diagnostics].max must not be negative, got %d", d.Max)
	}
	if d.Context < 0 {
		return fmt.Errorf("[diagnostics].context must not be negative, got %d", d.Context)
	}
	if err := oneOf("[diagnostics].columns", d.Columns, "bytes", "chars"); err != nil {
		return err
	}
	if err := oneOf("[diagnostics].color", d.Color, "auto", "on", "off"); err != nil {
		return err
	}
	if err := oneOf("[diagnostics].format", d.Format, "emit", "pretty", "json", "short"); err != nil {
		return err
	}
	if err := oneOf("[diagnostics].paths", d.Paths, "auto", "absolute", "relative", "basename"); err != nil {
		return err
	}
	if err := oneOf("[parse].format", c.Parse.Format, "tree", "pretty", "json", "yaml", "msgpack", "sexpr"); err != nil {
		return err
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("[parse].jobs must not be negative, got %d", c.Parse.Jobs)
	}
	return nil
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, "|"), value)
}

// Template is the manifest written by "tiger init".
func Template() string {
	return `# Tiger front end settings
[diagnostics]
max = 100
columns = "bytes"   # bytes | chars
color = "auto"      # auto | on | off
format = "emit"     # emit | pretty | json | short
context = 0
paths = "auto"

[parse]
format = "tree"     # tree | pretty | json | yaml | msgpack | sexpr
jobs = 0            # 0 = number of CPUs
cache = false
expect = ""         # JSON list of files that must fail to parse
positions = false
exclude = []
`
}
