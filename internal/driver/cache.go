package driver

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"tiger/internal/diag"
	"tiger/internal/project"
	"tiger/internal/source"
)

// Bump when DiskPayload changes shape or the lexer/parser change what they report.
const diskCacheSchemaVersion uint16 = 2

// DiskCache stores parse outcomes keyed by content hash and the options
// that influence diagnostics. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is a diagnostic with positions pre-resolved.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Line     uint32
	Col      uint32
	Message  string
	Notes    []CachedNote
}

// CachedNote is a diagnostic note with its position pre-resolved.
type CachedNote struct {
	Start   uint32
	End     uint32
	Line    uint32
	Col     uint32
	Message string
}

// DiskPayload is the msgpack record written per unit.
type DiskPayload struct {
	Schema      uint16
	Path        string
	ContentHash project.Digest
	OK          bool
	Tokens      int
	Diagnostics []CachedDiagnostic
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Key derives the cache key of file under opts.
func (c *DiskCache) Key(file *source.File, opts Options) project.Digest {
	var params [8]byte
	binary.LittleEndian.PutUint16(params[0:], diskCacheSchemaVersion)
	if opts.CharColumns {
		params[2] = 1
	}
	maxDiags, err := safecast.Conv[uint32](opts.maxDiagnostics())
	if err != nil {
		maxDiags = ^uint32(0)
	}
	binary.LittleEndian.PutUint32(params[4:], maxDiags)
	return project.Combine(file.Hash, params[:])
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "units", hex.EncodeToString(key[:])+".mp")
}

// Put writes payload atomically.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = f.Close()
			if rmErr := os.Remove(f.Name()); rmErr != nil && err == nil {
				err = rmErr
			}
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		return err
	}
	renamed = true
	return nil
}

// Get reads the payload for key. A missing entry or a stale schema is a
// miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func payloadFromResult(res *ParseResult) *DiskPayload {
	p := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        res.Path,
		ContentHash: res.File.Hash,
		OK:          res.OK(),
		Tokens:      res.Tokens,
	}
	for _, d := range res.Bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Line:     d.Pos.Line,
			Col:      d.Pos.Col,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{
				Start: n.Span.Start, End: n.Span.End,
				Line: n.Pos.Line, Col: n.Pos.Col,
				Message: n.Msg,
			})
		}
		p.Diagnostics = append(p.Diagnostics, cd)
	}
	return p
}

// replay rebuilds a result from payload, feeding its diagnostics through
// opts so streaming reporters see them as if the unit had been parsed.
func replay(file *source.File, payload *DiskPayload, opts Options) *ParseResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	rep := opts.reporterFor(bag)
	for _, d := range payload.Diagnostics {
		var notes []diag.Note
		for _, n := range d.Notes {
			notes = append(notes, diag.Note{
				Span: source.Span{File: file.ID, Start: n.Start, End: n.End},
				Pos:  source.Position{Line: n.Line, Col: n.Col},
				Msg:  n.Message,
			})
		}
		rep.Report(
			diag.Code(d.Code),
			diag.Severity(d.Severity),
			source.Span{File: file.ID, Start: d.Start, End: d.End},
			source.Position{Line: d.Line, Col: d.Col},
			d.Message,
			notes,
		)
	}
	res := &ParseResult{
		File:   file,
		Bag:    bag,
		Tokens: payload.Tokens,
		Cached: true,
	}
	// The verdict is stored separately since a lexer overflow leaves no
	// error diagnostic of its own beyond the bag cap.
	res.cachedFailure = !payload.OK
	return res
}
