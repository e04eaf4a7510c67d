package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"clukc/internal/diag"
	"clukc/internal/source"
	"clukc/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores compiled units on disk, keyed by the hash of the source
// content and the options that influence the result.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the msgpack form of a Unit.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Code        string
	Stats       Stats
	Globals     []Global
	Diagnostics []DiskDiagnostic
}

// DiskDiagnostic is a diagnostic with file-relative spans.
type DiskDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []DiskNote
}

type DiskNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key uint64) string {
	hexKey := fmt.Sprintf("%016x", key)
	return filepath.Join(c.dir, "units", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key uint64, payload *DiskPayload) (err error) {
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
	tmp := f.Name()
	defer func() {
		// after a successful rename the temp name is gone already
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	err = os.Rename(tmp, p)
	return err
}

// Get reads and deserializes a payload from the disk cache. Entries written
// with another schema version are reported as missing.
func (c *DiskCache) Get(key uint64, out *DiskPayload) (bool, error) {
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
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
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
	return os.RemoveAll(old)
}

// unitKey hashes everything that can change a unit's output, the compiler
// version included.
func unitKey(content []byte, opts Options) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString("clukc-unit/" + strconv.Itoa(int(diskCacheSchemaVersion)) + "\x00")
	_, _ = d.WriteString(version.Version() + "\x00")
	_, _ = d.WriteString(opts.Redeclare.String() + "\x00")
	_, _ = d.WriteString(strconv.Itoa(opts.MaxDiagnostics) + "\x00")
	_, _ = d.Write(content)
	return d.Sum64()
}

func unitToDiskPayload(u *Unit) *DiskPayload {
	p := &DiskPayload{
		Schema:  diskCacheSchemaVersion,
		Code:    u.Code,
		Stats:   u.Stats,
		Globals: u.Globals,
	}
	for _, d := range u.Bag.Items() {
		dd := DiskDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			dd.Notes = append(dd.Notes, DiskNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		p.Diagnostics = append(p.Diagnostics, dd)
	}
	return p
}

func unitFromDiskPayload(p *DiskPayload, fileID source.FileID, maxDiagnostics int) *Unit {
	bag := diag.NewBag(maxDiagnostics)
	for _, dd := range p.Diagnostics {
		d := diag.New(diag.Severity(dd.Severity), diag.Code(dd.Code),
			source.Span{File: fileID, Start: dd.Start, End: dd.End}, dd.Message)
		for _, n := range dd.Notes {
			d = d.WithNote(source.Span{File: fileID, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
	return &Unit{
		FileID:  fileID,
		Code:    p.Code,
		Bag:     bag,
		Stats:   p.Stats,
		Globals: p.Globals,
		Cached:  true,
	}
}

func loadCached(c *DiskCache, key uint64, fileID source.FileID, maxDiagnostics int) (*Unit, bool) {
	if c == nil {
		return nil, false
	}
	var payload DiskPayload
	ok, err := c.Get(key, &payload)
	if err != nil || !ok {
		// a broken entry is treated as a miss and rewritten
		return nil, false
	}
	return unitFromDiskPayload(&payload, fileID, maxDiagnostics), true
}

func storeCached(c *DiskCache, key uint64, u *Unit) error {
	if c == nil {
		return nil
	}
	return c.Put(key, unitToDiskPayload(u))
}
