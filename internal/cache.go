package internal

import (
	"crypto/md5"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnolang/eslex/internal/types"
)

const (
	cacheFileName = "eslex_cache.gob"
	defaultMaxAge = 24 * time.Hour
)

// fingerprint identifies one version of a file's contents.
type fingerprint struct {
	Sum     string
	ModTime time.Time
}

func (f fingerprint) matches(other fingerprint) bool {
	return f.Sum == other.Sum && f.ModTime.Equal(other.ModTime)
}

type cachedResult struct {
	File     fingerprint
	Matches  []tt.Match
	Stored   time.Time
	LastRead time.Time
}

// snapshot is the gob-encoded content of the cache file.
type snapshot struct {
	Results map[string]cachedResult
	Deps    map[string]string
	Scope   string
}

// Cache keeps per-file results keyed by content hash and modification time.
// Every result is dropped once any dependency file (such as the rule
// configuration) changes, or once the cache is bound to a different scope.
type Cache struct {
	dir    string
	maxAge time.Duration
	deps   []string

	mu      sync.Mutex
	results map[string]cachedResult
	depSums map[string]string
	scope   string
}

// NewCache opens the cache stored in dir, creating dir when needed.
func NewCache(dir string, dependencyFiles ...string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	c := &Cache{
		dir:     dir,
		maxAge:  defaultMaxAge,
		deps:    dependencyFiles,
		results: make(map[string]cachedResult),
		depSums: make(map[string]string),
	}
	if err := c.read(); err != nil {
		return nil, err
	}

	if c.depsChanged() {
		c.results = make(map[string]cachedResult)
		for _, dep := range c.deps {
			sum, err := hashFile(dep)
			if err != nil {
				return nil, fmt.Errorf("hashing %s: %w", dep, err)
			}
			c.depSums[dep] = sum
		}
	}
	return c, nil
}

func (c *Cache) file() string {
	return filepath.Join(c.dir, cacheFileName)
}

func (c *Cache) read() error {
	f, err := os.Open(c.file())
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening cache: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return fmt.Errorf("decoding cache %s: %w", c.file(), err)
	}
	if snap.Results != nil {
		c.results = snap.Results
	}
	if snap.Deps != nil {
		c.depSums = snap.Deps
	}
	c.scope = snap.Scope
	return nil
}

// write persists the cache. Callers hold c.mu.
func (c *Cache) write() error {
	f, err := os.Create(c.file())
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}
	defer f.Close()

	return gob.NewEncoder(f).Encode(snapshot{Results: c.results, Deps: c.depSums, Scope: c.scope})
}

// bind ties the cache to the settings that produce its results. Results
// stored under another scope are dropped.
func (c *Cache) bind(scope string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scope == scope {
		return nil
	}
	c.results = make(map[string]cachedResult)
	c.scope = scope
	return c.write()
}

// Set records the matches found in filename as it is now on disk.
func (c *Cache) Set(filename string, matches []tt.Match) error {
	fp, err := fingerprintFile(filename)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	c.results[filename] = cachedResult{File: fp, Matches: matches, Stored: now, LastRead: now}
	return c.write()
}

// Get returns the matches recorded for filename, unless the file, a
// dependency, or the age of the record says they are stale.
func (c *Cache) Get(filename string) ([]tt.Match, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.results[filename]
	if !ok {
		return nil, false
	}
	if c.stale(filename, res) {
		delete(c.results, filename)
		return nil, false
	}

	res.LastRead = time.Now()
	c.results[filename] = res
	return res.Matches, true
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.results)
}

func (c *Cache) stale(filename string, res cachedResult) bool {
	if time.Since(res.Stored) > c.maxAge {
		return true
	}
	fp, err := fingerprintFile(filename)
	if err != nil || !fp.matches(res.File) {
		return true
	}
	return c.depsChanged()
}

func (c *Cache) depsChanged() bool {
	for _, dep := range c.deps {
		sum, err := hashFile(dep)
		if err != nil || sum != c.depSums[dep] {
			return true
		}
	}
	return false
}

func (c *Cache) SetMaxAge(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxAge = d
}

// InvalidateAll empties the cache, on disk too.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.results = make(map[string]cachedResult)
	_ = c.write()
}

func fingerprintFile(filename string) (fingerprint, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return fingerprint{}, err
	}
	sum, err := hashFile(filename)
	if err != nil {
		return fingerprint{}, err
	}
	return fingerprint{Sum: sum, ModTime: info.ModTime()}, nil
}

func hashFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:]), nil
}
