package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/eslex/internal/types"
	"github.com/gnolang/eslex/lexer"
	"github.com/gnolang/eslex/matcher"
)

func testMatches(filename string) []tt.Match {
	return []tt.Match{
		{
			Rule:     "test-rule",
			Filename: filename,
			Message:  "test match",
			Severity: tt.SeverityWarning,
			Start:    lexer.Location{Offset: 0, Line: 1, Col: 1},
			End:      lexer.Location{Offset: 5, Line: 1, Col: 6},
		},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-test")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	t.Run("SaveAndLoad", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "test.js")
		require.NoError(t, os.WriteFile(filename, []byte("eval(x)\n"), 0o644))

		matches := testMatches(filename)
		require.NoError(t, cache.Set(filename, matches))

		loaded, found := cache.Get(filename)
		assert.True(t, found)
		assert.Equal(t, matches, loaded)

		// a fresh cache reads what the first one saved
		reopened, err := NewCache(filepath.Join(tmpDir, "cache"))
		require.NoError(t, err)
		loaded, found = reopened.Get(filename)
		assert.True(t, found)
		assert.Equal(t, matches, loaded)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get("nonexistent.js")
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "modified.js")
		require.NoError(t, os.WriteFile(filename, []byte("eval(x)\n"), 0o644))
		require.NoError(t, cache.Set(filename, testMatches(filename)))

		require.NoError(t, os.WriteFile(filename, []byte("eval(y)\neval(z)\n"), 0o644))

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("Expired", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "old.js")
		require.NoError(t, os.WriteFile(filename, []byte("x\n"), 0o644))

		c, err := NewCache(filepath.Join(tmpDir, "expired"))
		require.NoError(t, err)
		c.SetMaxAge(time.Nanosecond)
		require.NoError(t, c.Set(filename, nil))
		time.Sleep(time.Millisecond)

		_, found := c.Get(filename)
		assert.False(t, found)
	})
}

func TestCacheDependencyChange(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-dep-test")
	cacheDir := filepath.Join(tmpDir, "cache")

	config := filepath.Join(tmpDir, ".eslex.yaml")
	require.NoError(t, os.WriteFile(config, []byte("name: a\n"), 0o644))
	source := filepath.Join(tmpDir, "a.js")
	require.NoError(t, os.WriteFile(source, []byte("eval(x)\n"), 0o644))

	cache, err := NewCache(cacheDir, config)
	require.NoError(t, err)
	require.NoError(t, cache.Set(source, testMatches(source)))

	_, found := cache.Get(source)
	require.True(t, found)

	require.NoError(t, os.WriteFile(config, []byte("name: b\n"), 0o644))
	_, found = cache.Get(source)
	assert.False(t, found, "config change invalidates entries")

	// reopening after the change starts empty and records the new hash
	reopened, err := NewCache(cacheDir, config)
	require.NoError(t, err)
	assert.Zero(t, reopened.Len())
	require.NoError(t, reopened.Set(source, testMatches(source)))
	_, found = reopened.Get(source)
	assert.True(t, found)
}

func TestCacheInvalidateAll(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-invalidate-test")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	filename := filepath.Join(tmpDir, "a.js")
	require.NoError(t, os.WriteFile(filename, []byte("x\n"), 0o644))
	require.NoError(t, cache.Set(filename, testMatches(filename)))
	assert.Equal(t, 1, cache.Len())

	cache.InvalidateAll()
	assert.Zero(t, cache.Len())
}

func TestCacheWithEngine(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-engine-test")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	engine, err := NewEngine(map[string]tt.ConfigRule{
		"no-eval": {Pattern: "eval(", Severity: tt.SeverityError},
	}, WithCache(cache))
	require.NoError(t, err)

	filename := filepath.Join(tmpDir, "test.js")
	require.NoError(t, os.WriteFile(filename, []byte("eval(a);\neval(b);\n"), 0o644))

	matches, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, 1, cache.Len())

	cached, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Equal(t, matches, cached)

	engine.IgnoreRule("no-eval")
	filtered, err := engine.Run(filename)
	require.NoError(t, err)
	assert.Empty(t, filtered, "ignored rules are filtered from cached results too")
}

func TestCacheSettingsChange(t *testing.T) {
	t.Parallel()
	tmpDir := createTempDir(t, "cache-settings-test")
	cacheDir := filepath.Join(tmpDir, "cache")

	filename := filepath.Join(tmpDir, "call.js")
	require.NoError(t, os.WriteFile(filename, []byte("f(a)\n"), 0o644))

	rules := map[string]tt.ConfigRule{
		"open-a": {Pattern: "(a", Severity: tt.SeverityError},
	}
	changed := map[string]tt.ConfigRule{
		"open-a": {Pattern: "(b", Severity: tt.SeverityError},
	}

	// each run opens the cache afresh, the way separate invocations do
	run := func(rules map[string]tt.ConfigRule, mode matcher.BracketMode) []tt.Match {
		cache, err := NewCache(cacheDir)
		require.NoError(t, err)
		engine, err := NewEngine(rules, WithBrackets(mode), WithCache(cache))
		require.NoError(t, err)
		matches, err := engine.Run(filename)
		require.NoError(t, err)
		return matches
	}

	tests := []struct {
		name  string
		rules map[string]tt.ConfigRule
		mode  matcher.BracketMode
		want  int
	}{
		{name: "inert", rules: rules, mode: matcher.BracketsInert, want: 1},
		{name: "balanced after inert", rules: rules, mode: matcher.BracketsBalanced, want: 0},
		{name: "inert again", rules: rules, mode: matcher.BracketsInert, want: 1},
		{name: "rule changed", rules: changed, mode: matcher.BracketsInert, want: 0},
	}
	for _, tc := range tests {
		assert.Len(t, run(tc.rules, tc.mode), tc.want, tc.name)
	}

	// the last run's results stay on disk for the next one
	matches := run(rules, matcher.BracketsInert)
	require.Len(t, matches, 1)
	cache, err := NewCache(cacheDir)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())
}
