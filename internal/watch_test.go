package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/eslex/internal/types"
)

type report struct {
	filename string
	matches  []tt.Match
	err      error
}

func TestEngine_Watch(t *testing.T) {
	t.Parallel()
	dir := createTempDir(t, "watch_test")

	engine, err := NewEngine(testRules)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reports := make(chan report, 256)
	done := make(chan error, 1)
	go func() {
		done <- engine.Watch(ctx, []string{dir}, func(filename string, matches []tt.Match, err error) {
			reports <- report{filename, matches, err}
		})
	}()

	target := filepath.Join(dir, "app.js")
	ignored := filepath.Join(dir, "notes.txt")

	// the watcher registers asynchronously, so keep writing until it reacts
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	var got report
wait:
	for {
		select {
		case got = <-reports:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(ignored, []byte("eval(x)"), 0o644))
			require.NoError(t, os.WriteFile(target, []byte("eval(x)\n"), 0o644))
		case <-deadline:
			t.Fatal("no report from watcher")
		}
	}

	require.NoError(t, got.err)
	assert.Equal(t, target, got.filename)
	require.Len(t, got.matches, 1)
	assert.Equal(t, "no-eval", got.matches[0].Rule)

	assert.Error(t, engine.Watch(ctx, []string{dir}, nil), "second watch is refused")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
