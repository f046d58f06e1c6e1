package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tstidx/internal"
	"tstidx/internal/config"
	_ "tstidx/pkg/plaintext"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSplitEntries(t *testing.T) {
	text := []byte("Ada  Lovelace\r\n\n  Grace\tHopper \fAlan Turing\n")

	assert.Equal(t, []string{"Ada Lovelace", "Grace Hopper", "Alan Turing"}, SplitEntries(text, config.SplitLines))
	assert.Equal(t, []string{"Ada Lovelace", "Grace", "Hopper", "Alan Turing"}, SplitEntries(text, config.SplitCells))
	assert.Empty(t, SplitEntries(nil, config.SplitLines))
}

func TestLoadAndComplete(t *testing.T) {
	dir := t.TempDir()
	sources := []Source{
		{Path: writeFile(t, dir, "poets.txt", "cat\ncar\n# comment\ncart\n")},
		{Path: writeFile(t, dir, "more.md", "- dog\n- car\n")},
		{Path: writeFile(t, dir, "list.html", "<ul><li>apple</li><li>app</li><li>application</li></ul>")},
		{Path: writeFile(t, dir, "forced.dat", "x\nzebra\n"), FileType: internal.FileTypeTXT},
	}

	cfg := config.DefaultConfig()
	cfg.Exclude = []string{"#"}
	cfg.MinLength = 2
	cfg.Workers = 2
	c := New(cfg)

	added, err := c.Load(context.Background(), sources)
	require.NoError(t, err)
	assert.Equal(t, 8, added)

	assert.Equal(t, []string{"car", "cart", "cat"}, c.Complete("ca", 10))
	assert.Equal(t, []string{"car"}, c.Complete("ca", 1))
	assert.Equal(t, []string{"app", "apple", "application"}, c.Complete("app", 10))
	assert.Equal(t, []string{}, c.Complete("#", 10))
	assert.Equal(t, []string{}, c.Complete("x", 10), "shorter than min length")

	assert.True(t, c.Contains("car", true))
	assert.False(t, c.Contains("ca", true))
	assert.True(t, c.Contains("ca", false))
	assert.Equal(t, 3, c.Count("ca"))

	stats := c.Stats()
	assert.Equal(t, 8, stats.Words)
	assert.Equal(t, len(c.Words()), stats.Words)
}

func TestLoadErrors(t *testing.T) {
	c := New(config.DefaultConfig())

	_, err := c.Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSources)

	dir := t.TempDir()
	sources := []Source{
		{Path: writeFile(t, dir, "ok.txt", "Ada\n")},
		{Path: filepath.Join(dir, "missing.txt")},
	}
	_, err = c.Load(context.Background(), sources)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.txt")
	assert.Zero(t, c.Stats().Words, "failed load adds nothing")
}

func TestLoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(config.DefaultConfig())
	_, err := c.Load(ctx, []Source{{Path: writeFile(t, t.TempDir(), "a.txt", "Ada\n")}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, c.Stats().Words)
}

func TestAddEntriesCountsNewWordsOnly(t *testing.T) {
	c := New(config.DefaultConfig())
	assert.Equal(t, 2, c.AddEntries([]string{"a", "b", "a"}))
	assert.Equal(t, 0, c.AddEntries([]string{"a"}))
	assert.Equal(t, 2, c.Stats().Words)
}

func TestConcurrentReaders(t *testing.T) {
	c := New(config.DefaultConfig())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			c.AddEntries([]string{fmt.Sprintf("name%03d", i)})
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				res := c.Complete("name", 5)
				assert.LessOrEqual(t, len(res), 5)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, c.Stats().Words)
	assert.Equal(t, []string{"name000", "name001"}, c.Complete("name", 2))
}
