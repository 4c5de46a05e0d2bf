package cache_test

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fxmartin/create-project-sub002/pkg/cache"
	"github.com/fxmartin/create-project-sub002/pkg/schema"
	"github.com/fxmartin/create-project-sub002/pkg/testutil"
)

func countingLoader(t *testing.T) (cache.LoaderFunc, *int) {
	t.Helper()
	count := 0
	loader := func(path string) (*schema.Template, error) {
		count++
		return testutil.NewTemplate(), nil
	}
	return loader, &count
}

func TestGetOrLoad(t *testing.T) {
	loader, count := countingLoader(t)
	store := cache.New(loader)
	path := filepath.Join(t.TempDir(), "template.yaml")

	first, err := store.GetOrLoad(path)
	require.NoError(t, err)

	second, err := store.GetOrLoad(path)
	require.NoError(t, err)

	assert.Same(t, first, second, "cache hit must return the same object")
	assert.Equal(t, 1, *count)
	assert.Equal(t, 1, store.Len())
}

func TestInvalidate(t *testing.T) {
	loader, count := countingLoader(t)
	store := cache.New(loader)
	path := filepath.Join(t.TempDir(), "template.yaml")

	_, err := store.GetOrLoad(path)
	require.NoError(t, err)

	store.Invalidate(path)
	assert.Equal(t, 0, store.Len())

	_, err = store.GetOrLoad(path)
	require.NoError(t, err)
	assert.Equal(t, 2, *count)
}

func TestClear(t *testing.T) {
	loader, _ := countingLoader(t)
	store := cache.New(loader)
	dir := t.TempDir()

	_, err := store.GetOrLoad(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	_, err = store.GetOrLoad(filepath.Join(dir, "b.yaml"))
	require.NoError(t, err)
	require.Equal(t, 2, store.Len())

	store.Clear()
	assert.Equal(t, 0, store.Len())
}

func TestCanonicalization(t *testing.T) {
	loader, count := countingLoader(t)
	store := cache.New(loader)
	dir := t.TempDir()
	path := filepath.Join(dir, "template.yaml")
	dotted := dir + string(filepath.Separator) + "." + string(filepath.Separator) + "template.yaml"

	_, err := store.GetOrLoad(path)
	require.NoError(t, err)
	_, err = store.GetOrLoad(dotted)
	require.NoError(t, err)

	assert.Equal(t, 1, *count, "equivalent spellings share one entry")
}

func TestConcurrentAccess(t *testing.T) {
	loader, _ := countingLoader(t)
	store := cache.New(loader)
	path := filepath.Join(t.TempDir(), "template.yaml")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.GetOrLoad(path)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
}

func TestLoadErrorNotCached(t *testing.T) {
	store := cache.New(nil) // defaults to schema.Load
	_, err := store.GetOrLoad("/nonexistent/template.yaml")
	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
}
