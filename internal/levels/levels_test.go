package levels_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formless-game/assetkit/internal/levels"
)

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "levels")

	for _, name := range []string{"c.txt", "a.txt", "b.txt", "notes.md", "nested/d.txt"} {
		touch(t, filepath.Join(root, filepath.FromSlash(name)))
	}

	require.NoError(t, os.Mkdir(filepath.Join(root, "dir.txt"), 0o750))

	found, err := levels.Discover(root, ".txt")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.txt"),
		filepath.Join(root, "b.txt"),
		filepath.Join(root, "c.txt"),
	}, levels.Paths(found))
	assert.Equal(t, "a", found[0].Name)
}

func TestDiscoverSortsByteOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	for _, name := range []string{"b.txt", "B.txt", "10.txt", "2.txt", "_x.txt"} {
		touch(t, filepath.Join(root, name))
	}

	found, err := levels.Discover(root, ".txt")
	require.NoError(t, err)

	var names []string
	for _, l := range found {
		names = append(names, filepath.Base(l.Path))
	}

	assert.Equal(t, []string{"10.txt", "2.txt", "B.txt", "_x.txt", "b.txt"}, names)
}

func TestDiscoverEmpty(t *testing.T) {
	t.Parallel()

	found, err := levels.Discover(t.TempDir(), ".txt")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestDiscoverMissing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := levels.Discover(filepath.Join(dir, "levels"), ".txt")
	require.ErrorIs(t, err, levels.ErrLevelsNotFound)

	file := filepath.Join(dir, "file")
	touch(t, file)

	_, err = levels.Discover(file, ".txt")
	require.ErrorIs(t, err, levels.ErrLevelsNotFound)
}
