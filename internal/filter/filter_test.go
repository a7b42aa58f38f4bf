package filter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formless-game/assetkit/internal/filter"
)

// tree creates the given relative files (with their parent directories) under dir.
func tree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(f), 0o600))
	}
}

func TestResolveRecursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir,
		"assets/intro.txt",
		"assets/a/b/c/deep.txt",
		"assets/a/b/c/deep.png",
		"assets/notes.md",
		"assets/intro.txt.enc",
		"levels/01.txt",
		"levels/world/02.txt",
	)

	assets := filepath.Join(dir, "assets")
	levels := filepath.Join(dir, "levels")

	files, missing, scanned, err := filter.Resolve([]string{assets, levels}, []string{"*.txt"}, nil)
	require.NoError(t, err)
	assert.Empty(t, missing)
	assert.Equal(t, 7, scanned)
	assert.ElementsMatch(t, []string{
		filepath.Join(assets, "intro.txt"),
		filepath.Join(assets, "a", "b", "c", "deep.txt"),
		filepath.Join(levels, "01.txt"),
		filepath.Join(levels, "world", "02.txt"),
	}, files)
}

func TestResolveExcludesWin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "assets/keep.txt", "assets/draft/skip.txt")

	files, _, _, err := filter.Resolve(
		[]string{filepath.Join(dir, "assets")},
		[]string{"*.txt"},
		[]string{"*/draft/*"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "assets", "keep.txt")}, files)
}

func TestResolveMissingRootSkipped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "levels/01.txt")

	gone := filepath.Join(dir, "assets")

	files, missing, _, err := filter.Resolve([]string{gone, filepath.Join(dir, "levels")}, []string{"*.txt"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{gone}, missing)
	assert.Len(t, files, 1)
}

func TestResolveDeduplicatesOverlappingRoots(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "levels/01.txt", "levels/sub/02.txt")

	levels := filepath.Join(dir, "levels")

	files, _, _, err := filter.Resolve([]string{levels, filepath.Join(levels, "sub")}, []string{"*.txt"}, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestResolveNoMatches(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tree(t, dir, "assets/readme.md")

	_, _, _, err := filter.Resolve([]string{filepath.Join(dir, "assets")}, []string{"*.txt"}, nil)
	require.ErrorIs(t, err, filter.ErrNoFiles)
}

func TestFilterMatch(t *testing.T) {
	t.Parallel()

	all, err := filter.NewFilter(nil, []string{"./tmp/*"})
	require.NoError(t, err)
	assert.True(t, all.Match("assets/x.bin"))
	assert.False(t, all.Match("tmp/x.txt"))

	_, err = filter.NewFilter([]string{"[abc"}, nil)
	require.Error(t, err)
}

func TestPatterns(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "exclude.jsonc")
	require.NoError(t, os.WriteFile(file, []byte(`[
  // generated by the level editor
  "*/autosave/*",
  "*.bak",
]`), 0o600))

	patterns, err := filter.Patterns([]string{"*/draft/*"}, file)
	require.NoError(t, err)
	assert.Equal(t, []string{"*/draft/*", "*/autosave/*", "*.bak"}, patterns)

	inline, err := filter.Patterns([]string{"*.txt"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"*.txt"}, inline)

	_, err = filter.LoadPatterns(filepath.Join(t.TempDir(), "missing.jsonc"))
	require.Error(t, err)
}
