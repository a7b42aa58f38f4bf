// Package levels discovers the level files that make up a save.
//
// Discovery is flat: only direct entries of the levels directory are
// considered, since saves unlock levels by path in a single namespace.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrLevelsNotFound is returned when the levels directory does not exist or is not a directory.
var ErrLevelsNotFound = errors.New("directory not found")

// Level is a single level definition file.
type Level struct {
	// Path is the level file path, rooted at the levels directory.
	Path string
	// Name is the file name without its extension.
	Name string
}

// Discover lists the files directly under root whose name ends with ext,
// sorted by path.
func Discover(root, ext string) ([]Level, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrLevelsNotFound, root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading levels directory %q: %w", root, err)
	}

	var found []Level

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}

		found = append(found, Level{
			Path: filepath.Join(root, name),
			Name: strings.TrimSuffix(name, ext),
		})
	}

	slices.SortFunc(found, func(a, b Level) int {
		return strings.Compare(a.Path, b.Path)
	})

	return found, nil
}

// Paths returns the paths of levels in order.
func Paths(levels []Level) []string {
	paths := make([]string, len(levels))

	for i, l := range levels {
		paths[i] = l.Path
	}

	return paths
}
