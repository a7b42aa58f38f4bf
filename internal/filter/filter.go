// Package filter selects asset files under one or more roots using find -path semantics.
package filter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/formless-game/assetkit/pkg/pathmatch"
)

// ErrNoFiles is returned when no file under the roots matches the patterns.
var ErrNoFiles = errors.New("no files matched the provided patterns")

// Filter selects files based on include/exclude patterns using find -path semantics.
// Empty includes means "match all". Excludes always win.
type Filter struct {
	includes *pathmatch.Matcher
	excludes *pathmatch.Matcher
	all      bool
}

// NewFilter compiles include/exclude patterns into a reusable filter.
func NewFilter(includes, excludes []string) (*Filter, error) {
	inc, err := pathmatch.NewMatcher(normalizePatterns(includes))
	if err != nil {
		return nil, fmt.Errorf("compiling include patterns: %w", err)
	}

	exc, err := pathmatch.NewMatcher(normalizePatterns(excludes))
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{includes: inc, excludes: exc, all: len(includes) == 0}, nil
}

// Match reports whether the slash-separated path should be included.
func (f *Filter) Match(path string) bool {
	included := f.all || f.includes.MatchAny(path)
	excluded := f.excludes.MatchAny(path)

	return included && !excluded
}

// normalizePatterns strips leading "./" from patterns so they match cleaned paths.
func normalizePatterns(patterns []string) []string {
	out := make([]string, len(patterns))

	for i, p := range patterns {
		out[i] = strings.TrimPrefix(p, "./")
	}

	return out
}

// Resolve walks every root recursively and returns the files passing the filter,
// together with the number of files scanned.
//
// A root that is a regular file is filtered like any walked file. A root that
// does not exist is skipped and reported in missing. Paths seen under more than
// one root are returned once.
func Resolve(roots, includes, excludes []string) (files, missing []string, scanned int, err error) {
	flt, err := NewFilter(includes, excludes)
	if err != nil {
		return nil, nil, 0, err
	}

	seen := make(map[string]struct{})

	for _, root := range roots {
		root = filepath.Clean(root)

		if _, err := os.Stat(root); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				missing = append(missing, root)

				continue
			}

			return nil, nil, 0, fmt.Errorf("stat %q: %w", root, err)
		}

		walked, total, err := walkDir(root, flt)
		if err != nil {
			return nil, nil, 0, err
		}

		scanned += total

		for _, path := range walked {
			if _, ok := seen[path]; ok {
				continue
			}

			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	if len(files) == 0 {
		return nil, missing, scanned, fmt.Errorf("%w: %v", ErrNoFiles, roots)
	}

	return files, missing, scanned, nil
}

// Collect returns every regular file under the roots, unfiltered, as slash-separated paths.
// Missing roots are an error here.
func Collect(roots []string) ([]string, error) {
	var paths []string

	seen := make(map[string]struct{})

	for _, root := range roots {
		root = filepath.Clean(root)

		if _, err := os.Stat(root); err != nil {
			return nil, fmt.Errorf("stat %q: %w", root, err)
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			clean := filepath.ToSlash(filepath.Clean(path))
			if _, ok := seen[clean]; !ok {
				seen[clean] = struct{}{}
				paths = append(paths, clean)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %q: %w", root, err)
		}
	}

	return paths, nil
}

// walkDir walks root recursively, returning files that pass the filter.
// Paths keep the root as prefix (e.g. "assets/ui/menu.txt" when root is "assets").
func walkDir(root string, flt *Filter) (files []string, total int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		total++

		// Use forward slashes for pattern matching consistency.
		clean := filepath.ToSlash(filepath.Clean(path))

		if !flt.Match(clean) {
			return nil
		}

		files = append(files, filepath.Clean(path))

		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("walking %q: %w", root, err)
	}

	return files, total, nil
}
