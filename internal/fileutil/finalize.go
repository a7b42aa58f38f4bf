// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AtomicFile is an output file written to a temporary sibling and renamed
// over its target on Commit. Until then the target is left untouched.
type AtomicFile struct {
	*os.File

	target  string
	tmpName string
	perm    os.FileMode
	done    bool
}

// Create opens a temporary file next to target. Callers must defer Abort.
func Create(target string, perm os.FileMode) (*AtomicFile, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	return &AtomicFile{
		File:    tmpFile,
		target:  target,
		tmpName: tmpFile.Name(),
		perm:    perm,
	}, nil
}

// Commit sets the permissions, closes the temporary file and renames it to the target.
// It returns the size of the committed file.
func (f *AtomicFile) Commit() (int64, error) {
	if f.done {
		return 0, errors.New("file already committed or aborted")
	}

	if err := f.Chmod(f.perm); err != nil {
		return 0, fmt.Errorf("setting file permissions: %w", err)
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("closing temporary file: %w", err)
	}

	if err := os.Rename(f.tmpName, f.target); err != nil {
		return 0, fmt.Errorf("renaming output file: %w", err)
	}

	f.done = true

	info, err := os.Stat(f.target)
	if err != nil {
		return 0, fmt.Errorf("stat output %q: %w", f.target, err)
	}

	return info.Size(), nil
}

// Abort closes and removes the temporary file. It is a no-op after Commit.
func (f *AtomicFile) Abort() {
	if f.done {
		return
	}

	f.done = true

	f.Close()            //nolint:errcheck,gosec // best-effort cleanup
	os.Remove(f.tmpName) //nolint:errcheck,gosec // best-effort cleanup
}

// Mode returns the permission bits of path, for outputs that mirror their source.
func Mode(path string) (os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("getting file info for %q: %w", path, err)
	}

	return info.Mode().Perm(), nil
}
