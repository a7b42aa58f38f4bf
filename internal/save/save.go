// Package save reads and writes save files: plain text manifests of
// unlocked level paths, one per line.
//
// Empty lines and lines starting with '#' are ignored when reading.
package save

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/formless-game/assetkit/internal/fileutil"
)

const filePerm = 0o644

// Header is the first line of a save file created by Remember, matching the
// files the game creates on first launch.
const Header = "# formless save file"

// Record is the set of remembered levels in file order.
type Record struct {
	levels []string
	index  map[string]struct{}
}

// NewRecord returns a record holding levels, with duplicates dropped.
func NewRecord(levels ...string) *Record {
	r := &Record{index: make(map[string]struct{})}

	for _, l := range levels {
		r.add(l)
	}

	return r
}

func (r *Record) add(level string) bool {
	if _, ok := r.index[level]; ok {
		return false
	}

	r.index[level] = struct{}{}
	r.levels = append(r.levels, level)

	return true
}

// Has reports whether level is remembered.
func (r *Record) Has(level string) bool {
	_, ok := r.index[level]

	return ok
}

// Levels returns the remembered levels in the order they appear in the file.
func (r *Record) Levels() []string {
	return append([]string(nil), r.levels...)
}

// Len returns the number of remembered levels.
func (r *Record) Len() int {
	return len(r.levels)
}

// Write replaces the save file at path with one line per level.
// The existing file is only replaced once the new contents are fully written.
func Write(path string, levels []string) error {
	out, err := fileutil.Create(path, filePerm)
	if err != nil {
		return fmt.Errorf("creating save file: %w", err)
	}
	defer out.Abort()

	writer := bufio.NewWriter(out)

	for _, level := range levels {
		if _, err := writer.WriteString(level + "\n"); err != nil {
			return fmt.Errorf("writing save file: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}

	if _, err := out.Commit(); err != nil {
		return fmt.Errorf("writing save file: %w", err)
	}

	return nil
}

// Load reads the save file at path.
func Load(path string) (*Record, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening save file: %w", err)
	}
	defer file.Close()

	record := NewRecord()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		record.add(line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading save file: %w", err)
	}

	return record, nil
}

// Remember appends level to the save file at path unless it is already there,
// creating the file with Header if needed. It reports whether the level was added.
func Remember(path, level string) (bool, error) {
	record, err := Load(path)

	created := errors.Is(err, fs.ErrNotExist)

	switch {
	case created:
		record = NewRecord()
	case err != nil:
		return false, err
	}

	if record.Has(level) {
		return false, nil
	}

	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, filePerm)
	if err != nil {
		return false, fmt.Errorf("opening save file: %w", err)
	}
	defer file.Close()

	if created {
		if _, err := file.WriteString(Header + "\n"); err != nil {
			return false, fmt.Errorf("writing save file header: %w", err)
		}
	}

	if _, err := file.WriteString(level + "\n"); err != nil {
		return false, fmt.Errorf("appending to save file: %w", err)
	}

	if err := file.Close(); err != nil {
		return false, fmt.Errorf("closing save file: %w", err)
	}

	return true, nil
}
