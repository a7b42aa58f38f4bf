package logic

import (
	"errors"
	"fmt"
	"io"

	"github.com/formless-game/assetkit/internal/config"
	"github.com/formless-game/assetkit/internal/filter"
	"github.com/formless-game/assetkit/pkg/pathmatch"
)

// RunCheck validates that every include/exclude pattern matches at least one file under the roots.
func RunCheck(cfg *config.Config, streams Streams) error {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return err
	}

	if len(includes) == 0 && len(excludes) == 0 {
		return errors.New("no include or exclude patterns to check")
	}

	candidates, err := filter.Collect(cfg.Roots)
	if err != nil {
		return err
	}

	var failures int

	failures += checkPatterns(streams.Err, "include", includes, candidates, cfg.Quiet)
	failures += checkPatterns(streams.Err, "exclude", excludes, candidates, cfg.Quiet)

	if failures > 0 {
		return fmt.Errorf("%d pattern(s) matched no files", failures)
	}

	return nil
}

// checkPatterns tests each pattern individually against candidates.
// Returns the number of patterns that matched zero files.
func checkPatterns(w io.Writer, kind string, patterns, candidates []string, quiet bool) int {
	var failures int

	for _, pattern := range patterns {
		// Compiled patterns are cached, so only the first call pays for translation.
		if _, err := pathmatch.Match(pattern, ""); err != nil {
			fmt.Fprintf(w, "%s: %s: invalid pattern: %v\n", kind, pattern, err)

			failures++

			continue
		}

		var count int

		for _, path := range candidates {
			if ok, _ := pathmatch.Match(pattern, path); ok {
				count++
			}
		}

		if count == 0 {
			fmt.Fprintf(w, "%s: %s: 0 files (ERROR)\n", kind, pattern)

			failures++
		} else if !quiet {
			fmt.Fprintf(w, "%s: %s: %d files\n", kind, pattern, count)
		}
	}

	return failures
}
