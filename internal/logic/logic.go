// Package logic implements the core business logic of the assetkit commands.
package logic

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/formless-game/assetkit/internal/config"
	"github.com/formless-game/assetkit/internal/encryption"
	"github.com/formless-game/assetkit/internal/filter"
)

// Streams are the writers commands print their user-facing output to.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// Run encrypts or decrypts every matching file under the configured roots.
func Run(ctx context.Context, cfg *config.Config, streams Streams, log *zap.Logger) error {
	start := time.Now()

	scanned, err := resolveFiles(cfg, log)
	if err != nil {
		return fmt.Errorf("resolving files: %w", err)
	}

	excluded := scanned - len(cfg.Files)

	if cfg.Dry {
		dryRun(cfg, streams, scanned, excluded, start)

		return nil
	}

	proc, err := encryption.NewProcessor(cfg, streams.Out, streams.Err, log)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	summary, err := proc.ProcessFiles(ctx)

	if cfg.Stats {
		printStats(streams.Err, scanned, excluded, summary.Processed, summary.Errored, summary.TotalSize, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	return nil
}

// resolveFiles walks the roots and applies include/exclude filtering, storing the result in cfg.Files.
// Returns the total number of files scanned before filtering.
func resolveFiles(cfg *config.Config, log *zap.Logger) (int, error) {
	includes, excludes, err := loadPatterns(cfg)
	if err != nil {
		return 0, err
	}

	if len(includes) == 0 {
		if cfg.Decrypt {
			includes = append(includes, "*"+cfg.Suffixes.Encrypt)
		} else {
			includes = append(includes, config.DefaultAssetPattern)
		}
	}

	if !cfg.Decrypt {
		// Never encrypt an already encrypted output.
		excludes = append(excludes, "*"+cfg.Suffixes.Encrypt)
	}

	log.Debug("resolving files",
		zap.Strings("roots", cfg.Roots),
		zap.Strings("include", includes),
		zap.Strings("exclude", excludes))

	files, missing, scanned, err := filter.Resolve(cfg.Roots, includes, excludes)

	for _, root := range missing {
		log.Debug("skipping missing root", zap.String("root", root))
	}

	if err != nil {
		return scanned, fmt.Errorf("filtering files: %w", err)
	}

	cfg.Files = files

	return scanned, nil
}

// loadPatterns merges CLI and file-based include/exclude patterns.
func loadPatterns(cfg *config.Config) (includes, excludes []string, err error) {
	includes, err = filter.Patterns(cfg.Include, cfg.IncludeFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("loading include patterns: %w", err)
	}

	excludes, err = filter.Patterns(cfg.Exclude, cfg.ExcludeFrom)
	if err != nil {
		return nil, nil, fmt.Errorf("loading exclude patterns: %w", err)
	}

	return includes, excludes, nil
}

// dryRun previews what would be processed without writing anything.
func dryRun(cfg *config.Config, streams Streams, scanned, excluded int, start time.Time) {
	var totalSize int64

	for _, file := range cfg.Files {
		out, err := encryption.OutputPath(file, cfg.Suffixes, cfg.Decrypt)
		if err != nil {
			fmt.Fprintf(streams.Err, "Error processing %q: %v\n", file, err)

			continue
		}

		if !cfg.Quiet {
			fmt.Fprintf(streams.Out, "Would process %q -> %q\n", file, out)
		}

		if cfg.Stats {
			if info, err := os.Stat(file); err == nil {
				totalSize += info.Size()
			}
		}
	}

	if cfg.Stats {
		printStats(streams.Err, scanned, excluded, len(cfg.Files), 0, totalSize, time.Since(start))
	}
}

func printStats(w io.Writer, scanned, excluded, processed, errored int, totalSize int64, duration time.Duration) {
	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Scanned:   %d\n", scanned)
	fmt.Fprintf(w, "  Excluded:  %d\n", excluded)
	fmt.Fprintf(w, "  Processed: %d\n", processed)
	fmt.Fprintf(w, "  Errors:    %d\n", errored)
	//nolint:gosec // totalSize is always non-negative (sum of file sizes)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, totalSize))))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
