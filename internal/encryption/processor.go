package encryption

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/formless-game/assetkit/internal/config"
	"github.com/formless-game/assetkit/internal/fileutil"
)

// Processor handles the encryption and decryption of asset files.
type Processor struct {
	// cfg contains runtime configuration options
	cfg *config.Config

	// cipher transforms file contents
	cipher *Cipher

	// out receives the per-file report lines, errOut the failures
	out    io.Writer
	errOut io.Writer

	log *zap.Logger

	// results channels processing outcomes to the printer goroutine
	results chan Result
}

// Summary counts the outcomes of a ProcessFiles run.
type Summary struct {
	Processed int
	Errored   int
	Skipped   int
	TotalSize int64
}

// NewProcessor creates a new Processor with the given configuration.
// Failures are always reported to errOut. Per-file report lines go to out
// only with Verbose set; a successful run is otherwise silent.
func NewProcessor(cfg *config.Config, out, errOut io.Writer, log *zap.Logger) (*Processor, error) {
	key, err := cfg.Key.Bytes()
	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	c, err := NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}

	if log == nil {
		log = zap.NewNop()
	}

	return &Processor{
		cfg:     cfg,
		cipher:  c,
		out:     out,
		errOut:  errOut,
		log:     log,
		results: make(chan Result, len(cfg.Files)),
	}, nil
}

// ProcessFiles processes all files in the configuration.
//
// Without KeepGoing, the first failure stops new files from being started and
// its error is returned. With KeepGoing, every file is attempted and an error
// counting the failures is returned at the end.
//
//nolint:cyclop,gocognit
func (p *Processor) ProcessFiles(ctx context.Context) (Summary, error) {
	var summary Summary

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.cfg.Parallel)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for result := range p.results {
			if result.Error != nil {
				summary.Errored++

				fmt.Fprintf(p.errOut, "Error processing %q: %v\n", result.Input, result.Error)

				continue
			}

			summary.Processed++

			summary.TotalSize += result.OutputSize

			if p.cfg.Verbose && !p.cfg.Quiet {
				fmt.Fprintf(p.out, "Processed %q -> %q\n", result.Input, result.Output)
			}
		}
	}()

	started := 0

	for _, file := range p.cfg.Files {
		if !p.cfg.KeepGoing && gctx.Err() != nil {
			break
		}

		started++

		group.Go(func() error {
			if !p.cfg.KeepGoing && gctx.Err() != nil {
				return nil
			}

			outPath, err := p.outputPath(file)
			if err == nil {
				var size int64

				size, err = p.processFile(file, outPath)
				if err == nil {
					p.log.Debug("processed file", zap.String("input", file), zap.String("output", outPath))
					p.results <- Result{Input: file, Output: outPath, OutputSize: size}

					return nil
				}
			}

			p.results <- Result{Input: file, Error: err}

			if p.cfg.KeepGoing {
				return nil
			}

			return err
		})
	}

	err := group.Wait()

	close(p.results)

	<-done // Wait for printer to finish

	summary.Skipped = len(p.cfg.Files) - summary.Processed - summary.Errored

	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}

	if err != nil {
		p.log.Debug("aborted after first failure", zap.Int("started", started), zap.Int("skipped", summary.Skipped))

		return summary, fmt.Errorf("processing files: %w", err)
	}

	if summary.Errored > 0 {
		return summary, fmt.Errorf("processing files: %d of %d file(s) failed", summary.Errored, len(p.cfg.Files))
	}

	return summary, nil
}

// processFile transforms a single file into outPath through a temporary file,
// so a failed write never leaves a partial output behind.
func (p *Processor) processFile(filename, outPath string) (size int64, err error) {
	perm, err := fileutil.Mode(filename)
	if err != nil {
		return 0, err
	}

	inFile, err := os.Open(filepath.Clean(filename))
	if err != nil {
		return 0, fmt.Errorf("opening input file: %w", err)
	}
	defer inFile.Close()

	outFile, err := fileutil.Create(outPath, perm)
	if err != nil {
		return 0, fmt.Errorf("preparing atomic write: %w", err)
	}
	defer outFile.Abort()

	if _, err := transform(p.cipher, inFile, outFile); err != nil {
		if p.cfg.Decrypt {
			return 0, fmt.Errorf("decrypting file: %w", err)
		}

		return 0, fmt.Errorf("encrypting file: %w", err)
	}

	if err := inFile.Close(); err != nil {
		return 0, fmt.Errorf("closing input file: %w", err)
	}

	size, err = outFile.Commit()
	if err != nil {
		return 0, fmt.Errorf("finalizing output: %w", err)
	}

	return size, nil
}

// outputPath generates the output file path based on the input filename
// and the configured suffixes for encryption/decryption.
func (p *Processor) outputPath(filename string) (string, error) {
	return OutputPath(filename, p.cfg.Suffixes, p.cfg.Decrypt)
}

// OutputPath returns where the transformed copy of filename is written.
// Encrypting appends the encrypt suffix; decrypting strips it and appends the decrypt suffix.
func OutputPath(filename string, suffixes config.Suffixes, decrypt bool) (string, error) {
	if !decrypt {
		return filename + suffixes.Encrypt, nil
	}

	base, ok := strings.CutSuffix(filename, suffixes.Encrypt)
	if !ok || base == "" || os.IsPathSeparator(base[len(base)-1]) {
		return "", fmt.Errorf("%w: %q", ErrNotEncrypted, filename)
	}

	return base + suffixes.Decrypt, nil
}
