package logic

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/formless-game/assetkit/internal/config"
	"github.com/formless-game/assetkit/internal/levels"
	"github.com/formless-game/assetkit/internal/save"
)

// RunSave writes a save file unlocking every level in the levels directory.
//
// A missing levels directory is reported and treated as a clean exit;
// nothing is written in that case.
func RunSave(cfg *config.Config, streams Streams, log *zap.Logger) error {
	found, err := levels.Discover(cfg.Levels.Dir, cfg.Levels.Extension)
	if errors.Is(err, levels.ErrLevelsNotFound) {
		fmt.Fprintf(streams.Out, "Error: '%s' directory not found\n", cfg.Levels.Dir)

		return nil
	}

	if err != nil {
		return fmt.Errorf("discovering levels: %w", err)
	}

	paths := levels.Paths(found)

	log.Debug("discovered levels", zap.String("dir", cfg.Levels.Dir), zap.Int("count", len(paths)))

	if cfg.Dry {
		if !cfg.Quiet {
			for _, path := range paths {
				fmt.Fprintln(streams.Out, path)
			}
		}

		return nil
	}

	if err := save.Write(cfg.Levels.SaveFile, paths); err != nil {
		return err
	}

	if !cfg.Quiet {
		fmt.Fprintf(streams.Out, "God save created: %s\n", cfg.Levels.SaveFile)
		fmt.Fprintf(streams.Out, "%d levels unlocked.\n", len(paths))
	}

	return nil
}

// RunShow prints the levels remembered in the save file.
func RunShow(cfg *config.Config, streams Streams) error {
	record, err := save.Load(cfg.Levels.SaveFile)
	if err != nil {
		return fmt.Errorf("loading save: %w", err)
	}

	for _, level := range record.Levels() {
		fmt.Fprintln(streams.Out, level)
	}

	if !cfg.Quiet {
		fmt.Fprintf(streams.Err, "%d levels remembered.\n", record.Len())
	}

	return nil
}

// RunUnlock remembers each level in the save file, skipping those already present.
func RunUnlock(cfg *config.Config, streams Streams, log *zap.Logger, unlock []string) error {
	for _, level := range unlock {
		if _, err := os.Stat(level); err != nil {
			log.Warn("level file not found, remembering anyway", zap.String("level", level))
		}

		added, err := save.Remember(cfg.Levels.SaveFile, level)
		if err != nil {
			return fmt.Errorf("remembering %q: %w", level, err)
		}

		if cfg.Quiet {
			continue
		}

		if added {
			fmt.Fprintf(streams.Out, "Remembered %q\n", level)
		} else {
			fmt.Fprintf(streams.Out, "Already remembered %q\n", level)
		}
	}

	return nil
}
