package commands

import (
	"github.com/spf13/cobra"

	"github.com/formless-game/assetkit/internal/logic"
)

// NewSaveCommand creates a new cobra command for the save subcommand and its children.
func NewSaveCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save [flags] [levels-dir]",
		Short: "Create a save file with every level unlocked",
		Long: `Lists the level files directly under the levels directory (subdirectories are
not searched), sorts them, and writes one path per line to the save file.`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 {
				a.cfg.Levels.Dir = args[0]
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(streams logic.Streams) error {
				return logic.RunSave(a.cfg, streams, a.log)
			})
		},
	}

	cmd.AddCommand(newSaveShowCommand(a), newSaveUnlockCommand(a))

	return cmd
}

func newSaveShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the levels remembered in the save file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(streams logic.Streams) error {
				return logic.RunShow(a.cfg, streams)
			})
		},
	}
}

func newSaveUnlockCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock level...",
		Short: "Remember levels in the save file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, func(streams logic.Streams) error {
				return logic.RunUnlock(a.cfg, streams, a.log, args)
			})
		},
	}
}
