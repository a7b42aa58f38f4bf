package commands

import (
	"github.com/spf13/cobra"

	"github.com/formless-game/assetkit/internal/logic"
)

// NewCheckCommand creates a new cobra command for the check subcommand.
func NewCheckCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check [flags] [roots...]",
		Short:   "Validate that include/exclude patterns match files",
		Args:    cobra.ArbitraryArgs,
		PreRunE: rootsFromArgs(a),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(streams logic.Streams) error {
				return logic.RunCheck(a.cfg, streams)
			})
		},
	}

	addFilterFlags(cmd)

	return cmd
}
