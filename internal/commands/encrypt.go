package commands

import (
	"github.com/spf13/cobra"

	"github.com/formless-game/assetkit/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] [roots...]",
		Aliases: []string{"enc"},
		Short:   "Encrypt text assets",
		Long: `Recursively encrypts every matching file under the roots (assets and levels by default),
writing <file><encrypt-ext> next to each source. Sources are left untouched.`,
		Args:    cobra.ArbitraryArgs,
		PreRunE: rootsFromArgs(a),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, func(streams logic.Streams) error {
				return logic.Run(cmd.Context(), a.cfg, streams, a.log)
			})
		},
	}

	addFilterFlags(cmd)
	addProcessFlags(cmd)

	return cmd
}
