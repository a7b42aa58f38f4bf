package commands

import (
	"github.com/spf13/cobra"

	"github.com/formless-game/assetkit/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] [roots...]",
		Aliases: []string{"dec"},
		Short:   "Decrypt encrypted assets",
		Long: `Recursively decrypts every file ending in the encrypted suffix under the roots,
writing the file with the suffix stripped (plus <decrypt-ext>, if set).`,
		Args: cobra.ArbitraryArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			a.cfg.Decrypt = true

			return rootsFromArgs(a)(cmd, args)
		},
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
