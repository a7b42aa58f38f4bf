package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/formless-game/assetkit/internal/config"
	"github.com/formless-game/assetkit/internal/logging"
	"github.com/formless-game/assetkit/internal/logic"
)

// envPrefix prefixes the environment variables bound to flags, e.g. ASSETKIT_KEY_HEX.
const envPrefix = "ASSETKIT"

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfg   *config.Config
	viper *viper.Viper
	log   *zap.Logger
}

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding, config file loading, and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	a := &app{cfg: cfg, viper: viper.New(), log: zap.NewNop()}

	root := &cobra.Command{
		Use:   "assetkit [flags] command [flags]",
		Short: "Asset pipeline utilities for Formless",
		Long: `Offline tools for the game's asset pipeline.

Builds "everything unlocked" save files from the levels directory, and
obfuscates text assets with the game's repeating-key XOR cipher.`,
		Version:           version,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = a.log.Sync()
		},
	}

	flags := root.PersistentFlags()

	flags.String("config", "", "Path to a config file (default .assetkit.{yaml,json,toml} in the working directory)")
	flags.BoolP("show", "s", false, "Show the configuration and exit")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.BoolP("verbose", "v", false, "Report each processed file and enable debug logging")
	flags.Bool("dry", false, "List what would be written without writing anything")
	flags.IntP("parallel", "j", 1, "Number of files processed concurrently")

	flags.StringSlice("roots", []string{"assets", "levels"}, "Directories searched recursively for assets")

	flags.StringP("key", "k", "", "XOR key as a plain string (defaults to the game's key)")
	flags.String("key-hex", "", "XOR key, hex-encoded")
	flags.StringP("key-file", "f", "", "Path to a file holding the XOR key")

	flags.String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	flags.String("levels", "levels", "Directory holding the level files")
	flags.String("level-ext", ".txt", "Extension of level files")
	flags.String("save", "save.txt", "Path of the save file")

	root.AddCommand(
		NewSaveCommand(a),
		NewEncryptCommand(a),
		NewDecryptCommand(a),
		NewCheckCommand(a),
	)

	return root
}

// load binds flags, environment and config file into the configuration and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	v := a.viper

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v); err != nil {
		return err
	}

	if err := v.Unmarshal(a.cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	log, err := logging.New(a.cfg.Verbose, a.cfg.Quiet)
	if err != nil {
		return err
	}

	a.log = log

	if used := v.ConfigFileUsed(); used != "" {
		a.log.Debug("loaded config file", zap.String("path", used))
	}

	return nil
}

// readConfigFile reads the explicit --config file, or an optional .assetkit file in the working directory.
func readConfigFile(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}

		return nil
	}

	v.SetConfigName(".assetkit")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	return nil
}

// run validates the configuration and calls fn, or prints the configuration when --show is set.
func (a *app) run(cmd *cobra.Command, fn func(logic.Streams) error) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	streams := logic.Streams{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}

	if a.cfg.Show {
		out, err := a.cfg.Display()
		if err != nil {
			return err
		}

		fmt.Fprint(streams.Out, out)

		return nil
	}

	return fn(streams)
}
