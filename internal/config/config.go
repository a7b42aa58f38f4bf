// Package config holds the runtime configuration shared by all assetkit commands.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// DefaultKey is the XOR key the game ships with.
// Assets encrypted with any other key cannot be read by the game.
const DefaultKey = "FORMLESS_WILL_REMEMBER_YOU"

// DefaultAssetPattern selects the text assets encrypted when no include pattern is given.
const DefaultAssetPattern = "*.txt"

// Config represents the configuration for the assetkit commands.
type Config struct {
	// Show the configuration and exit
	Show bool `yaml:"-"`

	// Suppress non-error output
	Quiet bool

	// Enable debug logging
	Verbose bool

	// Print a summary after processing
	Stats bool

	// List what would be processed without writing anything
	Dry bool

	// Number of files processed concurrently
	Parallel int `validate:"min=1"`

	// Process every file even when some fail
	KeepGoing bool `mapstructure:"keep-going" yaml:"keep-going"`

	// Key sources for the XOR cipher
	Key Key `mapstructure:",squash" yaml:"key"`

	// Suffixes used for encrypted and decrypted outputs
	Suffixes Suffixes `mapstructure:",squash" yaml:"suffixes"`

	// Save builder settings
	Levels Levels `mapstructure:",squash" yaml:"levels"`

	// Directories walked by the encryptor
	Roots []string `validate:"min=1,dive,required"`

	// Patterns selecting files under the roots
	Include     []string
	Exclude     []string
	IncludeFrom string `mapstructure:"include-from" yaml:"include-from" label:"--include-from"`
	ExcludeFrom string `mapstructure:"exclude-from" yaml:"exclude-from" label:"--exclude-from"`

	// Set by the decrypt command
	Decrypt bool `mapstructure:"-" yaml:"-"`

	// Files resolved from Roots; filled in before processing
	Files []string `mapstructure:"-" yaml:"-"`
}

// Key holds the possible sources of the XOR key. At most one may be set;
// when none is, DefaultKey is used.
type Key struct {
	String string `mapstructure:"key"      yaml:"string,omitempty" label:"--key"      validate:"exclusive=Hex,exclusive=File"`
	Hex    string `mapstructure:"key-hex"  yaml:"hex,omitempty"    label:"--key-hex"  validate:"exclusive=File"`
	File   string `mapstructure:"key-file" yaml:"file,omitempty"   label:"--key-file"`
}

// Suffixes configures output naming.
type Suffixes struct {
	Encrypt string `mapstructure:"encrypt-ext" yaml:"encrypt" label:"--encrypt-ext" validate:"required"`
	Decrypt string `mapstructure:"decrypt-ext" yaml:"decrypt" label:"--decrypt-ext"`
}

// Levels configures the save builder.
type Levels struct {
	Dir       string `mapstructure:"levels"    yaml:"dir"  label:"--levels"    validate:"required"`
	Extension string `mapstructure:"level-ext" yaml:"ext"  label:"--level-ext" validate:"required"`
	SaveFile  string `mapstructure:"save"      yaml:"save" label:"--save"      validate:"required"`
}

// Bytes resolves the configured key source into raw key bytes.
func (k Key) Bytes() ([]byte, error) {
	switch {
	case k.Hex != "":
		key, err := hex.DecodeString(strings.TrimSpace(k.Hex))
		if err != nil {
			return nil, fmt.Errorf("decoding hex key: %w", err)
		}

		return key, nil
	case k.File != "":
		data, err := os.ReadFile(k.File)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		return []byte(strings.TrimRight(string(data), "\r\n")), nil
	case k.String != "":
		return []byte(k.String), nil
	default:
		return []byte(DefaultKey), nil
	}
}

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return fmt.Errorf("validating configuration: %w", describe(fieldErrs))
		}

		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key.Hex != "" {
		if _, err := hex.DecodeString(strings.TrimSpace(c.Key.Hex)); err != nil {
			return fmt.Errorf("invalid key format: %w", err)
		}
	}

	return nil
}

// Display renders the configuration as YAML with the key material masked.
func (c Config) Display() (string, error) {
	if c.Key.String != "" {
		c.Key.String = "<masked>"
	}

	if c.Key.Hex != "" {
		c.Key.Hex = "<masked>"
	}

	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshalling configuration: %w", err)
	}

	return string(out), nil
}
