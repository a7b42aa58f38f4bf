package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formless-game/assetkit/internal/config"
)

func valid() config.Config {
	return config.Config{
		Parallel: 1,
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Levels:   config.Levels{Dir: "levels", Extension: ".txt", SaveFile: "save.txt"},
		Roots:    []string{"assets", "levels"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{
			name:    "key and hex key",
			mutate:  func(c *config.Config) { c.Key.String, c.Key.Hex = "abc", "616263" },
			wantErr: "--key is mutually exclusive with --key-hex",
		},
		{
			name:    "hex key and key file",
			mutate:  func(c *config.Config) { c.Key.Hex, c.Key.File = "616263", "key.txt" },
			wantErr: "--key-hex is mutually exclusive with --key-file",
		},
		{
			name:    "bad hex",
			mutate:  func(c *config.Config) { c.Key.Hex = "zz" },
			wantErr: "invalid key format",
		},
		{
			name:    "zero parallel",
			mutate:  func(c *config.Config) { c.Parallel = 0 },
			wantErr: "Parallel must be at least 1",
		},
		{
			name:    "missing suffix",
			mutate:  func(c *config.Config) { c.Suffixes.Encrypt = "" },
			wantErr: "--encrypt-ext is required",
		},
		{
			name:    "no roots",
			mutate:  func(c *config.Config) { c.Roots = nil },
			wantErr: "Roots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestKeyBytes(t *testing.T) {
	t.Parallel()

	keyFile := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(keyFile, []byte("from-file\n"), 0o600))

	tests := []struct {
		name string
		key  config.Key
		want string
	}{
		{name: "default", key: config.Key{}, want: config.DefaultKey},
		{name: "string", key: config.Key{String: "abc"}, want: "abc"},
		{name: "hex", key: config.Key{Hex: "616263"}, want: "abc"},
		{name: "file", key: config.Key{File: keyFile}, want: "from-file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.key.Bytes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDisplayMasksKey(t *testing.T) {
	t.Parallel()

	cfg := valid()
	cfg.Key.String = "super-secret"

	out, err := cfg.Display()
	require.NoError(t, err)
	assert.NotContains(t, out, "super-secret")
	assert.Contains(t, out, "<masked>")
	assert.Equal(t, "super-secret", cfg.Key.String)
}
