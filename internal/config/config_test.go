package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil)
	require.NoError(t, err)
	assert.False(t, cfg.App.Manpage)
	assert.False(t, cfg.Logging.Trace)
	assert.Empty(t, cfg.Logging.FilePath)
	assert.Equal(t, "false", cfg.Flags["trace"])
	assert.Empty(t, cfg.Args)
}

func TestLoadArgsParsesFlags(t *testing.T) {
	args := []string{"--trace", "--log-file", "/tmp/fm.log"}
	cfg, err := LoadArgs(args)
	require.NoError(t, err)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "/tmp/fm.log", cfg.Logging.FilePath)
	assert.Equal(t, "true", cfg.Flags["trace"])
	assert.Equal(t, "/tmp/fm.log", cfg.Flags["logFile"])
	assert.Equal(t, args, cfg.Args)
}

func TestLoadArgsManpage(t *testing.T) {
	cfg, err := LoadArgs([]string{"--manpage"})
	require.NoError(t, err)
	assert.True(t, cfg.App.Manpage)
	assert.NoError(t, Validate(cfg))
}

func TestLoadArgsRejectsUnknownInput(t *testing.T) {
	_, err := LoadArgs([]string{"--socket", "x"})
	assert.Error(t, err)

	_, err = LoadArgs([]string{"extra"})
	assert.ErrorContains(t, err, "unexpected argument")
}

func TestValidateRejectsDirectoryLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadArgs([]string{"--log-file", dir})
	require.NoError(t, err)
	assert.ErrorContains(t, Validate(cfg), "is a directory")

	cfg, err = LoadArgs([]string{"--log-file", dir + "/fm.log"})
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}
