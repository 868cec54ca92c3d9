package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreatesOutputDirAndLogs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	logger := New(dir, "info")
	require.NotNil(t, logger)

	logger.Info().Str("slug", "market-summary-20260824-0930").Msg("publish run starting")

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewUncreatableDirFallsBackToConsole(t *testing.T) {
	// A file where the directory should go makes MkdirAll fail; the logger
	// must still come back usable.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	logger := New(filepath.Join(blocker, "logs"), "debug")
	require.NotNil(t, logger)

	logger.Warn().Msg("file writer unavailable")
}
