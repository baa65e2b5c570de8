package logging

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setTestLogDir points the package at a temp directory and resets the
// run-scoped globals, restoring them when the test finishes.
func setTestLogDir(t *testing.T) {
	t.Helper()

	origLogDir := logDir
	origDirErr := dirErr
	origRunID := runID

	// sync.Once must not be copied, so record whether each had fired and
	// rebuild equivalent state on cleanup instead of saving the values.
	origDirOnceFired := true
	dirOnce.Do(func() { origDirOnceFired = false })
	origRunIDOnceFired := true
	runIDOnce.Do(func() { origRunIDOnceFired = false })

	logDir = t.TempDir()
	dirErr = nil
	dirOnce = sync.Once{}
	dirOnce.Do(func() {}) // consume so ensureLogDir keeps the temp dir
	runID = ""
	runIDOnce = sync.Once{}

	t.Cleanup(func() {
		logDir = origLogDir
		dirErr = origDirErr
		dirOnce = sync.Once{}
		if origDirOnceFired {
			dirOnce.Do(func() {})
		}
		runID = origRunID
		runIDOnce = sync.Once{}
		if origRunIDOnceFired {
			runIDOnce.Do(func() {})
		}
	})
}

func TestNewLoggerWritesToRunFile(t *testing.T) {
	setTestLogDir(t)

	logger, err := NewLogger("webapi")
	require.NoError(t, err)
	defer logger.Close()

	logger.Infof("created %s record %s", "accounts", "abc-123")
	logger.Warnf("cleanup skipped")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(logger.Path())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "[webapi]")
	assert.Contains(t, content, "[INFO] created accounts record abc-123")
	assert.Contains(t, content, "[WARN] cleanup skipped")
}

func TestLoggersShareRunFile(t *testing.T) {
	setTestLogDir(t)

	a, err := NewLogger("uci")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewLogger("factory")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.Path(), b.Path())
	assert.True(t, strings.Contains(a.Path(), RunID()))
}

func TestRunIDStable(t *testing.T) {
	setTestLogDir(t)

	first := RunID()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, RunID())
}

func TestCloseIdempotent(t *testing.T) {
	setTestLogDir(t)

	logger, err := NewLogger("grid")
	require.NoError(t, err)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
}

func TestFallbackLoggerDoesNotPanic(t *testing.T) {
	logger := fallbackLogger("browser")
	assert.Empty(t, logger.Path())
	logger.Debugf("no file behind this logger")
	assert.NoError(t, logger.Close())
}
