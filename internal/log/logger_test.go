package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"storebrowse/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	// With must not leak fields back into the parent.
	l.Info("plain")
	assert.NotContains(t, buf.String(), "key1")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("root", "/tmp/store"), F("items", 3)).Info("json message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json message", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, "/tmp/store", entry["root"])
	assert.Equal(t, float64(3), entry["items"])
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	LogWithFields(F("error", fmt.Errorf("standard error").Error())).Error("error occurred")
	assert.Contains(t, buf.String(), "error occurred")
	assert.Contains(t, buf.String(), "standard error")
	buf.Reset()

	fileErr := errors.NewFileError("cannot read directory", "/missing", errors.FileNotFound, nil)
	LogWithError(fileErr).Error("listing failed")
	output := buf.String()
	assert.Contains(t, output, "listing failed")
	assert.Contains(t, output, "path=/missing")
	assert.Contains(t, output, "error_kind=file_not_found")
	buf.Reset()

	configErr := errors.NewConfigError("invalid value", "filter.mode", errors.InvalidConfig, nil)
	LogWithError(configErr).Error("config rejected")
	output = buf.String()
	assert.Contains(t, output, "config rejected")
	assert.Contains(t, output, "param=filter.mode")
	assert.Contains(t, output, "error_kind=invalid_config")
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	assert.Contains(t, buf.String(), "error=<nil>")
}

func TestPackageHelpers(t *testing.T) {
	var buf bytes.Buffer
	originalLogger := logger
	Configure(WithOutput(&buf))
	defer func() { logger = originalLogger }()

	Warnf("cannot watch %s", "/srv/pass")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "cannot watch /srv/pass")
	buf.Reset()

	Errorf("%s: %v", "Watch disabled", fmt.Errorf("too many open files"))
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "Watch disabled: too many open files")
	buf.Reset()

	Infof("Watching directory %s", "/srv/pass")
	assert.Contains(t, buf.String(), "Watching directory /srv/pass")
	buf.Reset()

	SetDebug(false)
	Debugf("hidden %d", 1)
	assert.Empty(t, buf.String())
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storebrowse.log")
	var buf bytes.Buffer

	originalLogger := logger
	Configure(WithOutput(&buf), WithFile(path))
	defer func() {
		require.NoError(t, Close())
		logger = originalLogger
	}()

	Infof("file test message")

	assert.Contains(t, buf.String(), "file test message")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestConfigureClosesReplacedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storebrowse.log")
	originalLogger := logger
	defer func() { logger = originalLogger }()

	Configure(WithOutput(io.Discard), WithFile(path))
	file := logger.file
	require.NotNil(t, file)

	Configure(WithOutput(io.Discard))

	_, err := file.Write([]byte("late line"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.NoError(t, Close(), "closing a logger without a file is a no-op")
}

func TestCloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storebrowse.log")
	l := NewLogger(WithOutput(io.Discard), WithFile(path))
	require.NotNil(t, l.file)

	require.NoError(t, l.Close())
	assert.Nil(t, l.file)
	assert.NoError(t, l.Close())
}
