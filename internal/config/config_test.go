package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"storebrowse/internal/config"
	"storebrowse/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary YAML config file
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)
	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())
	return tmpFile.Name()
}

const (
	validYAML = `
root: /srv/pass
filter:
  mode: glob
  match: name
watch: true
window:
  title: passwords
  width: 800
`
	invalidSyntaxYAML = `
root: "/srv/pass
filter: [
`
	invalidModeYAML = `
filter:
  mode: regex
`
	invalidMatchYAML = `
filter:
  match: content
`
)

func TestLoadConfigFile(t *testing.T) {
	t.Run("load valid config", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, validYAML))
		require.NoError(t, err)

		assert.Equal(t, "/srv/pass", cfg.Root)
		assert.Equal(t, config.FilterGlob, cfg.Filter.Mode)
		assert.Equal(t, config.MatchName, cfg.Filter.Match)
		assert.True(t, cfg.Watch)
		assert.Equal(t, "passwords", cfg.Window.Title)
		assert.Equal(t, float32(800), cfg.Window.Width)
		// unset fields keep their defaults
		assert.Equal(t, float32(500), cfg.Window.Height)
	})

	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultRoot, cfg.Root)
		assert.Equal(t, config.FilterSubstring, cfg.Filter.Mode)
		assert.Equal(t, config.MatchPath, cfg.Filter.Match)
		assert.False(t, cfg.Watch)
	})

	t.Run("invalid syntax", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidSyntaxYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
	})

	t.Run("invalid filter mode", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidModeYAML))
		require.Error(t, err)
		assert.True(t, errors.IsInvalidConfig(err))
		assert.Contains(t, err.Error(), "filter.mode")
	})

	t.Run("invalid filter target", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidMatchYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "filter.match")
	})
}

func TestValidate(t *testing.T) {
	cfg := config.New()
	require.NoError(t, cfg.Validate())

	cfg.Window.Width = 0
	assert.True(t, errors.IsInvalidConfig(cfg.Validate()))

	cfg = config.New()
	cfg.Root = "  "
	assert.Error(t, cfg.Validate())

	var nilCfg *config.Config
	assert.Error(t, nilCfg.Validate())
}

func TestLoadConfigFileUnreadable(t *testing.T) {
	t.Run("directory", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := config.LoadConfigFile(dir)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Equal(t, errors.FileOperationFailed, errors.KindOf(err))
		assert.False(t, errors.IsInvalidConfig(err))
	})

	t.Run("permission denied", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("Skipping test when running as root")
		}
		path := createTestYAML(t, validYAML)
		require.NoError(t, os.Chmod(path, 0o000))

		cfg, err := config.LoadConfigFile(path)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.True(t, errors.IsFileAccessDenied(err))
	})
}

func TestRootPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := config.New()
	root, err := cfg.RootPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".password-store"), root)

	cfg.Root = "relative/dir"
	root, err = cfg.RootPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(root))
}

func TestExpandUser(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, config.ExpandUser("~"))
	assert.Equal(t, filepath.Join(home, "x"), config.ExpandUser("~/x"))
	assert.Equal(t, "/abs", config.ExpandUser("/abs"))
	assert.Equal(t, "~other/x", config.ExpandUser("~other/x"))
	assert.Equal(t, "", config.ExpandUser(""))
}
