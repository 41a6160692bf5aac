package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-cards/pkg/models"
)

func setup(t *testing.T, configYAML string) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CARDS_VAULT", "")

	viper.Reset()
	t.Cleanup(viper.Reset)
	cfgFile, vaultDir = "", ""

	if configYAML != "" {
		dir := DefaultConfigDir(home)
		require.NoError(t, os.MkdirAll(dir, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0644))
	}
	InitConfig()
	return home
}

func TestLoadSettingsDefaults(t *testing.T) {
	setup(t, "")
	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultViewSettings(), settings)
}

func TestLoadSettingsFromFile(t *testing.T) {
	setup(t, `
vault: /tmp/vault
view:
  sort_by: mtime
  sort_direction: asc
  show_folders: true
  preview_length: 200
`)
	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.SortByModified, settings.SortBy)
	assert.Equal(t, models.SortAsc, settings.SortDirection)
	assert.True(t, settings.ShowFolders)
	assert.Equal(t, 200, settings.PreviewLength)
	assert.Equal(t, models.DefaultViewSettings().CardWidth, settings.CardWidth)

	dir, err := VaultDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/vault", dir)
}

func TestLoadSettingsInvalid(t *testing.T) {
	setup(t, "view:\n  preview_length: 5\n")
	_, err := LoadSettings()
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	home := setup(t, "")
	t.Setenv("CARDS_VAULT", "~/notes")
	t.Setenv("CARDS_VIEW_SHOW_DATE", "false")

	dir, err := VaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes"), dir)

	settings, err := LoadSettings()
	require.NoError(t, err)
	assert.False(t, settings.ShowDate)
}

func TestSetSetting(t *testing.T) {
	home := setup(t, "")

	settings, err := SetSetting("sort_by", "ctime")
	require.NoError(t, err)
	assert.Equal(t, models.SortByCreated, settings.SortBy)

	written, err := os.ReadFile(filepath.Join(DefaultConfigDir(home), "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "sort_by: created")

	_, err = SetSetting("card_width", "9000")
	assert.Error(t, err)
	settings, err = LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultViewSettings().CardWidth, settings.CardWidth, "rejected values are rolled back")

	_, err = SetSetting("colour", "red")
	assert.ErrorContains(t, err, "unknown setting")
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()
	assert.Contains(t, keys, "show_all_files_at_root")
	assert.Contains(t, keys, "date_format")
	assert.Len(t, keys, 12)
}
