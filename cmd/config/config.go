// Package config wires viper-backed configuration into the card service.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	coreconfig "github.com/mattsolo1/grove-core/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mattsolo1/grove-cards/internal/server"
	"github.com/mattsolo1/grove-cards/pkg/models"
	"github.com/mattsolo1/grove-cards/pkg/service"
	"github.com/mattsolo1/grove-cards/pkg/vault"
)

// ExtensionKey names the block read from the grove configuration.
const ExtensionKey = "cards"

// Extension is the `cards` block of grove.yml.
type Extension struct {
	Vault   string `yaml:"vault"`
	DataDir string `yaml:"data_dir"`
}

var (
	cfgFile  string
	vaultDir string
)

// ErrNoVault is returned when no vault directory is configured anywhere.
var ErrNoVault = errors.New("no vault configured: pass --vault, set CARDS_VAULT, or add 'vault' to ~/.config/cards/config.yaml")

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(DefaultConfigDir(home))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("CARDS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if vaultDir != "" {
		viper.Set("vault", vaultDir)
	}

	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// DefaultConfigDir is where the config file lives under home.
func DefaultConfigDir(home string) string {
	return filepath.Join(home, ".config", "cards")
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "cards"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("server.addr", server.DefaultAddr)

	for key, value := range settingsMap(models.DefaultViewSettings()) {
		viper.SetDefault("view."+key, value)
	}
}

// VaultDir resolves the vault root: viper first, then the grove config
// extension.
func VaultDir() (string, error) {
	if dir := viper.GetString("vault"); dir != "" {
		return expandHome(dir), nil
	}

	cfg, err := coreconfig.LoadDefault()
	if err == nil {
		var ext Extension
		if err := cfg.UnmarshalExtension(ExtensionKey, &ext); err == nil && ext.Vault != "" {
			return expandHome(ext.Vault), nil
		}
	}
	return "", ErrNoVault
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// NewLogger returns the diagnostics logger; verbose enables debug output.
func NewLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// InitService opens the configured vault and builds the service over it.
func InitService(logger logrus.FieldLogger) (*service.Service, *vault.Local, error) {
	dir, err := VaultDir()
	if err != nil {
		return nil, nil, err
	}

	local, err := vault.NewLocal(dir, logger)
	if err != nil {
		return nil, nil, err
	}

	config := &service.Config{
		DataDir: expandHome(viper.GetString("data_dir")),
		Editor:  viper.GetString("editor"),
	}

	svc, err := service.New(config, local, service.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return svc, local, nil
}

// LoadSettings decodes and validates the `view` block. Sort aliases such
// as mtime are normalized.
func LoadSettings() (models.ViewSettings, error) {
	// Resolve leaf keys one by one so that env vars and single-key
	// overrides are merged with the config file, then decode the result.
	resolved := viper.New()
	resolved.Set("view", viewMap())

	settings := models.DefaultViewSettings()
	if err := resolved.UnmarshalKey("view", &settings); err != nil {
		return settings, fmt.Errorf("decode view settings: %w", err)
	}

	by, err := models.ParseSortBy(string(settings.SortBy))
	if err != nil {
		return settings, err
	}
	settings.SortBy = by
	dir, err := models.ParseSortDirection(string(settings.SortDirection))
	if err != nil {
		return settings, err
	}
	settings.SortDirection = dir

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// SaveSettings writes settings to the config file, creating it if needed.
func SaveSettings(settings models.ViewSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	for key, value := range settingsMap(settings) {
		viper.Set("view."+key, value)
	}

	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return viper.WriteConfig()
		}
	}

	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(DefaultConfigDir(home), "config.yaml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return viper.WriteConfigAs(path)
}

// SetSetting updates one view setting from its string form and saves the
// result. Unknown keys and invalid values leave the config untouched.
func SetSetting(key, value string) (models.ViewSettings, error) {
	if !isSettingKey(key) {
		return models.ViewSettings{}, fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(SettingKeys(), ", "))
	}

	previous := viper.Get("view." + key)
	viper.Set("view."+key, value)

	settings, err := LoadSettings()
	if err != nil {
		viper.Set("view."+key, previous)
		return settings, err
	}
	if err := SaveSettings(settings); err != nil {
		return settings, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// SettingKeys lists the keys accepted under `view`.
func SettingKeys() []string {
	var keys []string
	t := reflect.TypeOf(models.ViewSettings{})
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("mapstructure"); tag != "" {
			keys = append(keys, tag)
		}
	}
	sort.Strings(keys)
	return keys
}

func isSettingKey(key string) bool {
	for _, k := range SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

func viewMap() map[string]any {
	m := make(map[string]any)
	for _, key := range SettingKeys() {
		if v := viper.Get("view." + key); v != nil {
			m[key] = v
		}
	}
	return m
}

// settingsMap flattens settings into their config keys.
func settingsMap(settings models.ViewSettings) map[string]any {
	data, err := json.Marshal(settings)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// ViperSettings is the settings store backed by the config file. It
// serializes access to the global viper instance.
type ViperSettings struct{}

var settingsMu sync.Mutex

func (ViperSettings) Load() (models.ViewSettings, error) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return LoadSettings()
}

func (ViperSettings) Save(s models.ViewSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	return SaveSettings(s)
}

func AddGlobalFlags(cmd *cobra.Command) {
	if cmd.PersistentFlags().Lookup("config") == nil {
		cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/cards/config.yaml)")
	}
	cmd.PersistentFlags().StringVar(&vaultDir, "vault", "", "vault directory (overrides config)")
}
