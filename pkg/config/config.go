/*
Package config manages the TOML config of kotoba.

The file lives at [UserConfigDir]/kotoba/config.toml and is created with defaults on first
run. A file that fails to decode is salvaged section by section; whatever cannot be read
keeps its default.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/kotoba/internal/utils"
	"github.com/bastiangx/kotoba/pkg/fuzzy"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Search       SearchConfig       `toml:"search"`
	Autocomplete AutocompleteConfig `toml:"autocomplete"`
	Store        StoreConfig        `toml:"store"`
	Dict         DictConfig         `toml:"dict"`
	Server       ServerConfig       `toml:"server"`
}

// SearchConfig tunes the study list search.
type SearchConfig struct {
	Threshold     float64 `toml:"threshold"`
	WordWeight    float64 `toml:"word_weight"`
	MeaningWeight float64 `toml:"meaning_weight"`
	Limit         int     `toml:"limit"`
}

// AutocompleteConfig tunes the interactive search.
type AutocompleteConfig struct {
	DebounceMs int `toml:"debounce_ms"`
}

// StoreConfig locates the study list database.
type StoreConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// DictConfig locates the reference dictionaries.
type DictConfig struct {
	HeisigPath string `toml:"heisig_path"`
	JMdictPath string `toml:"jmdict_path"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxQuery int `toml:"max_query"`
}

// Debounce returns the autocomplete debounce as a duration.
func (c AutocompleteConfig) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Threshold:     fuzzy.DefaultThreshold,
			WordWeight:    1,
			MeaningWeight: 1,
			Limit:         24,
		},
		Autocomplete: AutocompleteConfig{
			DebounceMs: 300,
		},
		Store: StoreConfig{
			Path:  "kotoba.db",
			Watch: true,
		},
		Dict: DictConfig{
			HeisigPath: "data/heisig_kanji.json",
			JMdictPath: "data/jmdict-eng-common.json",
		},
		Server: ServerConfig{
			MaxLimit: 64,
			MaxQuery: 60,
		},
	}
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	if c.Search.Threshold < 0 || c.Search.Threshold > 1 {
		return fmt.Errorf("search.threshold must be within [0, 1], got %v", c.Search.Threshold)
	}
	if c.Search.Limit < 1 {
		return fmt.Errorf("search.limit must be positive, got %d", c.Search.Limit)
	}
	if c.Autocomplete.DebounceMs < 0 {
		return fmt.Errorf("autocomplete.debounce_ms must not be negative, got %d", c.Autocomplete.DebounceMs)
	}
	if c.Server.MaxLimit < 1 || c.Server.MaxQuery < 1 {
		return fmt.Errorf("server.max_limit and server.max_query must be positive")
	}
	return nil
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/kotoba
// 2. ~/Library/Application Support/kotoba (macOS)
// 3. Current executable dir
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", utils.AppName)
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", utils.AppName)
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/kotoba/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Invalid values fall back to their defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Invalid configuration in %s: %v. Using defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "autocomplete"); ok {
		if val, ok := utils.ExtractInt64(section, "debounce_ms"); ok {
			config.Autocomplete.DebounceMs = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "store"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Store.Path = val
		}
		if val, ok := utils.ExtractBool(section, "watch"); ok {
			config.Store.Watch = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractString(section, "heisig_path"); ok {
			config.Dict.HeisigPath = val
		}
		if val, ok := utils.ExtractString(section, "jmdict_path"); ok {
			config.Dict.JMdictPath = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_limit"); ok {
			config.Server.MaxLimit = val
		}
		if val, ok := utils.ExtractInt64(section, "max_query"); ok {
			config.Server.MaxQuery = val
		}
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Invalid configuration in %s: %v. Using defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// extractSearchConfig extracts search configuration from a map
func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractFloat64(data, "threshold"); ok {
		search.Threshold = val
	}
	if val, ok := utils.ExtractFloat64(data, "word_weight"); ok {
		search.WordWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "meaning_weight"); ok {
		search.MeaningWeight = val
	}
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		search.Limit = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
