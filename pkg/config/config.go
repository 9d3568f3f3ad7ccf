/*
Package config manages the TOML config of the openers search.

A config.toml is created with defaults on first run. Broken files are parsed
section by section so that one bad value does not discard the rest.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/openers/internal/utils"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Search SearchConfig `toml:"search"`
	Corpus CorpusConfig `toml:"corpus"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// SearchConfig tunes the starting word search.
type SearchConfig struct {
	WordLength       int     `toml:"word_length"`
	MaxSlack         int     `toml:"max_slack"`
	Workers          int     `toml:"workers"`
	TieBreakExponent float64 `toml:"tiebreak_exponent"`
	ProgressEvery    int     `toml:"progress_every"`
}

// CorpusConfig says where words come from.
type CorpusConfig struct {
	Path     string `toml:"path"`
	Dedupe   bool   `toml:"dedupe"`
	MaxWords int    `toml:"max_words"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxLimit     int `toml:"max_limit"`
	DefaultLimit int `toml:"default_limit"`
	MaxK         int `toml:"max_k"`
	CacheSize    int `toml:"cache_size"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/openers
// 2. ~/Library/Application Support/openers (macOS)
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
// 1. Custom path from -config
// 2. Default path: [UserConfigDir]/openers/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
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

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			WordLength:       5,
			MaxSlack:         0,
			Workers:          0,
			TieBreakExponent: 1.5,
			ProgressEvery:    0,
		},
		Corpus: CorpusConfig{
			Path:     "data",
			Dedupe:   true,
			MaxWords: 0,
		},
		Server: ServerConfig{
			MaxLimit:     64,
			DefaultLimit: 10,
			MaxK:         5,
			CacheSize:    32,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
		},
	}
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

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages the sections of a file that decode as TOML but
// not into Config, e.g. with a string where a number belongs.
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
	if section, ok := utils.ExtractSection(tempConfig, "corpus"); ok {
		extractCorpusConfig(section, &config.Corpus)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "word_length"); ok {
		search.WordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "max_slack"); ok {
		search.MaxSlack = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		search.Workers = val
	}
	if val, ok := utils.ExtractFloat(data, "tiebreak_exponent"); ok {
		search.TieBreakExponent = val
	}
	if val, ok := utils.ExtractInt64(data, "progress_every"); ok {
		search.ProgressEvery = val
	}
}

func extractCorpusConfig(data map[string]any, corpus *CorpusConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		corpus.Path = val
	}
	if val, ok := utils.ExtractBool(data, "dedupe"); ok {
		corpus.Dedupe = val
	}
	if val, ok := utils.ExtractInt64(data, "max_words"); ok {
		corpus.MaxWords = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		server.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_k"); ok {
		server.MaxK = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		server.CacheSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
}

// RebuildConfigFile force creates a new config.toml at the default path
func RebuildConfigFile() (string, error) {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return "", err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
