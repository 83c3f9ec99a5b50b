package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"roundbell/internal/core/model"
	"roundbell/internal/platform"
	"roundbell/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Rounds        int    `yaml:"rounds"`
	WorkSeconds   int    `yaml:"work_seconds"`
	RestSeconds   int    `yaml:"rest_seconds"`
	AssetsDir     string `yaml:"assets_dir"`
	PlayerCommand string `yaml:"player_command"`
	KeepAwake     *bool  `yaml:"keep_awake"`
	LogLevel      string `yaml:"log_level"`
}

// Store reads and writes settings at a fixed path.
type Store struct {
	path string
}

// NewStore creates a Store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns the Store in the per-user config directory.
func DefaultStore(appName string) (*Store, error) {
	configDir, err := platform.ConfigDir(appName)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return NewStore(filepath.Join(configDir, settingsFileName)), nil
}

// Path returns the settings file path.
func (store *Store) Path() string {
	return store.path
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func (store *Store) LoadSettings() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML atomically.
func (store *Store) SaveSettings(settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	keepAwake := settings.KeepAwake
	fileData := yamlSettings{
		Rounds:        settings.Timer.Rounds,
		WorkSeconds:   settings.Timer.WorkSeconds,
		RestSeconds:   settings.Timer.RestSeconds,
		AssetsDir:     settings.AssetsDir,
		PlayerCommand: settings.PlayerCommand,
		KeepAwake:     &keepAwake,
		LogLevel:      settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := writeFileAtomic(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	// A stored config that no longer validates is ignored as a whole.
	timer := model.TimerConfig{
		Rounds:      fileData.Rounds,
		WorkSeconds: fileData.WorkSeconds,
		RestSeconds: fileData.RestSeconds,
	}
	if timer.Validate() == nil {
		settings.Timer = timer
	}

	if fileData.AssetsDir != "" {
		settings.AssetsDir = fileData.AssetsDir
	}
	if fileData.PlayerCommand != "" {
		settings.PlayerCommand = fileData.PlayerCommand
	}
	if fileData.KeepAwake != nil {
		settings.KeepAwake = *fileData.KeepAwake
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
