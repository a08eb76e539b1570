package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "termask"
	configFile = "config.yaml"
)

var (
	// Global preferences instance (loaded lazily)
	globalPrefs     *Preferences
	globalPrefsOnce sync.Once
	globalPrefsErr  error

	// Mutex for thread-safe file operations
	fileMutex sync.Mutex
)

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/termask or $HOME/.config/termask
//   - macOS: $HOME/.config/termask
//   - Windows: %LOCALAPPDATA%\termask
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// LoadPreferences loads the preferences from the default location.
// If the file doesn't exist, returns the defaults.
// Thread-safe - multiple calls return the same instance.
func LoadPreferences() (*Preferences, error) {
	globalPrefsOnce.Do(func() {
		var path string
		path, globalPrefsErr = GetConfigPath()
		if globalPrefsErr != nil {
			globalPrefsErr = fmt.Errorf("failed to get config path: %w", globalPrefsErr)
			return
		}
		globalPrefs, globalPrefsErr = LoadPreferencesFile(path)
	})
	return globalPrefs, globalPrefsErr
}

// ReloadPreferences discards the cached preferences and reads them again.
func ReloadPreferences() (*Preferences, error) {
	fileMutex.Lock()
	globalPrefsOnce = sync.Once{}
	fileMutex.Unlock()
	return LoadPreferences()
}

// LoadPreferencesFile reads preferences from path. A missing file yields
// the defaults.
func LoadPreferencesFile(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewPreferences(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var prefs Preferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if prefs.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", prefs.Version)
	}
	if prefs.Output != "" && !slices.Contains(OutputFormats, prefs.Output) {
		return nil, fmt.Errorf("unknown output format %q (expected one of %v)", prefs.Output, OutputFormats)
	}
	if prefs.Remote == nil {
		prefs.Remote = defaultRemote()
	}

	return &prefs, nil
}

// Save writes the preferences to the default location.
func (p *Preferences) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return p.SaveFile(path)
}

// SaveFile writes the preferences to path.
// Performs an atomic write to prevent corruption on crash.
func (p *Preferences) SaveFile(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# termask configuration file
# Theme colours accept hex ("#43BF6D") or ANSI numbers ("2").
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// CreateDefaultConfig writes the default preferences to the default
// location. An existing file is left untouched and reported as an error.
func CreateDefaultConfig() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	return path, NewPreferences().SaveFile(path)
}
