package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/muurk/termask/internal/ui"
)

func TestGetConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}

	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join("/tmp/xdg", "termask") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg/termask", configDir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/ada")
	configDir, err = GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join("/home/ada", ".config", "termask") {
		t.Errorf("GetConfigDir() = %v, want /home/ada/.config/termask", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewPreferences(t *testing.T) {
	prefs := NewPreferences()

	if prefs.Version != 1 {
		t.Errorf("NewPreferences().Version = %v, want 1", prefs.Version)
	}
	if prefs.OutputFormat() != OutputYAML {
		t.Errorf("OutputFormat() = %v, want yaml", prefs.OutputFormat())
	}
	if prefs.Remote == nil || prefs.Remote.DiscoverTimeout != 5 {
		t.Errorf("Remote defaults = %+v", prefs.Remote)
	}
	if prefs.Palette() != ui.DefaultPalette() {
		t.Errorf("Palette() = %+v, want defaults", prefs.Palette())
	}
}

func TestPreferencesSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	prefs := NewPreferences()
	prefs.Output = OutputJSON
	prefs.Theme.Arrow = ">"
	prefs.Remote.Listen = "127.0.0.1:9000"

	if err := prefs.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind")
	}

	loaded, err := LoadPreferencesFile(path)
	if err != nil {
		t.Fatalf("LoadPreferencesFile() error = %v", err)
	}
	if loaded.Output != OutputJSON {
		t.Errorf("Output = %v, want json", loaded.Output)
	}
	if loaded.Palette().Arrow != ">" || loaded.Palette().Filled != "◉" {
		t.Errorf("Palette() = %+v", loaded.Palette())
	}
	if loaded.Remote.Listen != "127.0.0.1:9000" {
		t.Errorf("Remote.Listen = %v", loaded.Remote.Listen)
	}
}

func TestLoadPreferencesFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"minimal", "version: 1\n", ""},
		{"partial theme", "version: 1\ntheme:\n  accent: \"2\"\n", ""},
		{"bad version", "version: 2\n", "unsupported config version"},
		{"bad output", "version: 1\noutput: xml\n", "unknown output format"},
		{"bad yaml", "version: [\n", "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			prefs, err := LoadPreferencesFile(path)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadPreferencesFile() error = %v", err)
			}
			if prefs.Remote == nil {
				t.Error("missing remote section should be defaulted")
			}
		})
	}
}

func TestLoadPreferencesFile_Missing(t *testing.T) {
	prefs, err := LoadPreferencesFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadPreferencesFile() error = %v", err)
	}
	if prefs.Version != 1 {
		t.Errorf("defaults expected, got %+v", prefs)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG layout only applies on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := CreateDefaultConfig()
	if err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# termask configuration file") {
		t.Errorf("missing header comment:\n%s", data)
	}

	if _, err := CreateDefaultConfig(); err == nil {
		t.Error("second CreateDefaultConfig() should refuse to overwrite")
	}

	prefs, err := ReloadPreferences()
	if err != nil {
		t.Fatalf("ReloadPreferences() error = %v", err)
	}
	if prefs.OutputFormat() != OutputYAML {
		t.Errorf("OutputFormat() = %v", prefs.OutputFormat())
	}
}

func BenchmarkGetConfigDir(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = GetConfigDir()
	}
}
