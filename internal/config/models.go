package config

import (
	"github.com/muurk/termask/internal/ui"
)

// Output formats for collected answers
const (
	OutputYAML    = "yaml"
	OutputJSON    = "json"
	OutputSummary = "summary"
)

// OutputFormats lists the accepted values of Preferences.Output.
var OutputFormats = []string{OutputYAML, OutputJSON, OutputSummary}

// Preferences represents the user configuration file.
type Preferences struct {
	Version int          `yaml:"version"`
	Theme   ui.Palette   `yaml:"theme,omitempty"`  // Colours and glyphs; empty fields use the defaults
	Output  string       `yaml:"output,omitempty"` // Default answer format for "termask run"
	Remote  *RemotePrefs `yaml:"remote,omitempty"` // Remote session defaults
}

// RemotePrefs holds defaults for serving and joining remote form sessions.
type RemotePrefs struct {
	Listen          string `yaml:"listen"`           // Address "termask serve" binds to
	Advertise       bool   `yaml:"advertise"`        // Announce served forms over mDNS
	DiscoverTimeout int    `yaml:"discover_timeout"` // mDNS browse timeout in seconds
}

// NewPreferences creates Preferences with default values.
func NewPreferences() *Preferences {
	return &Preferences{
		Version: 1,
		Theme:   ui.DefaultPalette(),
		Output:  OutputYAML,
		Remote:  defaultRemote(),
	}
}

func defaultRemote() *RemotePrefs {
	return &RemotePrefs{
		Listen:          ":7357",
		Advertise:       true,
		DiscoverTimeout: 5,
	}
}

// Palette returns the configured palette completed with the defaults.
func (p *Preferences) Palette() ui.Palette {
	return p.Theme.Merge(ui.DefaultPalette())
}

// OutputFormat returns the configured output format, or yaml when unset.
func (p *Preferences) OutputFormat() string {
	if p.Output == "" {
		return OutputYAML
	}
	return p.Output
}
