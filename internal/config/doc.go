// Package config provides the user preferences file and the questionnaire
// (form) file format.
//
// # Preferences File Location
//
// The preferences file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/termask/config.yaml or $HOME/.config/termask/config.yaml
//   - macOS: $HOME/.config/termask/config.yaml
//   - Windows: %LOCALAPPDATA%\termask\config.yaml
//
// A missing file is not an error; NewPreferences supplies the defaults.
//
// # Forms
//
// A form is a versioned YAML list of questions. Each question names the
// prompt kind (text, integer, email, select, multiselect) and the settings
// that kind accepts. LoadForm and ParseForm reject a form with every
// problem found, wrapped in a *FormError.
//
// # Usage Example
//
//	prefs, err := config.LoadPreferences()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	theme := ui.NewTheme(lipgloss.DefaultRenderer(), prefs.Palette())
//
//	form, err := config.LoadForm("onboarding.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
