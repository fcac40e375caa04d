package domain

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Theme is the colour scheme preference shown to the user
type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// ParseTheme validates a theme name
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeSystem, ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (system|light|dark)", s)
	}
}

// Defaults applied when nothing was persisted yet
const (
	DefaultNotificationsEnabled   = true
	DefaultRefreshIntervalSeconds = 300
	DefaultTheme                  = ThemeSystem
)

// Settings holds the user preferences owned by the state store
type Settings struct {
	Credential             string
	NotificationsEnabled   bool
	RefreshIntervalSeconds int
	Theme                  Theme
}

// DefaultSettings returns the settings used on first run
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled:   DefaultNotificationsEnabled,
		RefreshIntervalSeconds: DefaultRefreshIntervalSeconds,
		Theme:                  DefaultTheme,
	}
}

// HasCredential reports whether a credential is stored
func (s Settings) HasCredential() bool {
	return s.Credential != ""
}

// Validate checks the invariants of the settings
func (s Settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.RefreshIntervalSeconds, validation.Required, validation.Min(1)),
		validation.Field(&s.Theme, validation.Required, validation.In(ThemeSystem, ThemeLight, ThemeDark)),
	)
}

// SettingsPatch is a partial update; nil fields are left untouched
type SettingsPatch struct {
	Credential             *string
	NotificationsEnabled   *bool
	RefreshIntervalSeconds *int
	Theme                  *Theme
}

// Apply returns a copy of s with the patch applied
func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Credential != nil {
		s.Credential = *p.Credential
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	if p.RefreshIntervalSeconds != nil {
		s.RefreshIntervalSeconds = *p.RefreshIntervalSeconds
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s
}
