// Package settings holds per-user display preferences.
package settings

import (
	"fmt"
	"strings"
)

// Theme is the color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when nothing is stored.
const DefaultTheme = ThemeLight

// ThemeKey is the storage key for the theme preference.
const ThemeKey = "theme"

// ParseTheme accepts "dark" or "light", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, nil
	case ThemeLight:
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("invalid theme %q (must be dark or light)", s)
	}
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Dark reports whether t is the dark theme.
func (t Theme) Dark() bool {
	return t == ThemeDark
}

// Store is a string key-value store for preferences.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Settings is the preference state backed by a Store.
type Settings struct {
	store Store
	theme Theme
}

// Load initializes settings from the store. A missing or unknown stored
// theme falls back to DefaultTheme.
func Load(store Store) *Settings {
	s := &Settings{store: store, theme: DefaultTheme}
	if v, ok := store.Get(ThemeKey); ok {
		if t, err := ParseTheme(v); err == nil {
			s.theme = t
		}
	}
	return s
}

// Theme returns the current theme.
func (s *Settings) Theme() Theme {
	return s.theme
}

// SetTheme changes the theme and persists it. Setting the current theme
// again does not touch the store.
func (s *Settings) SetTheme(t Theme) error {
	if t == s.theme {
		return nil
	}
	if err := s.store.Set(ThemeKey, string(t)); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	s.theme = t
	return nil
}

// Toggle flips between dark and light and returns the new theme.
func (s *Settings) Toggle() (Theme, error) {
	next := s.theme.Opposite()
	if err := s.SetTheme(next); err != nil {
		return s.theme, err
	}
	return next, nil
}
