package session

// KeyThemeMode stores the display preference alongside the credentials.
const KeyThemeMode = "theme-mode"

// ThemeMode is the persisted display preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// ThemeMode returns the stored preference, defaulting to system.
func (s *Store) ThemeMode() ThemeMode {
	raw, _ := s.storage.Get(KeyThemeMode)
	switch mode := ThemeMode(raw); mode {
	case ThemeLight, ThemeDark, ThemeSystem:
		return mode
	default:
		return ThemeSystem
	}
}

// SetThemeMode persists a preference; unknown values fall back to system.
func (s *Store) SetThemeMode(mode ThemeMode) error {
	switch mode {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		mode = ThemeSystem
	}
	return s.storage.Set(KeyThemeMode, string(mode))
}

// ToggleTheme advances the preference light -> dark -> system -> light and
// returns the new mode.
func (s *Store) ToggleTheme() (ThemeMode, error) {
	var next ThemeMode
	switch s.ThemeMode() {
	case ThemeLight:
		next = ThemeDark
	case ThemeDark:
		next = ThemeSystem
	default:
		next = ThemeLight
	}
	return next, s.SetThemeMode(next)
}

// Resolve maps the preference to a concrete light or dark choice, using
// systemDark when the preference is system.
func (m ThemeMode) Resolve(systemDark bool) ThemeMode {
	if m == ThemeSystem {
		if systemDark {
			return ThemeDark
		}
		return ThemeLight
	}
	return m
}
