package ui

import (
	"os"
	"strings"
	"sync"
)

// ThemeEnv selects the theme by name when colors are enabled.
const ThemeEnv = "FORKJOIN_THEME"

// Palette holds 256-color indices for each color category of a theme.
// An empty index renders without color.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Info      string
}

// Theme is a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// Colored reports whether the theme emits any color or emphasis.
func (t Theme) Colored() bool { return t.Name != NoColorTheme.Name }

var (
	// DarkTheme suits dark terminal backgrounds.
	DarkTheme = Theme{
		Name:    "dark",
		Palette: Palette{Primary: "39", Secondary: "245", Success: "82", Warning: "220", Error: "196", Info: "141"},
	}

	// LightTheme uses darker tones for light backgrounds.
	LightTheme = Theme{
		Name:    "light",
		Palette: Palette{Primary: "27", Secondary: "240", Success: "28", Warning: "130", Error: "124", Info: "54"},
	}

	// NoColorTheme renders plain text.
	NoColorTheme = Theme{Name: "none"}

	themes = map[string]Theme{
		DarkTheme.Name:    DarkTheme,
		LightTheme.Name:   LightTheme,
		NoColorTheme.Name: NoColorTheme,
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme. Tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// ThemeByName looks a theme up case-insensitively. Unknown names yield
// DarkTheme and false.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return DarkTheme, false
	}
	return t, true
}

// InitTheme picks the active theme. noColor or a set NO_COLOR variable
// (https://no-color.org/) disable colors; otherwise FORKJOIN_THEME names the
// theme, defaulting to dark.
func InitTheme(noColor bool) {
	t := DarkTheme
	if _, set := os.LookupEnv("NO_COLOR"); noColor || set {
		t = NoColorTheme
	} else if name := os.Getenv(ThemeEnv); name != "" {
		t, _ = ThemeByName(name)
	}
	SetCurrentTheme(t)
}
