// Package prefs reads and writes the terminal dashboard preferences.
// Preferences live in ~/.config/nba-leaders/prefs.toml by default.
package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for the terminal dashboard.
type Prefs struct {
	DefaultTab  string `toml:"default_tab"`
	Accent      string `toml:"accent"`
	PollSeconds int    `toml:"poll_seconds"`
	// ServerURL points the dashboard at a running server instead of
	// fetching upstream directly.
	ServerURL string `toml:"server_url"`
}

const (
	defaultPrefsPath   = "~/.config/nba-leaders/prefs.toml"
	defaultTab         = "Points"
	defaultAccent      = "#C9082A"
	defaultPollSeconds = 60
)

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Defaults returns the preferences used when no file exists.
func Defaults() Prefs {
	return Prefs{
		DefaultTab:  defaultTab,
		Accent:      defaultAccent,
		PollSeconds: defaultPollSeconds,
	}
}

// Load reads preferences from path. A missing file yields the defaults and
// no error; an unreadable or malformed one yields the defaults and the error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), errors.Wrapf(err, "read prefs %s", resolved)
	}

	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), errors.Wrapf(err, "parse prefs %s", resolved)
	}
	return p.normalize(), nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return errors.Wrap(err, "create prefs dir")
	}
	data, err := toml.Marshal(p.normalize())
	if err != nil {
		return errors.Wrap(err, "marshal prefs")
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return errors.Wrap(err, "write prefs")
	}
	return nil
}

// PollInterval is PollSeconds as a duration.
func (p Prefs) PollInterval() time.Duration {
	return time.Duration(p.PollSeconds) * time.Second
}

func (p Prefs) normalize() Prefs {
	def := Defaults()
	p.DefaultTab = strings.TrimSpace(p.DefaultTab)
	if p.DefaultTab == "" {
		p.DefaultTab = def.DefaultTab
	}
	p.Accent = strings.TrimSpace(p.Accent)
	if p.Accent == "" {
		p.Accent = def.Accent
	}
	if p.PollSeconds <= 0 {
		p.PollSeconds = def.PollSeconds
	}
	p.ServerURL = strings.TrimSpace(p.ServerURL)
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", errors.Wrap(err, "resolve prefs path")
	}
	return abs, nil
}
