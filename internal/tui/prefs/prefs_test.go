package prefs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "prefs.toml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestLoadDefaultPathExpandsHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "Points", p.DefaultTab)
}

func TestLoadReadsValuesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	body := "default_tab = \"Assists\"\npoll_seconds = 15\nserver_url = \" http://localhost:4000 \"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Assists", p.DefaultTab)
	assert.Equal(t, 15*time.Second, p.PollInterval())
	assert.Equal(t, "http://localhost:4000", p.ServerURL)
	assert.Equal(t, defaultAccent, p.Accent)
}

func TestLoadMalformedReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	require.NoError(t, os.WriteFile(path, []byte("default_tab = ["), 0o600))

	p, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Defaults(), p)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	want := Prefs{DefaultTab: "All Stats", Accent: "#1D428A", PollSeconds: 30}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
