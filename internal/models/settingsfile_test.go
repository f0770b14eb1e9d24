package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	want := GameSettings{VerbosityLevel: 5, Difficulty: DifficultyHardcore, ShowDiceRolls: false}
	require.NoError(t, SaveSettings(path, want))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err, "missing file should not error")
	assert.Equal(t, DefaultSettings(), got)
}

func TestLoadSettingsGarbageFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0644))

	got, err := LoadSettings(path)
	assert.Error(t, err)
	assert.Equal(t, DefaultSettings(), got, "defaults on parse failure")
}

func TestExportTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcript.yaml")
	messages := []Message{
		{Role: RoleModel, Content: "You stand at the gates.", Timestamp: time.Now()},
		{Role: RoleUser, Content: "Open them.", Timestamp: time.Now()},
	}
	require.NoError(t, ExportTranscript(path, messages))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "You stand at the gates.")
	assert.Contains(t, string(data), "Open them.")
}
