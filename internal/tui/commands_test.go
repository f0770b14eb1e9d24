package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

func TestEvalCommandPlainActionsPassThrough(t *testing.T) {
	for _, input := range []string{"attack the goblin", "look around", "  go north "} {
		_, handled := evalCommand(input, models.DefaultSettings())
		assert.Falsef(t, handled, "evalCommand(%q) handled as command", input)
	}
}

func TestEvalCommandKinds(t *testing.T) {
	tests := []struct {
		input string
		want  commandKind
	}{
		{"/quit", cmdQuit},
		{"/restart", cmdRestart},
		{"/export", cmdExport},
		{"/export saves/run1.yaml", cmdExport},
		{"/help", cmdNotice},
		{"/dance", cmdNotice},
		{"/difficulty hardcore", cmdSettings},
		{"/difficulty dungeon", cmdNotice},
		{"/verbosity 2", cmdSettings},
		{"/verbosity 9", cmdNotice},
		{"/verbosity many", cmdNotice},
		{"/dice", cmdSettings},
	}
	for _, tt := range tests {
		res, handled := evalCommand(tt.input, models.DefaultSettings())
		require.Truef(t, handled, "evalCommand(%q) not handled", tt.input)
		assert.Equalf(t, tt.want, res.kind, "evalCommand(%q)", tt.input)
	}
}

func TestEvalCommandSettingsChanges(t *testing.T) {
	settings := models.DefaultSettings()

	res, _ := evalCommand("/difficulty HARDCORE", settings)
	assert.Equal(t, models.DifficultyHardcore, res.settings.Difficulty)

	res, _ = evalCommand("/verbosity 5", settings)
	assert.Equal(t, 5, res.settings.VerbosityLevel)

	res, _ = evalCommand("/dice", settings)
	assert.NotEqual(t, settings.ShowDiceRolls, res.settings.ShowDiceRolls, "/dice must toggle")

	// Other settings are untouched by a single change.
	res, _ = evalCommand("/difficulty story", settings)
	assert.Equal(t, settings.VerbosityLevel, res.settings.VerbosityLevel)
	assert.Equal(t, settings.ShowDiceRolls, res.settings.ShowDiceRolls)
}

func TestEvalCommandExportArg(t *testing.T) {
	res, _ := evalCommand("/export my run.yaml", models.DefaultSettings())
	assert.Equal(t, "my run.yaml", res.arg)
}
