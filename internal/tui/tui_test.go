package tui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanveil/dungeon-chat/internal/engine"
	"github.com/rowanveil/dungeon-chat/internal/models"
)

func sampleTurn() *models.TurnResponse {
	return &models.TurnResponse{
		Narrative: "A goblin lunges from the shadows!",
		GameState: models.GameState{
			HP: 92, MaxHP: 100,
			Stats:         models.CharacterStats{Str: 16, Level: 1, NextLevelXP: 100},
			Inventory:     []models.InventoryItem{},
			Gold:          30,
			Location:      "Darkwood Trail",
			StatusEffects: []string{},
			IsInCombat:    true,
		},
		SuggestedActions: []string{"Attack", "Flee"},
	}
}

// A reply that arrives after /restart belongs to the old session and must
// not touch the freshly reset state.
func TestStaleTurnAfterRestartIsDropped(t *testing.T) {
	m := newModel(nil, models.DefaultSettings(), "")
	oldSession := &engine.Session{}
	m.session = oldSession

	require.True(t, m.state.BeginStart())
	m.state.ApplyStart(sampleTurn(), time.Now())
	require.True(t, m.state.BeginAction("attack", time.Now()))

	updated, _ := m.runCommand(commandResult{kind: cmdRestart})
	restarted := updated.(model)
	require.Nil(t, restarted.session)
	require.Equal(t, models.NewGameState(), restarted.state.GameState)

	updated, _ = restarted.Update(turnFinishedMsg{session: oldSession, resp: sampleTurn()})
	after := updated.(model)

	assert.Empty(t, after.state.Messages, "stale reply must not be logged")
	assert.Equal(t, models.NewGameState(), after.state.GameState, "stale reply must not replace the template")
	assert.False(t, after.state.IsProcessing)
}

func TestCurrentSessionTurnIsApplied(t *testing.T) {
	m := newModel(nil, models.DefaultSettings(), "")
	session := &engine.Session{}
	m.session = session
	m.phase = phasePlaying

	require.True(t, m.state.BeginStart())
	m.state.ApplyStart(sampleTurn(), time.Now())
	require.True(t, m.state.BeginAction("attack", time.Now()))

	resp := sampleTurn()
	resp.Narrative = "The goblin falls."
	updated, _ := m.Update(turnFinishedMsg{session: session, resp: resp})
	after := updated.(model)

	require.Len(t, after.state.Messages, 3)
	assert.Equal(t, "The goblin falls.", after.state.Messages[2].Content)
	assert.False(t, after.state.IsProcessing)
}
