// Package game holds the presentation state and the reducer contract for
// applying turn results to it. It is pure data transformation with no I/O,
// so the whole per-turn contract is unit-testable without a model service or
// a terminal.
package game

import (
	"time"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

// EffectDuration is how long a non-NONE visual effect stays visible before
// it expires on its own.
const EffectDuration = time.Second

// NarratorSilentMessage is the single synthetic model message appended when
// a mid-game exchange fails. Prior state is otherwise untouched.
const NarratorSilentMessage = "The Dungeon Master is silent... (network error, please try again)"

// State is the visible application state for one play session. GameState is
// replaced wholesale every turn; the model is the sole authority over
// mechanics and field-merging would let stale values survive.
type State struct {
	Messages         []models.Message
	GameState        models.GameState
	SuggestedActions []string
	VisualEffect     models.VisualEffect
	EffectExpiresAt  time.Time
	IsProcessing     bool
	Started          bool
}

// NewState returns the pre-game state built from the static initial
// template.
func NewState() *State {
	return &State{
		GameState:        models.NewGameState(),
		SuggestedActions: []string{},
		VisualEffect:     models.EffectNone,
	}
}

// BeginStart closes the processing gate for the opening exchange. It reports
// false if an exchange is already in flight.
func (s *State) BeginStart() bool {
	if s.IsProcessing {
		return false
	}
	s.IsProcessing = true
	return true
}

// BeginAction records the player's action optimistically, before the network
// call resolves: the user message is appended, suggestions are cleared so
// stale ones never persist into the thinking state, and the gate closes.
// It reports false (and changes nothing) while a turn is in flight or after
// game over; game-over input is inert until an explicit restart.
func (s *State) BeginAction(action string, now time.Time) bool {
	if s.IsProcessing || s.GameState.GameOver {
		return false
	}
	s.Messages = append(s.Messages, models.Message{
		Role:      models.RoleUser,
		Content:   action,
		Timestamp: now,
	})
	s.SuggestedActions = []string{}
	s.IsProcessing = true
	return true
}

// ApplyStart seeds the state from the opening turn: the message log starts
// with exactly one model message.
func (s *State) ApplyStart(resp *models.TurnResponse, now time.Time) {
	s.Messages = nil
	s.Started = true
	s.applyReply(resp, now)
}

// ApplyTurn applies a mid-game turn result.
func (s *State) ApplyTurn(resp *models.TurnResponse, now time.Time) {
	s.applyReply(resp, now)
}

func (s *State) applyReply(resp *models.TurnResponse, now time.Time) {
	s.Messages = append(s.Messages, models.Message{
		Role:       models.RoleModel,
		Content:    resp.Narrative,
		Timestamp:  now,
		SkillCheck: resp.SkillCheck,
	})

	// Wholesale replacement, never a field merge.
	s.GameState = resp.GameState

	if resp.SuggestedActions != nil {
		s.SuggestedActions = resp.SuggestedActions
	} else {
		s.SuggestedActions = []string{}
	}

	if resp.VisualEffect != "" && resp.VisualEffect != models.EffectNone {
		s.VisualEffect = resp.VisualEffect
		s.EffectExpiresAt = now.Add(EffectDuration)
	}

	s.IsProcessing = false
}

// ApplyFailure handles a failed mid-game exchange: exactly one synthetic
// model message is appended and the gate reopens. Game state, suggestions,
// and the effect are untouched so the user can resubmit the same action.
func (s *State) ApplyFailure(now time.Time) {
	s.Messages = append(s.Messages, models.Message{
		Role:      models.RoleModel,
		Content:   NarratorSilentMessage,
		Timestamp: now,
	})
	s.IsProcessing = false
}

// ApplyStartFailure reopens the gate after a failed opening exchange. No
// synthetic message is added; a start failure is surfaced as a blocking
// error by the UI instead.
func (s *State) ApplyStartFailure() {
	s.IsProcessing = false
}

// EffectActive reports whether a visual effect should currently be shown.
func (s *State) EffectActive(now time.Time) bool {
	return s.VisualEffect != "" && s.VisualEffect != models.EffectNone && now.Before(s.EffectExpiresAt)
}

// ExpireEffect clears a non-NONE effect once its deadline has passed,
// regardless of whether further turns occurred. It reports whether the
// effect was cleared.
func (s *State) ExpireEffect(now time.Time) bool {
	if s.VisualEffect == "" || s.VisualEffect == models.EffectNone {
		return false
	}
	if now.Before(s.EffectExpiresAt) {
		return false
	}
	s.VisualEffect = models.EffectNone
	s.EffectExpiresAt = time.Time{}
	return true
}

// Restart resets to the pre-game state: empty log, initial game state
// template, no suggestions, no effect. The caller must also close the
// engine session; a restart is a full session reset, not a state-only one.
func (s *State) Restart() {
	*s = *NewState()
}
