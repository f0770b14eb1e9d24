// Package engine is the turn controller: it owns the conversational session
// with the narrator model and translates each exchange into a typed
// TurnResponse. It performs no local rules adjudication; mechanics are
// delegated to the model and constrained only by the response schema and the
// rules block in the system instruction.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

// DefaultModel is the narrator model used when none is configured.
const DefaultModel = "gemini-flash-lite-latest"

// DefaultTimeout bounds each network call so a hung request cannot leave the
// caller's submit gate closed forever.
const DefaultTimeout = 90 * time.Second

// Config carries the engine dependencies.
type Config struct {
	APIKey  string
	Model   string        // defaults to DefaultModel
	Timeout time.Duration // defaults to DefaultTimeout
	Logger  *slog.Logger  // defaults to slog.Default()
}

// Engine creates sessions against the narrator model. It is safe to reuse
// across restarts; each OpenSession call returns a fresh session handle.
type Engine struct {
	client    *genai.Client
	modelName string
	timeout   time.Duration
	log       *slog.Logger

	// newChat builds the schema-constrained chat for a system instruction.
	// It is a seam: tests swap it for a canned sender.
	newChat func(systemInstruction string) chatSender
}

// NewEngine connects to the model service.
func NewEngine(ctx context.Context, cfg Config) (*Engine, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	e := &Engine{
		client:    client,
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
		log:       cfg.Logger,
	}
	if e.modelName == "" {
		e.modelName = DefaultModel
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.newChat = e.startChat
	return e, nil
}

func (e *Engine) startChat(systemInstruction string) chatSender {
	model := e.client.GenerativeModel(e.modelName)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = turnResponseSchema()
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemInstruction)}}
	return model.StartChat()
}

// Close releases the underlying client. Open sessions become unusable.
func (e *Engine) Close() {
	e.client.Close()
}

// chatSender is the seam between the session and the genai chat; tests
// substitute a canned implementation.
type chatSender interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Session is an owned handle to one conversational session. A nil or closed
// session rejects actions with ErrNoActiveSession, so "no active session" is
// a representable value rather than ambient package state.
type Session struct {
	chat    chatSender
	timeout time.Duration
	log     *slog.Logger
	closed  bool
}

// OpenSession starts a new narrated game for the given character and returns
// the session together with the opening turn. The system instruction embeds
// the character sheet, the active difficulty, the rules block, and the style
// directive; the response schema pins the reply shape. Any failure is wrapped
// in *SessionStartError and never retried.
func (e *Engine) OpenSession(ctx context.Context, char models.Character, settings models.GameSettings) (*Session, *models.TurnResponse, error) {
	if err := char.Validate(); err != nil {
		return nil, nil, &SessionStartError{Err: err}
	}
	settings = settings.Normalize()

	instruction, err := systemInstruction(char, settings)
	if err != nil {
		return nil, nil, &SessionStartError{Err: err}
	}

	s := &Session{
		chat:    e.newChat(instruction),
		timeout: e.timeout,
		log:     e.log,
	}

	resp, err := s.exchange(ctx, kickoffMessage)
	if err != nil {
		return nil, nil, &SessionStartError{Err: err}
	}

	e.log.Info("session opened",
		"class", char.Class,
		"difficulty", settings.Difficulty,
		"hp", resp.GameState.HP,
		"location", resp.GameState.Location,
	)
	return s, resp, nil
}

// SubmitAction sends the player's action as the next turn. The raw action
// text is followed by a system note re-asserting the current style,
// difficulty, and modifier formula. Failures are wrapped in
// *TurnExchangeError; the caller decides whether to let the user resubmit.
func (s *Session) SubmitAction(ctx context.Context, action string, settings models.GameSettings) (*models.TurnResponse, error) {
	if s == nil || s.closed {
		return nil, ErrNoActiveSession
	}

	note, err := turnNote(settings.Normalize())
	if err != nil {
		return nil, &TurnExchangeError{Err: err}
	}

	resp, err := s.exchange(ctx, action+" \n"+note)
	if err != nil {
		return nil, &TurnExchangeError{Err: err}
	}

	s.log.Info("turn completed",
		"actionLen", len(action),
		"hp", resp.GameState.HP,
		"location", resp.GameState.Location,
		"inCombat", resp.GameState.IsInCombat,
		"gameOver", resp.GameState.GameOver,
	)
	return resp, nil
}

// Close discards the session handle. Subsequent SubmitAction calls fail with
// ErrNoActiveSession until a new session is opened.
func (s *Session) Close() {
	if s != nil {
		s.closed = true
	}
}

func (s *Session) exchange(ctx context.Context, message string) (*models.TurnResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.chat.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	turn, err := parseTurnResponse(raw)
	if err != nil {
		return nil, err
	}

	if turn.SkillCheck != nil && !turn.SkillCheck.Consistent() {
		// Roll arithmetic is asserted only by instruction; flag it, don't fix it.
		s.log.Warn("inconsistent skill check from model",
			"skill", turn.SkillCheck.Skill,
			"baseRoll", turn.SkillCheck.BaseRoll,
			"modifier", turn.SkillCheck.Modifier,
			"roll", turn.SkillCheck.Roll,
		)
	}
	return turn, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from model")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type %T", resp.Candidates[0].Content.Parts[0])
	}
	return string(text), nil
}

func parseTurnResponse(raw string) (*models.TurnResponse, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return nil, fmt.Errorf("empty reply from model")
	}

	var turn models.TurnResponse
	if err := json.Unmarshal([]byte(clean), &turn); err != nil {
		return nil, fmt.Errorf("parse turn JSON: %w", err)
	}
	if turn.Narrative == "" {
		return nil, fmt.Errorf("reply missing narrative")
	}
	return &turn, nil
}
