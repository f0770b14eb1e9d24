package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

const validReply = `{
  "narrative": "The door creaks open.",
  "gameState": {
    "hp": 20, "maxHp": 20,
    "stats": {"str": 14, "dex": 12, "con": 13, "int": 10, "wis": 10, "cha": 8, "level": 1, "xp": 0, "nextLevelXp": 100},
    "inventory": [], "gold": 5, "location": "Crypt", "statusEffects": [],
    "isInCombat": false, "gameOver": false
  },
  "suggestedActions": ["Enter", "Listen", "Retreat"]
}`

type fakeChat struct {
	reply *genai.GenerateContentResponse
	err   error
	sent  []string
}

func (f *fakeChat) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	for _, p := range parts {
		if t, ok := p.(genai.Text); ok {
			f.sent = append(f.sent, string(t))
		}
	}
	return f.reply, f.err
}

func textReply(s string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(s)}}},
		},
	}
}

func testSession(chat chatSender) *Session {
	return &Session{
		chat:    chat,
		timeout: time.Second,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testEngine(chat chatSender, capturedInstruction *string) *Engine {
	return &Engine{
		modelName: DefaultModel,
		timeout:   time.Second,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		newChat: func(instr string) chatSender {
			if capturedInstruction != nil {
				*capturedInstruction = instr
			}
			return chat
		},
	}
}

func rexCharacter() models.Character {
	return models.Character{Name: "Rex", Class: models.ClassWarrior, Background: "soldier"}
}

func TestOpenSessionSendsKickoff(t *testing.T) {
	chat := &fakeChat{reply: textReply(validReply)}
	e := testEngine(chat, nil)

	session, resp, err := e.OpenSession(context.Background(), rexCharacter(), models.DefaultSettings())
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Len(t, chat.sent, 1)
	assert.Equal(t, kickoffMessage, chat.sent[0])
	assert.Equal(t, "The door creaks open.", resp.Narrative)
}

func TestOpenSessionEmbedsSystemInstruction(t *testing.T) {
	chat := &fakeChat{reply: textReply(validReply)}
	var instruction string
	e := testEngine(chat, &instruction)

	_, _, err := e.OpenSession(context.Background(), rexCharacter(), models.DefaultSettings())
	require.NoError(t, err)

	assert.Contains(t, instruction, "Name: Rex")
	assert.Contains(t, instruction, "Class: Warrior")
	assert.Contains(t, instruction, "Difficulty: Normal")
}

func TestOpenSessionReturnsUsableSession(t *testing.T) {
	chat := &fakeChat{reply: textReply(validReply)}
	e := testEngine(chat, nil)

	session, _, err := e.OpenSession(context.Background(), rexCharacter(), models.DefaultSettings())
	require.NoError(t, err)

	_, err = session.SubmitAction(context.Background(), "open the door", models.DefaultSettings())
	assert.NoError(t, err)

	session.Close()
	_, err = session.SubmitAction(context.Background(), "again", models.DefaultSettings())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestOpenSessionFailuresWrapSessionStartError(t *testing.T) {
	var startErr *SessionStartError

	_, _, err := testEngine(&fakeChat{err: errors.New("unreachable")}, nil).
		OpenSession(context.Background(), rexCharacter(), models.DefaultSettings())
	require.ErrorAs(t, err, &startErr)
	assert.ErrorContains(t, err, "unreachable")

	_, _, err = testEngine(&fakeChat{reply: textReply("not json")}, nil).
		OpenSession(context.Background(), rexCharacter(), models.DefaultSettings())
	require.ErrorAs(t, err, &startErr)

	_, _, err = testEngine(&fakeChat{reply: &genai.GenerateContentResponse{}}, nil).
		OpenSession(context.Background(), rexCharacter(), models.DefaultSettings())
	require.ErrorAs(t, err, &startErr)
}

func TestOpenSessionRejectsInvalidCharacterBeforeDialing(t *testing.T) {
	e := testEngine(nil, nil)
	dialed := false
	e.newChat = func(string) chatSender {
		dialed = true
		return nil
	}

	_, _, err := e.OpenSession(context.Background(), models.Character{}, models.DefaultSettings())
	var startErr *SessionStartError
	require.ErrorAs(t, err, &startErr)
	assert.False(t, dialed, "invalid character must not open a chat")
}

func TestTurnResponseSchemaWireContract(t *testing.T) {
	schema := turnResponseSchema()
	assert.Equal(t, genai.TypeObject, schema.Type)
	assert.Equal(t, []string{"narrative", "gameState", "suggestedActions"}, schema.Required)

	gs := schema.Properties["gameState"]
	require.NotNil(t, gs)
	assert.ElementsMatch(t,
		[]string{"hp", "maxHp", "stats", "inventory", "gold", "location", "isInCombat", "gameOver"},
		gs.Required)

	stats := gs.Properties["stats"]
	require.NotNil(t, stats)
	assert.ElementsMatch(t,
		[]string{"str", "dex", "con", "int", "wis", "cha", "level", "xp", "nextLevelXp"},
		stats.Required)

	item := gs.Properties["inventory"].Items
	require.NotNil(t, item)
	assert.ElementsMatch(t,
		[]string{"name", "rarity", "type", "description", "quantity"},
		item.Required)
	assert.Equal(t, []string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}, item.Properties["rarity"].Enum)
	assert.Equal(t, []string{"Weapon", "Armor", "Potion", "Quest", "Misc"}, item.Properties["type"].Enum)

	assert.Equal(t,
		[]string{"NONE", "DAMAGE", "HEAL", "TREASURE", "DANGER", "VICTORY", "DEFEAT"},
		schema.Properties["visualEffect"].Enum)

	check := schema.Properties["skillCheck"]
	require.NotNil(t, check)
	assert.ElementsMatch(t,
		[]string{"skill", "roll", "baseRoll", "modifier", "difficultyClass", "result"},
		check.Required)
	assert.Equal(t,
		[]string{"SUCCESS", "FAILURE", "CRITICAL_SUCCESS", "CRITICAL_FAILURE"},
		check.Properties["result"].Enum)
}

func TestSubmitActionParsesReply(t *testing.T) {
	chat := &fakeChat{reply: textReply(validReply)}
	s := testSession(chat)

	resp, err := s.SubmitAction(context.Background(), "open the door", models.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, "The door creaks open.", resp.Narrative)
	assert.Equal(t, 20, resp.GameState.HP)
	assert.Equal(t, []string{"Enter", "Listen", "Retreat"}, resp.SuggestedActions)
	assert.Nil(t, resp.SkillCheck)
}

func TestSubmitActionReassertsInstructions(t *testing.T) {
	chat := &fakeChat{reply: textReply(validReply)}
	s := testSession(chat)
	settings := models.GameSettings{VerbosityLevel: 1, Difficulty: models.DifficultyHardcore, ShowDiceRolls: true}

	_, err := s.SubmitAction(context.Background(), "climb the wall", settings)
	require.NoError(t, err)
	require.Len(t, chat.sent, 1)

	sent := chat.sent[0]
	assert.Contains(t, sent, "climb the wall")
	assert.Contains(t, sent, "Hardcore")
	assert.Contains(t, sent, "floor((Stat-10)/2)")
	assert.Contains(t, sent, "telegraphic")
	assert.Contains(t, sent, "chance of failure")
}

func TestSubmitActionTransportFailure(t *testing.T) {
	chat := &fakeChat{err: errors.New("connection reset")}
	s := testSession(chat)

	_, err := s.SubmitAction(context.Background(), "wait", models.DefaultSettings())
	var exchangeErr *TurnExchangeError
	require.ErrorAs(t, err, &exchangeErr)
	assert.ErrorContains(t, err, "connection reset")
}

func TestSubmitActionMalformedJSON(t *testing.T) {
	chat := &fakeChat{reply: textReply("The crypt is dark and you cannot")}
	s := testSession(chat)

	_, err := s.SubmitAction(context.Background(), "wait", models.DefaultSettings())
	var exchangeErr *TurnExchangeError
	require.ErrorAs(t, err, &exchangeErr)
}

func TestSubmitActionEmptyReply(t *testing.T) {
	chat := &fakeChat{reply: &genai.GenerateContentResponse{}}
	s := testSession(chat)

	_, err := s.SubmitAction(context.Background(), "wait", models.DefaultSettings())
	var exchangeErr *TurnExchangeError
	require.ErrorAs(t, err, &exchangeErr)
}

func TestSubmitActionOnClosedSession(t *testing.T) {
	s := testSession(&fakeChat{reply: textReply(validReply)})
	s.Close()

	_, err := s.SubmitAction(context.Background(), "wait", models.DefaultSettings())
	assert.ErrorIs(t, err, ErrNoActiveSession)

	var nilSession *Session
	_, err = nilSession.SubmitAction(context.Background(), "wait", models.DefaultSettings())
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitActionPassesInconsistentCheckThrough(t *testing.T) {
	// Roll arithmetic is flagged in the log but never corrected locally.
	reply := strings.Replace(validReply,
		`"suggestedActions": ["Enter", "Listen", "Retreat"]`,
		`"suggestedActions": ["Enter"], "skillCheck": {"skill": "Athletics (STR)", "roll": 19, "baseRoll": 14, "modifier": 2, "difficultyClass": 15, "result": "SUCCESS"}`,
		1)
	chat := &fakeChat{reply: textReply(reply)}
	s := testSession(chat)

	resp, err := s.SubmitAction(context.Background(), "climb", models.DefaultSettings())
	require.NoError(t, err)
	require.NotNil(t, resp.SkillCheck)
	assert.False(t, resp.SkillCheck.Consistent())
	assert.Equal(t, 19, resp.SkillCheck.Roll, "inconsistent roll must be preserved, not fixed")
}

func TestParseTurnResponseTrimsFences(t *testing.T) {
	fenced := "```json\n" + validReply + "\n```"
	resp, err := parseTurnResponse(fenced)
	require.NoError(t, err)
	assert.Equal(t, "The door creaks open.", resp.Narrative)
}

func TestParseTurnResponseRejectsEmptyAndNarrativeless(t *testing.T) {
	_, err := parseTurnResponse("   ")
	assert.Error(t, err)

	_, err = parseTurnResponse(`{"gameState": {}, "suggestedActions": []}`)
	assert.ErrorContains(t, err, "narrative")
}

func TestSystemInstructionContent(t *testing.T) {
	char := models.Character{Name: "Rex", Class: models.ClassWarrior, Background: "soldier"}
	settings := models.GameSettings{VerbosityLevel: 5, Difficulty: models.DifficultyStory, ShowDiceRolls: true}

	instr, err := systemInstruction(char, settings)
	require.NoError(t, err)

	assert.Contains(t, instr, "Name: Rex")
	assert.Contains(t, instr, "Class: Warrior")
	assert.Contains(t, instr, "Background: soldier")
	assert.Contains(t, instr, "Difficulty: Story")
	assert.Contains(t, instr, "floor((Stat - 10) / 2)")
	assert.Contains(t, instr, "Easy=10, Medium=15, Hard=20")
	assert.Contains(t, instr, "gameOver = true")
	assert.Contains(t, instr, "Novel-like quality")
}

func TestStyleInstructionLevels(t *testing.T) {
	seen := map[string]bool{}
	for level := 1; level <= 5; level++ {
		s := styleInstruction(level)
		assert.NotEmpty(t, s)
		assert.False(t, seen[s], "style for level %d duplicates another level", level)
		seen[s] = true
	}
	assert.Equal(t, styleInstruction(0), styleInstruction(42), "out-of-band levels share the fallback")
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("boom")
	assert.ErrorIs(t, &SessionStartError{Err: cause}, cause)
	assert.ErrorIs(t, &TurnExchangeError{Err: cause}, cause)
}
