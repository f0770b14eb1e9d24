package engine

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

//go:embed prompts/system_instruction.txt
var systemInstructionPrompt string

//go:embed prompts/turn_note.txt
var turnNotePrompt string

// kickoffMessage is the fixed first message of every session. The model
// answers it with the opening narrative and the rolled starting state.
const kickoffMessage = "Begin the adventure. Generate my starting stats and gear."

var (
	systemInstructionTmpl = template.Must(template.New("system_instruction").Parse(systemInstructionPrompt))
	turnNoteTmpl          = template.Must(template.New("turn_note").Parse(turnNotePrompt))
)

// styleInstruction maps the verbosity level to the narrative length directive
// embedded in every request.
func styleInstruction(level int) string {
	switch level {
	case 1:
		return "Provide extremely short, telegraphic responses. One sentence maximum. No fluff."
	case 2:
		return "Provide concise responses. 2-3 sentences. Focus on action."
	case 3:
		return "Provide balanced descriptions. One paragraph. Standard RPG detail."
	case 4:
		return "Provide detailed descriptions. Two paragraphs. Focus on atmosphere."
	case 5:
		return "Provide very rich, evocative, and lengthy descriptions. 3+ paragraphs. Novel-like quality."
	default:
		return "Provide balanced descriptions."
	}
}

func systemInstruction(char models.Character, settings models.GameSettings) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Name             string
		Class            models.CharacterClass
		Background       string
		Difficulty       models.Difficulty
		StyleInstruction string
	}{
		Name:             char.Name,
		Class:            char.Class,
		Background:       char.Background,
		Difficulty:       settings.Difficulty,
		StyleInstruction: styleInstruction(settings.VerbosityLevel),
	}
	if err := systemInstructionTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// turnNote is appended to every player action. Re-asserting the style, the
// difficulty, and the modifier formula each turn compensates for the model's
// imperfect instruction retention over a long session.
func turnNote(settings models.GameSettings) (string, error) {
	var buf bytes.Buffer
	data := struct {
		StyleInstruction string
		Difficulty       models.Difficulty
	}{
		StyleInstruction: styleInstruction(settings.VerbosityLevel),
		Difficulty:       settings.Difficulty,
	}
	if err := turnNoteTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
