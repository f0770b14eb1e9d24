package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

type commandKind int

const (
	cmdQuit commandKind = iota
	cmdRestart
	cmdExport
	cmdSettings
	cmdNotice
)

type commandResult struct {
	kind     commandKind
	settings models.GameSettings
	note     string
	arg      string
}

const helpText = "Commands: /difficulty <story|normal|hardcore>, /verbosity <1-5>, /dice, /export [file], /restart, /quit"

// evalCommand interprets a slash command against the current settings. The
// second return value is false when the input is a plain action, not a
// command. Settings changes take effect on the next outgoing turn; they are
// re-asserted per request rather than held by the model.
func evalCommand(input string, settings models.GameSettings) (commandResult, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return commandResult{}, false
	}

	fields := strings.Fields(trimmed)
	name := strings.ToLower(fields[0])
	arg := ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}

	switch name {
	case "/quit":
		return commandResult{kind: cmdQuit}, true

	case "/restart":
		return commandResult{kind: cmdRestart}, true

	case "/export":
		return commandResult{kind: cmdExport, arg: arg}, true

	case "/help":
		return commandResult{kind: cmdNotice, note: helpText}, true

	case "/difficulty":
		var d models.Difficulty
		switch strings.ToLower(arg) {
		case "story":
			d = models.DifficultyStory
		case "normal":
			d = models.DifficultyNormal
		case "hardcore":
			d = models.DifficultyHardcore
		default:
			return commandResult{kind: cmdNotice, note: "usage: /difficulty <story|normal|hardcore>"}, true
		}
		settings.Difficulty = d
		return commandResult{
			kind:     cmdSettings,
			settings: settings,
			note:     fmt.Sprintf("difficulty set to %s (applies from the next turn)", d),
		}, true

	case "/verbosity":
		level, err := strconv.Atoi(arg)
		if err != nil || level < 1 || level > 5 {
			return commandResult{kind: cmdNotice, note: "usage: /verbosity <1-5>"}, true
		}
		settings.VerbosityLevel = level
		return commandResult{
			kind:     cmdSettings,
			settings: settings,
			note:     fmt.Sprintf("verbosity set to %d (applies from the next turn)", level),
		}, true

	case "/dice":
		settings.ShowDiceRolls = !settings.ShowDiceRolls
		note := "dice rolls hidden"
		if settings.ShowDiceRolls {
			note = "dice rolls shown"
		}
		return commandResult{kind: cmdSettings, settings: settings, note: note}, true

	default:
		return commandResult{kind: cmdNotice, note: "unknown command " + name + " — try /help"}, true
	}
}
