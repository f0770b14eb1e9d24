package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rowanveil/dungeon-chat/internal/game"
	"github.com/rowanveil/dungeon-chat/internal/models"
)

func (m model) View() string {
	var s string

	switch m.phase {
	case phaseCreate:
		s = m.viewCreate()

	case phaseStarting:
		s = fmt.Sprintf("\n  %s Contacting the Dungeon Master... please wait.\n", m.spin.View())

	case phasePlaying:
		s = m.viewPlaying()

	case phaseFatal:
		s = fmt.Sprintf(
			"\n  Could not reach the Dungeon Master.\n\n  %v\n\n%s",
			m.err,
			helpStyle.Render("  Press Esc to return to character creation, Ctrl+C to quit."),
		)
	}

	return "\n" + s + "\n"
}

func (m model) viewCreate() string {
	label := func(text string, focused bool) string {
		if focused {
			return formFocusStyle.Render("> " + text)
		}
		return formLabelStyle.Render("  " + text)
	}

	classes := make([]string, len(models.Classes))
	for i, c := range models.Classes {
		if i == m.classIdx {
			classes[i] = formFocusStyle.Render("[" + string(c) + "]")
		} else {
			classes[i] = helpStyle.Render(" " + string(c) + " ")
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CREATE YOUR ADVENTURER") + "\n\n")
	b.WriteString(label("Name", m.focus == focusName) + "\n  " + m.nameInput.View() + "\n\n")
	b.WriteString(label("Class", m.focus == focusClass) + "\n  " + strings.Join(classes, " ") + "\n\n")
	b.WriteString(label("Background", m.focus == focusBackground) + "\n  " + m.backgroundInput.View() + "\n\n")
	b.WriteString(helpStyle.Render("Tab to move, ←/→ to pick a class, Enter on Background to begin."))
	if m.notice != "" {
		b.WriteString("\n" + systemStyle.Render(m.notice))
	}
	return b.String()
}

func (m model) viewPlaying() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderSidebar(),
	)

	var parts []string
	if banner := m.renderEffect(); banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, mainView)

	if m.state.IsProcessing {
		parts = append(parts, helpStyle.Render("The Dungeon Master is thinking..."))
	} else if len(m.state.SuggestedActions) > 0 {
		parts = append(parts, suggestionStyle.Render("Try: "+strings.Join(m.state.SuggestedActions, " | ")))
	}

	parts = append(parts, m.actionInput.View())
	if m.notice != "" {
		parts = append(parts, systemStyle.Render(m.notice))
	}
	if m.state.GameState.GameOver {
		parts = append(parts, combatStyle.Render("The adventure has ended. /restart to play again, /quit to leave."))
	} else {
		parts = append(parts, helpStyle.Render(helpText))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m model) renderEffect() string {
	if !m.state.EffectActive(time.Now()) {
		return ""
	}
	return effectBanner(m.state.VisualEffect, m.logWidth())
}

func (m model) renderLog() string {
	width := m.logWidth()
	var b strings.Builder
	for i, msg := range m.state.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch {
		case msg.Role == models.RoleUser:
			b.WriteString(userStyle.Width(width).Render("> " + msg.Content))
		case msg.Content == game.NarratorSilentMessage:
			b.WriteString(systemStyle.Width(width).Render(msg.Content))
		default:
			b.WriteString(narrativeStyle.Width(width).Render(msg.Content))
			if msg.SkillCheck != nil && m.settings.ShowDiceRolls {
				b.WriteString("\n" + renderSkillCheck(*msg.SkillCheck))
			}
		}
	}
	return b.String()
}

func renderSkillCheck(c models.SkillCheckResult) string {
	line := fmt.Sprintf("%s  d20: %d %s = %d vs DC %d -> %s",
		c.Skill, c.BaseRoll, formatModifier(c.Modifier), c.Roll, c.DifficultyClass, checkLabel(c.Result))
	if !c.Consistent() {
		line += "  (inconsistent roll!)"
	}
	return checkStyle.Render(line)
}

func checkLabel(r models.CheckOutcome) string {
	switch r {
	case models.CheckSuccess:
		return "Success"
	case models.CheckFailure:
		return "Failure"
	case models.CheckCriticalSuccess:
		return "CRITICAL SUCCESS!"
	case models.CheckCriticalFailure:
		return "CRITICAL FAILURE!"
	default:
		return string(r)
	}
}

func (m model) renderSidebar() string {
	gs := m.state.GameState

	var b strings.Builder
	b.WriteString(titleStyle.Render("LOCATION") + "\n" + gs.Location + "\n\n")

	b.WriteString(titleStyle.Render("VITALS") + "\n")
	b.WriteString(hpBar(gs.HP, gs.MaxHP, 14) + "\n")
	b.WriteString(fmt.Sprintf("Level %d  XP %d/%d\n", gs.Stats.Level, gs.Stats.XP, gs.Stats.NextLevelXP))
	b.WriteString(fmt.Sprintf("Gold: %d\n", gs.Gold))
	if gs.IsInCombat {
		b.WriteString(combatStyle.Render("IN COMBAT") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("ABILITIES") + "\n")
	abilities := []struct {
		name  string
		score int
	}{
		{"STR", gs.Stats.Str}, {"DEX", gs.Stats.Dex}, {"CON", gs.Stats.Con},
		{"INT", gs.Stats.Int}, {"WIS", gs.Stats.Wis}, {"CHA", gs.Stats.Cha},
	}
	for _, a := range abilities {
		b.WriteString(fmt.Sprintf("%s %2d (%s)\n", a.name, a.score, formatModifier(abilityModifier(a.score))))
	}
	b.WriteString("\n")

	if len(gs.StatusEffects) > 0 {
		b.WriteString(titleStyle.Render("EFFECTS") + "\n")
		for _, eff := range gs.StatusEffects {
			b.WriteString("- " + eff + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("INVENTORY") + "\n")
	if len(gs.Inventory) == 0 {
		b.WriteString("(empty)")
	} else {
		for _, item := range gs.Inventory {
			name := lipgloss.NewStyle().Foreground(rarityColor(item.Rarity)).Render(item.Name)
			if item.Quantity > 1 {
				b.WriteString(fmt.Sprintf("- %s x%d\n", name, item.Quantity))
			} else {
				b.WriteString("- " + name + "\n")
			}
		}
	}

	sidebarWidth := m.width - m.logWidth() - 4
	if sidebarWidth < 16 {
		sidebarWidth = 16
	}
	return sidebarStyle.Width(sidebarWidth).Height(m.viewport.Height).Render(b.String())
}

// abilityModifier applies the floor((score-10)/2) formula used for display
// next to each ability score.
func abilityModifier(score int) int {
	return int(math.Floor(float64(score-10) / 2))
}

func formatModifier(mod int) string {
	if mod >= 0 {
		return fmt.Sprintf("+%d", mod)
	}
	return fmt.Sprintf("%d", mod)
}

// hpBar renders hit points as a fixed-width bar. HP may transiently be
// negative on the death turn; the bar clamps at empty.
func hpBar(hp, maxHP, width int) string {
	if maxHP <= 0 {
		return fmt.Sprintf("HP %d/%d", hp, maxHP)
	}
	shown := hp
	if shown < 0 {
		shown = 0
	}
	if shown > maxHP {
		shown = maxHP
	}
	filled := shown * width / maxHP
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %d/%d", bar, hp, maxHP)
}
