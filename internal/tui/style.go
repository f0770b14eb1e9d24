package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rowanveil/dungeon-chat/internal/models"
)

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	narrativeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	systemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D78787")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D7AF"))

	checkStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			PaddingLeft(1).
			PaddingRight(1)

	combatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	formFocusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)
)

// rarityColor maps the five-tier item scale to a display color.
func rarityColor(r models.Rarity) lipgloss.Color {
	switch r {
	case models.RarityUncommon:
		return lipgloss.Color("#5FD75F")
	case models.RarityRare:
		return lipgloss.Color("#5FAFFF")
	case models.RarityEpic:
		return lipgloss.Color("#AF5FFF")
	case models.RarityLegendary:
		return lipgloss.Color("#FFAF00")
	default:
		return lipgloss.Color("#BCBCBC")
	}
}

// effectBanner renders the transient banner for a visual effect.
func effectBanner(e models.VisualEffect, width int) string {
	var label string
	var color lipgloss.Color
	switch e {
	case models.EffectDamage:
		label, color = "** DAMAGE **", "#FF5F5F"
	case models.EffectHeal:
		label, color = "** HEALED **", "#5FD75F"
	case models.EffectTreasure:
		label, color = "** TREASURE **", "#FFAF00"
	case models.EffectDanger:
		label, color = "!! DANGER !!", "#FF8700"
	case models.EffectVictory:
		label, color = "*** VICTORY ***", "#FFD700"
	case models.EffectDefeat:
		label, color = "*** DEFEAT ***", "#870000"
	default:
		return ""
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true).
		Width(width).
		Align(lipgloss.Center).
		Render(label)
}
