package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rowanveil/dungeon-chat/internal/config"
	"github.com/rowanveil/dungeon-chat/internal/engine"
	"github.com/rowanveil/dungeon-chat/internal/models"
)

var (
	simTurns int
	simClass string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted player against the live model",
	Long: `simulate opens a real session and plays a number of turns by picking
randomly from the suggested actions. Useful for eyeballing the turn contract
against the live model without driving the TUI by hand.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&simTurns, "turns", 10, "maximum number of turns to play")
	simulateCmd.Flags().StringVar(&simClass, "class", "Warrior", "character class to play")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	eng, err := engine.NewEngine(cmd.Context(), engine.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	defer eng.Close()

	char := models.Character{
		Name:       "Simulant",
		Class:      models.CharacterClass(simClass),
		Background: "A wandering sellsword testing fate.",
	}
	settings := models.DefaultSettings()

	session, resp, err := eng.OpenSession(cmd.Context(), char, settings)
	if err != nil {
		return err
	}
	defer session.Close()

	printTurn(0, "", resp)

	for turn := 1; turn <= simTurns; turn++ {
		if resp.GameState.GameOver {
			fmt.Println("--- game over ---")
			break
		}

		action := "Look around and take stock of the situation."
		if len(resp.SuggestedActions) > 0 {
			action = resp.SuggestedActions[rand.Intn(len(resp.SuggestedActions))]
		}

		resp, err = session.SubmitAction(cmd.Context(), action, settings)
		if err != nil {
			return err
		}
		printTurn(turn, action, resp)
	}

	return nil
}

func printTurn(turn int, action string, resp *models.TurnResponse) {
	fmt.Printf("=== turn %d ===\n", turn)
	if action != "" {
		fmt.Printf("> %s\n", action)
	}
	fmt.Println(resp.Narrative)
	if c := resp.SkillCheck; c != nil {
		ok := ""
		if !c.Consistent() {
			ok = "  [INCONSISTENT]"
		}
		fmt.Printf("[check] %s: %d%+d = %d vs DC %d -> %s%s\n",
			c.Skill, c.BaseRoll, c.Modifier, c.Roll, c.DifficultyClass, c.Result, ok)
	}
	gs := resp.GameState
	items := make([]string, len(gs.Inventory))
	for i, it := range gs.Inventory {
		items[i] = fmt.Sprintf("%s(%s)", it.Name, it.Rarity)
	}
	fmt.Printf("[state] hp=%d/%d gold=%d loc=%q combat=%v over=%v inv=[%s]\n\n",
		gs.HP, gs.MaxHP, gs.Gold, gs.Location, gs.IsInCombat, gs.GameOver,
		strings.Join(items, ", "))
}
