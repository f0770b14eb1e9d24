// Package models defines the wire and presentation data types shared by the
// turn controller, the reducer, and the TUI. Field names and enum literals
// match the response schema the remote model is instructed against, so they
// must not be renamed.
package models

import (
	"fmt"
	"time"
)

// CharacterClass is one of the four playable archetypes.
type CharacterClass string

const (
	ClassWarrior CharacterClass = "Warrior"
	ClassMage    CharacterClass = "Mage"
	ClassRogue   CharacterClass = "Rogue"
	ClassCleric  CharacterClass = "Cleric"
)

// Classes lists every playable class in display order.
var Classes = []CharacterClass{ClassWarrior, ClassMage, ClassRogue, ClassCleric}

// Character is created once at session start and immutable afterwards. It is
// only used to build the system instruction; it is not part of GameState.
type Character struct {
	Name       string         `json:"name"`
	Class      CharacterClass `json:"class"`
	Background string         `json:"background"`
}

// Validate reports whether the character is complete enough to start a game.
func (c Character) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character name must not be empty")
	}
	if c.Background == "" {
		return fmt.Errorf("character background must not be empty")
	}
	switch c.Class {
	case ClassWarrior, ClassMage, ClassRogue, ClassCleric:
		return nil
	default:
		return fmt.Errorf("unknown character class %q", c.Class)
	}
}

// Difficulty scales the DCs and enemy strength the narrator is told to use.
type Difficulty string

const (
	DifficultyStory    Difficulty = "Story"
	DifficultyNormal   Difficulty = "Normal"
	DifficultyHardcore Difficulty = "Hardcore"
)

// Difficulties lists every difficulty in ascending order of lethality.
var Difficulties = []Difficulty{DifficultyStory, DifficultyNormal, DifficultyHardcore}

// GameSettings is mutable at any time. Settings are not part of model-held
// state: they are re-asserted on every outgoing turn.
type GameSettings struct {
	VerbosityLevel int        `json:"verbosityLevel" yaml:"verbosityLevel"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	ShowDiceRolls  bool       `json:"showDiceRolls" yaml:"showDiceRolls"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() GameSettings {
	return GameSettings{
		VerbosityLevel: 3,
		Difficulty:     DifficultyNormal,
		ShowDiceRolls:  true,
	}
}

// Normalize clamps out-of-band values back into the supported ranges.
func (s GameSettings) Normalize() GameSettings {
	if s.VerbosityLevel < 1 {
		s.VerbosityLevel = 1
	}
	if s.VerbosityLevel > 5 {
		s.VerbosityLevel = 5
	}
	switch s.Difficulty {
	case DifficultyStory, DifficultyNormal, DifficultyHardcore:
	default:
		s.Difficulty = DifficultyNormal
	}
	return s
}

// Rarity is the fixed five-tier scale every generated item carries.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

// ItemType categorizes inventory items.
type ItemType string

const (
	ItemWeapon ItemType = "Weapon"
	ItemArmor  ItemType = "Armor"
	ItemPotion ItemType = "Potion"
	ItemQuest  ItemType = "Quest"
	ItemMisc   ItemType = "Misc"
)

// InventoryItem is a single stack of items held by the player.
type InventoryItem struct {
	Name        string   `json:"name" yaml:"name"`
	Rarity      Rarity   `json:"rarity" yaml:"rarity"`
	Type        ItemType `json:"type" yaml:"type"`
	Description string   `json:"description" yaml:"description"`
	Quantity    int      `json:"quantity" yaml:"quantity"`
}

// CharacterStats holds the six ability scores plus progression counters.
type CharacterStats struct {
	Str         int `json:"str" yaml:"str"`
	Dex         int `json:"dex" yaml:"dex"`
	Con         int `json:"con" yaml:"con"`
	Int         int `json:"int" yaml:"int"`
	Wis         int `json:"wis" yaml:"wis"`
	Cha         int `json:"cha" yaml:"cha"`
	Level       int `json:"level" yaml:"level"`
	XP          int `json:"xp" yaml:"xp"`
	NextLevelXP int `json:"nextLevelXp" yaml:"nextLevelXp"`
}

// GameState is the authoritative snapshot returned by the model every turn.
// It is always replaced wholesale, never field-merged: the model is the sole
// source of truth for mechanics.
type GameState struct {
	HP            int             `json:"hp" yaml:"hp"`
	MaxHP         int             `json:"maxHp" yaml:"maxHp"`
	Stats         CharacterStats  `json:"stats" yaml:"stats"`
	Inventory     []InventoryItem `json:"inventory" yaml:"inventory"`
	Gold          int             `json:"gold" yaml:"gold"`
	Location      string          `json:"location" yaml:"location"`
	StatusEffects []string        `json:"statusEffects" yaml:"statusEffects"`
	IsInCombat    bool            `json:"isInCombat" yaml:"isInCombat"`
	GameOver      bool            `json:"gameOver" yaml:"gameOver"`
}

// NewGameState returns the static initial template shown before the first
// reply arrives and restored on restart.
func NewGameState() GameState {
	return GameState{
		HP:    100,
		MaxHP: 100,
		Stats: CharacterStats{
			Str: 10, Dex: 10, Con: 10, Int: 10, Wis: 10, Cha: 10,
			Level: 1, XP: 0, NextLevelXP: 100,
		},
		Inventory:     []InventoryItem{},
		Gold:          0,
		Location:      "Unknown",
		StatusEffects: []string{},
	}
}

// VisualEffect is a transient presentation cue keyed to narrative events.
type VisualEffect string

const (
	EffectNone     VisualEffect = "NONE"
	EffectDamage   VisualEffect = "DAMAGE"
	EffectHeal     VisualEffect = "HEAL"
	EffectTreasure VisualEffect = "TREASURE"
	EffectDanger   VisualEffect = "DANGER"
	EffectVictory  VisualEffect = "VICTORY"
	EffectDefeat   VisualEffect = "DEFEAT"
)

// CheckOutcome is the adjudicated result of a skill check.
type CheckOutcome string

const (
	CheckSuccess         CheckOutcome = "SUCCESS"
	CheckFailure         CheckOutcome = "FAILURE"
	CheckCriticalSuccess CheckOutcome = "CRITICAL_SUCCESS"
	CheckCriticalFailure CheckOutcome = "CRITICAL_FAILURE"
)

// SkillCheckResult is attached to at most one turn and never stored in
// GameState.
type SkillCheckResult struct {
	Skill           string       `json:"skill" yaml:"skill"`
	Roll            int          `json:"roll" yaml:"roll"`
	BaseRoll        int          `json:"baseRoll" yaml:"baseRoll"`
	Modifier        int          `json:"modifier" yaml:"modifier"`
	DifficultyClass int          `json:"difficultyClass" yaml:"difficultyClass"`
	Result          CheckOutcome `json:"result" yaml:"result"`
}

// Consistent reports whether the check obeys the arithmetic the model is
// instructed to follow: roll = baseRoll + modifier with a d20 base roll.
// Inconsistent checks are flagged by the caller, never silently corrected.
func (c SkillCheckResult) Consistent() bool {
	return c.BaseRoll >= 1 && c.BaseRoll <= 20 && c.Roll == c.BaseRoll+c.Modifier
}

// Role identifies the author of a message in the log.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one entry in the append-only conversation log. The log is the
// only conversational memory surfaced to the user; the model keeps its own.
type Message struct {
	Role       Role              `json:"role" yaml:"role"`
	Content    string            `json:"content" yaml:"content"`
	Timestamp  time.Time         `json:"timestamp" yaml:"timestamp"`
	SkillCheck *SkillCheckResult `json:"skillCheck,omitempty" yaml:"skillCheck,omitempty"`
}

// TurnResponse is the full envelope the model returns every turn.
type TurnResponse struct {
	Narrative        string            `json:"narrative"`
	GameState        GameState         `json:"gameState"`
	SuggestedActions []string          `json:"suggestedActions"`
	VisualEffect     VisualEffect      `json:"visualEffect,omitempty"`
	SkillCheck       *SkillCheckResult `json:"skillCheck,omitempty"`
}
