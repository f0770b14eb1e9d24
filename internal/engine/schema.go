package engine

import "github.com/google/generative-ai-go/genai"

// turnResponseSchema constrains every reply to the exact TurnResponse shape.
// The field names and enum literals here are the wire contract with the
// model; they mirror the JSON tags in internal/models.
func turnResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"narrative": {
				Type:        genai.TypeString,
				Description: "The story description. Follow the length/style instructions provided.",
			},
			"gameState": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"hp":    {Type: genai.TypeInteger, Description: "Current hit points"},
					"maxHp": {Type: genai.TypeInteger, Description: "Maximum hit points"},
					"stats": {
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"str":         {Type: genai.TypeInteger},
							"dex":         {Type: genai.TypeInteger},
							"con":         {Type: genai.TypeInteger},
							"int":         {Type: genai.TypeInteger},
							"wis":         {Type: genai.TypeInteger},
							"cha":         {Type: genai.TypeInteger},
							"level":       {Type: genai.TypeInteger},
							"xp":          {Type: genai.TypeInteger},
							"nextLevelXp": {Type: genai.TypeInteger},
						},
						Required: []string{"str", "dex", "con", "int", "wis", "cha", "level", "xp", "nextLevelXp"},
					},
					"inventory": {
						Type:        genai.TypeArray,
						Description: "List of items currently held",
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"name":        {Type: genai.TypeString},
								"rarity":      {Type: genai.TypeString, Enum: []string{"Common", "Uncommon", "Rare", "Epic", "Legendary"}},
								"type":        {Type: genai.TypeString, Enum: []string{"Weapon", "Armor", "Potion", "Quest", "Misc"}},
								"description": {Type: genai.TypeString},
								"quantity":    {Type: genai.TypeInteger},
							},
							Required: []string{"name", "rarity", "type", "description", "quantity"},
						},
					},
					"gold":     {Type: genai.TypeInteger, Description: "Current gold amount"},
					"location": {Type: genai.TypeString, Description: "Current location name"},
					"statusEffects": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "Active status effects like 'Poisoned', 'Blessed'",
					},
					"isInCombat": {Type: genai.TypeBoolean, Description: "Whether the player is currently in a fight"},
					"gameOver":   {Type: genai.TypeBoolean, Description: "True if the character has died or won"},
				},
				Required: []string{"hp", "maxHp", "stats", "inventory", "gold", "location", "isInCombat", "gameOver"},
			},
			"suggestedActions": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "3-4 short, context-relevant action options. If in combat, suggest moves like 'Attack', 'Defend', 'Cast Spell'.",
			},
			"visualEffect": {
				Type:        genai.TypeString,
				Enum:        []string{"NONE", "DAMAGE", "HEAL", "TREASURE", "DANGER", "VICTORY", "DEFEAT"},
				Description: "Trigger a visual effect. DAMAGE: player took damage. HEAL: player healed. TREASURE: found loot. DANGER: combat starts or boss appears. VICTORY/DEFEAT: game ends.",
			},
			"skillCheck": {
				Type:        genai.TypeObject,
				Description: "OPTIONAL. Only include this if the action SPECIFICALLY required a dice roll for a risky action. Do NOT include for normal narrative flow.",
				Properties: map[string]*genai.Schema{
					"skill":           {Type: genai.TypeString, Description: "Name of skill used combined with the stat, e.g. 'Athletics (STR)' or 'Persuasion (CHA)'"},
					"roll":            {Type: genai.TypeInteger, Description: "The final total (baseRoll + modifier)"},
					"baseRoll":        {Type: genai.TypeInteger, Description: "The natural die roll (1-20)"},
					"modifier":        {Type: genai.TypeInteger, Description: "The calculated stat modifier ((Score - 10) / 2)"},
					"difficultyClass": {Type: genai.TypeInteger, Description: "The target number (DC) to beat"},
					"result":          {Type: genai.TypeString, Enum: []string{"SUCCESS", "FAILURE", "CRITICAL_SUCCESS", "CRITICAL_FAILURE"}},
				},
				Required: []string{"skill", "roll", "baseRoll", "modifier", "difficultyClass", "result"},
			},
		},
		Required: []string{"narrative", "gameState", "suggestedActions"},
	}
}
