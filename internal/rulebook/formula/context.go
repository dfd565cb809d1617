package formula

import (
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
)

// Context is the immutable symbol table a formula evaluates against.
// Build a fresh one per evaluation; nothing mutates it.
type Context struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int

	// Level is the class-scoped level when the formula belongs to one
	// class of a multiclass character, otherwise the total level.
	Level int

	ProficiencyBonus int
}

// NewContext builds a Context from a character snapshot. classKey
// scopes Level to that class's level when the character has levels in
// it; pass "" for the total character level.
func NewContext(char *character.Character, classKey string) Context {
	ctx := Context{
		Strength:         char.Score(shared.AttributeStrength),
		Dexterity:        char.Score(shared.AttributeDexterity),
		Constitution:     char.Score(shared.AttributeConstitution),
		Intelligence:     char.Score(shared.AttributeIntelligence),
		Wisdom:           char.Score(shared.AttributeWisdom),
		Charisma:         char.Score(shared.AttributeCharisma),
		Level:            char.Level,
		ProficiencyBonus: char.ProficiencyBonus(),
	}

	if classKey != "" {
		if classLevel := char.ClassLevelFor(classKey); classLevel > 0 {
			ctx.Level = classLevel
		}
	}

	return ctx
}

// modifier returns floor((score - 10) / 2) for a raw ability score
func modifier(score int) int {
	diff := score - 10
	if diff < 0 {
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

// modifiers maps every recognized ability-modifier token, including
// the short alias forms, to its value under this context.
func (c Context) modifiers() map[string]int {
	return map[string]int{
		"strength_modifier":     modifier(c.Strength),
		"str_mod":               modifier(c.Strength),
		"dexterity_modifier":    modifier(c.Dexterity),
		"dex_mod":               modifier(c.Dexterity),
		"constitution_modifier": modifier(c.Constitution),
		"con_mod":               modifier(c.Constitution),
		"intelligence_modifier": modifier(c.Intelligence),
		"int_mod":               modifier(c.Intelligence),
		"wisdom_modifier":       modifier(c.Wisdom),
		"wis_mod":               modifier(c.Wisdom),
		"charisma_modifier":     modifier(c.Charisma),
		"cha_mod":               modifier(c.Charisma),
	}
}

// symbols returns every identifier an arithmetic expression may use
func (c Context) symbols() map[string]int {
	syms := c.modifiers()
	syms["proficiency_bonus"] = c.ProficiencyBonus
	syms["proficiency"] = c.ProficiencyBonus
	syms["level"] = c.Level
	return syms
}
