package character

import (
	"time"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
)

// ClassLevel is one entry in a character's class list. Single-class
// characters have exactly one entry; multiclass characters have one
// per class with its own level.
type ClassLevel struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Subclass string `json:"subclass,omitempty"`
	Level    int    `json:"level"`
}

// Character is the snapshot the resource engine operates on. The
// engine never persists it; the repository layer owns reads/writes.
type Character struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	RealmID string `json:"realm_id"`
	Name    string `json:"name"`

	Attributes map[shared.Attribute]*AbilityScore `json:"attributes"`
	Classes    []ClassLevel                       `json:"classes"`
	Level      int                                `json:"level"` // total across classes

	// FeatureUsage is the unified per-feature resource state
	FeatureUsage shared.UsageMap `json:"feature_usage"`

	// Legacy holds per-ability fields from the pre-unified storage
	// design. Read-only inputs to migration.
	Legacy LegacyUsage `json:"legacy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProficiencyBonus derives the proficiency bonus from total level
func (c *Character) ProficiencyBonus() int {
	if c.Level < 1 {
		return 2
	}
	return 2 + (c.Level-1)/4
}

// ClassLevelFor returns the character's level in the given class, or 0
// if the character has no levels in it
func (c *Character) ClassLevelFor(classKey string) int {
	for _, cl := range c.Classes {
		if cl.Key == classKey {
			return cl.Level
		}
	}
	return 0
}

// SubclassFor returns the chosen subclass for the given class, if any
func (c *Character) SubclassFor(classKey string) string {
	for _, cl := range c.Classes {
		if cl.Key == classKey {
			return cl.Subclass
		}
	}
	return ""
}

// Score returns the raw ability score for an attribute, 10 if unset
func (c *Character) Score(attr shared.Attribute) int {
	if ability, ok := c.Attributes[attr]; ok && ability != nil {
		return ability.Score
	}
	return 10
}

// Modifier returns the ability modifier for an attribute
func (c *Character) Modifier(attr shared.Attribute) int {
	if ability, ok := c.Attributes[attr]; ok && ability != nil {
		return ability.Modifier()
	}
	return 0
}

// Clone returns a deep copy. Engine operations that return an updated
// character work on clones so callers keep an untouched snapshot.
func (c *Character) Clone() *Character {
	if c == nil {
		return nil
	}

	clone := *c

	if c.Attributes != nil {
		clone.Attributes = make(map[shared.Attribute]*AbilityScore, len(c.Attributes))
		for attr, score := range c.Attributes {
			if score != nil {
				copied := *score
				clone.Attributes[attr] = &copied
			}
		}
	}

	if c.Classes != nil {
		clone.Classes = make([]ClassLevel, len(c.Classes))
		copy(clone.Classes, c.Classes)
	}

	clone.FeatureUsage = c.FeatureUsage.Clone()
	clone.Legacy = c.Legacy.Clone()

	return &clone
}
