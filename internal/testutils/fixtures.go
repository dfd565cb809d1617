package testutils

import (
	"time"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
)

// CreateTestCharacter creates a single-class character with the
// standard array and every attribute populated.
func CreateTestCharacter(id, ownerID, classKey string, level int) *character.Character {
	return &character.Character{
		ID:      id,
		OwnerID: ownerID,
		RealmID: "realm-test",
		Name:    "Test " + classKey,
		Attributes: map[shared.Attribute]*character.AbilityScore{
			shared.AttributeStrength:     {Score: 15},
			shared.AttributeDexterity:    {Score: 14},
			shared.AttributeConstitution: {Score: 13},
			shared.AttributeIntelligence: {Score: 12},
			shared.AttributeWisdom:       {Score: 10},
			shared.AttributeCharisma:     {Score: 8},
		},
		Classes: []character.ClassLevel{
			{Key: classKey, Name: classKey, Level: level},
		},
		Level:        level,
		FeatureUsage: shared.UsageMap{},
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
}

// WithScore overrides one ability score on a test character
func WithScore(char *character.Character, attr shared.Attribute, score int) *character.Character {
	char.Attributes[attr] = &character.AbilityScore{Score: score}
	return char
}

// FixedTime is a TimeProvider returning a constant instant
type FixedTime struct {
	Time time.Time
}

// Now returns the fixed instant
func (f FixedTime) Now() time.Time {
	return f.Time
}

// IntPtr returns a pointer to n, for populating legacy usage fields
func IntPtr(n int) *int {
	return &n
}
