package describe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/describe"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/testutils"
)

func TestResolver_Resolve(t *testing.T) {
	resolver := describe.NewResolver(nil)
	registry := catalog.Default()

	t.Run("substitutes modifier and dice tokens", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 1)
		testutils.WithScore(char, shared.AttributeCharisma, 14)
		tmpl, ok := registry.Get("bardic-inspiration")
		require.True(t, ok)

		result := resolver.Resolve(tmpl.Description, char, tmpl)

		assert.Contains(t, result, "a d6 Bardic Inspiration die")
		assert.Contains(t, result, "use this feature 2 times")
		assert.NotContains(t, result, "{")
	})

	t.Run("dice token follows the class level progression", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 15)
		tmpl, _ := registry.Get("bardic-inspiration")

		result := resolver.Resolve(tmpl.Description, char, tmpl)

		assert.Contains(t, result, "a d12 Bardic Inspiration die")
	})

	t.Run("negative modifier stays negative in text", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 1)
		tmpl, _ := registry.Get("bardic-inspiration")

		result := resolver.Resolve(tmpl.Description, char, tmpl)

		assert.Contains(t, result, "use this feature -1 times",
			"display shows the raw modifier even when usage counts floor at 1")
	})

	t.Run("level token uses the class level", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "fighter", 3)
		tmpl, _ := registry.Get("second-wind")

		result := resolver.Resolve(tmpl.Description, char, tmpl)

		assert.Contains(t, result, "1d10 + 3")
	})

	t.Run("override text wins over computed values", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 4)
		tmpl, _ := registry.Get("lay-on-hands")

		result := resolver.Resolve(tmpl.Description, char, tmpl)

		assert.Contains(t, result, "equal to your paladin level times 5")
	})

	t.Run("unresolved tokens are left verbatim", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 1)
		tmpl := &catalog.Template{
			Key:   "test",
			Title: "Test",
			Kind:  shared.KindSlots,
			Class: "bard",
			Level: 1,
			Slots: &catalog.SlotsConfig{UsesFormula: "fixed:1", Timing: shared.RestTypeShort},
		}

		result := resolver.Resolve("You gain {mystery_token} benefits.", char, tmpl)

		assert.Equal(t, "You gain {mystery_token} benefits.", result)
	})

	t.Run("explicit base dice beats the progression", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "fighter", 1)
		tmpl := &catalog.Template{
			Key:   "test",
			Title: "Test",
			Kind:  shared.KindSlots,
			Class: "fighter",
			Level: 1,
			Slots: &catalog.SlotsConfig{
				UsesFormula: "fixed:1",
				BaseDice:    "d10",
				DiceByLevel: []int{6, 6, 6},
				Timing:      shared.RestTypeShort,
			},
		}

		result := resolver.Resolve("Roll {dice}.", char, tmpl)

		assert.Equal(t, "Roll d10.", result)
	})
}

func TestResolver_Segments(t *testing.T) {
	resolver := describe.NewResolver(nil)
	char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 4)
	tmpl := &catalog.Template{
		Key:   "test",
		Title: "Test",
		Kind:  shared.KindSlots,
		Class: "bard",
		Level: 1,
		Slots: &catalog.SlotsConfig{UsesFormula: "fixed:1", Timing: shared.RestTypeShort},
	}

	t.Run("marks substituted runs", func(t *testing.T) {
		segments := resolver.Segments("Add {proficiency_bonus} to the roll.", char, tmpl)

		require.Len(t, segments, 3)
		assert.Equal(t, describe.Segment{Text: "Add "}, segments[0])
		assert.Equal(t, describe.Segment{Text: "2", Value: true}, segments[1])
		assert.Equal(t, describe.Segment{Text: " to the roll.", Value: false}, segments[2])
	})

	t.Run("merges unresolved token into adjacent literals", func(t *testing.T) {
		segments := resolver.Segments("Gain {nothing} here.", char, tmpl)

		require.Len(t, segments, 1)
		assert.Equal(t, "Gain {nothing} here.", segments[0].Text)
		assert.False(t, segments[0].Value)
	})

	t.Run("unterminated brace is literal text", func(t *testing.T) {
		segments := resolver.Segments("Broken {token text", char, tmpl)

		require.Len(t, segments, 1)
		assert.Equal(t, "Broken {token text", segments[0].Text)
	})

	t.Run("adjacent tokens each get a segment", func(t *testing.T) {
		segments := resolver.Segments("{level}{proficiency}", char, tmpl)

		require.Len(t, segments, 2)
		assert.Equal(t, describe.Segment{Text: "4", Value: true}, segments[0])
		assert.Equal(t, describe.Segment{Text: "2", Value: true}, segments[1])
	})
}
