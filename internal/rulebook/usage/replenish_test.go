package usage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/testutils"
)

func TestStore_ResetAll_Scoping(t *testing.T) {
	store := newTestStore()

	// A fighter with both a short-rest feature (second wind) and a
	// long-rest feature (indomitable), both expended.
	makeChar := func() *character.Character {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "fighter", 9)
		char.FeatureUsage = store.Initialize(char, "second-wind")
		char.FeatureUsage = store.UseSlot(char, "second-wind", 1)
		char.FeatureUsage = store.Initialize(char, "indomitable")
		char.FeatureUsage = store.ToggleAvailability(char, "indomitable")
		return char
	}

	t.Run("short rest resets only short-rest features", func(t *testing.T) {
		char := makeChar()

		result := store.ResetAll(char, shared.RestTypeShort)

		assert.Equal(t, 1, result["second-wind"].CurrentUses)
		assert.False(t, result["indomitable"].Available,
			"long-rest feature untouched by a short rest")
	})

	t.Run("long rest resets only long-rest features", func(t *testing.T) {
		char := makeChar()

		result := store.ResetAll(char, shared.RestTypeLong)

		assert.Equal(t, 0, result["second-wind"].CurrentUses,
			"short-rest feature untouched by a long rest")
		assert.True(t, result["indomitable"].Available)
	})

	t.Run("unknown rest type resets nothing", func(t *testing.T) {
		char := makeChar()

		result := store.ResetAll(char, shared.RestType("nap"))

		assert.Equal(t, 0, result["second-wind"].CurrentUses)
		assert.False(t, result["indomitable"].Available)
	})
}

func TestStore_ResetAll_DawnEquivalence(t *testing.T) {
	store := newTestStore()
	char := testutils.CreateTestCharacter("char-1", "owner-1", "wizard", 1)
	char.FeatureUsage = store.Initialize(char, "arcane-recovery")
	char.FeatureUsage = store.ToggleAvailability(char, "arcane-recovery")
	require.False(t, char.FeatureUsage["arcane-recovery"].Available)

	t.Run("dawn resets a dawn-timed toggle", func(t *testing.T) {
		result := store.ResetAll(char, shared.RestTypeDawn)
		assert.True(t, result["arcane-recovery"].Available)
	})

	t.Run("long rest also resets a dawn-timed toggle", func(t *testing.T) {
		result := store.ResetAll(char, shared.RestTypeLong)
		assert.True(t, result["arcane-recovery"].Available)
	})

	t.Run("short rest does not", func(t *testing.T) {
		result := store.ResetAll(char, shared.RestTypeShort)
		assert.False(t, result["arcane-recovery"].Available)
	})
}

func TestStore_ResetAll_Kinds(t *testing.T) {
	store := newTestStore()

	t.Run("points pool refills", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 4)
		char.FeatureUsage = store.Initialize(char, "lay-on-hands")
		char.FeatureUsage = store.SpendPoints(char, "lay-on-hands", 15)

		result := store.ResetAll(char, shared.RestTypeLong)

		assert.Equal(t, 20, result["lay-on-hands"].CurrentPoints)
	})

	t.Run("option selections survive every rest", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 2)
		char.FeatureUsage = store.Initialize(char, "eldritch-invocations")
		char.FeatureUsage = store.AddOption(char, "eldritch-invocations",
			shared.SelectedOption{Key: "agonizing-blast"})

		result := store.ResetAll(char, shared.RestTypeLong)

		assert.Len(t, result["eldritch-invocations"].Selected, 1)
	})

	t.Run("special state merges the on-rest values", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "druid", 2)
		char.FeatureUsage = store.Initialize(char, "wild-shape")
		char.FeatureUsage = store.UpdateCustomState(char, "wild-shape", map[string]any{
			"uses_remaining": 0,
			"active_form":    "bear",
			"favorite_form":  "bear",
		})

		result := store.ResetAll(char, shared.RestTypeShort)

		state := result["wild-shape"].CustomState
		assert.Equal(t, 2, state["uses_remaining"])
		assert.Equal(t, "", state["active_form"])
		assert.Equal(t, "bear", state["favorite_form"],
			"keys outside the on-rest set are preserved")
	})

	t.Run("records with no backing template pass through", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "druid", 2)
		char.FeatureUsage = shared.UsageMap{
			"homebrew": {Name: "Homebrew", Kind: shared.KindSlots, CurrentUses: 0, MaxUses: 3},
		}

		result := store.ResetAll(char, shared.RestTypeLong)

		assert.Equal(t, 0, result["homebrew"].CurrentUses)
	})
}

func TestStore_ResetAll_StampsLastReset(t *testing.T) {
	store := newTestStore()
	char := testutils.CreateTestCharacter("char-1", "owner-1", "fighter", 1)
	char.FeatureUsage = store.Initialize(char, "second-wind")
	char.FeatureUsage = store.UseSlot(char, "second-wind", 1)

	result := store.ResetAll(char, shared.RestTypeShort)

	assert.Equal(t, fixedNow, result["second-wind"].LastReset)
	assert.True(t, char.FeatureUsage["second-wind"].LastReset.IsZero(),
		"input snapshot untouched")
}
