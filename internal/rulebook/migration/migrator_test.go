package migration_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/migration"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/usage"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/testutils"
)

func newTestMigrator() *migration.Migrator {
	return migration.New(&migration.Config{
		Store: usage.New(&usage.Config{
			TimeProvider: testutils.FixedTime{Time: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)},
		}),
	})
}

func TestMigrator_NeedsMigration(t *testing.T) {
	migrator := newTestMigrator()

	t.Run("true for an eligible character with no unified data", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 3)

		assert.True(t, migrator.NeedsMigration(char))
	})

	t.Run("false once any unified record exists", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 3)
		char.FeatureUsage = shared.UsageMap{
			"bardic-inspiration": {Kind: shared.KindSlots, CurrentUses: 1, MaxUses: 2},
		}

		assert.False(t, migrator.NeedsMigration(char))
	})

	t.Run("false when no tracked feature applies", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "rogue", 3)

		assert.False(t, migrator.NeedsMigration(char))
	})
}

// A paladin who had spent one hit point of healing before migration
// ends up with a pool one short of full.
func TestMigrator_Migrate_LegacyPool(t *testing.T) {
	migrator := newTestMigrator()
	char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 2)
	char.Legacy.LayOnHandsSpent = testutils.IntPtr(1)

	migrated := migrator.Migrate(char)

	record := migrated.FeatureUsage["lay-on-hands"]
	require.NotNil(t, record)
	assert.Equal(t, 10, record.MaxPoints)
	assert.Equal(t, 9, record.CurrentPoints)
}

func TestMigrator_Migrate(t *testing.T) {
	migrator := newTestMigrator()

	t.Run("absent legacy field seeds full", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "bard", 1)
		testutils.WithScore(char, shared.AttributeCharisma, 14)

		migrated := migrator.Migrate(char)

		record := migrated.FeatureUsage["bardic-inspiration"]
		require.NotNil(t, record)
		assert.Equal(t, 2, record.CurrentUses)
		assert.Equal(t, 2, record.MaxUses)
	})

	t.Run("consumed slot uses fold into current uses", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "barbarian", 3)
		char.Legacy.RageUsed = testutils.IntPtr(2)

		migrated := migrator.Migrate(char)

		record := migrated.FeatureUsage["rage"]
		require.NotNil(t, record)
		assert.Equal(t, 3, record.MaxUses)
		assert.Equal(t, 1, record.CurrentUses)
	})

	t.Run("overconsumed legacy value clamps at zero", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "fighter", 1)
		char.Legacy.SecondWindUsed = testutils.IntPtr(5)

		migrated := migrator.Migrate(char)

		assert.Equal(t, 0, migrated.FeatureUsage["second-wind"].CurrentUses)
	})

	t.Run("legacy selections become options", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 3)
		char.Legacy.Invocations = []string{"agonizing-blast", "devils-sight"}

		migrated := migrator.Migrate(char)

		record := migrated.FeatureUsage["eldritch-invocations"]
		require.NotNil(t, record)
		require.Len(t, record.Selected, 2)
		assert.True(t, record.HasOption("agonizing-blast"))
		assert.True(t, record.HasOption("devils-sight"))
	})

	t.Run("wild shape uses fold into custom state", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "druid", 2)
		char.Legacy.WildShapeUsed = testutils.IntPtr(1)

		migrated := migrator.Migrate(char)

		record := migrated.FeatureUsage["wild-shape"]
		require.NotNil(t, record)
		assert.Equal(t, 1, record.CustomState["uses_remaining"])
	})

	t.Run("existing record is never overwritten", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 2)
		char.Legacy.LayOnHandsSpent = testutils.IntPtr(1)
		char.FeatureUsage = shared.UsageMap{
			"lay-on-hands": {Kind: shared.KindPointsPool, CurrentPoints: 3, MaxPoints: 10},
		}

		migrated := migrator.Migrate(char)

		assert.Equal(t, 3, migrated.FeatureUsage["lay-on-hands"].CurrentPoints,
			"live play state wins over recomputed legacy value")
	})

	t.Run("running twice changes nothing", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "monk", 4)
		char.Legacy.KiSpent = testutils.IntPtr(2)

		once := migrator.Migrate(char)
		twice := migrator.Migrate(once)

		assert.Equal(t, once.FeatureUsage, twice.FeatureUsage)
	})

	t.Run("input character is untouched", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 2)
		char.Legacy.LayOnHandsSpent = testutils.IntPtr(1)

		_ = migrator.Migrate(char)

		assert.Empty(t, char.FeatureUsage)
		require.NotNil(t, char.Legacy.LayOnHandsSpent)
		assert.Equal(t, 1, *char.Legacy.LayOnHandsSpent)
	})

	t.Run("ineligible features are skipped", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "fighter", 1)
		char.Legacy.RageUsed = testutils.IntPtr(1)

		migrated := migrator.Migrate(char)

		assert.NotContains(t, migrated.FeatureUsage, "rage")
		require.NotNil(t, migrated.Legacy.RageUsed, "unabsorbed field survives")
	})
}

func TestMigrator_CleanupLegacy(t *testing.T) {
	migrator := newTestMigrator()

	t.Run("clears absorbed fields only", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "paladin", 2)
		char.Legacy.LayOnHandsSpent = testutils.IntPtr(1)
		char.Legacy.RageUsed = testutils.IntPtr(2) // never migrated, wrong class

		migrated := migrator.Migrate(char)
		cleaned := migrator.CleanupLegacy(migrated)

		assert.Nil(t, cleaned.Legacy.LayOnHandsSpent)
		require.NotNil(t, cleaned.Legacy.RageUsed)
		assert.Equal(t, 2, *cleaned.Legacy.RageUsed)
	})

	t.Run("keeps selections until every key is absorbed", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "warlock", 3)
		char.Legacy.Invocations = []string{"agonizing-blast", "devils-sight"}
		char.FeatureUsage = shared.UsageMap{
			"eldritch-invocations": {
				Kind:     shared.KindOptionsList,
				Selected: []shared.SelectedOption{{Key: "agonizing-blast"}},
			},
		}

		cleaned := migrator.CleanupLegacy(char)

		assert.Equal(t, []string{"agonizing-blast", "devils-sight"}, cleaned.Legacy.Invocations,
			"one key missing from the record blocks the clear")
	})

	t.Run("no unified record means no clear", func(t *testing.T) {
		char := testutils.CreateTestCharacter("char-1", "owner-1", "monk", 3)
		char.Legacy.KiSpent = testutils.IntPtr(2)

		cleaned := migrator.CleanupLegacy(char)

		require.NotNil(t, cleaned.Legacy.KiSpent)
	})
}
