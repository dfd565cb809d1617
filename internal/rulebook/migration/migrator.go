// Package migration folds the old per-field ability storage into the
// unified usage map. Migration is additive and idempotent: a feature
// that already has a usage record is never touched, so live play
// state can't be overwritten by a recomputed legacy value.
package migration

import (
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/usage"
)

// Migrator translates legacy per-ability fields into usage records
type Migrator struct {
	registry *catalog.Registry
	store    *usage.Store
}

// Config holds the Migrator's dependencies
type Config struct {
	Registry *catalog.Registry
	Store    *usage.Store
}

// New creates a Migrator. Nil config or fields fall back to the
// built-in catalog and a default store.
func New(cfg *Config) *Migrator {
	if cfg == nil {
		cfg = &Config{}
	}

	m := &Migrator{
		registry: cfg.Registry,
		store:    cfg.Store,
	}

	if m.registry == nil {
		m.registry = catalog.Default()
	}
	if m.store == nil {
		m.store = usage.New(&usage.Config{Registry: m.registry})
	}

	return m
}

// NeedsMigration is a fast pre-check: true only when the character's
// classes imply at least one tracked feature and the unified map is
// still empty. Characters with any unified data are skipped without
// scanning their legacy fields.
func (m *Migrator) NeedsMigration(char *character.Character) bool {
	if len(char.FeatureUsage) > 0 {
		return false
	}

	for _, tmpl := range m.registry.All() {
		if tmpl.AppliesTo(char) {
			return true
		}
	}
	return false
}

// Migrate returns a copy of the character with a usage record for
// every eligible legacy-backed feature that lacks one. An absent
// legacy field means the ability was never spent, so the record seeds
// full. Existing records are left exactly as they are; running
// Migrate on an already-migrated character changes nothing.
func (m *Migrator) Migrate(char *character.Character) *character.Character {
	migrated := char.Clone()

	for _, mapping := range legacyMappings() {
		tmpl, ok := m.registry.Get(mapping.featureKey)
		if !ok || !tmpl.AppliesTo(migrated) {
			continue
		}

		if _, exists := migrated.FeatureUsage[mapping.featureKey]; exists {
			continue
		}

		migrated.FeatureUsage = m.store.Initialize(migrated, mapping.featureKey)

		record, exists := migrated.FeatureUsage[mapping.featureKey]
		if !exists {
			continue
		}

		mapping.apply(record, migrated.Legacy, tmpl)
	}

	return migrated
}

// CleanupLegacy returns a copy with legacy fields cleared, but only
// for features whose value has provably been absorbed into a unified
// record. Fields for unmigrated features are left alone; there is no
// blind clear.
func (m *Migrator) CleanupLegacy(char *character.Character) *character.Character {
	cleaned := char.Clone()

	for _, mapping := range legacyMappings() {
		record, exists := cleaned.FeatureUsage[mapping.featureKey]
		if !exists {
			continue
		}

		if !mapping.absorbed(record, cleaned.Legacy) {
			continue
		}

		mapping.clear(&cleaned.Legacy)
	}

	return cleaned
}
