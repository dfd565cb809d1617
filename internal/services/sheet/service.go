// Package sheet orchestrates the resource engine against persistence.
// The engine packages stay pure; this layer loads snapshots, applies
// operations, and writes the results back.
package sheet

import (
	"context"
	"log"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet-engine/internal/errors"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/describe"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/migration"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/usage"
)

// Service exposes character feature operations to the UI layer
type Service interface {
	// GetCharacter loads a character, migrating legacy usage fields
	// into the unified map when needed.
	GetCharacter(ctx context.Context, characterID string) (*character.Character, error)

	// InitializeFeature creates the usage record for a feature if absent
	InitializeFeature(ctx context.Context, characterID, featureKey string) (*character.Character, error)

	// UseFeature consumes uses of a slots feature
	UseFeature(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error)

	// RestoreFeature returns uses to a slots feature
	RestoreFeature(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error)

	// SpendPoints spends from a points pool
	SpendPoints(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error)

	// RestorePoints returns points to a pool
	RestorePoints(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error)

	// AddOption adds a selection to an options_list feature
	AddOption(ctx context.Context, characterID, featureKey string, option shared.SelectedOption) (*character.Character, error)

	// RemoveOption removes a selection from an options_list feature
	RemoveOption(ctx context.Context, characterID, featureKey, optionKey string) (*character.Character, error)

	// SwapOption replaces one selection with another, allowed only
	// for templates that declare selections swappable.
	SwapOption(ctx context.Context, characterID, featureKey, removeKey string, add shared.SelectedOption) (*character.Character, error)

	// ToggleFeature flips an availability toggle
	ToggleFeature(ctx context.Context, characterID, featureKey string) (*character.Character, error)

	// UpdateCustomState shallow-merges module-owned state
	UpdateCustomState(ctx context.Context, characterID, featureKey string, patch map[string]any) (*character.Character, error)

	// UpdateNotes replaces a feature's free-text notes
	UpdateNotes(ctx context.Context, characterID, featureKey, notes string) (*character.Character, error)

	// Rest applies a rest-triggered reset across every tracked feature
	Rest(ctx context.Context, characterID string, rest shared.RestType) (*character.Character, error)

	// DescribeFeature returns a feature's description with computed
	// values substituted in.
	DescribeFeature(ctx context.Context, characterID, featureKey string) (string, error)

	// ListFeatureOptions returns the candidate options for a
	// catalog-backed options_list feature.
	ListFeatureOptions(ctx context.Context, characterID, featureKey string) ([]shared.SelectedOption, error)

	// MigrateCharacter force-runs legacy migration for one character
	MigrateCharacter(ctx context.Context, characterID string) (*character.Character, error)
}

type service struct {
	repository characters.Repository
	store      *usage.Store
	migrator   *migration.Migrator
	registry   *catalog.Registry
	resolver   *describe.Resolver
	dndClient  dnd5e.Client
}

// ServiceConfig holds configuration for the sheet service
type ServiceConfig struct {
	Repository characters.Repository
	Store      *usage.Store
	Migrator   *migration.Migrator
	Registry   *catalog.Registry
	Resolver   *describe.Resolver

	// DNDClient is optional; without it catalog-backed option lists
	// are unavailable.
	DNDClient dnd5e.Client
}

// NewService creates a new sheet service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("character repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		store:      cfg.Store,
		migrator:   cfg.Migrator,
		registry:   cfg.Registry,
		resolver:   cfg.Resolver,
		dndClient:  cfg.DNDClient,
	}

	if svc.registry == nil {
		svc.registry = catalog.Default()
	}
	if svc.store == nil {
		svc.store = usage.New(&usage.Config{Registry: svc.registry})
	}
	if svc.migrator == nil {
		svc.migrator = migration.New(&migration.Config{
			Registry: svc.registry,
			Store:    svc.store,
		})
	}
	if svc.resolver == nil {
		svc.resolver = describe.NewResolver(nil)
	}

	return svc
}

// GetCharacter loads a character, migrating opportunistically. A
// failed save of the migrated state is logged, not fatal: the caller
// still gets the migrated snapshot and the next load retries.
func (s *service) GetCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if !s.migrator.NeedsMigration(char) {
		return char, nil
	}

	migrated := s.migrator.Migrate(char)
	if err := s.repository.Update(ctx, migrated); err != nil {
		log.Printf("Failed to save migrated usage for character %s: %v", characterID, err)
	}

	return migrated, nil
}

func (s *service) InitializeFeature(ctx context.Context, characterID, featureKey string) (*character.Character, error) {
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.Initialize(char, featureKey)
	})
}

func (s *service) UseFeature(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error) {
	if amount < 1 {
		return nil, dnderr.InvalidArgument("amount must be positive")
	}
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.UseSlot(char, featureKey, amount)
	})
}

func (s *service) RestoreFeature(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error) {
	if amount < 1 {
		return nil, dnderr.InvalidArgument("amount must be positive")
	}
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.RestoreSlot(char, featureKey, amount)
	})
}

func (s *service) SpendPoints(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error) {
	if amount < 1 {
		return nil, dnderr.InvalidArgument("amount must be positive")
	}
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.SpendPoints(char, featureKey, amount)
	})
}

func (s *service) RestorePoints(ctx context.Context, characterID, featureKey string, amount int) (*character.Character, error) {
	if amount < 1 {
		return nil, dnderr.InvalidArgument("amount must be positive")
	}
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.RestorePoints(char, featureKey, amount)
	})
}

func (s *service) AddOption(ctx context.Context, characterID, featureKey string, option shared.SelectedOption) (*character.Character, error) {
	if option.Key == "" {
		return nil, dnderr.InvalidArgument("option key is required")
	}
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.AddOption(char, featureKey, option)
	})
}

func (s *service) RemoveOption(ctx context.Context, characterID, featureKey, optionKey string) (*character.Character, error) {
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.RemoveOption(char, featureKey, optionKey)
	})
}

// SwapOption removes one selection and adds another in a single
// persisted step. Only templates that declare their selections
// swappable allow it. A swap whose replacement cannot land persists
// nothing; a half-applied swap would lose the removed selection.
func (s *service) SwapOption(ctx context.Context, characterID, featureKey, removeKey string, add shared.SelectedOption) (*character.Character, error) {
	if add.Key == "" {
		return nil, dnderr.InvalidArgument("option key is required")
	}

	tmpl, ok := s.registry.Get(featureKey)
	if !ok {
		return nil, dnderr.NotFoundf("unknown feature %q", featureKey)
	}
	if tmpl.Options == nil || !tmpl.Options.Swappable {
		return nil, dnderr.InvalidArgumentf("feature %q does not allow swapping selections", featureKey)
	}

	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if record, exists := char.FeatureUsage[featureKey]; exists {
		if !tmpl.Options.AllowDuplicates && add.Key != removeKey && record.HasOption(add.Key) {
			return nil, dnderr.InvalidArgumentf("option %q is already selected", add.Key)
		}
	}

	working := char.Clone()
	working.FeatureUsage = s.store.RemoveOption(working, featureKey, removeKey)
	swapped := s.store.AddOption(working, featureKey, add)

	record, exists := swapped[featureKey]
	if !exists || !record.HasOption(add.Key) {
		return nil, dnderr.InvalidArgumentf("cannot swap %q for %q on feature %q", removeKey, add.Key, featureKey)
	}

	char.FeatureUsage = swapped
	if err := s.repository.Update(ctx, char); err != nil {
		return nil, err
	}

	return char, nil
}

func (s *service) ToggleFeature(ctx context.Context, characterID, featureKey string) (*character.Character, error) {
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.ToggleAvailability(char, featureKey)
	})
}

func (s *service) UpdateCustomState(ctx context.Context, characterID, featureKey string, patch map[string]any) (*character.Character, error) {
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.UpdateCustomState(char, featureKey, patch)
	})
}

func (s *service) UpdateNotes(ctx context.Context, characterID, featureKey, notes string) (*character.Character, error) {
	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.UpdateNotes(char, featureKey, notes)
	})
}

// Rest refetches the latest persisted state before applying the
// sweep. Long rests are broadcast to every viewer of a shared
// character; applying the reset to a stale in-memory snapshot would
// clobber edits other viewers made since this one loaded.
func (s *service) Rest(ctx context.Context, characterID string, rest shared.RestType) (*character.Character, error) {
	switch rest {
	case shared.RestTypeShort, shared.RestTypeLong, shared.RestTypeDawn:
	default:
		return nil, dnderr.InvalidArgumentf("unknown rest type %q", rest)
	}

	return s.mutate(ctx, characterID, func(char *character.Character) shared.UsageMap {
		return s.store.ResetAll(char, rest)
	})
}

func (s *service) DescribeFeature(ctx context.Context, characterID, featureKey string) (string, error) {
	tmpl, ok := s.registry.Get(featureKey)
	if !ok {
		return "", dnderr.NotFoundf("unknown feature %q", featureKey)
	}

	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return "", err
	}

	return s.resolver.Resolve(tmpl.Description, char, tmpl), nil
}

// ListFeatureOptions returns candidates for a catalog- or
// spells-backed options_list. Custom-source templates return nothing;
// their options are ad-hoc entries the player types in.
func (s *service) ListFeatureOptions(ctx context.Context, characterID, featureKey string) ([]shared.SelectedOption, error) {
	tmpl, ok := s.registry.Get(featureKey)
	if !ok {
		return nil, dnderr.NotFoundf("unknown feature %q", featureKey)
	}
	if tmpl.Options == nil {
		return nil, dnderr.InvalidArgumentf("feature %q has no option list", featureKey)
	}
	if tmpl.Options.Source != catalog.OptionSourceCatalog && tmpl.Options.Source != catalog.OptionSourceSpells {
		return nil, nil
	}
	if s.dndClient == nil {
		return nil, dnderr.Internal("no options catalog client configured")
	}

	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	classLevel := char.ClassLevelFor(tmpl.Class)
	if classLevel < tmpl.Options.MinLevel {
		return nil, nil
	}

	if tmpl.Options.Source == catalog.OptionSourceSpells {
		spellLevel := tmpl.Options.SpellLevel
		if spellLevel == 0 {
			spellLevel = -1
		}
		return s.dndClient.ListSpellOptions(tmpl.Class, spellLevel)
	}

	return s.dndClient.ListFeatureOptions(tmpl.Class, classLevel)
}

func (s *service) MigrateCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, err
	}

	migrated := s.migrator.Migrate(char)
	if err := s.repository.Update(ctx, migrated); err != nil {
		return nil, err
	}

	return migrated, nil
}

// mutate loads the latest persisted character, applies op to produce
// a new usage map, persists, and returns the updated character.
func (s *service) mutate(ctx context.Context, characterID string, op func(*character.Character) shared.UsageMap) (*character.Character, error) {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	char.FeatureUsage = op(char)

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, err
	}

	return char, nil
}
