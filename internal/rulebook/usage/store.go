// Package usage implements the per-character feature resource store.
// Every operation is pure: it takes the character snapshot, returns a
// new usage map, and never mutates its input. Callers persist the
// returned map.
package usage

import (
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/formula"
)

// Store evaluates feature operations against the template catalog.
// Wrong-kind operations and operations on unknown features return the
// map unchanged rather than erroring, so a stale UI reference can
// never corrupt state.
type Store struct {
	registry  *catalog.Registry
	evaluator *formula.Evaluator
	clock     TimeProvider
}

// Config holds the Store's dependencies
type Config struct {
	Registry     *catalog.Registry
	Evaluator    *formula.Evaluator
	TimeProvider TimeProvider
}

// New creates a Store. Nil config or nil fields fall back to the
// built-in catalog, the default progression tables, and the wall
// clock.
func New(cfg *Config) *Store {
	if cfg == nil {
		cfg = &Config{}
	}

	s := &Store{
		registry:  cfg.Registry,
		evaluator: cfg.Evaluator,
		clock:     cfg.TimeProvider,
	}

	if s.registry == nil {
		s.registry = catalog.Default()
	}
	if s.evaluator == nil {
		s.evaluator = formula.NewEvaluator(formula.DefaultProgressions())
	}
	if s.clock == nil {
		s.clock = realTime{}
	}

	return s
}

// Initialize creates a usage record for the feature if one does not
// exist, seeding it full per its kind. A second call is a no-op, so
// an existing record is never reset by a stray re-initialize.
func (s *Store) Initialize(char *character.Character, featureKey string) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	if _, exists := usage[featureKey]; exists {
		return usage
	}

	tmpl, ok := s.registry.Get(featureKey)
	if !ok {
		return usage
	}

	usage[featureKey] = s.seedRecord(char, tmpl)
	return usage
}

// seedRecord builds a freshly initialized record for a template using
// the character's live stats.
func (s *Store) seedRecord(char *character.Character, tmpl *catalog.Template) *shared.UsageRecord {
	record := &shared.UsageRecord{
		Name:        tmpl.Title,
		Kind:        tmpl.Kind,
		Level:       tmpl.Level,
		LastUpdated: s.clock.Now(),
	}

	ctx := formula.NewContext(char, tmpl.Class)

	switch tmpl.Kind {
	case shared.KindSlots:
		record.MaxUses = s.evaluator.Evaluate(tmpl.Slots.UsesFormula, ctx)
		record.CurrentUses = record.MaxUses
	case shared.KindPointsPool:
		record.MaxPoints = s.evaluator.EvaluateTotal(tmpl.Points.TotalFormula, ctx)
		record.CurrentPoints = record.MaxPoints
	case shared.KindOptionsList:
		record.Selected = []shared.SelectedOption{}
	case shared.KindSpecialUX:
		record.CustomState = map[string]any{}
	case shared.KindAvailabilityToggle:
		record.Available = tmpl.Toggle.DefaultAvailable
	}

	return record
}

// UseSlot consumes uses of a slots feature, clamped at 0. A missing
// record for a known, eligible feature is lazily initialized first;
// this covers characters created before the unified store that have
// not been migrated yet.
func (s *Store) UseSlot(char *character.Character, featureKey string, amount int) shared.UsageMap {
	return s.adjustSlots(char, featureKey, -amount)
}

// RestoreSlot returns uses to a slots feature, clamped at the maximum
func (s *Store) RestoreSlot(char *character.Character, featureKey string, amount int) shared.UsageMap {
	return s.adjustSlots(char, featureKey, amount)
}

func (s *Store) adjustSlots(char *character.Character, featureKey string, delta int) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists {
		tmpl, ok := s.registry.Get(featureKey)
		if !ok || tmpl.Kind != shared.KindSlots || !tmpl.AppliesTo(char) {
			return usage
		}
		record = s.seedRecord(char, tmpl)
		usage[featureKey] = record
	}

	if record.Kind != shared.KindSlots {
		return usage
	}

	record.CurrentUses = clamp(record.CurrentUses+delta, 0, record.MaxUses)
	record.LastUpdated = s.clock.Now()
	return usage
}

// SpendPoints spends from a points pool, clamped at 0. When the
// template forbids partial spends, the only legal spend is the whole
// remaining pool. Per-transaction min/max bounds are the caller's
// concern, not enforced here.
func (s *Store) SpendPoints(char *character.Character, featureKey string, amount int) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists || record.Kind != shared.KindPointsPool {
		return usage
	}

	if tmpl, ok := s.registry.Get(featureKey); ok && tmpl.Points != nil {
		if !tmpl.Points.PartialSpend && amount != record.CurrentPoints {
			return usage
		}
	}

	record.CurrentPoints = clamp(record.CurrentPoints-amount, 0, record.MaxPoints)
	record.LastUpdated = s.clock.Now()
	return usage
}

// RestorePoints returns points to a pool, clamped at the maximum
func (s *Store) RestorePoints(char *character.Character, featureKey string, amount int) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists || record.Kind != shared.KindPointsPool {
		return usage
	}

	record.CurrentPoints = clamp(record.CurrentPoints+amount, 0, record.MaxPoints)
	record.LastUpdated = s.clock.Now()
	return usage
}

// AddOption adds a selection to an options_list feature. Duplicates
// (unless the template allows them) and selections past the computed
// maximum are rejected as no-ops. Selections already over capacity
// from old data are tolerated; they just block new additions.
func (s *Store) AddOption(char *character.Character, featureKey string, option shared.SelectedOption) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	tmpl, ok := s.registry.Get(featureKey)
	if !ok || tmpl.Kind != shared.KindOptionsList {
		return usage
	}

	record, exists := usage[featureKey]
	if !exists {
		if !tmpl.AppliesTo(char) {
			return usage
		}
		record = s.seedRecord(char, tmpl)
		usage[featureKey] = record
	}

	if record.Kind != shared.KindOptionsList {
		return usage
	}

	if !tmpl.Options.AllowDuplicates && record.HasOption(option.Key) {
		return usage
	}

	maxSelections := s.evaluator.Evaluate(tmpl.Options.MaxFormula, formula.NewContext(char, tmpl.Class))
	if len(record.Selected) >= maxSelections {
		return usage
	}

	record.Selected = append(record.Selected, option)
	record.LastUpdated = s.clock.Now()
	return usage
}

// RemoveOption removes a selection by option key; no-op if absent
func (s *Store) RemoveOption(char *character.Character, featureKey string, optionKey string) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists || record.Kind != shared.KindOptionsList {
		return usage
	}

	kept := record.Selected[:0]
	removed := false
	for _, opt := range record.Selected {
		if opt.Key == optionKey && !removed {
			removed = true
			continue
		}
		kept = append(kept, opt)
	}

	if !removed {
		return usage
	}

	record.Selected = kept
	record.LastUpdated = s.clock.Now()
	return usage
}

// UpdateCustomState shallow-merges patch into a special_ux record's
// custom state. The state's shape belongs to the bespoke module; the
// engine just carries it.
func (s *Store) UpdateCustomState(char *character.Character, featureKey string, patch map[string]any) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists || record.Kind != shared.KindSpecialUX {
		return usage
	}

	if record.CustomState == nil {
		record.CustomState = map[string]any{}
	}
	for k, v := range patch {
		record.CustomState[k] = v
	}

	record.LastUpdated = s.clock.Now()
	return usage
}

// ToggleAvailability flips an availability_toggle record's flag. For
// special_ux records that track an "available" flag inside custom
// state, that flag is flipped instead; the two paths are dispatched
// on kind, never duck-typed.
func (s *Store) ToggleAvailability(char *character.Character, featureKey string) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists {
		return usage
	}

	switch record.Kind {
	case shared.KindAvailabilityToggle:
		record.Available = !record.Available
	case shared.KindSpecialUX:
		available, ok := record.CustomState["available"].(bool)
		if !ok {
			return usage
		}
		record.CustomState["available"] = !available
	default:
		return usage
	}

	record.LastUpdated = s.clock.Now()
	return usage
}

// UpdateNotes replaces a record's free-text notes
func (s *Store) UpdateNotes(char *character.Character, featureKey string, notes string) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	record, exists := usage[featureKey]
	if !exists {
		return usage
	}

	record.Notes = notes
	record.LastUpdated = s.clock.Now()
	return usage
}

// AvailableFeatures returns the template keys the character currently
// qualifies for. Used by the cleanup pass to prune records for
// features lost to a class change.
func (s *Store) AvailableFeatures(char *character.Character) map[string]bool {
	available := make(map[string]bool)
	for _, tmpl := range s.registry.All() {
		if tmpl.AppliesTo(char) {
			available[tmpl.Key] = true
		}
	}
	return available
}

// PruneUnavailable drops records for features the character no longer
// qualifies for (class change). Records for unknown keys are kept;
// only a template that provably no longer applies removes state.
func (s *Store) PruneUnavailable(char *character.Character) shared.UsageMap {
	usage := char.FeatureUsage.Clone()

	for key := range usage {
		tmpl, ok := s.registry.Get(key)
		if !ok {
			continue
		}
		if !tmpl.AppliesTo(char) {
			delete(usage, key)
		}
	}

	return usage
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
