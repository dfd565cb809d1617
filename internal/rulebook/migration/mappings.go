package migration

import (
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
)

// legacyMapping binds one legacy-backed feature to the logic that
// folds its old field(s) into a freshly seeded usage record, the
// check that the record has absorbed the legacy value, and the
// cleanup of the now-redundant field(s). Several legacy fields
// mapping to one record go through a single mapping entry.
type legacyMapping struct {
	featureKey string
	apply      func(record *shared.UsageRecord, legacy character.LegacyUsage, tmpl *catalog.Template)
	absorbed   func(record *shared.UsageRecord, legacy character.LegacyUsage) bool
	clear      func(legacy *character.LegacyUsage)
}

func legacyMappings() []legacyMapping {
	slotsMapping := func(featureKey string, used func(character.LegacyUsage) *int, clear func(*character.LegacyUsage)) legacyMapping {
		return legacyMapping{
			featureKey: featureKey,
			apply: func(record *shared.UsageRecord, legacy character.LegacyUsage, _ *catalog.Template) {
				if spent := used(legacy); spent != nil {
					record.CurrentUses = clampRange(record.MaxUses-*spent, 0, record.MaxUses)
				}
			},
			absorbed: func(record *shared.UsageRecord, _ character.LegacyUsage) bool {
				return record.Kind == shared.KindSlots
			},
			clear: clear,
		}
	}

	poolMapping := func(featureKey string, spent func(character.LegacyUsage) *int, clear func(*character.LegacyUsage)) legacyMapping {
		return legacyMapping{
			featureKey: featureKey,
			apply: func(record *shared.UsageRecord, legacy character.LegacyUsage, _ *catalog.Template) {
				if consumed := spent(legacy); consumed != nil {
					record.CurrentPoints = clampRange(record.MaxPoints-*consumed, 0, record.MaxPoints)
				}
			},
			absorbed: func(record *shared.UsageRecord, _ character.LegacyUsage) bool {
				return record.Kind == shared.KindPointsPool
			},
			clear: clear,
		}
	}

	optionsMapping := func(featureKey string, keys func(character.LegacyUsage) []string, clear func(*character.LegacyUsage)) legacyMapping {
		return legacyMapping{
			featureKey: featureKey,
			apply: func(record *shared.UsageRecord, legacy character.LegacyUsage, _ *catalog.Template) {
				for _, key := range keys(legacy) {
					if record.HasOption(key) {
						continue
					}
					record.Selected = append(record.Selected, shared.SelectedOption{Key: key})
				}
			},
			// Selections are cleared only once every legacy key is
			// present in the unified record.
			absorbed: func(record *shared.UsageRecord, legacy character.LegacyUsage) bool {
				if record.Kind != shared.KindOptionsList {
					return false
				}
				for _, key := range keys(legacy) {
					if !record.HasOption(key) {
						return false
					}
				}
				return true
			},
			clear: clear,
		}
	}

	return []legacyMapping{
		slotsMapping("bardic-inspiration",
			func(l character.LegacyUsage) *int { return l.BardicInspirationUsed },
			func(l *character.LegacyUsage) { l.BardicInspirationUsed = nil },
		),
		slotsMapping("second-wind",
			func(l character.LegacyUsage) *int { return l.SecondWindUsed },
			func(l *character.LegacyUsage) { l.SecondWindUsed = nil },
		),
		slotsMapping("action-surge",
			func(l character.LegacyUsage) *int { return l.ActionSurgeUsed },
			func(l *character.LegacyUsage) { l.ActionSurgeUsed = nil },
		),
		slotsMapping("rage",
			func(l character.LegacyUsage) *int { return l.RageUsed },
			func(l *character.LegacyUsage) { l.RageUsed = nil },
		),
		slotsMapping("channel-divinity",
			func(l character.LegacyUsage) *int { return l.ChannelDivinityUsed },
			func(l *character.LegacyUsage) { l.ChannelDivinityUsed = nil },
		),
		slotsMapping("flash-of-genius",
			func(l character.LegacyUsage) *int { return l.FlashOfGeniusUsed },
			func(l *character.LegacyUsage) { l.FlashOfGeniusUsed = nil },
		),
		poolMapping("lay-on-hands",
			func(l character.LegacyUsage) *int { return l.LayOnHandsSpent },
			func(l *character.LegacyUsage) { l.LayOnHandsSpent = nil },
		),
		poolMapping("ki-points",
			func(l character.LegacyUsage) *int { return l.KiSpent },
			func(l *character.LegacyUsage) { l.KiSpent = nil },
		),
		poolMapping("sorcery-points",
			func(l character.LegacyUsage) *int { return l.SorceryTokens },
			func(l *character.LegacyUsage) { l.SorceryTokens = nil },
		),
		optionsMapping("eldritch-invocations",
			func(l character.LegacyUsage) []string { return l.Invocations },
			func(l *character.LegacyUsage) { l.Invocations = nil },
		),
		optionsMapping("artificer-infusions",
			func(l character.LegacyUsage) []string { return l.Infusions },
			func(l *character.LegacyUsage) { l.Infusions = nil },
		),
		{
			featureKey: "wild-shape",
			apply: func(record *shared.UsageRecord, legacy character.LegacyUsage, tmpl *catalog.Template) {
				total := 2
				if tmpl.Special != nil {
					if uses, ok := tmpl.Special.Settings["uses"].(int); ok {
						total = uses
					}
				}

				used := 0
				if legacy.WildShapeUsed != nil {
					used = *legacy.WildShapeUsed
				}

				if record.CustomState == nil {
					record.CustomState = map[string]any{}
				}
				record.CustomState["uses_remaining"] = clampRange(total-used, 0, total)
			},
			absorbed: func(record *shared.UsageRecord, _ character.LegacyUsage) bool {
				if record.Kind != shared.KindSpecialUX {
					return false
				}
				_, tracked := record.CustomState["uses_remaining"]
				return tracked
			},
			clear: func(l *character.LegacyUsage) { l.WildShapeUsed = nil },
		},
	}
}

func clampRange(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
