package usage

import (
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
)

// ResetAll sweeps every tracked feature and applies its kind's reset
// logic, but only for features whose replenishment timing matches the
// rest type. Features outside the rest's scope pass through the fold
// untouched; nothing is ever dropped from the map.
func (s *Store) ResetAll(char *character.Character, rest shared.RestType) shared.UsageMap {
	usage := char.FeatureUsage.Clone()
	now := s.clock.Now()

	for key, record := range usage {
		tmpl, ok := s.registry.Get(key)
		if !ok {
			continue
		}

		if !tmpl.Timing().Replenishes(rest) {
			continue
		}

		switch record.Kind {
		case shared.KindSlots:
			record.CurrentUses = record.MaxUses
		case shared.KindPointsPool:
			record.CurrentPoints = record.MaxPoints
		case shared.KindAvailabilityToggle:
			record.Available = true
		case shared.KindSpecialUX:
			// Module-owned state: merge the module's declared rest
			// values over the existing state rather than replacing
			// it, so unrelated keys survive the rest.
			if tmpl.Special == nil {
				continue
			}
			onRest, ok := tmpl.Special.Settings["on_rest"].(map[string]any)
			if !ok {
				continue
			}
			if record.CustomState == nil {
				record.CustomState = map[string]any{}
			}
			for k, v := range onRest {
				record.CustomState[k] = v
			}
		default:
			// options_list selections persist through rests;
			// skill_modifier is passive and has nothing to reset
			continue
		}

		record.LastReset = now
	}

	return usage
}
