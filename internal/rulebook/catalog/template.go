package catalog

import (
	"fmt"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
)

// Template is the static, declarative definition of one trackable
// class feature. Templates are catalog data; they never change per
// character. Exactly one of the kind-specific config pointers should
// be set, matching Kind.
type Template struct {
	Key      string              `json:"key"`
	Title    string              `json:"title"`
	Subtitle string              `json:"subtitle,omitempty"`
	Kind     shared.ResourceKind `json:"kind"`

	// Class owns the feature; Level is the class level it activates
	// at. Subclass, when set, gates the feature to one subclass.
	Class    string `json:"class"`
	Subclass string `json:"subclass,omitempty"`
	Level    int    `json:"level"`

	Description string `json:"description,omitempty"`

	Slots    *SlotsConfig    `json:"slots,omitempty"`
	Points   *PointsConfig   `json:"points,omitempty"`
	Options  *OptionsConfig  `json:"options,omitempty"`
	Special  *SpecialConfig  `json:"special,omitempty"`
	Modifier *ModifierConfig `json:"modifier,omitempty"`
	Toggle   *ToggleConfig   `json:"toggle,omitempty"`

	// Override values take priority over config values during
	// description token resolution.
	Override map[string]any `json:"override,omitempty"`
}

// SlotsConfig configures a limited-use feature
type SlotsConfig struct {
	UsesFormula  string          `json:"uses_formula"`
	DiceByLevel  []int           `json:"dice_by_level,omitempty"` // die size per level, index 0 = level 1
	BaseDice     string          `json:"base_dice,omitempty"`
	Timing       shared.RestType `json:"timing"`
	DisplayStyle string          `json:"display_style,omitempty"`
}

// PointsConfig configures a spendable point pool
type PointsConfig struct {
	TotalFormula string          `json:"total_formula"`
	PartialSpend bool            `json:"partial_spend"`
	Timing       shared.RestType `json:"timing"`
	MinSpend     int             `json:"min_spend,omitempty"`
	MaxSpend     int             `json:"max_spend,omitempty"`
}

// OptionSource says where an options_list's candidates come from
type OptionSource string

const (
	OptionSourceCatalog OptionSource = "catalog"
	OptionSourceCustom  OptionSource = "custom"
	OptionSourceSpells  OptionSource = "spells"
)

// OptionsConfig configures a selectable option set
type OptionsConfig struct {
	MaxFormula      string       `json:"max_formula"`
	Source          OptionSource `json:"source"`
	CatalogName     string       `json:"catalog_name,omitempty"`
	MinLevel        int          `json:"min_level,omitempty"`
	Prerequisite    string       `json:"prerequisite,omitempty"`
	AllowDuplicates bool         `json:"allow_duplicates,omitempty"`
	Swappable       bool         `json:"swappable,omitempty"`

	// SpellLevel narrows a spells-sourced list to one spell level.
	// Zero lists the class's whole spell list.
	SpellLevel int `json:"spell_level,omitempty"`
}

// SpecialConfig names a bespoke UI/behavior module. Settings is owned
// by that module; the engine carries it without interpreting it.
type SpecialConfig struct {
	Module   string          `json:"module"`
	Settings map[string]any  `json:"settings,omitempty"`
	Timing   shared.RestType `json:"timing,omitempty"`
}

// ModifierConfig configures a passive check modifier
type ModifierConfig struct {
	CheckTypes []string `json:"check_types,omitempty"`
	Abilities  []string `json:"abilities,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	Formula    string   `json:"formula"`
	Condition  string   `json:"condition,omitempty"`
	Stacks     bool     `json:"stacks,omitempty"`
}

// ToggleConfig configures a binary available/expended feature
type ToggleConfig struct {
	DefaultAvailable bool            `json:"default_available"`
	Timing           shared.RestType `json:"timing"`
	AvailableText    string          `json:"available_text,omitempty"`
	ExpendedText     string          `json:"expended_text,omitempty"`
}

// AppliesTo reports whether the character qualifies for this feature:
// the right class at the activation level, and the gating subclass
// when one is declared.
func (t *Template) AppliesTo(char *character.Character) bool {
	classLevel := char.ClassLevelFor(t.Class)
	if classLevel < t.Level {
		return false
	}
	if t.Subclass != "" && char.SubclassFor(t.Class) != t.Subclass {
		return false
	}
	return true
}

// Timing returns the replenishment timing for kinds that have one,
// RestTypeNone otherwise.
func (t *Template) Timing() shared.RestType {
	switch t.Kind {
	case shared.KindSlots:
		if t.Slots != nil {
			return t.Slots.Timing
		}
	case shared.KindPointsPool:
		if t.Points != nil {
			return t.Points.Timing
		}
	case shared.KindAvailabilityToggle:
		if t.Toggle != nil {
			return t.Toggle.Timing
		}
	case shared.KindSpecialUX:
		if t.Special != nil && t.Special.Timing != "" {
			return t.Special.Timing
		}
	}
	return shared.RestTypeNone
}

// ConfigValues flattens the active config's scalar fields into a
// token -> value map for description resolution, with Override
// entries taking priority.
func (t *Template) ConfigValues() map[string]any {
	values := make(map[string]any)

	switch t.Kind {
	case shared.KindSlots:
		if t.Slots != nil {
			values["uses_formula"] = t.Slots.UsesFormula
			values["display_style"] = t.Slots.DisplayStyle
			if t.Slots.BaseDice != "" {
				values["base_dice"] = t.Slots.BaseDice
			}
		}
	case shared.KindPointsPool:
		if t.Points != nil {
			values["total_formula"] = t.Points.TotalFormula
			values["min_spend"] = t.Points.MinSpend
			values["max_spend"] = t.Points.MaxSpend
		}
	case shared.KindOptionsList:
		if t.Options != nil {
			values["max_formula"] = t.Options.MaxFormula
			values["prerequisite"] = t.Options.Prerequisite
		}
	case shared.KindSpecialUX:
		if t.Special != nil {
			for k, v := range t.Special.Settings {
				values[k] = v
			}
		}
	case shared.KindSkillModifier:
		if t.Modifier != nil {
			values["formula"] = t.Modifier.Formula
			values["condition"] = t.Modifier.Condition
		}
	case shared.KindAvailabilityToggle:
		if t.Toggle != nil {
			values["available_text"] = t.Toggle.AvailableText
			values["expended_text"] = t.Toggle.ExpendedText
		}
	}

	values["title"] = t.Title
	values["subtitle"] = t.Subtitle

	for k, v := range t.Override {
		values[k] = v
	}

	return values
}

func (t *Template) String() string {
	return fmt.Sprintf("%s (%s %s, level %d)", t.Title, t.Class, t.Kind, t.Level)
}
