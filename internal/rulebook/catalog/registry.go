package catalog

import (
	"fmt"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
)

// Registry is a read-only lookup over feature templates
type Registry struct {
	templates map[string]*Template
	order     []string
}

// NewRegistry builds a registry from the given templates. Later
// templates with a duplicate key replace earlier ones.
func NewRegistry(templates ...*Template) *Registry {
	r := &Registry{
		templates: make(map[string]*Template, len(templates)),
	}

	for _, t := range templates {
		if _, exists := r.templates[t.Key]; !exists {
			r.order = append(r.order, t.Key)
		}
		r.templates[t.Key] = t
	}

	return r
}

// Default returns a registry loaded with the built-in class feature
// catalog.
func Default() *Registry {
	return NewRegistry(BuiltinTemplates()...)
}

// Get looks up a template by key
func (r *Registry) Get(key string) (*Template, bool) {
	t, ok := r.templates[key]
	return t, ok
}

// All returns every template in registration order
func (r *Registry) All() []*Template {
	result := make([]*Template, 0, len(r.order))
	for _, key := range r.order {
		result = append(result, r.templates[key])
	}
	return result
}

// ByKind returns every template of the given kind, in registration
// order.
func (r *Registry) ByKind(kind shared.ResourceKind) []*Template {
	var result []*Template
	for _, key := range r.order {
		if t := r.templates[key]; t.Kind == kind {
			result = append(result, t)
		}
	}
	return result
}

// ValidationResult reports template validation findings. Errors block
// a template from working; warnings are advisory. Validation never
// panics so a catalog with broken entries can still load.
type ValidationResult struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate checks a template's shape against its declared kind
func Validate(t *Template) ValidationResult {
	var result ValidationResult

	fail := func(format string, args ...any) {
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}
	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	if t.Key == "" {
		fail("template key is required")
	}
	if t.Title == "" {
		fail("template %q: title is required", t.Key)
	}
	if t.Level < 1 || t.Level > 20 {
		fail("template %q: activation level %d must be between 1 and 20", t.Key, t.Level)
	}
	if t.Class == "" {
		warn("template %q: no owning class declared", t.Key)
	}

	switch t.Kind {
	case shared.KindSlots:
		if t.Slots == nil {
			fail("template %q: slots kind requires a slots config", t.Key)
			break
		}
		if t.Slots.UsesFormula == "" {
			fail("template %q: slots config requires a uses formula", t.Key)
		}
		if t.Slots.Timing == "" {
			fail("template %q: slots config requires a replenishment timing", t.Key)
		}

	case shared.KindPointsPool:
		if t.Points == nil {
			fail("template %q: points_pool kind requires a points config", t.Key)
			break
		}
		if t.Points.TotalFormula == "" {
			fail("template %q: points config requires a total formula", t.Key)
		}
		if t.Points.Timing == "" {
			fail("template %q: points config requires a replenishment timing", t.Key)
		}

	case shared.KindOptionsList:
		if t.Options == nil {
			fail("template %q: options_list kind requires an options config", t.Key)
			break
		}
		if t.Options.MaxFormula == "" {
			fail("template %q: options config requires a max-selections formula", t.Key)
		}
		if t.Options.Source == "" {
			fail("template %q: options config requires a source", t.Key)
		}
		if t.Options.Source == OptionSourceCatalog && t.Options.CatalogName == "" {
			fail("template %q: catalog-backed options require a catalog name", t.Key)
		}

	case shared.KindSpecialUX:
		if t.Special == nil {
			fail("template %q: special_ux kind requires a special config", t.Key)
			break
		}
		if t.Special.Module == "" {
			fail("template %q: special config requires a module identifier", t.Key)
		}

	case shared.KindSkillModifier:
		if t.Modifier == nil {
			fail("template %q: skill_modifier kind requires a modifier config", t.Key)
			break
		}
		if t.Modifier.Formula == "" {
			fail("template %q: modifier config requires a formula", t.Key)
		}

	case shared.KindAvailabilityToggle:
		if t.Toggle == nil {
			fail("template %q: availability_toggle kind requires a toggle config", t.Key)
			break
		}
		if t.Toggle.Timing == "" {
			fail("template %q: toggle config requires a replenishment timing", t.Key)
		}

	default:
		fail("template %q: unknown resource kind %q", t.Key, t.Kind)
	}

	configured := 0
	for _, set := range []bool{
		t.Slots != nil, t.Points != nil, t.Options != nil,
		t.Special != nil, t.Modifier != nil, t.Toggle != nil,
	} {
		if set {
			configured++
		}
	}
	if configured > 1 {
		warn("template %q: multiple kind configs set, only the %q config is used", t.Key, t.Kind)
	}

	result.Valid = len(result.Errors) == 0
	return result
}
