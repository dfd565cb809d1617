// validate-catalog checks every built-in feature template and exits
// non-zero when any template is invalid. Template problems fail soft
// at runtime (a broken formula grants zero uses rather than crashing
// a sheet); this tool is the loud counterpart for catalog authors.
package main

import (
	"fmt"
	"os"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/formula"
)

func main() {
	registry := catalog.Default()
	evaluator := formula.NewEvaluator(formula.DefaultProgressions())

	// A mid-range context: good enough to smoke-test that every
	// formula resolves to something.
	ctx := formula.Context{
		Strength: 14, Dexterity: 14, Constitution: 14,
		Intelligence: 14, Wisdom: 14, Charisma: 14,
		Level: 10, ProficiencyBonus: 4,
	}

	failures := 0

	for _, tmpl := range registry.All() {
		result := catalog.Validate(tmpl)

		for _, warning := range result.Warnings {
			fmt.Printf("WARN  %s: %s\n", tmpl.Key, warning)
		}
		for _, errMsg := range result.Errors {
			fmt.Printf("ERROR %s: %s\n", tmpl.Key, errMsg)
		}
		if !result.Valid {
			failures++
			continue
		}

		for _, check := range formulaChecks(tmpl) {
			if evaluator.Evaluate(check.formula, ctx) == 0 && !check.zeroOK {
				fmt.Printf("ERROR %s: formula %q evaluates to 0 at level %d\n", tmpl.Key, check.formula, ctx.Level)
				failures++
			}
		}
	}

	if failures > 0 {
		fmt.Printf("%d template(s) failed validation\n", failures)
		os.Exit(1)
	}

	fmt.Printf("All %d templates valid\n", len(registry.All()))
}

type formulaCheck struct {
	formula string
	zeroOK  bool
}

func formulaChecks(tmpl *catalog.Template) []formulaCheck {
	switch {
	case tmpl.Slots != nil:
		return []formulaCheck{{formula: tmpl.Slots.UsesFormula}}
	case tmpl.Points != nil:
		return []formulaCheck{{formula: tmpl.Points.TotalFormula}}
	case tmpl.Options != nil:
		// Some option counts are legitimately 0 below the feature's
		// activation level.
		return []formulaCheck{{formula: tmpl.Options.MaxFormula, zeroOK: tmpl.Level > 10}}
	case tmpl.Modifier != nil:
		return []formulaCheck{{formula: tmpl.Modifier.Formula}}
	}
	return nil
}
