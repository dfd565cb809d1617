// Package describe substitutes computed values into ability
// description text for presentation.
package describe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/catalog"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/formula"
)

// Segment is one run of description text. Value marks runs that were
// substituted from a resolved token, so callers can style them.
type Segment struct {
	Text  string `json:"text"`
	Value bool   `json:"value"`
}

// Resolver resolves {token} placeholders against a character and a
// template's effective configuration.
type Resolver struct {
	evaluator *formula.Evaluator
}

// NewResolver creates a Resolver. A nil evaluator falls back to the
// default progression tables.
func NewResolver(evaluator *formula.Evaluator) *Resolver {
	if evaluator == nil {
		evaluator = formula.NewEvaluator(formula.DefaultProgressions())
	}
	return &Resolver{evaluator: evaluator}
}

// Resolve returns the description with every recognized {token}
// substituted. Unresolved tokens are left verbatim so a malformed
// template degrades visibly instead of silently.
func (r *Resolver) Resolve(description string, char *character.Character, tmpl *catalog.Template) string {
	var out strings.Builder
	for _, seg := range r.Segments(description, char, tmpl) {
		out.WriteString(seg.Text)
	}
	return out.String()
}

// Segments returns the description split into literal and resolved
// runs for styled rendering.
func (r *Resolver) Segments(description string, char *character.Character, tmpl *catalog.Template) []Segment {
	var segments []Segment

	literal := func(text string) {
		if text == "" {
			return
		}
		if n := len(segments); n > 0 && !segments[n-1].Value {
			segments[n-1].Text += text
			return
		}
		segments = append(segments, Segment{Text: text})
	}

	ctx := formula.NewContext(char, tmpl.Class)
	config := tmpl.ConfigValues()

	rest := description
	for {
		open := strings.Index(rest, "{")
		if open < 0 {
			literal(rest)
			break
		}
		close := strings.Index(rest[open:], "}")
		if close < 0 {
			literal(rest)
			break
		}
		close += open

		literal(rest[:open])
		token := rest[open+1 : close]

		if value, ok := r.resolveToken(token, ctx, config, char, tmpl); ok {
			segments = append(segments, Segment{Text: value, Value: true})
		} else {
			literal(rest[open : close+1])
		}

		rest = rest[close+1:]
	}

	return segments
}

// resolveToken tries each token class in order: ability modifiers and
// their aliases, proficiency bonus and alias, level, configuration
// properties (Override already merged with priority), and finally the
// derived dice token.
func (r *Resolver) resolveToken(token string, ctx formula.Context, config map[string]any, char *character.Character, tmpl *catalog.Template) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(token))

	if value, ok := r.evaluator.ModifierToken(key, ctx); ok {
		return strconv.Itoa(value), true
	}

	if key == "proficiency_bonus" || key == "proficiency" {
		return strconv.Itoa(ctx.ProficiencyBonus), true
	}

	if key == "level" {
		return strconv.Itoa(ctx.Level), true
	}

	if value, ok := config[key]; ok {
		return formatValue(value)
	}

	if key == "dice" {
		return r.resolveDice(char, tmpl)
	}

	return "", false
}

// resolveDice resolves the {dice} token from an explicit base_dice
// property or the template's level-indexed die progression.
func (r *Resolver) resolveDice(char *character.Character, tmpl *catalog.Template) (string, bool) {
	if tmpl.Slots == nil {
		return "", false
	}

	if tmpl.Slots.BaseDice != "" {
		return tmpl.Slots.BaseDice, true
	}

	if len(tmpl.Slots.DiceByLevel) == 0 {
		return "", false
	}

	level := char.ClassLevelFor(tmpl.Class)
	if level < 1 {
		level = 1
	}
	if level > len(tmpl.Slots.DiceByLevel) {
		level = len(tmpl.Slots.DiceByLevel)
	}

	return fmt.Sprintf("d%d", tmpl.Slots.DiceByLevel[level-1]), true
}

func formatValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return "", false
		}
		return v, true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
