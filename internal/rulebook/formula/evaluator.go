package formula

import (
	"log"
	"strconv"
	"strings"
)

// Evaluator turns formula strings into integers against a Context.
// Class-specific progressions (invocations known, rage uses, ...) are
// injected rather than read from package state so the evaluator stays
// a pure function of its inputs.
type Evaluator struct {
	progressions Progressions
}

// NewEvaluator creates an evaluator with the given progression tables.
// Pass nil to evaluate without any named progressions.
func NewEvaluator(progressions Progressions) *Evaluator {
	if progressions == nil {
		progressions = Progressions{}
	}
	return &Evaluator{progressions: progressions}
}

// Evaluate resolves a formula with count semantics: a single bare
// ability-modifier token is floored at 1, because a "number of uses"
// formula that names a modifier alone means "at least once".
// Compound expressions are never floored at 1.
func (e *Evaluator) Evaluate(formula string, ctx Context) int {
	return e.evaluate(formula, ctx, true)
}

// EvaluateTotal resolves a formula with pool/total semantics: no
// floor-at-1 is applied anywhere, a lone negative modifier stays
// negative.
func (e *Evaluator) EvaluateTotal(formula string, ctx Context) int {
	return e.evaluate(formula, ctx, false)
}

// ModifierToken resolves a single ability-modifier token (including
// alias forms) to its raw modifier, reporting whether the token was
// recognized. No floor-at-1 applies; this is display semantics.
func (e *Evaluator) ModifierToken(token string, ctx Context) (int, bool) {
	value, ok := ctx.modifiers()[strings.ToLower(strings.TrimSpace(token))]
	return value, ok
}

func (e *Evaluator) evaluate(formula string, ctx Context, floorAtOne bool) int {
	f := strings.ToLower(strings.TrimSpace(formula))
	if f == "" {
		return 0
	}

	// fixed:<n> constants
	if rest, ok := strings.CutPrefix(f, "fixed:"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			log.Printf("formula: bad fixed constant %q, evaluating to 0", formula)
			return 0
		}
		return n
	}

	// Bare proficiency reference. Checked before modifier matching so
	// "proficiency" never falls through to the expression parser.
	if f == "proficiency_bonus" || f == "proficiency" {
		return ctx.ProficiencyBonus
	}

	// Single bare ability-modifier token
	if mod, ok := ctx.modifiers()[f]; ok {
		if floorAtOne && mod < 1 {
			return 1
		}
		return mod
	}

	// Bare numeric literal
	if n, err := strconv.Atoi(f); err == nil {
		return n
	}

	if f == "level" {
		return ctx.Level
	}

	// Named class-specific progressions, keyed by level
	if prog, ok := e.progressions[f]; ok {
		return prog.At(ctx.Level)
	}

	// General arithmetic expression over the allow-listed symbols
	if value, err := evalExpr(f, ctx.symbols()); err == nil {
		return value
	}

	log.Printf("formula: unrecognized formula %q, evaluating to 0", formula)
	return 0
}
