package character

import "fmt"

// AbilityScore is a single ability score with its racial bonus applied
type AbilityScore struct {
	Score int `json:"score"`
	Bonus int `json:"bonus"`
}

// Modifier returns the ability modifier, floor((score - 10) / 2)
func (a *AbilityScore) Modifier() int {
	if a == nil {
		return 0
	}

	diff := a.Score - 10
	if diff < 0 {
		// Go's integer division truncates toward zero; modifiers round down
		return -((-diff + 1) / 2)
	}
	return diff / 2
}

func (a *AbilityScore) String() string {
	mod := a.Modifier()
	if mod >= 0 {
		return fmt.Sprintf("%d (+%d)", a.Score, mod)
	}
	return fmt.Sprintf("%d (%d)", a.Score, mod)
}
