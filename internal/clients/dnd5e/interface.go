package dnd5e

//go:generate mockgen -destination=mock/mock.go -package=mockdnd5e -source=interface.go

import "github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"

// Client supplies candidate options for catalog-backed options_list
// features. Only the service layer talks to it; the resource engine
// itself never performs I/O.
type Client interface {
	// ListFeatureOptions returns the class features available at the
	// given class level as selectable options.
	ListFeatureOptions(classKey string, level int) ([]shared.SelectedOption, error)

	// ListSpellOptions returns the spells available to a class, as
	// selectable options. level < 0 lists all levels.
	ListSpellOptions(classKey string, level int) ([]shared.SelectedOption, error)
}
