package dnd5e

import (
	"net/http"

	apiDnd5e "github.com/fadedpez/dnd5e-api/clients/dnd5e"
	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/shared"
	dnderr "github.com/KirkDiggler/dnd-sheet-engine/internal/errors"
)

type client struct {
	client apiDnd5e.Interface
}

// Config holds configuration for the API client
type Config struct {
	HttpClient *http.Client
}

// New creates a Client backed by the public D&D 5e API
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, dnderr.InvalidArgument("cfg cannot be nil")
	}

	apiClient, err := apiDnd5e.NewDND5eAPI(&apiDnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, err
	}

	return &client{client: apiClient}, nil
}

// ListFeatureOptions returns the class features gained at the given
// class level as selectable options.
func (c *client) ListFeatureOptions(classKey string, level int) ([]shared.SelectedOption, error) {
	classLevel, err := c.client.GetClassLevel(classKey, level)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get %s level %d features", classKey, level)
	}

	options := make([]shared.SelectedOption, 0, len(classLevel.Features))
	for _, ref := range classLevel.Features {
		if ref.Key == "" {
			continue
		}
		options = append(options, shared.SelectedOption{
			Key:   ref.Key,
			Title: ref.Name,
		})
	}

	return options, nil
}

// ListSpellOptions returns the spells available to a class as
// selectable options. level < 0 lists all levels.
func (c *client) ListSpellOptions(classKey string, level int) ([]shared.SelectedOption, error) {
	input := &apiDnd5e.ListSpellsInput{Class: classKey}
	if level >= 0 {
		input.Level = &level
	}

	spells, err := c.client.ListSpells(input)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list spells for class %s", classKey)
	}

	return referencesToOptions(spells), nil
}

func referencesToOptions(refs []*apiEntities.ReferenceItem) []shared.SelectedOption {
	options := make([]shared.SelectedOption, 0, len(refs))
	for _, ref := range refs {
		if ref == nil || ref.Key == "" {
			continue
		}
		options = append(options, shared.SelectedOption{
			Key:   ref.Key,
			Title: ref.Name,
		})
	}
	return options
}
