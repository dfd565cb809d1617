package characters

import (
	"context"
	"sync"
	"time"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-sheet-engine/internal/errors"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the character
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu            sync.RWMutex
	characters    map[string]*character.Character
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters:    make(map[string]*character.Character),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(_ context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}

	if char.ID == "" {
		char.ID = r.uuidGenerator.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return dnderr.AlreadyExists("character with ID '" + char.ID + "' already exists").
			WithMeta("character_id", char.ID)
	}

	now := time.Now().UTC()
	char.CreatedAt = now
	char.UpdatedAt = now

	r.characters[char.ID] = char.Clone()
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	return char.Clone(), nil
}

// GetByOwner retrieves all characters for a specific owner
func (r *InMemoryRepository) GetByOwner(_ context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*character.Character
	for _, char := range r.characters {
		if char.OwnerID == ownerID {
			result = append(result, char.Clone())
		}
	}

	return result, nil
}

// ListIDs returns every stored character ID
func (r *InMemoryRepository) ListIDs(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.characters))
	for id := range r.characters {
		ids = append(ids, id)
	}
	return ids, nil
}

// Update updates an existing character
func (r *InMemoryRepository) Update(_ context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; !exists {
		return dnderr.NotFoundf("character with ID '%s' not found", char.ID).
			WithMeta("character_id", char.ID)
	}

	char.UpdatedAt = time.Now().UTC()
	r.characters[char.ID] = char.Clone()
	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}

	delete(r.characters, id)
	return nil
}
