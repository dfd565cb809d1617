package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/domain/character"
	dnderr "github.com/KirkDiggler/dnd-sheet-engine/internal/errors"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/uuid"
)

const (
	characterKeyPrefix = "character:"
	ownerKeyPrefix     = "owner:"
	allCharactersKey   = "characters"
)

// redisRepo implements Repository using Redis. Characters are stored
// as JSON documents with a per-owner index set and a global ID set.
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
}

// NewRedisRepository creates a Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: generator,
	}
}

func characterKey(id string) string {
	return characterKeyPrefix + id
}

func ownerKey(ownerID string) string {
	return fmt.Sprintf("%scharacters:%s", ownerKeyPrefix, ownerID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}

	if char.ID == "" {
		char.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, characterKey(char.ID)).Result()
	if err != nil {
		return dnderr.Wrapf(err, "failed to check character %s", char.ID)
	}
	if exists > 0 {
		return dnderr.AlreadyExists(fmt.Sprintf("character with ID '%s' already exists", char.ID)).
			WithMeta("character_id", char.ID)
	}

	now := time.Now().UTC()
	char.CreatedAt = now
	char.UpdatedAt = now

	return r.write(ctx, char)
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	data, err := r.client.Get(ctx, characterKey(id)).Result()
	if err == redis.Nil {
		return nil, dnderr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get character %s", id)
	}

	var char character.Character
	if err := json.Unmarshal([]byte(data), &char); err != nil {
		return nil, dnderr.Wrapf(err, "failed to unmarshal character %s", id)
	}

	return &char, nil
}

// GetByOwner retrieves all characters for a specific owner,
// fetching the indexed IDs concurrently.
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, dnderr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, ownerKey(ownerID)).Result()
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list characters for owner %s", ownerID)
	}

	result := make([]*character.Character, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			char, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			result[i] = char
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListIDs returns every stored character ID
func (r *redisRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, allCharactersKey).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list character IDs")
	}
	return ids, nil
}

// Update updates an existing character
func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	exists, err := r.client.Exists(ctx, characterKey(char.ID)).Result()
	if err != nil {
		return dnderr.Wrapf(err, "failed to check character %s", char.ID)
	}
	if exists == 0 {
		return dnderr.NotFoundf("character with ID '%s' not found", char.ID).
			WithMeta("character_id", char.ID)
	}

	char.UpdatedAt = time.Now().UTC()

	return r.write(ctx, char)
}

// Delete removes a character and its index entries
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.InvalidArgument("character ID is required")
	}

	char, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, characterKey(id))
	pipe.SRem(ctx, ownerKey(char.OwnerID), id)
	pipe.SRem(ctx, allCharactersKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to delete character %s", id)
	}

	return nil
}

func (r *redisRepo) write(ctx context.Context, char *character.Character) error {
	data, err := json.Marshal(char)
	if err != nil {
		return dnderr.Wrapf(err, "failed to marshal character %s", char.ID)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, characterKey(char.ID), string(data), 0)
	pipe.SAdd(ctx, ownerKey(char.OwnerID), char.ID)
	pipe.SAdd(ctx, allCharactersKey, char.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrapf(err, "failed to save character %s", char.ID)
	}

	return nil
}
