// migrate-usage sweeps every stored character and folds legacy
// per-ability fields into the unified usage map. Safe to re-run:
// migration skips characters that already have unified data.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-sheet-engine/internal/config"
	charactersRepo "github.com/KirkDiggler/dnd-sheet-engine/internal/repositories/characters"
	"github.com/KirkDiggler/dnd-sheet-engine/internal/rulebook/migration"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "report what would migrate without saving")
	workers := flag.Int("workers", 8, "concurrent migrations")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := client.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	repo := charactersRepo.NewRedisRepository(&charactersRepo.RedisRepoConfig{
		Client: client,
	})
	migrator := migration.New(nil)

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}
	log.Printf("Scanning %d characters", len(ids))

	var migrated, skipped int

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*workers)

	results := make([]bool, len(ids))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			char, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}

			if !migrator.NeedsMigration(char) {
				return nil
			}

			updated := migrator.Migrate(char)
			if *dryRun {
				log.Printf("Would migrate %s (%s): %d features", char.ID, char.Name, len(updated.FeatureUsage))
				results[i] = true
				return nil
			}

			if err := repo.Update(ctx, updated); err != nil {
				return err
			}

			log.Printf("Migrated %s (%s): %d features", char.ID, char.Name, len(updated.FeatureUsage))
			results[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("Migration sweep failed: %v", err)
	}

	for _, didMigrate := range results {
		if didMigrate {
			migrated++
		} else {
			skipped++
		}
	}

	log.Printf("Done: %d migrated, %d already current", migrated, skipped)
}
