package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
)

var ErrGameNotFound = apperror.ErrGameNotFound

const (
	gameKeyPrefix = "game:"
	gamesIndexKey = "games"
)

// GameRepository archives finished games. Newest ids come first in the index.
type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListIDs(ctx context.Context, limit int64) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	gameKey := gameKeyPrefix + game.ID

	// SET NX tells a new game from an update, so the index never holds duplicates
	created, err := that.client.SetNX(ctx, gameKey, gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	if !created {
		if err = that.client.Set(ctx, gameKey, gameJSON, 0).Err(); err != nil {
			return fmt.Errorf("failed to update game: %w", err)
		}
		return nil
	}

	if err = that.client.LPush(ctx, gamesIndexKey, game.ID).Err(); err != nil {
		return fmt.Errorf("failed to index game: %w", err)
	}

	return nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKeyPrefix+id).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Game{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.Game{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// ListIDs returns up to limit archived game ids, newest first. A limit of 0 returns all.
func (that *dbGame) ListIDs(ctx context.Context, limit int64) ([]string, error) {
	ids, err := that.client.LRange(ctx, gamesIndexKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return ids, nil
}

func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, gameKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	if err = that.client.LRem(ctx, gamesIndexKey, 0, id).Err(); err != nil {
		return fmt.Errorf("failed to remove game from index: %w", err)
	}

	return nil
}
