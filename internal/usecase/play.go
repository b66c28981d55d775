package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/tictactoe"
)

// The human always plays X and moves first; the bot answers as O.
const (
	humanMark = entity.PlayerX
	botMark   = entity.PlayerO
)

type gameStore interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	ListIDs(ctx context.Context, limit int64) ([]string, error)
	DeleteByID(ctx context.Context, id string) error
}

// Play runs human-vs-bot games kept in a game store. Finished games feed
// the stats store exactly like trained ones.
type Play struct {
	logger *slog.Logger

	// serializes read-move-write on stored games
	mu sync.Mutex

	catalog boardCatalog
	store   statsStore
	bot     moveChooser
	games   gameStore
}

func NewPlay(logger *slog.Logger, catalog boardCatalog, store statsStore, bot moveChooser, games gameStore) *Play {
	return &Play{
		logger: logger.With("component", "play"),

		catalog: catalog,
		store:   store,
		bot:     bot,
		games:   games,
	}
}

// StartGame stores a fresh game with the human to move.
func (that *Play) StartGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), that.catalog.BoardSize())

	if err := that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("could not create game: %w", err)
	}

	that.logger.Info("game started", "game_id", game.ID)

	return game, nil
}

func (that *Play) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// ListGames returns up to limit game ids, newest first. 0 means all.
func (that *Play) ListGames(ctx context.Context, limit int64) ([]string, error) {
	ids, err := that.games.ListIDs(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	return ids, nil
}

func (that *Play) DeleteGame(ctx context.Context, id string) error {
	if err := that.games.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// MakeMove plays the human's cell and, if the game goes on, the bot's reply.
// A rejected move leaves the stored game untouched. The stats store is
// updated once, when the game finishes.
func (that *Play) MakeMove(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeMove", "game_id", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.games.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if err = tictactoe.MakeTurn(game, humanMark, cell); err != nil {
		return nil, err
	}

	if game.IsOngoing() {
		reply, err := that.bot.ChooseCell(game)
		if err != nil {
			return nil, fmt.Errorf("bot failed to choose a cell: %w", err)
		}

		if err = tictactoe.MakeTurn(game, botMark, reply); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.games.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("could not save game: %w", err)
	}

	if game.IsFinished() {
		if err = applyFinishedGame(that.catalog, that.store, game); err != nil {
			return nil, err
		}
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}
