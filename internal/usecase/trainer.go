package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/tictactoe"
)

type boardCatalog interface {
	BoardSize() int
	LookupID(board string) (int, error)
}

type statsStore interface {
	ApplyGameHistory(history entity.History, winner entity.Winner) error
}

type moveChooser interface {
	ChooseCell(game *entity.Game) (int, error)
}

type gameArchive interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
}

// Summary counts the results of a training run.
type Summary struct {
	Games int `json:"games"`
	XWins int `json:"x_wins"`
	OWins int `json:"o_wins"`
	Draws int `json:"draws"`
}

func (that *Summary) add(winner entity.Winner) {
	that.Games++
	switch winner {
	case entity.WinnerX:
		that.XWins++
	case entity.WinnerO:
		that.OWins++
	default:
		that.Draws++
	}
}

// Trainer plays games to the end and feeds their history into the stats store.
type Trainer struct {
	logger *slog.Logger

	catalog boardCatalog
	store   statsStore
	bot     moveChooser
	archive gameArchive
}

// NewTrainer wires a trainer. archive may be nil.
func NewTrainer(logger *slog.Logger, catalog boardCatalog, store statsStore, bot moveChooser, archive gameArchive) *Trainer {
	return &Trainer{
		logger: logger.With("component", "trainer"),

		catalog: catalog,
		store:   store,
		bot:     bot,
		archive: archive,
	}
}

// Train plays n games and stops early when ctx is canceled.
func (that *Trainer) Train(ctx context.Context, n int) (Summary, error) {
	var summary Summary

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("training interrupted after %d games: %w", summary.Games, err)
		}

		game, err := that.PlayGame(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to play game %d: %w", i, err)
		}

		summary.add(game.Winner)
	}

	that.logger.Info("training finished",
		"games", summary.Games, "x_wins", summary.XWins, "o_wins", summary.OWins, "draws", summary.Draws)

	return summary, nil
}

// PlayGame lets the bot play both sides of one game and records it.
func (that *Trainer) PlayGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), that.catalog.BoardSize())

	for game.IsOngoing() {
		cell, err := that.bot.ChooseCell(game)
		if err != nil {
			return nil, fmt.Errorf("bot failed to choose a cell: %w", err)
		}

		if err = tictactoe.MakeTurn(game, game.Turn, cell); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err := that.RecordGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// PlayScripted plays the given cells in order, alternating from X, and
// records the game once it is over.
func (that *Trainer) PlayScripted(ctx context.Context, cells []int) (*entity.Game, error) {
	game := entity.NewGame(uuid.NewString(), that.catalog.BoardSize())

	for i, cell := range cells {
		if err := tictactoe.MakeTurn(game, game.Turn, cell); err != nil {
			return nil, fmt.Errorf("scripted move %d: %w", i, err)
		}
	}

	if err := that.RecordGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// RecordGame applies a finished game to the store and archives it.
// Games without a result are rejected and leave the store untouched.
func (that *Trainer) RecordGame(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "RecordGame", "game_id", game.ID)

	if err := applyFinishedGame(that.catalog, that.store, game); err != nil {
		return err
	}

	log.Debug("game recorded", "winner", game.Winner, "plies", len(game.Plies))

	if that.archive != nil {
		if err := that.archive.CreateOrUpdate(ctx, game); err != nil {
			log.Error("failed to archive game", "error", err)
		}
	}

	return nil
}

// applyFinishedGame credits every ply of a finished game with its result.
func applyFinishedGame(catalog boardCatalog, store statsStore, game *entity.Game) error {
	if !game.IsFinished() {
		return fmt.Errorf("%w: game %s", apperror.ErrIncompleteGame, game.ID)
	}

	history, err := HistoryOf(catalog, game)
	if err != nil {
		return fmt.Errorf("failed to build history: %w", err)
	}

	if err = store.ApplyGameHistory(history, game.Winner); err != nil {
		return fmt.Errorf("failed to apply game history: %w", err)
	}

	return nil
}

// HistoryOf converts the plies of a game into history entries keyed by board id.
func HistoryOf(catalog boardCatalog, game *entity.Game) (entity.History, error) {
	history := make(entity.History, 0, len(game.Plies))

	for _, ply := range game.Plies {
		id, err := catalog.LookupID(ply.Board)
		if err != nil {
			return nil, err
		}

		history = append(history, entity.HistoryEntry{
			BoardID: id,
			Move:    ply.Cell,
			Turn:    ply.Mark,
		})
	}

	return history, nil
}
