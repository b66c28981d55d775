// Package stats keeps per-board, per-move outcome counters split by the
// player to move, and attributes finished games back to every move played.
package stats

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
)

type Mode string

const (
	ModeZero   Mode = "zero"
	ModeRandom Mode = "random"
)

// TurnRecords holds the two independent records of one board.
type TurnRecords struct {
	X *Record
	O *Record
}

func (that *TurnRecords) For(turn entity.Mark) (*Record, error) {
	switch turn {
	case entity.PlayerX:
		return that.X, nil
	case entity.PlayerO:
		return that.O, nil
	default:
		return nil, fmt.Errorf("%w: got %q", apperror.ErrInvalidTurnMarker, turn)
	}
}

type boardCatalog interface {
	Len() int
	Cells() int
	ValidateID(id int) error
}

// Store is sized once from the catalog and never grows or shrinks.
//
// The mutex serializes ApplyMoveOutcome, ApplyGameHistory, MoveStats and
// Snapshot. Record hands out the live record and does not lock.
type Store struct {
	mu sync.Mutex

	boards  boardCatalog
	cells   int
	records []TurnRecords
}

// New allocates a record per board id and turn. ModeRandom seeds every
// counter with a value in [0, 1] rounded to two decimals and is meant for
// display only.
func New(boards boardCatalog, mode Mode, rng *rand.Rand) (*Store, error) {
	var fill func() float64

	switch mode {
	case ModeZero:
	case ModeRandom:
		if rng == nil {
			return nil, fmt.Errorf("%w: random mode needs a random source", apperror.ErrInvalidArgument)
		}
		fill = func() float64 {
			return math.Round(rng.Float64()*100) / 100
		}
	default:
		return nil, fmt.Errorf("%w: unknown stats mode %q", apperror.ErrInvalidArgument, mode)
	}

	cells := boards.Cells()
	records := make([]TurnRecords, boards.Len())
	for i := range records {
		records[i] = TurnRecords{
			X: newRecord(cells, fill),
			O: newRecord(cells, fill),
		}
	}

	return &Store{
		boards:  boards,
		cells:   cells,
		records: records,
	}, nil
}

// Record returns the live record; writes through it change the store.
func (that *Store) Record(boardID int, turn entity.Mark) (*Record, error) {
	if !turn.IsPlayer() {
		return nil, fmt.Errorf("%w: got %q", apperror.ErrInvalidTurnMarker, turn)
	}

	if err := that.boards.ValidateID(boardID); err != nil {
		return nil, err
	}

	return that.records[boardID].For(turn)
}

// Snapshot returns a deep copy of a record.
func (that *Store) Snapshot(boardID int, turn entity.Mark) (Record, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	rec, err := that.Record(boardID, turn)
	if err != nil {
		return Record{}, err
	}

	return rec.Clone(), nil
}

func (that *Store) MoveStats(boardID, move int, turn entity.Mark) (MoveStats, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	rec, err := that.Record(boardID, turn)
	if err != nil {
		return MoveStats{}, err
	}

	if err = that.validateMove(move); err != nil {
		return MoveStats{}, err
	}

	return rec.move(move), nil
}

// ApplyMoveOutcome credits one move with the final result of its game,
// seen from the side of the player who made it. Nothing changes on error.
func (that *Store) ApplyMoveOutcome(boardID, move int, turn entity.Mark, winner entity.Winner) error {
	if err := validateWinner(winner); err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	rec, err := that.validateEntry(entity.HistoryEntry{BoardID: boardID, Move: move, Turn: turn})
	if err != nil {
		return err
	}

	applyOutcome(rec, move, turn, winner)

	return nil
}

// ApplyGameHistory applies the same winner to every entry of one finished
// game. The winner and all entries are validated before the first update,
// so a rejected call leaves the store unchanged.
func (that *Store) ApplyGameHistory(history entity.History, winner entity.Winner) error {
	if err := validateWinner(winner); err != nil {
		return err
	}

	if len(history) == 0 {
		return nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	targets := make([]*Record, len(history))
	for i, entry := range history {
		rec, err := that.validateEntry(entry)
		if err != nil {
			return fmt.Errorf("history entry %d: %w", i, err)
		}
		targets[i] = rec
	}

	for i, entry := range history {
		applyOutcome(targets[i], entry.Move, entry.Turn, winner)
	}

	return nil
}

func (that *Store) validateEntry(entry entity.HistoryEntry) (*Record, error) {
	if !entry.Turn.IsPlayer() {
		return nil, fmt.Errorf("%w: got %q", apperror.ErrInvalidTurnMarker, entry.Turn)
	}

	rec, err := that.Record(entry.BoardID, entry.Turn)
	if err != nil {
		return nil, err
	}

	if err = that.validateMove(entry.Move); err != nil {
		return nil, err
	}

	return rec, nil
}

func (that *Store) validateMove(move int) error {
	if move < 0 || move >= that.cells {
		return fmt.Errorf("%w: move %d not in [0, %d)", apperror.ErrOutOfRange, move, that.cells)
	}

	return nil
}

func validateWinner(winner entity.Winner) error {
	if !winner.IsValid() {
		return fmt.Errorf("%w: unknown winner %q", apperror.ErrInvalidArgument, winner)
	}

	return nil
}

// applyOutcome is the only place outcomes are attributed to a move.
func applyOutcome(rec *Record, move int, turn entity.Mark, winner entity.Winner) {
	isDraw := winner.IsDraw()
	isWinForMover := !isDraw && winner == entity.WinnerOf(turn)

	rec.Tries[move]++

	switch {
	case isDraw:
		rec.Draws[move]++
		rec.Totals.Draws[move]++
	case isWinForMover:
		rec.Wins[move]++
		if turn == entity.PlayerX {
			rec.Totals.WinsX[move]++
		} else {
			rec.Totals.WinsO[move]++
		}
	default:
		rec.Losses[move]++
		if turn == entity.PlayerX {
			rec.Totals.WinsO[move]++
		} else {
			rec.Totals.WinsX[move]++
		}
	}
}
