package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrGameFinished   = errors.New("game is already finished")
	ErrNotYourTurn    = errors.New("it's not your turn")
	ErrCellOccupied   = errors.New("cell is already occupied")
	ErrInvalidCell    = errors.New("invalid cell index")
	ErrIncompleteGame = errors.New("game has no result")
	ErrGameNotFound   = errors.New("game not found")

	ErrOutOfRange      = errors.New("value out of range")
	ErrUnknownBoard    = errors.New("unknown board")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidTurnMarker also matches ErrInvalidArgument with errors.Is.
	ErrInvalidTurnMarker = fmt.Errorf("%w: turn marker must be X or O", ErrInvalidArgument)
)
