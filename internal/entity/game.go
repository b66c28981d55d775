package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

// Mark is the content of a single cell, and also names the player to move.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = "_"
)

// Alphabet is the cell alphabet in enumeration order.
var Alphabet = [3]Mark{PlayerX, PlayerO, EmptyCell}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Winner is the final result of a game. WinnerNone is the absent value.
type Winner string

const (
	WinnerX    Winner = "X"
	WinnerO    Winner = "O"
	WinnerDraw Winner = "DRAW"
	WinnerNone Winner = ""
)

func (that Winner) IsValid() bool {
	switch that {
	case WinnerX, WinnerO, WinnerDraw, WinnerNone:
		return true
	default:
		return false
	}
}

// IsDraw treats the absent winner the same as a draw.
func (that Winner) IsDraw() bool {
	return that == WinnerDraw || that == WinnerNone
}

func WinnerOf(mark Mark) Winner {
	return Winner(mark)
}

// Ply is one move as seen by the rules engine: the board before the move,
// the chosen cell and who made it.
type Ply struct {
	Board string `json:"board"`
	Cell  int    `json:"cell"`
	Mark  Mark   `json:"mark"`
}

type Game struct {
	ID     string `json:"id"`
	Size   int    `json:"size"`
	Board  []Mark `json:"board"`
	Turn   Mark   `json:"player_turn"`
	Winner Winner `json:"winner"`
	Status string `json:"status"`
	Plies  []Ply  `json:"plies,omitempty"`
}

func NewGame(id string, size int) *Game {
	board := make([]Mark, size*size)
	for i := range board {
		board[i] = EmptyCell
	}

	return &Game{
		ID:     id,
		Size:   size,
		Board:  board,
		Turn:   PlayerX,
		Status: StatusOngoing,
	}
}

// BoardString returns the row-major concatenation of the cells.
func (that *Game) BoardString() string {
	var sb strings.Builder
	sb.Grow(len(that.Board))
	for _, cell := range that.Board {
		sb.WriteString(string(cell))
	}
	return sb.String()
}

func (that *Game) OpenCells() []int {
	cells := make([]int, 0, len(that.Board))
	for i, cell := range that.Board {
		if cell == EmptyCell {
			cells = append(cells, i)
		}
	}
	return cells
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("unknown game status: %s", that.Status)
	}
}
