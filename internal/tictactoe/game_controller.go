package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
)

// MakeTurn places the mark in the cell, records the ply and updates the game result.
func MakeTurn(gameInstance *entity.Game, player entity.Mark, cell int) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if err := validateMove(gameInstance, player, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Plies = append(gameInstance.Plies, entity.Ply{
		Board: gameInstance.BoardString(),
		Cell:  cell,
		Mark:  player,
	})

	gameInstance.Board[cell] = player
	updateGameStatus(gameInstance, player)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, playerTurn entity.Mark, cell int) error {
	if cell < 0 || cell >= len(gameInstance.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if gameInstance.Turn != playerTurn {
		return apperror.ErrNotYourTurn
	}

	if gameInstance.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func updateGameStatus(gameInstance *entity.Game, player entity.Mark) {
	switch winner := checkGameStatus(gameInstance.Board, gameInstance.Size); winner {
	case entity.WinnerX, entity.WinnerO, entity.WinnerDraw:
		gameInstance.Winner = winner
		gameInstance.Status = entity.StatusFinished
	default:
		gameInstance.Turn = player.Opponent()
	}
}

// checkGameStatus returns the winner, WinnerDraw on a full board, or WinnerNone while the game goes on.
func checkGameStatus(board []entity.Mark, size int) entity.Winner {
	for _, line := range WinLines(size) {
		first := board[line[0]]
		if first == entity.EmptyCell {
			continue
		}

		complete := true
		for _, idx := range line[1:] {
			if board[idx] != first {
				complete = false
				break
			}
		}

		if complete {
			return entity.WinnerOf(first)
		}
	}

	for _, cell := range board {
		if cell == entity.EmptyCell {
			return entity.WinnerNone
		}
	}

	return entity.WinnerDraw
}

// WinLines lists every row, column and both diagonals of a size x size board.
func WinLines(size int) [][]int {
	lines := make([][]int, 0, 2*size+2)

	for row := 0; row < size; row++ {
		line := make([]int, size)
		for col := 0; col < size; col++ {
			line[col] = row*size + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < size; col++ {
		line := make([]int, size)
		for row := 0; row < size; row++ {
			line[row] = row*size + col
		}
		lines = append(lines, line)
	}

	diagonal := make([]int, size)
	antiDiagonal := make([]int, size)
	for i := 0; i < size; i++ {
		diagonal[i] = i*size + i
		antiDiagonal[i] = i*size + (size - 1 - i)
	}

	return append(lines, diagonal, antiDiagonal)
}
