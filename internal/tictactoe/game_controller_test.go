package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.EmptyCell
)

func TestGame_MakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: create a new game
		game := entity.NewGame("123", 3)

		// When: player X makes a turn
		err := MakeTurn(game, x, 0)
		require.NoError(t, err)

		// Then: the game state should reflect the turn and queue change
		expectedGame := &entity.Game{
			ID:     "123",
			Size:   3,
			Board:  []entity.Mark{x, e, e, e, e, e, e, e, e},
			Turn:   o,
			Winner: entity.WinnerNone,
			Status: entity.StatusOngoing,
			Plies:  []entity.Ply{{Board: "_________", Cell: 0, Mark: x}},
		}

		require.Equal(t, expectedGame, game)
	})

	t.Run("Records the board before every move", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", 3)

		// When: X, O and X move
		require.NoError(t, MakeTurn(game, x, 0))
		require.NoError(t, MakeTurn(game, o, 4))
		require.NoError(t, MakeTurn(game, x, 8))

		// Then: each ply holds the board as it was before that move
		expected := []entity.Ply{
			{Board: "_________", Cell: 0, Mark: x},
			{Board: "X________", Cell: 4, Mark: o},
			{Board: "X___O____", Cell: 8, Mark: x},
		}
		assert.Equal(t, expected, game.Plies)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: new game with player X's queue
		game := entity.NewGame("123", 3)

		// When: player X moves to cell 0
		err := MakeTurn(game, x, 0)
		require.NoError(t, err)

		// When: player O tries to make a move to the same square
		err = MakeTurn(game, o, 0)

		// Then: an error ErrCellOccupied must be returned
		require.ErrorIs(t, err, apperror.ErrCellOccupied)

		// Then: the game state remains unchanged
		assert.Equal(t, []entity.Mark{x, e, e, e, e, e, e, e, e}, game.Board)
		assert.Equal(t, o, game.Turn)
		assert.Len(t, game.Plies, 1)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", 3)

		// When: player O tries to make a move when it is player X's turn
		err := MakeTurn(game, o, 1)

		// Then: an error ErrNotYourTurn must be returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, x, game.Turn)
		assert.Empty(t, game.Plies)
	})

	t.Run("Invalid Cell", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", 3)

		// When: an invalid cell index is passed (greater than the range)
		err := MakeTurn(game, x, 20)

		// Then: an error ErrInvalidCell must be returned
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Invalid Negative Cell", func(t *testing.T) {
		// Given: a new game
		game := entity.NewGame("123", 3)

		// When: negative cell index is transmitted
		err := MakeTurn(game, x, -1)

		// Then: an error ErrInvalidCell must be returned
		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Move After Game Finished", func(t *testing.T) {
		// Given: a game where player X has already won
		game := &entity.Game{
			Size:   3,
			Board:  []entity.Mark{x, x, x, e, o, e, e, o, e},
			Status: entity.StatusFinished,
			Turn:   o,
		}

		// When: player O tries to make a move after the game is over
		err := MakeTurn(game, o, 3)

		// Then: an error ErrGameFinished should be returned.
		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: X needs cell 2 to complete the top row
		game := entity.NewGame("123", 3)
		for i, cell := range []int{0, 3, 1, 4} {
			require.NoError(t, MakeTurn(game, []entity.Mark{x, o}[i%2], cell))
		}

		// When: X takes cell 2
		err := MakeTurn(game, x, 2)

		// Then: X is the winner and the turn is not toggled
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.WinnerX, game.Winner)
		assert.Equal(t, x, game.Turn)
	})
}

func TestGame_checkGameStatus(t *testing.T) {
	t.Run("Winner X", func(t *testing.T) {
		// Given: a game where player X has a winning combination
		board := []entity.Mark{x, o, e, x, o, e, x, e, e}

		// When: check the game status
		status := checkGameStatus(board, 3)

		// Then: player X should be declared the winner
		require.Equal(t, entity.WinnerX, status)
	})

	t.Run("Winner O on the anti diagonal", func(t *testing.T) {
		board := []entity.Mark{x, x, o, x, o, e, o, e, e}

		assert.Equal(t, entity.WinnerO, checkGameStatus(board, 3))
	})

	t.Run("Ongoing Game", func(t *testing.T) {
		// Given: a game where there is no winner yet
		board := []entity.Mark{x, o, x, e, o, e, x, e, e}

		// When: check the game status
		status := checkGameStatus(board, 3)

		// Then: the game should continue (no winner)
		require.Equal(t, entity.WinnerNone, status)
	})

	t.Run("Tie", func(t *testing.T) {
		// Given: a game that ended in a tie
		board := []entity.Mark{o, x, o, o, x, x, x, o, x}

		// When: check the game status
		status := checkGameStatus(board, 3)

		// Then: the game should be declared a tie
		assert.Equal(t, entity.WinnerDraw, status)
	})

	t.Run("Winner on a 2x2 board", func(t *testing.T) {
		board := []entity.Mark{x, o, x, e}

		assert.Equal(t, entity.WinnerX, checkGameStatus(board, 2))
	})
}

func TestWinLines(t *testing.T) {
	t.Run("3x3 has eight lines", func(t *testing.T) {
		lines := WinLines(3)

		require.Len(t, lines, 8)
		assert.Contains(t, lines, []int{0, 1, 2})
		assert.Contains(t, lines, []int{1, 4, 7})
		assert.Contains(t, lines, []int{0, 4, 8})
		assert.Contains(t, lines, []int{2, 4, 6})
	})

	t.Run("Every line has size cells", func(t *testing.T) {
		for _, line := range WinLines(4) {
			assert.Len(t, line, 4)
		}
	})
}
