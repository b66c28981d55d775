// Package catalog enumerates every board string of a fixed-size board and
// maps each one to a dense integer id.
//
// Ids follow mixed-radix counting over the alphabet X, O, _ with the first
// cell as the most significant digit, so id 0 is the all-X board and the
// last id is the empty board. The order never changes between builds.
package catalog

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
)

// Catalog is the immutable id <-> board string mapping for one board size.
type Catalog struct {
	size      int
	cells     int
	idToBoard []string
	boardToID map[string]int
}

// Build enumerates all 3^(size*size) boards. It panics when size is not positive.
func Build(size int) *Catalog {
	if size <= 0 {
		panic(fmt.Sprintf("catalog: board size must be positive, got %d", size))
	}

	cells := size * size
	total := pow(len(entity.Alphabet), cells)

	that := &Catalog{
		size:      size,
		cells:     cells,
		idToBoard: make([]string, 0, total),
		boardToID: make(map[string]int, total),
	}

	digits := make([]int, cells)
	var sb strings.Builder
	for id := 0; id < total; id++ {
		sb.Reset()
		sb.Grow(cells)
		for _, d := range digits {
			sb.WriteString(string(entity.Alphabet[d]))
		}

		board := sb.String()
		that.idToBoard = append(that.idToBoard, board)
		that.boardToID[board] = id

		increment(digits, len(entity.Alphabet))
	}

	return that
}

// increment adds one to a mixed-radix number whose last digit varies fastest.
func increment(digits []int, radix int) {
	for i := len(digits) - 1; i >= 0; i-- {
		digits[i]++
		if digits[i] < radix {
			return
		}
		digits[i] = 0
	}
}

func pow(base, exp int) int {
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

// BoardSize is the side length N of the boards.
func (that *Catalog) BoardSize() int {
	return that.size
}

// Cells is the number of cells on the board, and the width of every stats array.
func (that *Catalog) Cells() int {
	return that.cells
}

// Len is the number of board ids.
func (that *Catalog) Len() int {
	return len(that.idToBoard)
}

// LookupID returns the id of a board string, or ErrUnknownBoard.
func (that *Catalog) LookupID(board string) (int, error) {
	id, ok := that.boardToID[board]
	if !ok {
		return 0, fmt.Errorf("%w: %q", apperror.ErrUnknownBoard, board)
	}

	return id, nil
}

// LookupBoard returns the board string of an id, or ErrOutOfRange.
func (that *Catalog) LookupBoard(id int) (string, error) {
	if err := that.ValidateID(id); err != nil {
		return "", err
	}

	return that.idToBoard[id], nil
}

// ValidateID reports ErrOutOfRange for ids outside [0, Len()).
func (that *Catalog) ValidateID(id int) error {
	if id < 0 || id >= len(that.idToBoard) {
		return fmt.Errorf("%w: board id %d not in [0, %d)", apperror.ErrOutOfRange, id, len(that.idToBoard))
	}

	return nil
}

// TurnOf guesses whose move it is on a board: X when both players have
// placed the same number of marks, O otherwise.
func TurnOf(board string) entity.Mark {
	xCount := strings.Count(board, string(entity.PlayerX))
	oCount := strings.Count(board, string(entity.PlayerO))

	if xCount == oCount {
		return entity.PlayerX
	}
	return entity.PlayerO
}
