package display

import (
	"strings"
	"testing"

	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/stats"
	"github.com/stretchr/testify/assert"
)

func TestFormatBoard(t *testing.T) {
	// Given: a 3x3 board string
	board := "XO__X___O"

	// When: formatting it
	out := FormatBoard(board, 3)

	// Then: rows carry their index and columns are numbered at the bottom
	expected := strings.Join([]string{
		"",
		"   ------------",
		"0 | X | O | _ |",
		"   ------------",
		"1 | _ | X | _ |",
		"   ------------",
		"2 | _ | _ | O |",
		"   ------------",
		"    0   1   2",
	}, "\n")
	assert.Equal(t, expected, out)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0", FormatValue(0))
	assert.Equal(t, "12", FormatValue(12))
	assert.Equal(t, "0.50", FormatValue(0.5))
	assert.Equal(t, "0.07", FormatValue(0.07))
}

func TestFormatRecord(t *testing.T) {
	t.Run("Right aligns values to the widest one of each grid", func(t *testing.T) {
		// Given: a 2x2 record with one wide value in wins
		rec := &stats.Record{
			Wins:   []float64{1, 0, 12, 0.25},
			Losses: []float64{0, 0, 0, 0},
			Draws:  []float64{0, 0, 0, 0},
			Tries:  []float64{1, 0, 12, 1},
			Totals: stats.Totals{
				WinsX: []float64{1, 0, 0, 0},
				WinsO: []float64{0, 0, 12, 0},
				Draws: []float64{0, 0, 0, 1},
			},
		}

		// When: formatting it
		out := FormatRecord(rec, 2)

		// Then: wins use the width of "0.25"
		assert.True(t, strings.HasPrefix(out, "Wins:\n      1    0\n     12 0.25\n\nLosses:\n   0 0\n   0 0"), out)

		// Then: every counter has its own grid
		for _, title := range []string{"Wins:", "Losses:", "Draws:", "Tries:", "Totals X wins:", "Totals O wins:", "Totals draws:"} {
			assert.Contains(t, out, title)
		}
	})

	t.Run("Pads short series with zeros", func(t *testing.T) {
		rec := &stats.Record{Wins: []float64{3}}

		out := FormatRecord(rec, 2)

		assert.True(t, strings.HasPrefix(out, "Wins:\n   3 0\n   0 0"), out)
	})
}

func TestFormatMoveStats(t *testing.T) {
	// Given: the counters of one move
	ms := stats.MoveStats{
		Wins:   2,
		Losses: 1,
		Tries:  3,
		Totals: stats.MoveTotals{WinsX: 2, WinsO: 1},
	}

	// When: formatting them
	out := FormatMoveStats(17, 4, entity.PlayerX, ms)

	// Then: the block lists every counter
	expected := "move 4: on board 17 (Player X's turn)\n" +
		"  2 wins\n" +
		"  1 losses\n" +
		"  0 draws\n" +
		"  3 tries\n" +
		"  Move totals:\n" +
		"    2 X wins\n" +
		"    1 O wins\n" +
		"    0 draws\n"
	assert.Equal(t, expected, out)
}
