// Package display renders boards and statistics as fixed-width text grids.
package display

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/stats"
)

const indent = "   "

// FormatBoard draws a board string with row numbers on the left and
// column numbers underneath.
func FormatBoard(board string, size int) string {
	separator := indent + strings.Repeat("-", 4*size)

	lines := []string{"", separator}
	for row := 0; row < size; row++ {
		cells := make([]string, size)
		for col := 0; col < size; col++ {
			cells[col] = string(board[row*size+col])
		}
		lines = append(lines, fmt.Sprintf("%d | %s |", row, strings.Join(cells, " | ")), separator)
	}

	cols := make([]string, size)
	for col := range cols {
		cols[col] = strconv.Itoa(col)
	}
	lines = append(lines, " "+indent+strings.Join(cols, indent))

	return strings.Join(lines, "\n")
}

// FormatRecord prints one size x size grid per counter, values right
// aligned to the widest value of that grid.
func FormatRecord(rec *stats.Record, size int) string {
	grids := make([]grid, 0, len(stats.Labels)+3)
	for _, label := range stats.Labels {
		values, _ := rec.Series(label)
		grids = append(grids, grid{title: capitalize(label), values: values})
	}

	grids = append(grids,
		grid{title: "Totals X wins", values: rec.Totals.WinsX},
		grid{title: "Totals O wins", values: rec.Totals.WinsO},
		grid{title: "Totals draws", values: rec.Totals.Draws},
	)

	sections := make([]string, len(grids))
	for i, g := range grids {
		sections[i] = g.render(size)
	}

	return strings.Join(sections, "\n\n")
}

// FormatMoveStats describes the counters of a single move.
func FormatMoveStats(boardID, move int, turn entity.Mark, ms stats.MoveStats) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "move %d: on board %d (Player %s's turn)\n", move, boardID, turn)
	fmt.Fprintf(&sb, "  %s wins\n", FormatValue(ms.Wins))
	fmt.Fprintf(&sb, "  %s losses\n", FormatValue(ms.Losses))
	fmt.Fprintf(&sb, "  %s draws\n", FormatValue(ms.Draws))
	fmt.Fprintf(&sb, "  %s tries\n", FormatValue(ms.Tries))
	sb.WriteString("  Move totals:\n")
	fmt.Fprintf(&sb, "    %s X wins\n", FormatValue(ms.Totals.WinsX))
	fmt.Fprintf(&sb, "    %s O wins\n", FormatValue(ms.Totals.WinsO))
	fmt.Fprintf(&sb, "    %s draws\n", FormatValue(ms.Totals.Draws))

	return sb.String()
}

// FormatValue prints whole numbers without decimals and anything else with two.
func FormatValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type grid struct {
	title  string
	values []float64
}

func (that grid) render(size int) string {
	cells := size * size
	text := make([]string, cells)
	width := 1
	for i := 0; i < cells; i++ {
		// short series are padded with zeros
		v := 0.0
		if i < len(that.values) {
			v = that.values[i]
		}
		text[i] = FormatValue(v)
		width = max(width, len(text[i]))
	}

	rows := make([]string, size)
	for row := 0; row < size; row++ {
		padded := make([]string, size)
		for col := 0; col < size; col++ {
			padded[col] = fmt.Sprintf("%*s", width, text[row*size+col])
		}
		rows[row] = strings.Join(padded, " ")
	}

	return that.title + ":\n" + indent + strings.Join(rows, "\n"+indent)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
