package stats

// Totals restates outcomes in absolute-winner terms, per move.
type Totals struct {
	WinsX []float64 `json:"wins_X"`
	WinsO []float64 `json:"wins_O"`
	Draws []float64 `json:"draws"`
}

// Record holds the per-move counters of one board for one player to move.
// Every slice is indexed by cell position.
type Record struct {
	Wins   []float64 `json:"wins"`
	Losses []float64 `json:"losses"`
	Draws  []float64 `json:"draws"`
	Tries  []float64 `json:"tries"`
	Totals Totals    `json:"totals"`
}

const seriesPerRecord = 7

// newRecord carves all series out of one backing array.
func newRecord(cells int, fill func() float64) *Record {
	buf := make([]float64, seriesPerRecord*cells)
	if fill != nil {
		for i := range buf {
			buf[i] = fill()
		}
	}

	series := func(n int) []float64 {
		return buf[n*cells : (n+1)*cells : (n+1)*cells]
	}

	return &Record{
		Wins:   series(0),
		Losses: series(1),
		Draws:  series(2),
		Tries:  series(3),
		Totals: Totals{
			WinsX: series(4),
			WinsO: series(5),
			Draws: series(6),
		},
	}
}

func (that *Record) Clone() Record {
	cells := len(that.Wins)
	cp := newRecord(cells, nil)

	copy(cp.Wins, that.Wins)
	copy(cp.Losses, that.Losses)
	copy(cp.Draws, that.Draws)
	copy(cp.Tries, that.Tries)
	copy(cp.Totals.WinsX, that.Totals.WinsX)
	copy(cp.Totals.WinsO, that.Totals.WinsO)
	copy(cp.Totals.Draws, that.Totals.Draws)

	return *cp
}

// Series returns the counters for a display label.
func (that *Record) Series(label string) ([]float64, bool) {
	switch label {
	case LabelWins:
		return that.Wins, true
	case LabelLosses:
		return that.Losses, true
	case LabelDraws:
		return that.Draws, true
	case LabelTries:
		return that.Tries, true
	default:
		return nil, false
	}
}

const (
	LabelWins   = "wins"
	LabelLosses = "losses"
	LabelDraws  = "draws"
	LabelTries  = "tries"
)

// Labels lists the mover-relative counters in display order.
var Labels = []string{LabelWins, LabelLosses, LabelDraws, LabelTries}

type MoveTotals struct {
	WinsX float64 `json:"wins_X"`
	WinsO float64 `json:"wins_O"`
	Draws float64 `json:"draws"`
}

// MoveStats is a read-only view of one move of a Record.
type MoveStats struct {
	Wins   float64    `json:"wins"`
	Losses float64    `json:"losses"`
	Draws  float64    `json:"draws"`
	Tries  float64    `json:"tries"`
	Totals MoveTotals `json:"totals"`
}

func (that *Record) move(m int) MoveStats {
	return MoveStats{
		Wins:   that.Wins[m],
		Losses: that.Losses[m],
		Draws:  that.Draws[m],
		Tries:  that.Tries[m],
		Totals: MoveTotals{
			WinsX: that.Totals.WinsX[m],
			WinsO: that.Totals.WinsO[m],
			Draws: that.Totals.Draws[m],
		},
	}
}
