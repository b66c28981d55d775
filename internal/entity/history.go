package entity

// HistoryEntry is recorded when a move is made, before its result is known.
type HistoryEntry struct {
	BoardID int  `json:"board_id"`
	Move    int  `json:"move"`
	Turn    Mark `json:"turn"`
}

// History is the ordered list of entries of one game, one per ply.
type History []HistoryEntry
