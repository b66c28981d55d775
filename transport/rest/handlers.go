package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-model/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-model/internal/catalog"
	"github.com/rocketscienceinc/tictactoe-model/internal/display"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/stats"
)

type boardCatalog interface {
	BoardSize() int
	LookupID(board string) (int, error)
	LookupBoard(id int) (string, error)
}

type statsReader interface {
	Snapshot(boardID int, turn entity.Mark) (stats.Record, error)
	MoveStats(boardID, move int, turn entity.Mark) (stats.MoveStats, error)
}

type handlers struct {
	logger  *slog.Logger
	catalog boardCatalog
	stats   statsReader
	games   gamePlayer
}

// NewRouter exposes read-only catalog and stats lookups, plus human-vs-bot
// games when games is not nil.
//
//	GET /ping
//	GET /lookup?board=XO_______
//	GET /boards/{id}
//	GET /boards/{id}/stats?turn=X[&format=text]
//	GET /boards/{id}/moves/{move}?turn=X[&format=text]
//	GET /games?limit=N
//	POST /games
//	GET /games/{id}[?format=text]
//	DELETE /games/{id}
//	POST /games/{id}/moves {"cell": 4}
func NewRouter(logger *slog.Logger, catalog boardCatalog, stats statsReader, games gamePlayer) http.Handler {
	that := &handlers{
		logger:  logger.With("component", "rest"),
		catalog: catalog,
		stats:   stats,
		games:   games,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Get("/lookup", that.lookup)
	r.Route("/boards/{id}", func(r chi.Router) {
		r.Get("/", that.board)
		r.Get("/stats", that.record)
		r.Get("/moves/{move}", that.move)
	})
	r.Route("/games", that.gamesRoutes)

	return r
}

type boardResponse struct {
	ID    int         `json:"id"`
	Board string      `json:"board"`
	Turn  entity.Mark `json:"turn"`
}

func (that *handlers) lookup(w http.ResponseWriter, r *http.Request) {
	board := r.URL.Query().Get("board")

	id, err := that.catalog.LookupID(board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, boardResponse{ID: id, Board: board, Turn: catalog.TurnOf(board)})
}

func (that *handlers) board(w http.ResponseWriter, r *http.Request) {
	id, board, ok := that.boardFromPath(w, r)
	if !ok {
		return
	}

	if r.URL.Query().Get("format") == "text" {
		that.writeText(w, display.FormatBoard(board, that.catalog.BoardSize()))
		return
	}

	that.writeJSON(w, boardResponse{ID: id, Board: board, Turn: catalog.TurnOf(board)})
}

func (that *handlers) record(w http.ResponseWriter, r *http.Request) {
	id, board, ok := that.boardFromPath(w, r)
	if !ok {
		return
	}

	turn := turnFromQuery(r, board)

	rec, err := that.stats.Snapshot(id, turn)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		that.writeText(w, display.FormatRecord(&rec, that.catalog.BoardSize()))
		return
	}

	that.writeJSON(w, rec)
}

func (that *handlers) move(w http.ResponseWriter, r *http.Request) {
	id, board, ok := that.boardFromPath(w, r)
	if !ok {
		return
	}

	move, err := strconv.Atoi(chi.URLParam(r, "move"))
	if err != nil {
		http.Error(w, "move must be an integer", http.StatusBadRequest)
		return
	}

	turn := turnFromQuery(r, board)

	ms, err := that.stats.MoveStats(id, move, turn)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		that.writeText(w, display.FormatMoveStats(id, move, turn, ms))
		return
	}

	that.writeJSON(w, ms)
}

func (that *handlers) boardFromPath(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "board id must be an integer", http.StatusBadRequest)
		return 0, "", false
	}

	board, err := that.catalog.LookupBoard(id)
	if err != nil {
		that.writeError(w, err)
		return 0, "", false
	}

	return id, board, true
}

// turnFromQuery defaults to the player whose turn the board implies.
func turnFromQuery(r *http.Request, board string) entity.Mark {
	if turn := r.URL.Query().Get("turn"); turn != "" {
		return entity.Mark(turn)
	}
	return catalog.TurnOf(board)
}

func (that *handlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrOutOfRange), errors.Is(err, apperror.ErrUnknownBoard),
		errors.Is(err, apperror.ErrGameNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperror.ErrGameFinished), errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperror.ErrInvalidArgument), errors.Is(err, apperror.ErrInvalidCell):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("request failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to encode response", "error", err)
	}
}

func (that *handlers) writeText(w http.ResponseWriter, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(s + "\n")); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
