package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/tictactoe-model/internal/display"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
)

type gamePlayer interface {
	StartGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	ListGames(ctx context.Context, limit int64) ([]string, error)
	DeleteGame(ctx context.Context, id string) error
	MakeMove(ctx context.Context, id string, cell int) (*entity.Game, error)
}

type moveRequest struct {
	Cell *int `json:"cell" validate:"required,min=0"`
}

type gamesResponse struct {
	IDs []string `json:"ids"`
}

var validate = validator.New()

// gamesRoutes mounts the human-vs-bot play surface. Without a game store
// every route answers 503.
func (that *handlers) gamesRoutes(r chi.Router) {
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if that.games == nil {
				http.Error(w, "game store is disabled", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", that.listGames)
	r.Post("/", that.startGame)
	r.Get("/{id}", that.getGame)
	r.Delete("/{id}", that.deleteGame)
	r.Post("/{id}/moves", that.makeMove)
}

func (that *handlers) listGames(w http.ResponseWriter, r *http.Request) {
	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	ids, err := that.games.ListGames(r.Context(), limit)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if ids == nil {
		ids = []string{}
	}

	that.writeJSON(w, gamesResponse{IDs: ids})
}

func (that *handlers) startGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.StartGame(r.Context())
	if err != nil {
		that.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/games/"+game.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	that.writeJSON(w, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		that.writeText(w, display.FormatBoard(game.BoardString(), game.Size))
		return
	}

	that.writeJSON(w, game)
}

func (that *handlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validate.Struct(req); err != nil {
		http.Error(w, "cell must be a non-negative integer", http.StatusBadRequest)
		return
	}

	game, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, game)
}
