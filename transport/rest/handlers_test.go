package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-model/internal/catalog"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/stats"
)

func newTestServer(t *testing.T) (*httptest.Server, *catalog.Catalog, *stats.Store) {
	t.Helper()

	cat := catalog.Build(3)
	store, err := stats.New(cat, stats.ModeZero, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(logger, cat, store, nil))
	t.Cleanup(srv.Close)

	return srv, cat, store
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint: noctx // test helper
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestPing(t *testing.T) {
	srv, _, _ := newTestServer(t)

	status, body := get(t, srv.URL+"/ping")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "pong", body)
}

func TestLookup(t *testing.T) {
	srv, cat, _ := newTestServer(t)

	t.Run("Known board", func(t *testing.T) {
		// When: looking up the board with one X in the center
		status, body := get(t, srv.URL+"/lookup?board=____X____")

		// Then: its id and the player to move are returned
		require.Equal(t, http.StatusOK, status)

		var resp boardResponse
		require.NoError(t, json.Unmarshal([]byte(body), &resp))
		expectedID, err := cat.LookupID("____X____")
		require.NoError(t, err)
		assert.Equal(t, expectedID, resp.ID)
		assert.Equal(t, entity.PlayerO, resp.Turn)
	})

	t.Run("Unknown board", func(t *testing.T) {
		status, _ := get(t, srv.URL+"/lookup?board=nope")

		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestBoard(t *testing.T) {
	srv, _, _ := newTestServer(t)

	t.Run("Text format", func(t *testing.T) {
		status, body := get(t, srv.URL+"/boards/0?format=text")

		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "0 | X | X | X |")
	})

	t.Run("Out of range", func(t *testing.T) {
		status, _ := get(t, srv.URL+"/boards/"+strings.Repeat("9", 6))

		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("Not a number", func(t *testing.T) {
		status, _ := get(t, srv.URL+"/boards/abc")

		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestRecordAndMove(t *testing.T) {
	srv, cat, store := newTestServer(t)

	// Given: one recorded X win from the empty board
	empty, err := cat.LookupID("_________")
	require.NoError(t, err)
	require.NoError(t, store.ApplyMoveOutcome(empty, 4, entity.PlayerX, entity.WinnerX))

	t.Run("Record as JSON", func(t *testing.T) {
		status, body := get(t, srv.URL+"/boards/"+strconv.Itoa(empty)+"/stats")

		require.Equal(t, http.StatusOK, status)

		var rec stats.Record
		require.NoError(t, json.Unmarshal([]byte(body), &rec))
		assert.Equal(t, 1.0, rec.Wins[4])
		assert.Equal(t, 1.0, rec.Totals.WinsX[4])
	})

	t.Run("Move as JSON", func(t *testing.T) {
		status, body := get(t, srv.URL+"/boards/"+strconv.Itoa(empty)+"/moves/4?turn=X")

		require.Equal(t, http.StatusOK, status)

		var ms stats.MoveStats
		require.NoError(t, json.Unmarshal([]byte(body), &ms))
		assert.Equal(t, stats.MoveStats{Wins: 1, Tries: 1, Totals: stats.MoveTotals{WinsX: 1}}, ms)
	})

	t.Run("Move as text", func(t *testing.T) {
		status, body := get(t, srv.URL+"/boards/"+strconv.Itoa(empty)+"/moves/4?format=text")

		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, "move 4: on board "+strconv.Itoa(empty)+" (Player X's turn)")
	})

	t.Run("Invalid turn marker", func(t *testing.T) {
		status, _ := get(t, srv.URL+"/boards/"+strconv.Itoa(empty)+"/stats?turn=Z")

		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Move out of range", func(t *testing.T) {
		status, _ := get(t, srv.URL+"/boards/"+strconv.Itoa(empty)+"/moves/9")

		assert.Equal(t, http.StatusNotFound, status)
	})
}
