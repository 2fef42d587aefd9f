package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nelhage/checkers/checkers"
	"github.com/nelhage/checkers/logs"
	"github.com/nelhage/checkers/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestCreateAndClick(t *testing.T) {
	app := New(NewManager(checkers.Config{}, nil))

	code, st := do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "human"})
	require.Equal(t, http.StatusCreated, code)
	id := st["id"].(string)
	assert.NotEmpty(t, st["name"])
	assert.Equal(t, "X", st["to_move"])
	assert.Equal(t, "_x_x_x_x", st["board"].([]interface{})[0])

	code, st = do(t, app, http.MethodPost, "/api/games/"+id+"/click", actionRequest{Row: 2, Col: 1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "selected", st["outcome"])
	assert.Equal(t, map[string]interface{}{"row": 2.0, "col": 1.0}, st["selected"])

	code, st = do(t, app, http.MethodPost, "/api/games/"+id+"/click", actionRequest{Row: 4, Col: 1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "deselected", st["outcome"])
	assert.Nil(t, st["selected"])
	assert.Equal(t, "X", st["to_move"])

	do(t, app, http.MethodPost, "/api/games/"+id+"/click", actionRequest{Row: 2, Col: 1})
	code, st = do(t, app, http.MethodPost, "/api/games/"+id+"/click", actionRequest{Row: 3, Col: 0})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "moved", st["outcome"])
	assert.Equal(t, "O", st["to_move"])
	assert.Equal(t, []interface{}{"6b-5a"}, st["moves"])

	code, st = do(t, app, http.MethodGet, "/api/games/"+id, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "O", st["to_move"])
}

func TestMoveErrors(t *testing.T) {
	app := New(NewManager(checkers.Config{}, nil))

	code, _ := do(t, app, http.MethodGet, "/api/games/nope", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "wizard"})
	assert.Equal(t, http.StatusBadRequest, code)

	_, st := do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "computer", "seed": 3})
	id := st["id"].(string)

	code, body := do(t, app, http.MethodPost, "/api/games/"+id+"/move", actionRequest{Move: "6b5a"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "malformed move")

	code, _ = do(t, app, http.MethodPost, "/api/games/"+id+"/move", actionRequest{Move: "6b-4d"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, st = do(t, app, http.MethodPost, "/api/games/"+id+"/move", actionRequest{Move: "6b-5a"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "X", st["to_move"], "computer answers immediately")
	assert.Len(t, st["moves"], 2)
}

func playOut(t *testing.T, m *Manager, st State) State {
	t.Helper()
	var err error
	for !st.Over {
		p := m.games[st.ID].s.Position()
		moves := p.ValidMoves()
		require.NotEmpty(t, moves)
		st, err = m.Move(st.ID, notation.FormatMove(moves[0]))
		require.NoError(t, err)
	}
	return st
}

func TestComputerSeeds(t *testing.T) {
	m := NewManager(checkers.Config{}, nil)
	var next int64 = 100
	m.seed = func() int64 {
		next++
		return next
	}
	app := New(m)

	_, a := do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "computer"})
	_, b := do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "computer"})
	assert.Equal(t, "capture:101", a["opponent"])
	assert.Equal(t, "capture:102", b["opponent"])

	_, c := do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "computer", "seed": 0})
	assert.Equal(t, "capture:0", c["opponent"])
	_, d := do(t, app, http.MethodPost, "/api/games", map[string]interface{}{"opponent": "human"})
	assert.Equal(t, "human", d["opponent"])
	assert.Equal(t, int64(102), next, "human games draw no seed")
}

func TestDefaultSeedsDiffer(t *testing.T) {
	m := NewManager(checkers.Config{}, nil)
	a, err := m.Create("computer", nil)
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	b, err := m.Create("computer", nil)
	require.NoError(t, err)
	assert.NotEqual(t, a.Opponent, b.Opponent)
}

func TestFinishedGamesAreDropped(t *testing.T) {
	m := NewManager(checkers.Config{}, nil)
	now := time.Unix(1000, 0)
	m.now = func() time.Time { return now }
	m.Retain = time.Minute

	seed := int64(7)
	done, err := m.Create("computer", &seed)
	require.NoError(t, err)
	done = playOut(t, m, done)

	now = now.Add(30 * time.Second)
	live, err := m.Create("human", nil)
	require.NoError(t, err)
	_, err = m.State(done.ID)
	require.NoError(t, err, "finished game kept during the grace period")

	now = now.Add(time.Minute)
	_, err = m.Create("human", nil)
	require.NoError(t, err)
	_, err = m.State(done.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.State(live.ID)
	assert.NoError(t, err, "unfinished games are kept")
}

func TestFinishedGamesAreLogged(t *testing.T) {
	repo, err := logs.Open(filepath.Join(t.TempDir(), "games.db"))
	require.NoError(t, err)
	defer repo.Close()

	m := NewManager(checkers.Config{}, repo)
	seed := int64(7)
	st, err := m.Create("computer", &seed)
	require.NoError(t, err)
	st = playOut(t, m, st)
	// A further action on a finished game is not logged twice.
	_, err = m.Click(st.ID, 2, 1)
	require.NoError(t, err)

	games, err := repo.Games(10)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, st.Winner, games[0].Winner)
	assert.Equal(t, len(st.Moves), games[0].Plies)
	assert.Equal(t, "capture:7", games[0].PlayerO)
	assert.Contains(t, games[0].Record, `[PlayerO "capture:7"]`)
}
