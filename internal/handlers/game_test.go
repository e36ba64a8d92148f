package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajarov/minesweep/internal/records"
	"github.com/ajarov/minesweep/internal/session"
	"github.com/ajarov/minesweep/internal/store"
)

type fixture struct {
	handler  *GameHandler
	sessions *session.Registry
	mux      *http.ServeMux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	s, db, err := store.Open(filepath.Join(t.TempDir(), "test.db"), "minesweep")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	sessions := session.NewRegistry()
	h := NewGameHandler(
		log, sessions, records.NewTracker(log, s), rand.New(rand.NewPCG(1, 2)),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/status", h.Status)
	mux.HandleFunc("POST /v1/game", h.NewGame)
	mux.HandleFunc("GET /v1/game/{id}", h.Fetch)
	mux.HandleFunc("POST /v1/game/{id}/open", h.Open)
	mux.HandleFunc("POST /v1/game/{id}/flag", h.Flag)
	mux.HandleFunc("POST /v1/game/{id}/chord", h.Chord)
	mux.HandleFunc("POST /v1/game/{id}/reset", h.Reset)
	mux.HandleFunc("POST /v1/game/{id}/batch", h.Batch)
	mux.HandleFunc("GET /v1/records", h.GetRecords)
	mux.HandleFunc("GET /v1/settings", h.GetSettings)
	mux.HandleFunc("PUT /v1/settings", h.PutSettings)

	return &fixture{handler: h, sessions: sessions, mux: mux}
}

type sessionBody struct {
	SessionID     string `json:"session_id"`
	Grid          []int8 `json:"grid"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	MineCount     int    `json:"mine_count"`
	Started       bool   `json:"started"`
	Dead          bool   `json:"dead"`
	Won           bool   `json:"won"`
	FlagsPlaced   int    `json:"flags_placed"`
	RevealedCount int    `json:"revealed_count"`
}

func (f *fixture) do(t *testing.T, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, httptest.NewRequest(method, target, body))
	return w
}

func (f *fixture) doSession(t *testing.T, method, target string, body io.Reader) sessionBody {
	t.Helper()
	w := f.do(t, method, target, body)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	var s sessionBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	return s
}

func TestStatus(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, "GET", "/v1/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestNewGamePreset(t *testing.T) {
	f := newFixture(t)
	s := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)

	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, 9, s.Width)
	assert.Equal(t, 10, s.MineCount)
	assert.False(t, s.Started, "mines must not be placed before the first open")
	assert.Len(t, s.Grid, 81)
}

func TestNewGameCustomClamped(t *testing.T) {
	f := newFixture(t)
	s := f.doSession(t, "POST", "/v1/game?width=500&height=2&mine_count=0", nil)

	assert.Equal(t, 60, s.Width)
	assert.Equal(t, 4, s.Height)
	assert.Equal(t, 1, s.MineCount)

	// the custom configuration is remembered
	w := f.do(t, "GET", "/v1/settings", nil)
	assert.Contains(t, w.Body.String(), `"width":60`)
}

func TestFetchUnknownSession(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, "GET", "/v1/game/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOpenFlagAndFetch(t *testing.T) {
	f := newFixture(t)
	created := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)
	id := created.SessionID

	s := f.doSession(t, "POST", "/v1/game/"+id+"/open?x=0&y=0", nil)
	assert.True(t, s.Started)
	assert.Greater(t, s.RevealedCount, 0)
	assert.False(t, s.Dead, "safe first click must not hit a mine")

	s = f.doSession(t, "POST", "/v1/game/"+id+"/flag?x=8&y=8", nil)
	if s.Grid[8*9+8] == -1 {
		assert.Equal(t, 1, s.FlagsPlaced)
	}

	fetched := f.doSession(t, "GET", "/v1/game/"+id, nil)
	assert.Equal(t, s, fetched)
}

func TestOpenBadInput(t *testing.T) {
	f := newFixture(t)
	created := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)
	id := created.SessionID

	w := f.do(t, "POST", "/v1/game/"+id+"/open?x=0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing y")

	w = f.do(t, "POST", "/v1/game/"+id+"/open?x=100&y=100", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "out of bounds")

	w = f.do(t, "POST", "/v1/game/missing/open?x=0&y=0", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWinRecordsBestTime(t *testing.T) {
	f := newFixture(t)
	created := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)
	id := created.SessionID

	f.doSession(t, "POST", "/v1/game/"+id+"/open?x=0&y=0", nil)

	// peek at the placed mines and open every safe cell over HTTP
	live, err := f.sessions.Get(id)
	require.NoError(t, err)
	var last sessionBody
	for i := range live.Game.Grid.Cells {
		c := &live.Game.Grid.Cells[i]
		if c.Mine || live.Game.Ended() {
			continue
		}
		last = f.doSession(t, "POST",
			fmt.Sprintf("/v1/game/%s/open?x=%d&y=%d", id, c.X, c.Y), nil)
	}
	require.True(t, last.Won)
	require.False(t, last.Dead)

	w := f.do(t, "GET", "/v1/records", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var times map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &times))
	_, ok := times["9x9_10"]
	assert.True(t, ok, "win must store a best time for the key")
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	created := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)
	id := created.SessionID

	f.doSession(t, "POST", "/v1/game/"+id+"/open?x=0&y=0", nil)
	s := f.doSession(t, "POST", "/v1/game/"+id+"/reset", nil)

	assert.False(t, s.Started)
	assert.Zero(t, s.RevealedCount)
	assert.Equal(t, id, s.SessionID, "reset keeps the session id")
}

func TestBatch(t *testing.T) {
	f := newFixture(t)
	created := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)
	id := created.SessionID

	s := f.doSession(t, "POST", "/v1/game/"+id+"/batch",
		strings.NewReader("o 0 0\nf 8 8\ng"))
	assert.True(t, s.Started)

	w := f.do(t, "POST", "/v1/game/"+id+"/batch", strings.NewReader("o 0 0\nnope 1 2"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "line 1")
}

func TestSettingsRoundTrip(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, "GET", "/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sound":true`)

	w = f.do(t, "PUT", "/v1/settings", strings.NewReader(
		`{"sound":false,"safe_first":true,"flood_fill":false,"difficulty":"expert"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, "GET", "/v1/settings", nil)
	body := w.Body.String()
	assert.Contains(t, body, `"sound":false`)
	assert.Contains(t, body, `"flood_fill":false`)
	assert.Contains(t, body, `"difficulty":"expert"`)

	// new games now pick up the saved toggles
	created := f.doSession(t, "POST", "/v1/game?difficulty=beginner", nil)
	live, err := f.sessions.Get(created.SessionID)
	require.NoError(t, err)
	assert.False(t, live.Game.Params.FloodFill)
	assert.True(t, live.Game.Params.SafeFirst)
}
