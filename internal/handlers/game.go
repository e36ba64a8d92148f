package handlers

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ajarov/minesweep/internal/mines"
	"github.com/ajarov/minesweep/internal/records"
	"github.com/ajarov/minesweep/internal/session"
)

type GameHandler struct {
	log      *logrus.Logger
	sessions *session.Registry
	tracker  *records.Tracker
	rnd      *rand.Rand
	upgrader websocket.Upgrader
}

func NewGameHandler(
	log *logrus.Logger,
	sessions *session.Registry,
	tracker *records.Tracker,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		tracker:  tracker,
		rnd:      rnd,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.log, map[string]any{
		"status":   "ok",
		"sessions": h.sessions.Len(),
	})
}

func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := parseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	params := dto.Params(h.tracker.Settings())
	s := h.sessions.Create(params, h.rnd)

	if _, ok := mines.Preset(dto.Difficulty); ok {
		if err := h.tracker.SaveDifficulty(dto.Difficulty); err != nil {
			h.log.WithError(err).Warn("unable to save difficulty")
		}
	} else if err := h.tracker.SaveCustom(records.CustomBoard{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
	}); err != nil {
		h.log.WithError(err).Warn("unable to save custom board")
	}

	h.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"params":     params.Key(),
	}).Debug("created session")
	sendJSONOrLog(w, h.log, s)
}

func (h *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sendJSONOrLog(w, h.log, s)
}

// move parses x/y and applies fn to the session under the registry
// lock, recording a best time when the move ends the game in a win.
func (h *GameHandler) move(
	w http.ResponseWriter, r *http.Request,
	fn func(s *session.Session, x, y int),
) {
	pos, err := parsePosDTO(r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	s, err := h.sessions.Update(r.PathValue("id"), func(s *session.Session) error {
		if !s.Game.Params.InBounds(pos.X, pos.Y) {
			return fmt.Errorf("cell %d:%d out of bounds", pos.X, pos.Y)
		}
		wasEnded := s.Game.Ended()
		fn(s, pos.X, pos.Y)
		if !wasEnded && s.Game.Won {
			h.recordWin(s)
		}
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	sendJSONOrLog(w, h.log, s)
}

func (h *GameHandler) recordWin(s *session.Session) {
	key := s.Game.Params.Key()
	elapsed := s.Game.ElapsedSeconds()
	improved, err := h.tracker.RecordIfBest(key, elapsed)
	if err != nil {
		h.log.WithError(err).Error("unable to record best time")
		return
	}
	if improved {
		h.log.WithFields(logrus.Fields{
			"key":     key,
			"elapsed": elapsed,
		}).Info("new best time")
	}
}

func (h *GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *session.Session, x, y int) {
		s.Game.Reveal(x, y)
	})
}

func (h *GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *session.Session, x, y int) {
		s.Game.ToggleFlag(x, y)
	})
}

func (h *GameHandler) Chord(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, func(s *session.Session, x, y int) {
		s.Game.Chord(x, y)
	})
}

func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, err := h.sessions.Update(r.PathValue("id"), func(s *session.Session) error {
		s.Game.Reset()
		return nil
	})
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	sendJSONOrLog(w, h.log, s)
}

// Batch accepts newline-separated text commands (see commands.go) and
// applies them in order, stopping at the first terminal state. A
// malformed command drops the whole batch with its line number.
func (h *GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		sendError(w, h.log, http.StatusInternalServerError, err)
		return
	}
	lines := strings.TrimSpace(string(body))
	s, err := h.sessions.Update(r.PathValue("id"), func(s *session.Session) error {
		return h.executeLines(s, lines)
	})
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	} else if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	sendJSONOrLog(w, h.log, s)
}

// executeLines runs each command line against the session. Callers
// hold the registry lock.
func (h *GameHandler) executeLines(s *session.Session, lines string) error {
	for i, line := range strings.Split(lines, "\n") {
		wasEnded := s.Game.Ended()
		if err := executeCommand(s.Game, strings.TrimSpace(line)); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if !wasEnded && s.Game.Won {
			h.recordWin(s)
		}
		if s.Game.Ended() {
			break
		}
	}
	return nil
}
