package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/ajarov/minesweep/internal/session"
)

// ConnectWS upgrades the request and plays the session over a text
// protocol: each message is a batch of command lines, each reply the
// full session state as JSON.
func (h *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, err := h.sessions.Get(id); err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	c, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.WithError(err).Warn("ws read")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		lines := strings.TrimSpace(string(message))
		s, err := h.sessions.Update(id, func(s *session.Session) error {
			return h.executeLines(s, lines)
		})
		if err != nil {
			h.log.WithError(err).Debug("ws command rejected")
			if err := c.WriteJSON(map[string]string{"error": err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := c.WriteJSON(s); err != nil {
			h.log.WithError(err).Warn("ws write")
			return
		}
	}
}
