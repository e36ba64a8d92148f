package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ajarov/minesweep/internal/records"
)

// GetRecords returns the best-time mapping keyed by board
// configuration ("9x9_10" and friends).
func (h *GameHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, h.log, h.tracker.BestTimes())
}

func (h *GameHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	s := h.tracker.Settings()
	sendJSONOrLog(w, h.log, SettingsDTO{
		Sound:      s.Sound,
		SafeFirst:  s.SafeFirst,
		FloodFill:  s.FloodFill,
		Difficulty: h.tracker.Difficulty(),
		Custom:     h.tracker.Custom(),
	})
}

func (h *GameHandler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	if err := h.tracker.SaveSettings(records.Settings{
		Sound:     dto.Sound,
		SafeFirst: dto.SafeFirst,
		FloodFill: dto.FloodFill,
	}); err != nil {
		sendError(w, h.log, http.StatusInternalServerError, err)
		return
	}
	if dto.Difficulty != "" {
		if err := h.tracker.SaveDifficulty(dto.Difficulty); err != nil {
			sendError(w, h.log, http.StatusInternalServerError, err)
			return
		}
	}
	if dto.Custom != (records.CustomBoard{}) {
		if err := h.tracker.SaveCustom(dto.Custom); err != nil {
			sendError(w, h.log, http.StatusInternalServerError, err)
			return
		}
	}
	h.GetSettings(w, r)
}
