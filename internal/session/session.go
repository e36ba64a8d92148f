// Package session tracks live game sessions. One session aggregates a
// game with its identity and timestamps; the registry serializes all
// access so each move runs to completion before the next.
package session

import (
	"encoding/json"
	"time"

	"github.com/ajarov/minesweep/internal/mines"
)

type Session struct {
	ID        string
	Game      *mines.Game
	CreatedAt time.Time
}

type sessionJSON struct {
	SessionID     string         `json:"session_id"`
	Grid          mines.GridView `json:"grid"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	MineCount     int            `json:"mine_count"`
	SafeFirst     bool           `json:"safe_first"`
	FloodFill     bool           `json:"flood_fill"`
	Started       bool           `json:"started"`
	Dead          bool           `json:"dead"`
	Won           bool           `json:"won"`
	FlagsPlaced   int            `json:"flags_placed"`
	RevealedCount int            `json:"revealed_count"`
	Elapsed       int            `json:"elapsed_seconds"`
	StartedAt     *int64         `json:"started_at,omitempty"`
	EndedAt       *int64         `json:"ended_at,omitempty"`
}

func millis(t time.Time) *int64 {
	if t.IsZero() {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}

func (s *Session) MarshalJSON() ([]byte, error) {
	g := s.Game
	return json.Marshal(sessionJSON{
		SessionID:     s.ID,
		Grid:          g.View(),
		Width:         g.Params.Width,
		Height:        g.Params.Height,
		MineCount:     g.Params.MineCount,
		SafeFirst:     g.Params.SafeFirst,
		FloodFill:     g.Params.FloodFill,
		Started:       g.Started,
		Dead:          g.Dead,
		Won:           g.Won,
		FlagsPlaced:   g.FlagsPlaced,
		RevealedCount: g.RevealedCount,
		Elapsed:       g.ElapsedSeconds(),
		StartedAt:     millis(g.Clock.StartedAt),
		EndedAt:       millis(g.Clock.EndedAt),
	})
}
