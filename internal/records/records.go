// Package records persists best times and player settings through the
// key-value store. Corrupt or missing persisted values always degrade
// to defaults; nothing here is fatal during play.
package records

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ajarov/minesweep/internal/mines"
	"github.com/ajarov/minesweep/internal/store"
)

const (
	keyBestTimes  = "best_times"
	keySettings   = "settings"
	keyDifficulty = "difficulty"
	keyCustom     = "custom"
)

// Settings are the persisted gameplay toggles.
type Settings struct {
	Sound     bool `json:"sound"`
	SafeFirst bool `json:"safe_first"`
	FloodFill bool `json:"flood_fill"`
}

func DefaultSettings() Settings {
	return Settings{Sound: true, SafeFirst: true, FloodFill: true}
}

// CustomBoard is the last custom board configuration the player used.
type CustomBoard struct {
	Width     int `json:"width"`
	Height    int `json:"height"`
	MineCount int `json:"mine_count"`
}

type Tracker struct {
	log   *logrus.Logger
	store *store.Store
}

func NewTracker(log *logrus.Logger, s *store.Store) *Tracker {
	return &Tracker{log: log, store: s}
}

// Improve applies the best-time update rule to times in place: store
// elapsed under key when no record exists or when it is strictly
// better. Ties do not overwrite. Reports whether times changed.
func Improve(times map[string]int, key string, elapsed int) bool {
	existing, ok := times[key]
	if ok && elapsed >= existing {
		return false
	}
	times[key] = elapsed
	return true
}

// get loads a persisted value, falling back to def on a missing key or
// an unreadable blob.
func get[T any](t *Tracker, key string, def T) T {
	var v T
	err := t.store.Get(key, &v)
	if errors.Is(err, store.ErrNotFound) {
		return def
	}
	if err != nil {
		t.log.WithError(err).Debugf("discarding corrupt %q value", key)
		return def
	}
	return v
}

// BestTimes returns the persisted configuration-key → seconds mapping.
func (t *Tracker) BestTimes() map[string]int {
	times := get(t, keyBestTimes, map[string]int(nil))
	if times == nil {
		times = make(map[string]int)
	}
	return times
}

// Best returns the best time for one configuration key.
func (t *Tracker) Best(key string) (int, bool) {
	elapsed, ok := t.BestTimes()[key]
	return elapsed, ok
}

// RecordIfBest stores elapsed under key when it improves on (or is the
// first value for) the current record.
func (t *Tracker) RecordIfBest(key string, elapsed int) (bool, error) {
	times := t.BestTimes()
	if !Improve(times, key, elapsed) {
		return false, nil
	}
	if err := t.store.Set(keyBestTimes, times); err != nil {
		return false, fmt.Errorf("unable to persist best times: %w", err)
	}
	return true, nil
}

func (t *Tracker) Settings() Settings {
	return get(t, keySettings, DefaultSettings())
}

func (t *Tracker) SaveSettings(s Settings) error {
	return t.store.Set(keySettings, s)
}

func (t *Tracker) Difficulty() string {
	return get(t, keyDifficulty, "beginner")
}

func (t *Tracker) SaveDifficulty(name string) error {
	return t.store.Set(keyDifficulty, name)
}

func (t *Tracker) Custom() CustomBoard {
	def := CustomBoard{
		Width:     mines.MinWidth,
		Height:    mines.MinHeight,
		MineCount: 1,
	}
	c := get(t, keyCustom, def)
	p := mines.GameParams{
		Width: c.Width, Height: c.Height, MineCount: c.MineCount,
	}.Clamp()
	return CustomBoard{Width: p.Width, Height: p.Height, MineCount: p.MineCount}
}

func (t *Tracker) SaveCustom(c CustomBoard) error {
	return t.store.Set(keyCustom, c)
}
