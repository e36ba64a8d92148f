package mines

import "fmt"

// Board dimension bounds for custom games.
const (
	MinWidth  = 4
	MaxWidth  = 60
	MinHeight = 4
	MaxHeight = 40
)

type GameParams struct {
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	MineCount int  `json:"mine_count"`
	SafeFirst bool `json:"safe_first"`
	FloodFill bool `json:"flood_fill"`
}

// Difficulty presets. Safe first click and flood fill default to on;
// callers flip them from saved settings.
func Beginner() GameParams {
	return GameParams{Width: 9, Height: 9, MineCount: 10, SafeFirst: true, FloodFill: true}
}

func Intermediate() GameParams {
	return GameParams{Width: 16, Height: 16, MineCount: 40, SafeFirst: true, FloodFill: true}
}

func Expert() GameParams {
	return GameParams{Width: 30, Height: 16, MineCount: 99, SafeFirst: true, FloodFill: true}
}

// Preset maps a difficulty name to its params.
func Preset(name string) (GameParams, bool) {
	switch name {
	case "beginner":
		return Beginner(), true
	case "intermediate":
		return Intermediate(), true
	case "expert":
		return Expert(), true
	}
	return GameParams{}, false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp silently coerces out-of-range custom dimensions into valid
// bounds. Mine count is kept below the cell count so at least one safe
// cell always exists.
func (p GameParams) Clamp() GameParams {
	p.Width = clamp(p.Width, MinWidth, MaxWidth)
	p.Height = clamp(p.Height, MinHeight, MaxHeight)
	p.MineCount = clamp(p.MineCount, 1, p.Width*p.Height-1)
	return p
}

func (p GameParams) Valid() bool {
	return MinWidth <= p.Width && p.Width <= MaxWidth &&
		MinHeight <= p.Height && p.Height <= MaxHeight &&
		1 <= p.MineCount && p.MineCount < p.Width*p.Height
}

func (p GameParams) CellCount() int {
	return p.Width * p.Height
}

// NonMineCount is the number of cells that must be revealed to win.
func (p GameParams) NonMineCount() int {
	return p.Width*p.Height - p.MineCount
}

func (p GameParams) InBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// Key identifies a board configuration for best-time records.
func (p GameParams) Key() string {
	return fmt.Sprintf("%dx%d_%d", p.Width, p.Height, p.MineCount)
}
