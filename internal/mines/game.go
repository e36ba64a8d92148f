package mines

import "math/rand/v2"

// Game is a single minesweeper session: one grid, one clock, one
// terminal state. Mines are placed lazily on the first reveal so the
// safe-first-click guarantee can exclude the clicked cell.
type Game struct {
	Params        GameParams
	Grid          *Grid
	Started       bool // mines placed
	Dead          bool
	Won           bool
	FlagsPlaced   int
	RevealedCount int
	Clock         Clock

	boom *Cell // the mine that ended the game, nil otherwise
	rnd  *rand.Rand
}

// NewGame prepares an empty grid for params. No mines exist until the
// first reveal.
func NewGame(params GameParams, r *rand.Rand) *Game {
	return &Game{
		Params: params,
		Grid:   NewGrid(params.Width, params.Height),
		rnd:    r,
	}
}

// Ended reports whether the session reached a terminal state.
func (g *Game) Ended() bool {
	return g.Dead || g.Won
}

// Reset replaces the grid wholesale and rewinds the session to its
// pre-first-click state, keeping the same params.
func (g *Game) Reset() {
	g.Grid = NewGrid(g.Params.Width, g.Params.Height)
	g.Started = false
	g.Dead = false
	g.Won = false
	g.FlagsPlaced = 0
	g.RevealedCount = 0
	g.Clock = Clock{Now: g.Clock.Now}
	g.boom = nil
}

// RevealResult describes the outcome of a single reveal action.
type RevealResult struct {
	HitMine bool
	Newly   []*Cell
}

// Reveal opens the cell at (x, y). On the first reveal of a session it
// places the mines and starts the clock first. Opening a mine ends the
// game in a loss; opening a zero-count cell flood-fills its region when
// the flood-fill toggle is on. Flagged cells, already-open cells and
// ended sessions are no-ops.
func (g *Game) Reveal(x, y int) RevealResult {
	var res RevealResult
	if g.Ended() || !g.Grid.InBounds(x, y) {
		return res
	}
	cell := g.Grid.At(x, y)
	if cell.Revealed || cell.Flagged {
		return res
	}

	if !g.Started {
		PlaceMines(g.Grid, g.Params.MineCount, cell, g.Params.SafeFirst, g.rnd)
		g.Started = true
		g.Clock.Start()
	}

	cell.Revealed = true
	if cell.Mine {
		g.boom = cell
		g.lose()
		res.HitMine = true
		res.Newly = []*Cell{cell}
		return res
	}

	g.RevealedCount++
	res.Newly = append(res.Newly, cell)

	if cell.Count == 0 && g.Params.FloodFill {
		res.Newly = append(res.Newly, g.flood(cell)...)
	}

	g.checkWin()
	return res
}

// flood expands a zero-count region breadth-first. Mines and flagged
// cells are never auto-revealed, and the seen set keeps each cell from
// being visited twice.
func (g *Game) flood(from *Cell) []*Cell {
	var opened []*Cell
	seen := map[*Cell]bool{from: true}
	queue := []*Cell{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range g.Grid.Neighbors(cur.X, cur.Y) {
			if seen[n] || n.Revealed || n.Flagged || n.Mine {
				continue
			}
			seen[n] = true
			n.Revealed = true
			g.RevealedCount++
			opened = append(opened, n)
			if n.Count == 0 {
				queue = append(queue, n)
			}
		}
	}
	return opened
}

// ToggleFlag flips the flag on an unrevealed cell. Unflagging is always
// allowed; flagging is capped at the mine count.
func (g *Game) ToggleFlag(x, y int) {
	if g.Ended() || !g.Grid.InBounds(x, y) {
		return
	}
	cell := g.Grid.At(x, y)
	if cell.Revealed {
		return
	}
	if cell.Flagged {
		cell.Flagged = false
		g.FlagsPlaced--
		return
	}
	if g.FlagsPlaced >= g.Params.MineCount {
		return
	}
	cell.Flagged = true
	g.FlagsPlaced++
}

// Chord opens every unflagged neighbor of a revealed numbered cell,
// provided exactly Count of its neighbors are flagged. Any of those
// reveals may hit a mine, which short-circuits the rest. Returns true
// when the flag count matched and reveals were attempted; false is the
// signal-only case (e.g. an audible cue in the client).
func (g *Game) Chord(x, y int) bool {
	if g.Ended() || !g.Grid.InBounds(x, y) {
		return false
	}
	cell := g.Grid.At(x, y)
	if !cell.Revealed || cell.Mine {
		return false
	}
	flagged := 0
	var targets []*Cell
	for _, n := range g.Grid.Neighbors(x, y) {
		if n.Flagged {
			flagged++
		} else if !n.Revealed {
			targets = append(targets, n)
		}
	}
	if flagged != cell.Count {
		return false
	}
	for _, n := range targets {
		g.Reveal(n.X, n.Y)
		if g.Ended() {
			break
		}
	}
	return true
}

// lose ends the session and reveals every mine for display. Mines
// opened this way do not count toward RevealedCount, keeping win and
// loss mutually exclusive.
func (g *Game) lose() {
	g.Dead = true
	g.Clock.Stop()
	for i := range g.Grid.Cells {
		c := &g.Grid.Cells[i]
		if c.Mine && !c.Flagged {
			c.Revealed = true
		}
	}
}

func (g *Game) checkWin() {
	if g.Ended() {
		return
	}
	if g.RevealedCount >= g.Params.NonMineCount() {
		g.Won = true
		g.Clock.Stop()
	}
}

// ElapsedSeconds reports the session play time in whole seconds.
func (g *Game) ElapsedSeconds() int {
	return g.Clock.ElapsedSeconds()
}
