package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellView is the player-visible state of one cell.
type CellView int8

const (
	Hidden CellView = -2
	Flag   CellView = -1
	// 0-8: open cell with that many mined neighbors
	Mine      CellView = 64 // mine shown after a loss
	Boom      CellView = 65 // the mine the player hit
	WrongFlag CellView = 66 // flagged non-mine, shown after a loss
)

func (v CellView) String() string {
	switch {
	case v == Hidden:
		return " "
	case v == Flag:
		return "F"
	case v == Mine:
		return "*"
	case v == Boom:
		return "X"
	case v == WrongFlag:
		return "x"
	case 0 <= v && v <= 8:
		return strconv.Itoa(int(v))
	default:
		return "!"
	}
}

// GridView is the flat row-major player view of a grid, sent to the
// browser client as-is.
type GridView []CellView

func (g GridView) Render(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			fmt.Fprint(&b, g[y*width+x].String(), " ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

// View projects the grid into what the player is allowed to see.
// Player-placed flags survive a loss; on a lost game wrong flags are
// crossed out and unflagged mines exposed.
func (g *Game) View() GridView {
	view := make(GridView, len(g.Grid.Cells))
	for i := range g.Grid.Cells {
		c := &g.Grid.Cells[i]
		switch {
		case c.Flagged:
			if g.Dead && !c.Mine {
				view[i] = WrongFlag
			} else {
				view[i] = Flag
			}
		case c.Revealed && c.Mine:
			if g.boom == c {
				view[i] = Boom
			} else {
				view[i] = Mine
			}
		case c.Revealed:
			view[i] = CellView(c.Count)
		default:
			view[i] = Hidden
		}
	}
	return view
}
