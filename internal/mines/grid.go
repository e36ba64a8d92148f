package mines

// Cell is a single square of the minefield. Cells are owned by their
// Grid and mutated in place during play.
type Cell struct {
	X, Y     int
	Mine     bool
	Revealed bool
	Flagged  bool
	Count    int // number of mined neighbors; meaningless when Mine is set
}

// Grid is a rectangular minefield stored row-major.
type Grid struct {
	Width  int
	Height int
	Cells  []Cell
}

// NewGrid allocates a grid of unrevealed, unflagged, mine-free cells.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for i := range g.Cells {
		g.Cells[i].X = i % width
		g.Cells[i].Y = i / width
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return 0 <= x && x < g.Width && 0 <= y && y < g.Height
}

func (g *Grid) At(x, y int) *Cell {
	return &g.Cells[y*g.Width+x]
}

// Neighbors returns the up to 8 cells adjacent to (x, y), row-major
// over dy then dx. The order is fixed so that traversals (and tests)
// are reproducible.
func (g *Grid) Neighbors(x, y int) []*Cell {
	ns := make([]*Cell, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.InBounds(x+dx, y+dy) {
				ns = append(ns, g.At(x+dx, y+dy))
			}
		}
	}
	return ns
}
