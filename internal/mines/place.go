package mines

import "math/rand/v2"

// PlaceMines assigns mineCount mines to g as a uniform subset of the
// eligible cells, then fills in neighbor counts. With safeFirst set the
// excluded cell and its neighbors are kept mine-free. When fewer cells
// are eligible than mines requested (tiny board, huge mine count) every
// eligible cell is mined and the rest of the request is dropped.
//
// Runs once per game, at the moment of the first reveal.
func PlaceMines(g *Grid, mineCount int, exclude *Cell, safeFirst bool, r *rand.Rand) {
	banned := make(map[int]bool)
	if safeFirst && exclude != nil {
		banned[exclude.Y*g.Width+exclude.X] = true
		for _, n := range g.Neighbors(exclude.X, exclude.Y) {
			banned[n.Y*g.Width+n.X] = true
		}
	}

	eligible := make([]int, 0, len(g.Cells))
	for i := range g.Cells {
		if !banned[i] {
			eligible = append(eligible, i)
		}
	}

	// Shuffle-and-take keeps the selection unbiased, unlike rejection
	// sampling with duplicates.
	r.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})
	if mineCount > len(eligible) {
		mineCount = len(eligible)
	}
	for _, i := range eligible[:mineCount] {
		g.Cells[i].Mine = true
	}

	for i := range g.Cells {
		c := &g.Cells[i]
		if c.Mine {
			continue
		}
		c.Count = 0
		for _, n := range g.Neighbors(c.X, c.Y) {
			if n.Mine {
				c.Count++
			}
		}
	}
}
