package hydrology

import "sort"

// Accumulate computes total contributing area for every cell: one unit
// of rainfall per cell, routed downhill along the steepest-descent
// directions. The direction grid is returned alongside the accumulation
// because basin labeling needs it too.
//
// Cells are processed in strictly descending elevation order (stable
// sort, so equal elevations keep scan order). Every routing edge drops
// elevation, so a cell's destination is always processed after it —
// the single pass is a valid topological order of the flow graph and
// no relaxation is needed. O(H·W·log(H·W)) from the sort.
func Accumulate(elev [][]float64) ([][]float64, DirectionGrid, error) {
	dirs, err := FlowDirections(elev)
	if err != nil {
		return nil, nil, err
	}
	h, w := len(elev), len(elev[0])

	// Explicit coordinate+elevation pairs: sorting these instead of raw
	// values keeps index recovery trivial.
	type cell struct {
		at   Coord
		elev float64
	}
	order := make([]cell, 0, h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			order = append(order, cell{at: Coord{Y: y, X: x}, elev: elev[y][x]})
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return order[i].elev > order[j].elev
	})

	acc := make([][]float64, h)
	for y := range acc {
		acc[y] = make([]float64, w)
	}
	for _, c := range order {
		acc[c.at.Y][c.at.X] += 1.0 // rainfall at this cell
		d := dirs[c.at.Y][c.at.X]
		if !d.Sink {
			acc[d.To.Y][d.To.X] += acc[c.at.Y][c.at.X]
		}
	}
	return acc, dirs, nil
}
