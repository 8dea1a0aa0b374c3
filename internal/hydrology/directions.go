package hydrology

// FlowDirections computes the steepest-descent routing for every cell.
// Each cell points at the in-bounds Moore neighbor with the largest
// strictly positive elevation drop; ties go to the first such neighbor
// in NW,N,NE,W,E,SW,S,SE order. A cell with no lower neighbor is a sink.
//
// Border cells simply have fewer candidates — there is no wraparound.
// Flat cells (all neighbors at equal or higher elevation) are sinks.
func FlowDirections(elev [][]float64) (DirectionGrid, error) {
	h, w, err := shape(elev)
	if err != nil {
		return nil, err
	}

	dirs := make(DirectionGrid, h)
	for y := 0; y < h; y++ {
		dirs[y] = make([]Direction, w)
		for x := 0; x < w; x++ {
			dirs[y][x] = steepestDescent(elev, y, x, h, w)
		}
	}
	return dirs, nil
}

// steepestDescent picks the downhill destination for one cell, or a
// sink when no neighbor is strictly lower.
func steepestDescent(elev [][]float64, y, x, h, w int) Direction {
	current := elev[y][x]
	bestDrop := 0.0
	dest := Direction{Sink: true}

	for _, off := range neighborOffsets {
		ny, nx := y+off[0], x+off[1]
		if ny < 0 || ny >= h || nx < 0 || nx >= w {
			continue
		}
		if drop := current - elev[ny][nx]; drop > bestDrop {
			bestDrop = drop
			dest = Direction{To: Coord{Y: ny, X: nx}}
		}
	}
	return dest
}
