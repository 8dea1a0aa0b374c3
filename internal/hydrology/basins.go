package hydrology

// unlabeled marks a cell whose basin is not yet known. It never appears
// in the returned grid.
const unlabeled = -1

// Basins partitions the grid by terminal sink: two cells share a basin
// id iff their flow chains end at the same sink. Ids start at 0 and are
// allocated in scan order of first discovery; they are stable only
// within one call.
//
// Each unlabeled cell's chain is walked while recording the path. The
// walk stops at the first already-labeled cell (adopt its id) or at a
// sink (allocate a fresh id), then the whole recorded path gets that
// id. Since a chain is only ever walked in full once, total work stays
// near-linear even with long chains.
func Basins(dirs DirectionGrid) BasinGrid {
	h := len(dirs)
	basins := make(BasinGrid, h)
	for y := range dirs {
		basins[y] = make([]int, len(dirs[y]))
		for x := range basins[y] {
			basins[y][x] = unlabeled
		}
	}

	nextID := 0
	var path []Coord

	for y := range dirs {
		for x := range dirs[y] {
			if basins[y][x] != unlabeled {
				continue
			}

			path = path[:0]
			cur := Coord{Y: y, X: x}
			var id int
			for {
				if basins[cur.Y][cur.X] != unlabeled {
					id = basins[cur.Y][cur.X]
					break
				}
				path = append(path, cur)
				d := dirs[cur.Y][cur.X]
				if d.Sink {
					id = nextID
					nextID++
					break
				}
				cur = d.To
			}
			for _, c := range path {
				basins[c.Y][c.X] = id
			}
		}
	}
	return basins
}
