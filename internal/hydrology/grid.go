// Package hydrology routes water over a 2-D elevation grid: per-cell
// steepest-descent flow directions, a single ordered accumulation pass,
// river extraction by accumulation threshold, and drainage basin labeling.
//
// The model is a one-shot routing approximation, not a fluid simulation:
// every cell receives one unit of rainfall and passes its entire
// accumulated flow to its single lowest neighbor. Cells with no strictly
// lower neighbor are sinks, including cells on flat plateaus.
package hydrology

// Coord identifies a grid cell by row (Y) and column (X).
type Coord struct {
	Y int
	X int
}

// Direction records where one cell routes its water. A sink keeps its
// water: Sink is true and To is meaningless. Using an explicit flag
// instead of a magic coordinate keeps negative indices out of the API.
type Direction struct {
	To   Coord
	Sink bool
}

// DirectionGrid holds one Direction per cell, same shape as the
// elevation grid it was derived from. Every non-sink entry points at a
// Moore neighbor with strictly lower elevation, so following directions
// always terminates.
type DirectionGrid [][]Direction

// RiverMask marks cells whose accumulated flow qualifies as river.
type RiverMask [][]bool

// BasinGrid assigns every cell a drainage basin id; ids are dense from
// zero and stable only within the computation that produced them.
type BasinGrid [][]int

// neighborOffsets enumerates the Moore neighborhood in fixed order:
// NW, N, NE, W, E, SW, S, SE. The order is load-bearing — ties in
// steepest descent resolve to the first neighbor reaching the maximum
// drop, so changing it changes the routing.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// shape validates that elev is non-empty and rectangular, returning its
// dimensions. No routing operation touches a grid that fails here.
func shape(elev [][]float64) (h, w int, err error) {
	if len(elev) == 0 || len(elev[0]) == 0 {
		return 0, 0, ErrEmptyGrid
	}
	h, w = len(elev), len(elev[0])
	for _, row := range elev {
		if len(row) != w {
			return 0, 0, ErrRaggedGrid
		}
	}
	return h, w, nil
}
