package hydrology

// Rivers marks cells whose accumulated flow meets a threshold. A
// threshold below 1.0 is a fraction of the maximum accumulation in the
// grid; 1.0 and above is an absolute accumulation value.
//
// On a degenerate all-zero accumulation grid the fractional threshold
// value is zero and every cell qualifies; that is intentional, not a
// case to reject. Likewise a negative threshold marks everything.
func Rivers(acc [][]float64, threshold float64) RiverMask {
	value := threshold
	if threshold < 1.0 {
		max := 0.0
		for _, row := range acc {
			for _, v := range row {
				if v > max {
					max = v
				}
			}
		}
		value = max * threshold
	}

	mask := make(RiverMask, len(acc))
	for y, row := range acc {
		mask[y] = make([]bool, len(row))
		for x, v := range row {
			mask[y][x] = v >= value
		}
	}
	return mask
}
