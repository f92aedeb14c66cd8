// Package builder provides internal helper functions used by the chain
// constructors to assemble rows.
package builder

import "gonum.org/v1/gonum/floats"

// oneHot returns a length-n row with a single 1 at column j.
func oneHot(n, j int) []float64 {
	row := make([]float64, n)
	row[j] = 1

	return row
}

// randomRow draws one row of raw weights of length n; build normalises it.
// Column force (if ≥ 0) must end with a positive weight; otherwise a
// uniformly drawn column is always a candidate. Rows whose weights come out
// all zero are redrawn up to maxRowRedraws times, then ErrConstructFailed.
//
// Complexity: O(n) per attempt.
func (c builderConfig) randomRow(n, force int) ([]float64, error) {
	row := make([]float64, n)
	for attempt := 0; attempt < maxRowRedraws; attempt++ {
		keep := force
		if keep < 0 {
			keep = c.rng.IntN(n)
		}
		for j := range row {
			row[j] = 0
			if j == keep || c.rng.Float64() < c.density {
				row[j] = c.weightFn(c.rng)
			}
		}
		sum := floats.Sum(row)
		if sum <= 0 || (force >= 0 && row[keep] <= 0) {
			continue
		}

		return row, nil
	}

	return nil, ErrConstructFailed
}
