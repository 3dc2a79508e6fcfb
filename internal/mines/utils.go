package mines

import "iter"

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

func iif[T any](condition bool, valueIfTrue, valueIfFalse T) T {
	if condition {
		return valueIfTrue
	} else {
		return valueIfFalse
	}
}

// neighbours yields the up to 8 cells around p, clipped at the grid edge.
func neighbours(rows, cols int, p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := p.Row+dr, p.Col+dc
				if r < 0 || r >= rows || c < 0 || c >= cols {
					continue
				}
				if !yield(Point{r, c}) {
					return
				}
			}
		}
	}
}
