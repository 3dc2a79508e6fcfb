package mines

import (
	"fmt"
	"math/rand/v2"
)

// Layout is the real mine placement, stored row-major.
type Layout struct {
	Rows, Cols int
	Mines      []bool
}

// NewLayout builds a layout with mines at exactly the given cells.
func NewLayout(rows, cols int, mines ...Point) (*Layout, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf(
			"%w: cannot create a %dx%d layout", ErrInvalidConfiguration, rows, cols,
		)
	}
	l := &Layout{Rows: rows, Cols: cols, Mines: make([]bool, rows*cols)}
	for _, p := range mines {
		if !l.inBounds(p) {
			return nil, BoundsError{p, rows, cols}
		}
		l.Mines[l.index(p)] = true
	}
	return l, nil
}

// GenerateLayout places params.MineCount mines uniformly at random among the
// cells not listed in exclude. Excluded points outside the grid are ignored.
// At least one mine is required and at most every eligible cell may be
// mined; [Params.Validate] is the stricter check boards apply.
func GenerateLayout(params Params, exclude map[Point]bool, r *rand.Rand) (*Layout, error) {
	rows, cols, mineCount, _ := params.Unpack()
	if rows < 1 || cols < 1 || mineCount < 1 {
		return nil, fmt.Errorf(
			"%w: cannot place %d mines on a %dx%d grid",
			ErrInvalidConfiguration, mineCount, rows, cols,
		)
	}

	/*
	 * Write down the list of possible mine locations.
	 */
	candidates := make([]int, 0, rows*cols)
	for row := range rows {
		for col := range cols {
			if !exclude[Point{row, col}] {
				candidates = append(candidates, row*cols+col)
			}
		}
	}

	if mineCount > len(candidates) {
		return nil, fmt.Errorf(
			"%w: number of mines (%d) exceeds available cells (%d) when applying exclusions",
			ErrInvalidConfiguration, mineCount, len(candidates),
		)
	}

	/*
	 * Now pick n off the list at random.
	 */
	l := &Layout{Rows: rows, Cols: cols, Mines: make([]bool, rows*cols)}
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		l.Mines[candidates[i]] = true
		k--
		candidates[i] = candidates[k]
	}

	return l, nil
}

func (l *Layout) index(p Point) int {
	return p.Row*l.Cols + p.Col
}

func (l *Layout) point(i int) Point {
	return Point{i / l.Cols, i % l.Cols}
}

func (l *Layout) inBounds(p Point) bool {
	return 0 <= p.Row && p.Row < l.Rows && 0 <= p.Col && p.Col < l.Cols
}

func (l *Layout) Mined(p Point) bool {
	return l.inBounds(p) && l.Mines[l.index(p)]
}

func (l *Layout) Count() (n int) {
	for _, m := range l.Mines {
		if m {
			n++
		}
	}
	return
}

func (l *Layout) Points() []Point {
	var ps []Point
	for i, m := range l.Mines {
		if m {
			ps = append(ps, l.point(i))
		}
	}
	return ps
}

// MineSentinel marks a mined cell in an [Adjacency].
const MineSentinel = -1

// Adjacency holds, for every cell, [MineSentinel] if it is mined and the
// number of mined neighbours otherwise.
type Adjacency struct {
	Rows, Cols int
	Counts     []int
}

func ComputeAdjacency(l *Layout) *Adjacency {
	a := &Adjacency{Rows: l.Rows, Cols: l.Cols, Counts: make([]int, len(l.Mines))}
	for i, mined := range l.Mines {
		if mined {
			a.Counts[i] = MineSentinel
			continue
		}
		v := 0
		for n := range neighbours(l.Rows, l.Cols, l.point(i)) {
			if l.Mines[l.index(n)] {
				v++
			}
		}
		a.Counts[i] = v
	}
	return a
}

func (a *Adjacency) At(p Point) int {
	return a.Counts[p.Row*a.Cols+p.Col]
}
