package mines

import (
	"fmt"
	"math/rand/v2"
)

// Board is the single-player game engine. It is not safe for concurrent use;
// callers serialize access to one board.
type Board struct {
	params     Params
	layout     *Layout
	adjacency  *Adjacency
	revealed   []bool
	flagged    []bool
	outcome    Outcome
	remaining  int
	firstClick bool
	rnd        *rand.Rand
}

// NewBoard creates a board with a provisional layout. The layout is
// regenerated on the first reveal so that the clicked cell is never mined.
// r is required; use [NewBoardFromLayout] for a board without randomness.
func NewBoard(params Params, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: no source of randomness for %s",
			ErrInvalidConfiguration, params.Seed())
	}
	b := &Board{params: params, rnd: r}
	if err := b.Reset(); err != nil {
		return nil, err
	}
	return b, nil
}

// NewBoardFromLayout creates a board over a fixed layout. First-click
// regeneration is disabled.
func NewBoardFromLayout(l *Layout) (*Board, error) {
	params := Params{Rows: l.Rows, Cols: l.Cols, MineCount: l.Count()}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	b := &Board{params: params}
	b.clear()
	b.setLayout(l)
	return b, nil
}

// Reset regenerates the layout and clears all player state. A board built
// from a fixed layout keeps its layout.
func (b *Board) Reset() error {
	if b.rnd == nil {
		b.clear()
		return nil
	}
	l, err := GenerateLayout(b.params, nil, b.rnd)
	if err != nil {
		return err
	}
	b.clear()
	b.setLayout(l)
	b.firstClick = true
	return nil
}

func (b *Board) clear() {
	n := b.params.Cells()
	b.revealed = make([]bool, n)
	b.flagged = make([]bool, n)
	b.outcome = Running
	b.remaining = n - b.params.MineCount
	b.firstClick = false
}

func (b *Board) setLayout(l *Layout) {
	b.layout = l
	b.adjacency = ComputeAdjacency(l)
}

func (b *Board) Params() Params { return b.params }

func (b *Board) Outcome() Outcome { return b.outcome }

// Remaining is the number of safe cells still hidden.
func (b *Board) Remaining() int { return b.remaining }

func (b *Board) FirstClick() bool { return b.firstClick }

func (b *Board) Layout() *Layout { return b.layout }

func (b *Board) Adjacency() *Adjacency { return b.adjacency }

func (b *Board) index(p Point) int {
	return p.Row*b.params.Cols + p.Col
}

func (b *Board) check(p Point) error {
	if !b.params.InBounds(p) {
		return BoundsError{p, b.params.Rows, b.params.Cols}
	}
	if b.outcome.Over() {
		return ErrGameAlreadyOver
	}
	return nil
}

// Reveal opens the cell at p, flood-filling through cells with no mined
// neighbours. Revealing an already revealed or flagged cell is a no-op.
func (b *Board) Reveal(p Point) (hitMine bool, opened int, err error) {
	if err := b.check(p); err != nil {
		return false, 0, err
	}
	i := b.index(p)
	if b.revealed[i] || b.flagged[i] {
		return false, 0, nil
	}

	if b.firstClick {
		if err := b.relayout(p); err != nil {
			return false, 0, err
		}
	}

	hitMine, opened = b.floodFill(p)
	b.settle(hitMine, opened-iif(hitMine, 1, 0))
	return hitMine, opened, nil
}

// relayout regenerates the mines so that p (and its neighbourhood, when the
// board asks for a safe zone and there is room) stays clear.
func (b *Board) relayout(p Point) error {
	b.firstClick = false

	exclude := map[Point]bool{p: true}
	if b.params.SafeZone {
		zone := make(map[Point]bool, 9)
		for row := range b.params.Rows {
			for col := range b.params.Cols {
				if absDiff(p.Row, row) <= 1 && absDiff(p.Col, col) <= 1 {
					zone[Point{row, col}] = true
				}
			}
		}
		if b.params.Cells()-len(zone) >= b.params.MineCount {
			exclude = zone
		}
	}

	l, err := GenerateLayout(b.params, exclude, b.rnd)
	if err != nil {
		return err
	}
	b.setLayout(l)
	return nil
}

// floodFill reveals from seed using an explicit stack. Mines are never
// pushed, so the only mine it can expose is the seed itself.
func (b *Board) floodFill(seed Point) (hitMine bool, opened int) {
	rows, cols := b.params.Rows, b.params.Cols
	stack := []Point{seed}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		i := b.index(p)
		if b.revealed[i] || b.flagged[i] {
			continue
		}
		b.revealed[i] = true
		opened++

		if b.layout.Mines[i] {
			return true, opened
		}

		if b.adjacency.Counts[i] != 0 {
			continue
		}
		for n := range neighbours(rows, cols, p) {
			j := b.index(n)
			if !b.revealed[j] && !b.flagged[j] && !b.layout.Mines[j] {
				stack = append(stack, n)
			}
		}
	}
	return false, opened
}

// settle applies the result of a reveal: safe is the number of newly
// revealed cells that are not mines.
func (b *Board) settle(hitMine bool, safe int) {
	b.remaining -= safe
	switch {
	case hitMine:
		b.outcome = Lost
	case b.remaining == 0:
		b.outcome = Won
	}
}

// ChordReveal opens every unflagged, unrevealed neighbour of a revealed
// numbered cell once the number of flagged neighbours matches its count.
// Processing stops at the first mine.
func (b *Board) ChordReveal(p Point) (hitMine bool, opened int, err error) {
	if err := b.check(p); err != nil {
		return false, 0, err
	}
	i := b.index(p)
	if !b.revealed[i] {
		return false, 0, nil
	}
	number := b.adjacency.Counts[i]
	if number <= 0 {
		return false, 0, nil
	}

	rows, cols := b.params.Rows, b.params.Cols
	flags := 0
	targets := make([]Point, 0, 8)
	for n := range neighbours(rows, cols, p) {
		j := b.index(n)
		if b.flagged[j] {
			flags++
		} else if !b.revealed[j] {
			targets = append(targets, n)
		}
	}
	if flags != number {
		return false, 0, nil
	}

	safe := 0
	for _, n := range targets {
		// An earlier neighbour's flood fill may already have opened n.
		if b.revealed[b.index(n)] {
			continue
		}
		hit, k := b.floodFill(n)
		opened += k
		if hit {
			safe += k - 1
			hitMine = true
			break
		}
		safe += k
	}
	b.settle(hitMine, safe)
	return hitMine, opened, nil
}

// ToggleFlag flips the flag on an unrevealed cell and returns the new state.
// Revealed cells are left alone.
func (b *Board) ToggleFlag(p Point) (bool, error) {
	if err := b.check(p); err != nil {
		return false, err
	}
	i := b.index(p)
	if b.revealed[i] {
		return false, nil
	}
	b.flagged[i] = !b.flagged[i]
	return b.flagged[i], nil
}

// RevealAllMines exposes every unflagged mine once the game is over and
// returns the cells that were newly exposed. Flagged mines keep their flag.
func (b *Board) RevealAllMines() []Point {
	if !b.outcome.Over() {
		return nil
	}
	var exposed []Point
	for i, mined := range b.layout.Mines {
		if mined && !b.revealed[i] && !b.flagged[i] {
			b.revealed[i] = true
			exposed = append(exposed, b.layout.point(i))
		}
	}
	return exposed
}

type Cell struct {
	Revealed, Flagged, Mine bool
	Count                   int
}

func (b *Board) Cell(p Point) (Cell, error) {
	if !b.params.InBounds(p) {
		return Cell{}, BoundsError{p, b.params.Rows, b.params.Cols}
	}
	i := b.index(p)
	return Cell{
		Revealed: b.revealed[i],
		Flagged:  b.flagged[i],
		Mine:     b.layout.Mines[i],
		Count:    b.adjacency.Counts[i],
	}, nil
}

func (b *Board) Flags() (n int) {
	for _, f := range b.flagged {
		if f {
			n++
		}
	}
	return
}

// RevealedSafe counts revealed cells that are not mines.
func (b *Board) RevealedSafe() (n int) {
	for i, r := range b.revealed {
		if r && !b.layout.Mines[i] {
			n++
		}
	}
	return
}
