package mines

import (
	"fmt"
	"strings"
)

type Point struct {
	Row, Col int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Params describe a board. SafeZone widens first-click safety from the
// clicked cell to its whole 3x3 neighbourhood when enough cells remain.
type Params struct {
	Rows, Cols, MineCount int
	SafeZone              bool
}

func (p Params) Unpack() (rows int, cols int, mc int, sz bool) {
	return p.Rows, p.Cols, p.MineCount, p.SafeZone
}

func (p Params) Cells() int {
	return p.Rows * p.Cols
}

func (p Params) Validate() error {
	switch {
	case p.Rows < 1:
		return fmt.Errorf("%w: cannot create a board with %d rows", ErrInvalidConfiguration, p.Rows)
	case p.Cols < 1:
		return fmt.Errorf("%w: cannot create a board with %d columns", ErrInvalidConfiguration, p.Cols)
	case p.MineCount < 1:
		return fmt.Errorf("%w: a board needs at least one mine (have %d)", ErrInvalidConfiguration, p.MineCount)
	case p.MineCount > p.Cells()-1:
		return fmt.Errorf(
			"%w: not enough space for %d mines (%d > %d * %d - 1)",
			ErrInvalidConfiguration, p.MineCount, p.MineCount, p.Rows, p.Cols,
		)
	}
	return nil
}

func (p Params) InBounds(pt Point) bool {
	return 0 <= pt.Row && pt.Row < p.Rows && 0 <= pt.Col && pt.Col < p.Cols
}

func (p Params) Seed() string {
	sz := 0
	if p.SafeZone {
		sz = 1
	}
	return fmt.Sprintf("%d:%d:%d:%d", p.Rows, p.Cols, p.MineCount, sz)
}

func ParseSeed(seed string) (*Params, error) {
	p := &Params{}
	sz := 0
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(
		sseed, "%d %d %d %d", &p.Rows, &p.Cols, &p.MineCount, &sz,
	)
	if n != 4 || err != nil {
		return nil, fmt.Errorf(
			`invalid board params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	p.SafeZone = sz == 1
	return p, nil
}
