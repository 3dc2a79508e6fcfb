package mines

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand/v2"
)

// Snapshot is the serializable state of a [Board].
type Snapshot struct {
	Params
	Mines      []bool
	Revealed   []bool
	Flagged    []bool
	Outcome    Outcome
	Remaining  int
	FirstClick bool
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Params:     b.params,
		Mines:      Duplicate(b.layout.Mines),
		Revealed:   Duplicate(b.revealed),
		Flagged:    Duplicate(b.flagged),
		Outcome:    b.outcome,
		Remaining:  b.remaining,
		FirstClick: b.firstClick,
	}
}

// check reports the first way s disagrees with itself. A snapshot that
// passes describes a board every operation can continue from.
func (s Snapshot) check() error {
	if err := s.Params.Validate(); err != nil {
		return err
	}
	n := s.Params.Cells()
	if len(s.Mines) != n || len(s.Revealed) != n || len(s.Flagged) != n {
		return fmt.Errorf("%w: snapshot grids do not match %s",
			ErrInvalidConfiguration, s.Params.Seed())
	}

	var mines, safe, exposed int
	for i := range n {
		if s.Revealed[i] && s.Flagged[i] {
			return fmt.Errorf("%w: cell %d is both revealed and flagged",
				ErrInvalidConfiguration, i)
		}
		switch {
		case s.Mines[i] && s.Revealed[i]:
			mines++
			exposed++
		case s.Mines[i]:
			mines++
		case s.Revealed[i]:
			safe++
		}
	}
	if mines != s.MineCount {
		return fmt.Errorf("%w: snapshot holds %d mines, params say %d",
			ErrInvalidConfiguration, mines, s.MineCount)
	}
	if want := n - s.MineCount - safe; s.Remaining != want {
		return fmt.Errorf("%w: %d safe cells remain, snapshot says %d",
			ErrInvalidConfiguration, want, s.Remaining)
	}
	if s.FirstClick && safe+exposed > 0 {
		return fmt.Errorf("%w: first click pending on a board with revealed cells",
			ErrInvalidConfiguration)
	}

	switch s.Outcome {
	case Running:
		if exposed > 0 || s.Remaining == 0 {
			return fmt.Errorf("%w: running game with %d exposed mines and %d safe cells left",
				ErrInvalidConfiguration, exposed, s.Remaining)
		}
	case Won:
		if s.Remaining != 0 {
			return fmt.Errorf("%w: won game with %d safe cells left",
				ErrInvalidConfiguration, s.Remaining)
		}
	case Lost:
		if exposed == 0 {
			return fmt.Errorf("%w: lost game without an exposed mine",
				ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: unknown outcome %d", ErrInvalidConfiguration, s.Outcome)
	}
	return nil
}

// RestoreBoard rebuilds a board from s after checking that its grids, counter
// and outcome agree. r is used for later resets and may be nil, in which
// case resets replay the saved layout.
func RestoreBoard(s Snapshot, r *rand.Rand) (*Board, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	l := &Layout{Rows: s.Rows, Cols: s.Cols, Mines: Duplicate(s.Mines)}
	b := &Board{
		params:     s.Params,
		revealed:   Duplicate(s.Revealed),
		flagged:    Duplicate(s.Flagged),
		outcome:    s.Outcome,
		remaining:  s.Remaining,
		firstClick: s.FirstClick,
		rnd:        r,
	}
	b.setLayout(l)
	return b, nil
}

func DecodeSnapshot(buf []byte) (*Snapshot, error) {
	var s Snapshot
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s Snapshot) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(s)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Duplicate[T any](src []T) []T {
	var dst = make([]T, len(src))
	copy(dst, src)
	return dst
}
