package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Snapshot is a saved session. Elapsed replaces wall-clock timestamps so a
// restored game resumes with the same time on its clock.
type Snapshot struct {
	ID      string
	Board   mines.Snapshot
	Started bool
	Elapsed time.Duration
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:      s.id.String(),
		Board:   s.board.Snapshot(),
		Started: s.Started(),
		Elapsed: s.Elapsed(),
	}
}

func (s *Session) Restore(snap Snapshot) error {
	board, err := mines.RestoreBoard(snap.Board, s.rnd)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(snap.ID)
	if err != nil {
		id = uuid.New()
	}

	s.board = board
	s.id = id
	s.startedAt, s.endedAt = time.Time{}, time.Time{}
	if snap.Started {
		now := s.clock.Now()
		s.startedAt = now.Add(-snap.Elapsed)
		if board.Outcome().Over() {
			s.endedAt = now
		}
	}
	s.logger().WithField("params", board.Params().Seed()).Info("restored game")
	return nil
}
