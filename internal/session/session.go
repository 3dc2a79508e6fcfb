package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

var SystemClock Clock = systemClock{}

// Result is what a reveal or chord did to the game.
type Result struct {
	HitMine bool
	Opened  int
	Outcome mines.Outcome
	// Exposed lists the mines shown after a loss.
	Exposed []mines.Point
}

// Session wires player actions to a single board and keeps the game clock.
// It is owned by one event loop and is not safe for concurrent use.
type Session struct {
	id    uuid.UUID
	log   *logrus.Logger
	clock Clock
	rnd   *rand.Rand
	board *mines.Board

	startedAt time.Time
	endedAt   time.Time
}

func New(params mines.Params, log *logrus.Logger, clock Clock, rnd *rand.Rand) (*Session, error) {
	board, err := mines.NewBoard(params, rnd)
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:    uuid.New(),
		log:   log,
		clock: clock,
		rnd:   rnd,
		board: board,
	}
	s.logger().WithField("params", params.Seed()).Info("new game")
	return s, nil
}

func (s *Session) logger() *logrus.Entry {
	return s.log.WithField("session", s.id.String())
}

func (s *Session) ID() string { return s.id.String() }

func (s *Session) Board() *mines.Board { return s.board }

func (s *Session) Outcome() mines.Outcome { return s.board.Outcome() }

func (s *Session) Started() bool { return !s.startedAt.IsZero() }

// Elapsed is zero until the first move and frozen once the game ends.
func (s *Session) Elapsed() time.Duration {
	switch {
	case s.startedAt.IsZero():
		return 0
	case !s.endedAt.IsZero():
		return s.endedAt.Sub(s.startedAt)
	default:
		return max(0, s.clock.Now().Sub(s.startedAt))
	}
}

func (s *Session) start() {
	if s.startedAt.IsZero() {
		s.startedAt = s.clock.Now()
	}
}

// finish records the end of the game and exposes all mines after a loss.
func (s *Session) finish(res *Result) {
	res.Outcome = s.board.Outcome()
	switch res.Outcome {
	case mines.Running:
		return
	case mines.Lost:
		res.Exposed = s.board.RevealAllMines()
	case mines.Won:
	}
	if s.endedAt.IsZero() {
		s.start()
		s.endedAt = s.clock.Now()
	}
	s.logger().WithFields(logrus.Fields{
		"outcome": res.Outcome.String(),
		"elapsed": s.Elapsed().String(),
	}).Info("game over")
}

func (s *Session) Open(p mines.Point) (Result, error) {
	c, err := s.board.Cell(p)
	if err != nil {
		return Result{}, err
	}
	if !c.Revealed && !s.board.Outcome().Over() {
		s.start()
	}

	hit, opened, err := s.board.Reveal(p)
	if err != nil {
		return Result{}, err
	}
	s.logger().WithFields(logrus.Fields{
		"cell":    p.String(),
		"hit":     hit,
		"opened":  opened,
		"remains": s.board.Remaining(),
	}).Debug("open")

	res := Result{HitMine: hit, Opened: opened}
	s.finish(&res)
	return res, nil
}

func (s *Session) Chord(p mines.Point) (Result, error) {
	hit, opened, err := s.board.ChordReveal(p)
	if err != nil {
		return Result{}, err
	}
	if opened > 0 {
		s.start()
	}
	s.logger().WithFields(logrus.Fields{
		"cell":    p.String(),
		"hit":     hit,
		"opened":  opened,
		"remains": s.board.Remaining(),
	}).Debug("chord")

	res := Result{HitMine: hit, Opened: opened}
	s.finish(&res)
	return res, nil
}

func (s *Session) Flag(p mines.Point) (bool, error) {
	flagged, err := s.board.ToggleFlag(p)
	if err != nil {
		return false, err
	}
	s.logger().WithFields(logrus.Fields{
		"cell":    p.String(),
		"flagged": flagged,
	}).Debug("flag")
	return flagged, nil
}

// Reset starts a new game with the same parameters.
func (s *Session) Reset() error {
	return s.Configure(s.board.Params())
}

// Configure starts a new game with different parameters. The current game
// is kept if params are invalid.
func (s *Session) Configure(params mines.Params) error {
	board, err := mines.NewBoard(params, s.rnd)
	if err != nil {
		return fmt.Errorf("unable to start a new game: %w", err)
	}
	s.board = board
	s.id = uuid.New()
	s.startedAt, s.endedAt = time.Time{}, time.Time{}
	s.logger().WithField("params", params.Seed()).Info("new game")
	return nil
}
