// Package commands drives a game session from a line based text protocol.
package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/geometry"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
	"github.com/vancomm/minesweeper/internal/store"
)

// Console executes commands against one session. Like the session it is
// not safe for concurrent use; [Console.Run] serializes input itself.
type Console struct {
	cfg     config.Config
	session *session.Session
	saves   *store.Saves
	log     *logrus.Logger
}

// New creates a console. saves may be nil, in which case the save commands
// fail with [ErrNoStore].
func New(cfg config.Config, s *session.Session, saves *store.Saves, log *logrus.Logger) *Console {
	return &Console{cfg: cfg, session: s, saves: saves, log: log}
}

func (c *Console) geometry() geometry.Geometry {
	p := c.session.Board().Params()
	return geometry.Geometry{Rows: p.Rows, Cols: p.Cols, TileSize: c.cfg.TileSize}
}

// Status is the one-line summary printed above the board.
func (c *Console) Status() string {
	b := c.session.Board()
	p := b.Params()
	return fmt.Sprintf("%s | mines %d | flags %d | remaining %d | time %ds",
		b.Outcome(), p.MineCount, b.Flags(), b.Remaining(),
		int(c.session.Elapsed().Seconds()))
}

func (c *Console) view(extra ...string) string {
	var sb strings.Builder
	for _, line := range extra {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(c.Status())
	sb.WriteByte('\n')
	sb.WriteString(c.session.Board().String())
	return sb.String()
}

func describe(res session.Result) string {
	switch res.Outcome {
	case mines.Lost:
		return "boom! you hit a mine"
	case mines.Won:
		return "you won!"
	case mines.Running:
	}
	if res.Opened == 0 {
		return "nothing to open"
	}
	return fmt.Sprintf("opened %d", res.Opened)
}

// Execute runs one command line and returns the text to show the player.
// Quitting yields [ErrQuit].
func (c *Console) Execute(line string) (string, error) {
	cmd, err := parseCommand(line)
	if err != nil {
		return "", err
	}
	c.log.WithFields(logrus.Fields{
		"command": cmd.name,
		"args":    cmd.args,
	}).Debug("execute")

	switch cmd.name {
	case "g":
		return c.view(), nil
	case "h":
		return usage, nil
	case "q":
		return "", ErrQuit
	case "o", "f", "c":
		p, err := parsePoint(cmd.args)
		if err != nil {
			return "", err
		}
		return c.act(cmd.name, p)
	case "k":
		return c.click(cmd.args)
	case "r":
		if err := c.session.Reset(); err != nil {
			return "", err
		}
		return c.view("new game"), nil
	case "n":
		params, err := parseNewGame(cmd.args)
		if err != nil {
			return "", fmt.Errorf("bad game parameters: %w", err)
		}
		return c.configure(c.cfg.WithParams(params))
	case "p":
		preset, err := config.LookupPreset(cmd.args[0])
		if err != nil {
			return "", err
		}
		return c.configure(preset.Apply(c.cfg))
	case "s":
		return c.save(cmd.args[0])
	case "l":
		return c.load(cmd.args[0])
	case "d":
		return c.remove(cmd.args[0])
	case "ls":
		return c.list()
	}
	return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.name)
}

func (c *Console) act(name string, p mines.Point) (string, error) {
	switch name {
	case "f":
		flagged, err := c.session.Flag(p)
		if err != nil {
			return "", err
		}
		msg := "unflagged " + p.String()
		if flagged {
			msg = "flagged " + p.String()
		}
		return c.view(msg), nil
	case "c":
		res, err := c.session.Chord(p)
		if err != nil {
			return "", err
		}
		return c.view(describe(res)), nil
	default:
		res, err := c.session.Open(p)
		if err != nil {
			return "", err
		}
		return c.view(describe(res)), nil
	}
}

func (c *Console) click(args []string) (string, error) {
	v, err := parseInts(args...)
	if err != nil {
		return "", err
	}
	button := ButtonLeft
	if len(v) == 3 {
		button = v[2]
	}
	p, ok := c.geometry().CellAt(v[0], v[1])
	if !ok {
		return c.view("click outside the grid"), nil
	}
	switch button {
	case ButtonLeft:
		return c.act("o", p)
	case ButtonMiddle:
		return c.act("c", p)
	case ButtonRight:
		return c.act("f", p)
	}
	return "", fmt.Errorf("unknown button %d", button)
}

func (c *Console) configure(cfg config.Config) (string, error) {
	if err := c.session.Configure(cfg.Params()); err != nil {
		return "", err
	}
	c.cfg = cfg
	return c.view(fmt.Sprintf("new game %dx%d with %d mines", cfg.Rows, cfg.Cols, cfg.Mines)), nil
}

func (c *Console) save(slot string) (string, error) {
	if c.saves == nil {
		return "", ErrNoStore
	}
	if err := c.saves.Put(slot, c.session.Snapshot()); err != nil {
		return "", err
	}
	c.log.WithField("slot", slot).Info("saved game")
	return "saved to " + slot + "\n", nil
}

func (c *Console) load(slot string) (string, error) {
	if c.saves == nil {
		return "", ErrNoStore
	}
	snap, err := c.saves.Get(slot)
	if err != nil {
		return "", fmt.Errorf("unable to load %s: %w", slot, err)
	}
	if err := c.session.Restore(snap); err != nil {
		return "", fmt.Errorf("unable to load %s: %w", slot, err)
	}
	c.cfg = c.cfg.WithParams(snap.Board.Params)
	return c.view("loaded " + slot), nil
}

func (c *Console) remove(slot string) (string, error) {
	if c.saves == nil {
		return "", ErrNoStore
	}
	if _, err := c.saves.Get(slot); err != nil {
		return "", fmt.Errorf("unable to delete %s: %w", slot, err)
	}
	if err := c.saves.Delete(slot); err != nil {
		return "", err
	}
	c.log.WithField("slot", slot).Info("deleted save")
	return "deleted " + slot + "\n", nil
}

func (c *Console) list() (string, error) {
	if c.saves == nil {
		return "", ErrNoStore
	}
	slots, err := c.saves.Slots()
	if err != nil {
		return "", err
	}
	if len(slots) == 0 {
		return "no saved games\n", nil
	}
	return strings.Join(slots, "\n") + "\n", nil
}

// Run reads commands from in until it is exhausted, the player quits or ctx
// is done. Command errors are reported to out and do not stop the loop.
// Quitting returns [ErrQuit].
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprint(out, c.view(), "> ")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			text, err := c.Execute(line)
			if errors.Is(err, ErrQuit) {
				fmt.Fprintln(out, "bye")
				return err
			} else if err != nil {
				c.log.WithError(err).Debug("command failed")
				fmt.Fprintf(out, "error: %v\n", err)
			} else {
				fmt.Fprint(out, text)
			}
			fmt.Fprint(out, "> ")
		}
	}
}
