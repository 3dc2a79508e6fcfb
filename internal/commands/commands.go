package commands

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper/internal/mines"
)

var (
	ErrQuit           = errors.New("quit")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNargs          = errors.New("invalid number of arguments")
	ErrNoStore        = errors.New("saving is disabled (start with --store)")
)

type nargs struct{ min, max int }

// Maps known commands to the number of arguments they accept
var commandNargs = map[string]nargs{
	"g":  {0, 0},
	"o":  {2, 2},
	"f":  {2, 2},
	"c":  {2, 2},
	"k":  {2, 3},
	"r":  {0, 0},
	"n":  {1, 4},
	"p":  {1, 1},
	"s":  {1, 1},
	"l":  {1, 1},
	"d":  {1, 1},
	"ls": {0, 0},
	"h":  {0, 0},
	"q":  {0, 0},
}

const usage = `commands:
  o R C           open cell at row R, column C
  f R C           toggle flag
  c R C           chord
  k X Y [BUTTON]  click at pixel (X, Y); button 1 opens, 2 chords, 3 flags
  g               show the board
  r               restart with the same difficulty
  n rows=R cols=C mines=M [safe_zone=true]
  n seed=R:C:M:S  new game
  p NAME          new game from a preset
  s NAME          save the game
  l NAME          load a saved game
  d NAME          delete a saved game
  ls              list saved games
  h               this help
  q               quit
`

// Mouse buttons accepted by the k command
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

type command struct {
	name string
	args []string
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{name: "g"}, nil
	}
	name := strings.ToLower(parts[0])
	n, ok := commandNargs[name]
	if !ok {
		return command{}, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if got := len(parts) - 1; got < n.min || got > n.max {
		return command{}, fmt.Errorf("%w for %s: %d", ErrNargs, name, got)
	}
	return command{name: name, args: parts[1:]}, nil
}

func parseInts(strs ...string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d must be an int, got %q", i+1, s)
		}
		ints[i] = v
	}
	return ints, nil
}

func parsePoint(args []string) (mines.Point, error) {
	v, err := parseInts(args...)
	if err != nil {
		return mines.Point{}, err
	}
	return mines.Point{Row: v[0], Col: v[1]}, nil
}

type newGameDTO struct {
	Rows     int    `schema:"rows"`
	Cols     int    `schema:"cols"`
	Mines    int    `schema:"mines"`
	SafeZone bool   `schema:"safe_zone"`
	Seed     string `schema:"seed"`
}

var errMissingParams = errors.New("want rows, cols and mines, or a seed")

// Params resolves the DTO into board parameters. A seed such as "9:9:10:0"
// describes the whole board and cannot be mixed with the other fields.
func (dto newGameDTO) Params() (mines.Params, error) {
	if dto.Seed != "" {
		if dto.Rows != 0 || dto.Cols != 0 || dto.Mines != 0 || dto.SafeZone {
			return mines.Params{}, errors.New("seed cannot be combined with other parameters")
		}
		p, err := mines.ParseSeed(dto.Seed)
		if err != nil {
			return mines.Params{}, err
		}
		return *p, nil
	}
	if dto.Rows == 0 || dto.Cols == 0 || dto.Mines == 0 {
		return mines.Params{}, errMissingParams
	}
	return mines.Params{
		Rows:      dto.Rows,
		Cols:      dto.Cols,
		MineCount: dto.Mines,
		SafeZone:  dto.SafeZone,
	}, nil
}

var decoder = schema.NewDecoder()

// parseNewGame decodes key=value arguments such as "rows=9 cols=9 mines=10"
// or "seed=9:9:10:0".
func parseNewGame(args []string) (mines.Params, error) {
	var dto newGameDTO
	src, err := url.ParseQuery(strings.Join(args, "&"))
	if err != nil {
		return mines.Params{}, err
	}
	if err := decoder.Decode(&dto, src); err != nil {
		return mines.Params{}, err
	}
	return dto.Params()
}
