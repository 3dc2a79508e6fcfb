package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	MinRows     = 6
	MaxRows     = 16
	MinCols     = 6
	MaxCols     = 20
	MinTileSize = 16
	MaxTileSize = 96

	DefaultRows     = 8
	DefaultCols     = 6
	DefaultMines    = 7
	DefaultTileSize = 48
)

// Config is passed by value into everything that needs it and never
// modified after [Load].
type Config struct {
	Rows      int    `yaml:"rows"`
	Cols      int    `yaml:"cols"`
	Mines     int    `yaml:"mines"`
	TileSize  int    `yaml:"tile_size"`
	SafeZone  bool   `yaml:"safe_zone"`
	Debug     bool   `yaml:"debug"`
	LogDir    string `yaml:"log_dir"`
	StorePath string `yaml:"store"`
}

func Default() Config {
	return Config{
		Rows:     DefaultRows,
		Cols:     DefaultCols,
		Mines:    DefaultMines,
		TileSize: DefaultTileSize,
		LogDir:   ".",
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// Clamp returns a copy of c with the grid and tile size pulled into the
// supported bounds. Mines are clamped last since their bound depends on the
// grid.
func (c Config) Clamp() Config {
	c.Rows = clamp(c.Rows, MinRows, MaxRows)
	c.Cols = clamp(c.Cols, MinCols, MaxCols)
	c.TileSize = clamp(c.TileSize, MinTileSize, MaxTileSize)
	c.Mines = clamp(c.Mines, 1, c.Rows*c.Cols-1)
	return c
}

func (c Config) Params() mines.Params {
	return mines.Params{
		Rows:      c.Rows,
		Cols:      c.Cols,
		MineCount: c.Mines,
		SafeZone:  c.SafeZone,
	}
}

// WithParams applies a new difficulty, clamped.
func (c Config) WithParams(p mines.Params) Config {
	c.Rows, c.Cols, c.Mines, c.SafeZone = p.Unpack()
	return c.Clamp()
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"rows":      c.Rows,
		"cols":      c.Cols,
		"mines":     c.Mines,
		"tile_size": c.TileSize,
		"safe_zone": c.SafeZone,
		"debug":     c.Debug,
		"log_dir":   c.LogDir,
		"store":     c.StorePath,
	}
}

func ReadFile(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return yaml.Unmarshal(b, config)
	}
}

// Load builds a configuration from defaults, an optional YAML file
// (--config), command line flags and the DEVELOPMENT env variable, in that
// order of precedence from lowest to highest.
func Load(args []string) (Config, error) {
	cfg := Default()

	var (
		flagCfg    Config
		configPath string
		preset     string
		fs         = pflag.NewFlagSet("minesweeper", pflag.ContinueOnError)
	)
	fs.StringVarP(&configPath, "config", "c", "", "config file path")
	fs.IntVarP(&flagCfg.Rows, "rows", "r", DefaultRows, "number of rows")
	fs.IntVarP(&flagCfg.Cols, "cols", "C", DefaultCols, "number of columns")
	fs.IntVarP(&flagCfg.Mines, "mines", "m", DefaultMines, "number of mines")
	fs.IntVar(&flagCfg.TileSize, "tile-size", DefaultTileSize, "tile size in pixels")
	fs.StringVarP(&preset, "preset", "p", "", "difficulty preset (beginner, intermediate, expert)")
	fs.BoolVar(&flagCfg.SafeZone, "safe-zone", false, "keep the 3x3 block around the first click clear")
	fs.BoolVarP(&flagCfg.Debug, "debug", "d", false, "write debug events to run.log")
	fs.StringVar(&flagCfg.LogDir, "log-dir", ".", "directory for run.log and error.log")
	fs.StringVar(&flagCfg.StorePath, "store", "", "sqlite file for saved games")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if configPath != "" {
		if err := ReadFile(configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("unable to read config %s: %w", configPath, err)
		}
	}

	if preset != "" {
		p, err := LookupPreset(preset)
		if err != nil {
			return cfg, err
		}
		cfg = p.Apply(cfg)
	}

	// Explicit flags win over the file and the preset.
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "rows":
			cfg.Rows = flagCfg.Rows
		case "cols":
			cfg.Cols = flagCfg.Cols
		case "mines":
			cfg.Mines = flagCfg.Mines
		case "tile-size":
			cfg.TileSize = flagCfg.TileSize
		case "safe-zone":
			cfg.SafeZone = flagCfg.SafeZone
		case "debug":
			cfg.Debug = flagCfg.Debug
		case "log-dir":
			cfg.LogDir = flagCfg.LogDir
		case "store":
			cfg.StorePath = flagCfg.StorePath
		}
	})

	if Development() {
		cfg.Debug = true
	}

	return cfg.Clamp(), nil
}
