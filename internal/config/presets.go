package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Preset struct {
	Name              string
	Rows, Cols, Mines int
}

var presets = []Preset{
	{"beginner", 9, 9, 10},
	{"intermediate", 16, 16, 40},
	{"expert", 16, 30, 99},
}

func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

func LookupPreset(name string) (Preset, error) {
	i := slices.IndexFunc(presets, func(p Preset) bool {
		return p.Name == strings.ToLower(name)
	})
	if i < 0 {
		return Preset{}, fmt.Errorf(
			"unknown preset %q (want one of %s)",
			name, strings.Join(PresetNames(), ", "),
		)
	}
	return presets[i], nil
}

// Apply returns c switched to the preset's grid, clamped to the supported
// bounds (expert is narrowed to the widest allowed grid).
func (p Preset) Apply(c Config) Config {
	return c.WithParams(mines.Params{
		Rows:      p.Rows,
		Cols:      p.Cols,
		MineCount: p.Mines,
		SafeZone:  c.SafeZone,
	})
}
