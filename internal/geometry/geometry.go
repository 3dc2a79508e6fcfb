// Package geometry maps between pointer positions and grid cells.
package geometry

import "github.com/vancomm/minesweeper/internal/mines"

const (
	HPadding        = 16
	VPadding        = 16
	StatusBarHeight = 28
	FooterBarHeight = 28
	GridLine        = 2
)

type Geometry struct {
	Rows, Cols, TileSize int
}

func (g Geometry) WindowSize() (width int, height int) {
	width = HPadding*2 + g.Cols*g.TileSize + GridLine
	height = VPadding*2 + StatusBarHeight + FooterBarHeight + g.Rows*g.TileSize + GridLine
	return
}

// CellAt returns the cell under the pixel (x, y), or false when the point
// falls outside the grid.
func (g Geometry) CellAt(x, y int) (mines.Point, bool) {
	gridTop := VPadding + StatusBarHeight
	gx, gy := x-HPadding, y-gridTop
	if gx < 0 || gy < 0 || g.TileSize <= 0 {
		return mines.Point{}, false
	}
	p := mines.Point{Row: gy / g.TileSize, Col: gx / g.TileSize}
	if p.Row >= g.Rows || p.Col >= g.Cols {
		return mines.Point{}, false
	}
	return p, true
}

// Origin is the top-left pixel of cell p.
func (g Geometry) Origin(p mines.Point) (x int, y int) {
	return HPadding + p.Col*g.TileSize, VPadding + StatusBarHeight + p.Row*g.TileSize
}
