package mines

import (
	"fmt"
	"strconv"
	"strings"
)

/*
 * Each cell of the player's view prints as one of:
 *
 * 	- '#' hidden
 * 	- 'F' flagged
 * 	- '*' a revealed mine
 * 	- '.' revealed with no mined neighbours
 * 	- '1' to '8' revealed with that many mined neighbours
 */
func (c Cell) String() string {
	switch {
	case c.Revealed && c.Mine:
		return "*"
	case c.Revealed && c.Count == 0:
		return "."
	case c.Revealed:
		return strconv.Itoa(c.Count)
	case c.Flagged:
		return "F"
	default:
		return "#"
	}
}

// String renders the player's view with row and column indices.
func (b *Board) String() string {
	var sb strings.Builder
	fmt.Fprint(&sb, "   ")
	for col := range b.params.Cols {
		fmt.Fprintf(&sb, "%d ", col%10)
	}
	fmt.Fprint(&sb, "\n")
	for row := range b.params.Rows {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := range b.params.Cols {
			c, _ := b.Cell(Point{row, col})
			fmt.Fprint(&sb, c.String()+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
