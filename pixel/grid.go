// Package pixel implements the grid representation used for stamps and
// imported tiles: a rectangular, row-major array of cells, each either
// transparent or a hex color token. The grid is the canonical form that
// round-trips through StampFile JSON, distinct from raw image bytes.
package pixel

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Cell is one grid entry. The empty string means fully transparent and
// marshals to JSON null. Non-empty cells hold a color token, canonically
// #RRGGBB (opaque) or #RRGGBBAA (partial alpha).
type Cell string

// Transparent is the zero cell.
const Transparent Cell = ""

func (c Cell) IsTransparent() bool {
	return c == Transparent
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if c == Transparent {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", string(c))), nil
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = Transparent
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*c = Cell(s)
	return nil
}

// Grid is a row-major pixel grid. All rows must have equal length.
type Grid [][]Cell

var ErrRagged = errors.New("pixel: grid rows have unequal lengths")

// New returns a fully transparent w×h grid.
func New(w, h int) Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g := make(Grid, h)
	for y := range g {
		g[y] = make([]Cell, w)
	}
	return g
}

// Size returns (width, height). An empty grid is 0×0.
func (g Grid) Size() (int, int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g[0]), len(g)
}

// Validate checks rectangularity.
func (g Grid) Validate() error {
	if len(g) == 0 {
		return nil
	}
	w := len(g[0])
	for y, row := range g {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, y, len(row), w)
		}
	}
	return nil
}

// IsEmpty reports whether every cell is transparent.
func (g Grid) IsEmpty() bool {
	for _, row := range g {
		for _, c := range row {
			if !c.IsTransparent() {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = make([]Cell, len(row))
		copy(out[y], row)
	}
	return out
}

// RemoveChroma clears every cell whose RGB exactly matches target's RGB,
// ignoring alpha on both sides. A transparent target matches nothing; it
// would otherwise parse to zero RGB and strip opaque black. Unparseable
// cells are left as they are.
func (g Grid) RemoveChroma(target Cell) {
	if target.IsTransparent() {
		return
	}
	tc, err := target.Color()
	if err != nil {
		return
	}
	for _, row := range g {
		for x, c := range row {
			if c.IsTransparent() {
				continue
			}
			pc, err := c.Color()
			if err != nil {
				continue
			}
			if pc.R == tc.R && pc.G == tc.G && pc.B == tc.B {
				row[x] = Transparent
			}
		}
	}
}

// ScaleUp duplicates each cell into a factor×factor block.
// Nearest-neighbor at the grid level, independent of image resampling.
func (g Grid) ScaleUp(factor int) Grid {
	if factor <= 1 {
		return g.Clone()
	}
	w, h := g.Size()
	out := New(w*factor, h*factor)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := g[y][x]
			for dy := 0; dy < factor; dy++ {
				dst := out[y*factor+dy]
				for dx := 0; dx < factor; dx++ {
					dst[x*factor+dx] = c
				}
			}
		}
	}
	return out
}

// ScaleDown keeps every factor-th cell, starting at the origin.
func (g Grid) ScaleDown(factor int) Grid {
	if factor <= 1 {
		return g.Clone()
	}
	w, h := g.Size()
	ow, oh := w/factor, h/factor
	out := New(ow, oh)
	for y := 0; y < oh; y++ {
		for x := 0; x < ow; x++ {
			out[y][x] = g[y*factor][x*factor]
		}
	}
	return out
}
