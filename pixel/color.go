package pixel

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color parses the cell's color token. Accepted forms: #RGB, #RGBA,
// #RRGGBB, #RRGGBBAA, and a loose rgba(r, g, b, a) kept for compatibility
// with grids written by older tools. A transparent cell parses to the zero
// NRGBA. Hex parsing is done by hand rather than through a color library so
// 8-bit channel values round-trip exactly.
func (c Cell) Color() (color.NRGBA, error) {
	if c == Transparent {
		return color.NRGBA{}, nil
	}
	s := strings.TrimSpace(string(c))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(strings.ToLower(s), "rgba(") && strings.HasSuffix(s, ")") {
		return parseRGBAFunc(s[5 : len(s)-1])
	}
	return color.NRGBA{}, fmt.Errorf("pixel: unrecognized color token %q", string(c))
}

func parseHex(s string) (color.NRGBA, error) {
	var r, g, b, a uint8
	a = 0xff
	switch len(s) {
	case 3, 4:
		// Short form: each digit doubles, f -> ff.
		vals := make([]uint8, len(s))
		for i := range s {
			v, err := strconv.ParseUint(s[i:i+1], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("pixel: bad hex color #%s", s)
			}
			vals[i] = uint8(v<<4 | v)
		}
		r, g, b = vals[0], vals[1], vals[2]
		if len(s) == 4 {
			a = vals[3]
		}
	case 6, 8:
		v, err := strconv.ParseUint(s, 16, 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("pixel: bad hex color #%s", s)
		}
		if len(s) == 8 {
			a = uint8(v)
			v >>= 8
		}
		r = uint8(v >> 16)
		g = uint8(v >> 8)
		b = uint8(v)
	default:
		return color.NRGBA{}, fmt.Errorf("pixel: bad hex color length #%s", s)
	}
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

func parseRGBAFunc(args string) (color.NRGBA, error) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("pixel: bad rgba() form %q", args)
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if i == 3 && strings.Contains(p, ".") {
			// Fractional alpha in [0,1].
			f, err := strconv.ParseFloat(p, 64)
			if err != nil || f < 0 || f > 1 {
				return color.NRGBA{}, fmt.Errorf("pixel: bad rgba() alpha %q", p)
			}
			ch[3] = uint8(f*255 + 0.5)
			continue
		}
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("pixel: bad rgba() channel %q", p)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// CellOf formats a color as the canonical cell token: transparent for
// alpha 0, #RRGGBB for alpha 255, #RRGGBBAA otherwise.
func CellOf(c color.NRGBA) Cell {
	switch c.A {
	case 0:
		return Transparent
	case 0xff:
		return Cell(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
	default:
		return Cell(fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A))
	}
}
