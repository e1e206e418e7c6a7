package prismal

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
)

// HSBA is a color in hue/saturation/brightness/alpha space.
// Each component is in the range [0, 1]; hue 0 and 1 both mean red.
type HSBA struct {
	H, S, B, A float64
}

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Common colors
var (
	Black       = HSBA{H: 0, S: 0, B: 0, A: 1}
	White       = HSBA{H: 0, S: 0, B: 1, A: 1}
	Transparent = HSBA{}
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("prismal: invalid color")

// RandomHSBA returns a color whose four components are independent uniform
// draws from r.
func RandomHSBA(r *rand.Rand) HSBA {
	return HSBA{H: r.Float64(), S: r.Float64(), B: r.Float64(), A: r.Float64()}
}

// RGBA converts the color to red/green/blue/alpha components.
func (c HSBA) RGBA() RGBA {
	h := clamp01(c.H)
	s := clamp01(c.S)
	v := clamp01(c.B)

	if s == 0 {
		return RGBA{R: v, G: v, B: v, A: clamp01(c.A)}
	}

	h6 := h * 6
	if h6 >= 6 {
		h6 = 0
	}
	sector := math.Floor(h6)
	f := h6 - sector
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	var r, g, b float64
	switch int(sector) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGBA{R: r, G: g, B: b, A: clamp01(c.A)}
}

// Color converts the color to the standard color.Color interface.
func (c HSBA) Color() color.Color {
	return c.RGBA().Color()
}

// String formats the color as hsba(h,s,b,a), the same form ParseColor accepts.
func (c HSBA) String() string {
	return fmt.Sprintf("hsba(%s,%s,%s,%s)", ftoa(c.H), ftoa(c.S), ftoa(c.B), ftoa(c.A))
}

// HSBA converts RGBA to hue/saturation/brightness/alpha.
func (c RGBA) HSBA() HSBA {
	r, g, b := clamp01(c.R), clamp01(c.G), clamp01(c.B)
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	out := HSBA{B: maxC, A: clamp01(c.A)}
	if maxC > 0 {
		out.S = delta / maxC
	}
	if delta == 0 {
		return out
	}

	var h float64
	switch maxC {
	case r:
		h = (g - b) / delta
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	out.H = h / 6
	return out
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R*255 + 0.5)),
		G: uint8(clamp255(c.G*255 + 0.5)),
		B: uint8(clamp255(c.B*255 + 0.5)),
		A: uint8(clamp255(c.A*255 + 0.5)),
	}
}

// Hex formats the color as #RRGGBBAA.
func (c RGBA) Hex() string {
	n := c.Color().(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseColor parses "#RGB", "#RGBA", "#RRGGBB", "#RRGGBBAA" or
// "hsba(h,s,b,a)" with components in [0, 1].
func ParseColor(s string) (HSBA, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "hsba(") && strings.HasSuffix(lower, ")") {
		fields := strings.Split(lower[len("hsba("):len(lower)-1], ",")
		if len(fields) != 4 {
			return HSBA{}, fmt.Errorf("%w %q: want 4 components", ErrInvalidColor, s)
		}
		var v [4]float64
		for i, f := range fields {
			x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil || x < 0 || x > 1 {
				return HSBA{}, fmt.Errorf("%w %q: component %d out of [0,1]", ErrInvalidColor, s, i)
			}
			v[i] = x
		}
		return HSBA{H: v[0], S: v[1], B: v[2], A: v[3]}, nil
	}

	c, ok := parseHexColor(s)
	if !ok {
		return HSBA{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	return c.HSBA(), nil
}

// MustParseColor is like ParseColor but panics on error.
// It is meant for package-level color literals.
func MustParseColor(s string) HSBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHexColor parses the hex forms accepted by ParseColor.
func parseHexColor(hex string) (RGBA, bool) {
	hex = strings.TrimPrefix(hex, "#")

	var r, g, b, a uint32
	a = 255

	ok := true
	switch len(hex) {
	case 3: // RGB
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		ok = parseHex(hex[0:1], &r) && parseHex(hex[1:2], &g) && parseHex(hex[2:3], &b) && parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		ok = parseHex(hex[0:2], &r) && parseHex(hex[2:4], &g) && parseHex(hex[4:6], &b) && parseHex(hex[6:8], &a)
	default:
		return RGBA{}, false
	}
	if !ok {
		return RGBA{}, false
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, true
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}
