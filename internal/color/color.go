package color

import (
	"fmt"
	"math"
)

// Color is an 8 bit per channel RGB value.
type Color struct {
	Red   uint8
	Green uint8
	Blue  uint8
}

// HSL holds hue in whole degrees [0, 360) and saturation and lightness as
// percentages rounded to one decimal place.
type HSL struct {
	H int
	S float64
	L float64
}

// FromHsl builds a color from hue in degrees and saturation/lightness in
// percent. Hues of 360 and above wrap.
func FromHsl(h int, s, l float64) Color {
	if h >= 360 {
		h %= 360
	}

	s = s / 100.0
	l = l / 100.0

	hue := float64(h)
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(hue/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case 0 <= h && h < 60:
		r, g = c, x
	case 60 <= h && h < 120:
		r, g = x, c
	case 120 <= h && h < 180:
		g, b = c, x
	case 180 <= h && h < 240:
		g, b = x, c
	case 240 <= h && h < 300:
		r, b = x, c
	case 300 <= h && h < 360:
		r, b = c, x
	}

	return Color{
		Red:   channel(r + m),
		Green: channel(g + m),
		Blue:  channel(b + m),
	}
}

// channel scales a [0,1] fraction to a byte. Out of range saturation or
// lightness inputs are clamped here rather than wrapped by the conversion.
func channel(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v*255))))
}

// ToHsl converts the color to hue, saturation and lightness.
func (c Color) ToHsl() HSL {
	r := float64(c.Red) / 255.0
	g := float64(c.Green) / 255.0
	b := float64(c.Blue) / 255.0

	cmin := math.Min(r, math.Min(g, b))
	cmax := math.Max(r, math.Max(g, b))
	delta := cmax - cmin

	var h float64
	switch {
	case delta == 0:
		h = 0
	case cmax == r:
		h = math.Mod((g-b)/delta, 6)
	case cmax == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}

	h = math.Round(h * 60)
	if h < 0 {
		h += 360
	}

	l := (cmax + cmin) / 2

	var s float64
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))
	}

	return HSL{
		H: int(h),
		S: math.Round(s*1000) / 10,
		L: math.Round(l*1000) / 10,
	}
}

// ToHsb converts to the 16 bit hue/saturation/brightness ranges used by
// LIFX bulbs.
func (c Color) ToHsb() (uint16, uint16, uint16) {
	red := float64(c.Red) / 255.0
	green := float64(c.Green) / 255.0
	blue := float64(c.Blue) / 255.0

	max := math.Max(red, math.Max(green, blue))
	min := math.Min(red, math.Min(green, blue))
	delta := max - min

	var h, s, v float64
	v = max

	if delta != 0 {
		s = delta / max

		deltaR := (((max - red) / 6) + (delta / 2)) / delta
		deltaG := (((max - green) / 6) + (delta / 2)) / delta
		deltaB := (((max - blue) / 6) + (delta / 2)) / delta

		if red == max {
			h = deltaB - deltaG
		} else if green == max {
			h = (1.0 / 3.0) + deltaR - deltaB
		} else if blue == max {
			h = (2.0 / 3.0) + deltaG - deltaR
		}

		if h < 0 {
			h += 1
		}
		if h > 1 {
			h -= 1
		}
	}

	hue := uint16(math.Round(h * 0xFFFF))
	saturation := uint16(math.Round(s * 0xFFFF))
	brightness := uint16(math.Round(v * 0xFFFF))

	return hue, saturation, brightness
}

func (c Color) Equals(other Color) bool {
	return c.Red == other.Red && c.Green == other.Green && c.Blue == other.Blue
}

// CopyFrom overwrites every channel with other's.
func (c *Color) CopyFrom(other Color) {
	c.Red = other.Red
	c.Green = other.Green
	c.Blue = other.Blue
}

// Average returns the per channel rounded mean of a and b.
func Average(a, b Color) Color {
	mean := func(x, y uint8) uint8 {
		return uint8((int(x) + int(y) + 1) / 2)
	}
	return Color{
		Red:   mean(a.Red, b.Red),
		Green: mean(a.Green, b.Green),
		Blue:  mean(a.Blue, b.Blue),
	}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.Red, c.Green, c.Blue)
}
