package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rgb", "#rrggbb", "rgb(r, g, b)" and "rgba(r, g, b, a)".
func ParseColor(value string) (color.NRGBA, error) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "#") {
		if len(value) == 4 {
			value = "#" + strings.Repeat(value[1:2], 2) + strings.Repeat(value[2:3], 2) + strings.Repeat(value[3:4], 2)
		}
		c, err := colorful.Hex(value)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
	}
	lower := strings.ToLower(value)
	var args string
	switch {
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		args = lower[5 : len(lower)-1]
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		args = lower[4 : len(lower)-1]
	default:
		return color.NRGBA{}, fmt.Errorf("invalid color %q", value)
	}
	parts := strings.Split(args, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return color.NRGBA{}, fmt.Errorf("invalid color %q", value)
	}
	var channels [4]float64
	channels[3] = 1
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", value, err)
		}
		channels[i] = v
	}
	return color.NRGBA{
		R: clamp255(channels[0]),
		G: clamp255(channels[1]),
		B: clamp255(channels[2]),
		A: clamp255(channels[3] * 255),
	}, nil
}

// MustColor parses value and panics on error; used for built-in palettes.
func MustColor(value string) color.NRGBA {
	ret, err := ParseColor(value)
	if err != nil {
		panic(err)
	}
	return ret
}

// ColorOr parses value, falling back when it is empty or invalid.
func ColorOr(value string, fallback color.NRGBA) color.NRGBA {
	if value == "" {
		return fallback
	}
	ret, err := ParseColor(value)
	if err != nil {
		return fallback
	}
	return ret
}

// Darken lowers the HSL lightness of c by percent points.
func Darken(c color.NRGBA, percent float64) color.NRGBA {
	h, s, l := toColorful(c).Hsl()
	l = math.Max(0, l-percent/100)
	return fromColorful(colorful.Hsl(h, s, l), c.A)
}

// Lighten raises the HSL lightness of c by percent points.
func Lighten(c color.NRGBA, percent float64) color.NRGBA {
	h, s, l := toColorful(c).Hsl()
	l = math.Min(1, l+percent/100)
	return fromColorful(colorful.Hsl(h, s, l), c.A)
}

// WithAlpha returns c with its alpha scaled by alpha.
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = clamp255(float64(c.A) * alpha)
	return c
}

// Hex formats c as "#rrggbb".
func Hex(c color.NRGBA) string {
	return toColorful(c).Hex()
}

// NRGBA converts any color to non-premultiplied RGBA.
func NRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, alpha uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}
}

func clamp255(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
