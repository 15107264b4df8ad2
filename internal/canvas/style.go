package canvas

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"navy":    "#000080",
}

// ParseColor accepts a CSS color keyword, "transparent" or a #rgb,
// #rgba, #rrggbb or #rrggbbaa hex string.
func ParseColor(s string) (gg.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return gg.Transparent, nil
	}
	if hex, ok := namedColors[s]; ok {
		return gg.Hex(hex), nil
	}
	if strings.HasPrefix(s, "#") {
		digits := s[1:]
		switch len(digits) {
		case 3, 4, 6, 8:
		default:
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		if _, err := strconv.ParseUint(digits, 16, 32); err != nil {
			return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
		}
		return gg.Hex(digits), nil
	}
	return gg.RGBA{}, fmt.Errorf("%w: %q", ErrBadColor, s)
}

// ParseFontSize extracts the pixel size from CSS font shorthand such as
// "24px Arial" or "20pt Calibri". The family is ignored.
func ParseFontSize(font string) (float64, error) {
	for _, field := range strings.Fields(font) {
		unit := 1.0
		num := field
		switch {
		case strings.HasSuffix(field, "px"):
			num = strings.TrimSuffix(field, "px")
		case strings.HasSuffix(field, "pt"):
			num = strings.TrimSuffix(field, "pt")
			unit = 4.0 / 3.0
		default:
			continue
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil || v <= 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadFont, font)
		}
		return v * unit, nil
	}
	return 0, fmt.Errorf("%w: %q has no size", ErrBadFont, font)
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// face returns Go Regular at size pixels. Every family maps to it.
func face(size float64) (text.Face, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("canvas: load font: %w", fontErr)
	}
	return fontSource.Face(size), nil
}
