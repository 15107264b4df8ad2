// Package export renders run data as standalone SVG documents.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/glcanvas/internal/swarm"
)

// SwarmToSVG draws the balls of sw as filled circles on a white page,
// with the reflection boundary as a dashed line.
func SwarmToSVG(sw *swarm.Swarm, fill string) string {
	if sw == nil {
		return ""
	}
	a := sw.Arena()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<line x1="0" y1="%.1f" x2="%.0f" y2="%.1f" stroke="#999999" stroke-dasharray="4 4"/>
<g fill="%s">
`, a.Width, a.Height, a.Width, a.Height, a.Top, a.Width, a.Top, fill))

	for _, b := range sw.Balls {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.0f"/>
`, b.X, b.Y, float32(swarm.Radius)))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// Point is one vertex of a plotted series.
type Point struct{ X, Y float64 }

// SeriesToSVG plots points as a polyline scaled to fill width×height.
func SeriesToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
