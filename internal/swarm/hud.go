package swarm

import (
	"fmt"
	"strconv"
)

// HUD layout on the 2D context.
const (
	HUDFont  = "24px Arial"
	HUDColor = "green"
	HUDX     = 10
	HUDLine1 = 30
	HUDLine2 = 60
)

func BallsLine(n int) string {
	return "Balls: " + strconv.Itoa(n)
}

// RateLine formats the frame rate. An undefined rate prints as "--".
func RateLine(fps float64, ok bool) string {
	if !ok {
		return "Frame rate: -- FPS"
	}
	return fmt.Sprintf("Frame rate: %.0f FPS", fps)
}
