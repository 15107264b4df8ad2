package swarm

// Radius of every ball in canvas units.
const Radius float32 = 20

// MaxSpeed bounds each initial velocity component, exclusive.
const MaxSpeed float32 = 4

type Ball struct {
	X, Y   float32
	XSpeed float32
	YSpeed float32
}

// Arena is the region balls bounce inside. Top is the upper wall; the
// band above it is left to the HUD.
type Arena struct {
	Width  float32
	Height float32
	Top    float32
}

// Move advances the ball by its velocity scaled by k.
func (b *Ball) Move(k float32) {
	b.X += b.XSpeed * k
	b.Y += b.YSpeed * k
}

// Reflect flips each velocity component whose wall the ball's circle
// currently crosses. Position is not clamped; a ball past a wall keeps
// its position until the flipped velocity carries it back.
func (b *Ball) Reflect(a Arena) {
	if b.X+Radius > a.Width || b.X-Radius < 0 {
		b.XSpeed = -b.XSpeed
	}
	if b.Y+Radius > a.Height || b.Y-Radius < a.Top {
		b.YSpeed = -b.YSpeed
	}
}

// Update moves the ball one frame and then applies the wall check to the
// new position.
func (b *Ball) Update(a Arena) {
	b.Move(1)
	b.Reflect(a)
}
