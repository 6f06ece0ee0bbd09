package hop

import "math"

// Camera tracks how far the view has scrolled up. The view only moves up:
// Y is a high-water mark of the scrolled height.
type Camera struct {
	Y      float64 // Height scrolled since the start, never decreases
	ViewH  float64 // Visible world rows
	Margin float64 // Minimum distance kept between the view top and the feet
}

// NewCamera creates a camera whose view starts at world y 0.
func NewCamera(viewH, margin float64) Camera {
	return Camera{ViewH: viewH, Margin: margin}
}

// Follow scrolls the view up when the player climbs above the margin line.
func (c *Camera) Follow(playerY float64) {
	c.Y = math.Max(c.Y, c.Margin-playerY)
}

// Top returns the world y of the first visible row.
func (c Camera) Top() float64 {
	return -c.Y
}

// Bottom returns the world y just below the last visible row.
func (c Camera) Bottom() float64 {
	return -c.Y + c.ViewH
}

// ToScreen converts a world y into a view row.
func (c Camera) ToScreen(y float64) int {
	return int(math.Floor(y - c.Top()))
}
