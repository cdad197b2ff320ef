package viz

import (
	"math"
	"strings"

	"github.com/18Orion/ParticleInteractionSimulator/internal/dynamo"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas is a grid of braille cells, each holding 2x4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the dot at (x, y) in dot coordinates; the canvas is
// Width*2 by Height*4 dots. Out-of-range dots are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// Disc fills a disc of radius r dots around (cx, cy).
func (c *Canvas) Disc(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Viewport maps world coordinates in metres onto canvas dots. It only ever
// grows so bodies do not jump around as the view follows them.
type Viewport struct {
	centerX, centerY float64
	halfExtent       float64
}

// Fit centres the viewport on the bounding box of points, growing the
// extent if any point would fall outside. margin is a fraction of the box.
func (v *Viewport) Fit(points []dynamo.Vector2, margin float64) {
	if len(points) == 0 {
		return
	}
	minX, maxX := points[0].X(), points[0].X()
	minY, maxY := points[0].Y(), points[0].Y()
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minY, maxY = math.Min(minY, p.Y()), math.Max(maxY, p.Y())
	}
	if v.halfExtent == 0 {
		v.centerX, v.centerY = (minX+maxX)/2, (minY+maxY)/2
	}
	need := math.Max(
		math.Max(math.Abs(maxX-v.centerX), math.Abs(minX-v.centerX)),
		math.Max(math.Abs(maxY-v.centerY), math.Abs(minY-v.centerY)),
	) * (1 + margin)
	if need > v.halfExtent {
		v.halfExtent = need
	}
	if v.halfExtent == 0 {
		v.halfExtent = 1
	}
}

// Project returns the dot for p on a canvas, with +y up.
func (v *Viewport) Project(p dynamo.Vector2, c *Canvas) (int, int) {
	w, h := float64(c.Width*2), float64(c.Height*4)
	scale := math.Min(w, h) / (2 * v.halfExtent)
	x := w/2 + (p.X()-v.centerX)*scale
	y := h/2 - (p.Y()-v.centerY)*scale
	return int(math.Round(x)), int(math.Round(y))
}

// Scale is dots per metre for c.
func (v *Viewport) Scale(c *Canvas) float64 {
	return math.Min(float64(c.Width*2), float64(c.Height*4)) / (2 * v.halfExtent)
}

func (v *Viewport) Reset() { *v = Viewport{} }
