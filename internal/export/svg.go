// Package export renders stored runs for use outside the terminal.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/18Orion/ParticleInteractionSimulator/internal/storage"
)

var palette = []string{"#00ccff", "#ffaa00", "#00ff88", "#ff4488", "#aa88ff", "#ffee55"}

// TracksToSVG draws every track as a path on a shared, equal-aspect scale so
// circular orbits stay circular. Each body's last sample is marked with a dot
// and labelled. Non-finite samples break the path.
func TracksToSVG(tracks []storage.Track, width, height int) string {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, tr := range tracks {
		for i := range tr.X {
			x, y := tr.X[i], tr.Y[i]
			if !finite(x) || !finite(y) {
				continue
			}
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX, minY, maxY = -1, 1, -1, 1
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}
	span *= 1.2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	scale := math.Min(float64(width), float64(height)) / span
	project := func(x, y float64) (float64, float64) {
		return float64(width)/2 + (x-cx)*scale, float64(height)/2 - (y-cy)*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for i, tr := range tracks {
		color := palette[i%len(palette)]

		var d strings.Builder
		pen := false
		lastX, lastY, ok := 0.0, 0.0, false
		for j := range tr.X {
			if !finite(tr.X[j]) || !finite(tr.Y[j]) {
				pen = false
				continue
			}
			x, y := project(tr.X[j], tr.Y[j])
			if pen {
				fmt.Fprintf(&d, " L%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&d, " M%.1f,%.1f", x, y)
				pen = true
			}
			lastX, lastY, ok = x, y, true
		}
		if d.Len() > 0 {
			fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>
`, color, strings.TrimSpace(d.String()))
		}
		if ok {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
<text x="%.1f" y="%.1f" fill="%s" font-family="monospace" font-size="12">%s</text>
`, lastX, lastY, color, lastX+5, lastY-5, color, escape(tr.Name))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
