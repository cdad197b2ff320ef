package export

import (
	"math"
	"strings"
	"testing"

	"github.com/18Orion/ParticleInteractionSimulator/internal/storage"
)

func TestTracksToSVG(t *testing.T) {
	tracks := []storage.Track{
		{Name: "earth", X: []float64{0, 0, 0}, Y: []float64{0, 0, 0}},
		{Name: "moon", X: []float64{10, 0, -10}, Y: []float64{0, 10, 0}},
	}
	svg := TracksToSVG(tracks, 200, 100)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatal("not a complete svg document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("got %d paths, want 2", got)
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("got %d markers, want 2", got)
	}
	for _, name := range []string{">earth<", ">moon<"} {
		if !strings.Contains(svg, name) {
			t.Errorf("missing label %s", name)
		}
	}
	// bounds are x -10..10, y 0..10 padded to a 24 m square: 100/24 px per m
	if !strings.Contains(svg, `d="M100.0,70.8 L100.0,70.8 L100.0,70.8"`) {
		t.Errorf("earth path not centred:\n%s", svg)
	}
}

func TestTracksToSVGBreaksOnNonFinite(t *testing.T) {
	tracks := []storage.Track{
		{Name: "a", X: []float64{0, math.NaN(), 2, 3}, Y: []float64{0, 0, 1, 1}},
	}
	svg := TracksToSVG(tracks, 100, 100)
	if got := strings.Count(svg, "M"); got != 2 {
		t.Errorf("expected the path to restart after NaN:\n%s", svg)
	}
	if strings.Contains(svg, "NaN") {
		t.Error("NaN leaked into the svg")
	}
}

func TestTracksToSVGEmpty(t *testing.T) {
	svg := TracksToSVG(nil, 50, 50)
	if strings.Contains(svg, "<path") || !strings.Contains(svg, "</svg>") {
		t.Errorf("unexpected output for no tracks:\n%s", svg)
	}
}

func TestTracksToSVGEscapesNames(t *testing.T) {
	svg := TracksToSVG([]storage.Track{{Name: "a<b>&", X: []float64{1}, Y: []float64{1}}}, 10, 10)
	if !strings.Contains(svg, "a&lt;b&gt;&amp;") {
		t.Errorf("name not escaped:\n%s", svg)
	}
}
