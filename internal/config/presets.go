package config

import "sort"

const (
	earthMass   = 5.972e24
	earthRadius = 6.371e6
	moonMass    = 7.342e22
	moonRadius  = 1.7374e6
	moonOrbit   = 3.844e8
)

var Presets = map[string]*Config{
	// a 1 kg probe released at Earth's surface
	"earth-drop": {
		Name: "earth-drop", Tick: 0.1, Duration: 10, SampleEvery: 1,
		Bodies: []BodyConfig{
			{Name: "earth", Mass: earthMass, Fixed: true},
			{Name: "probe", Mass: 1, Position: [2]float64{0, earthRadius}},
		},
	},
	"leo": {
		Name: "leo", Tick: 1, Duration: 5600, SampleEvery: 10,
		Bodies: []BodyConfig{
			{Name: "earth", Mass: earthMass, Radius: earthRadius, Fixed: true},
			{Name: "station", Mass: 4.2e5, Radius: 50, Orbit: &OrbitConfig{Reference: "earth", Altitude: 4.08e5}},
			{Name: "debris", Mass: 10, Radius: 0.5, RelativeTo: "station", Position: [2]float64{0, 2000}, Velocity: [2]float64{-2, 0}},
		},
	},
	"moon": {
		Name: "moon", Tick: 60, Duration: 27.3 * 86400, SampleEvery: 60,
		Bodies: []BodyConfig{
			{Name: "earth", Mass: earthMass, Radius: earthRadius},
			{Name: "moon", Mass: moonMass, Radius: moonRadius, Orbit: &OrbitConfig{Reference: "earth", Altitude: moonOrbit - earthRadius}},
		},
	},
	"binary": {
		Name: "binary", Tick: 100, Duration: 1.72e6, SampleEvery: 100,
		Bodies: []BodyConfig{
			{Name: "a", Mass: 1e20, Radius: 1e4, Position: [2]float64{-5e6, 0}, Velocity: [2]float64{0, -18.26}},
			{Name: "b", Mass: 1e20, Radius: 1e4, Position: [2]float64{5e6, 0}, Velocity: [2]float64{0, 18.26}},
		},
	},
	"collision": {
		Name: "collision", Tick: 1, Duration: 5000, SampleEvery: 10,
		Bodies: []BodyConfig{
			{Name: "target", Mass: 1e18, Radius: 5e4},
			{Name: "impactor", Mass: 1e15, Radius: 1e3, Position: [2]float64{4e5, 0}, Velocity: [2]float64{-100, 5}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Bodies = make([]BodyConfig, len(cfg.Bodies))
	copy(c.Bodies, cfg.Bodies)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
