// Package catalog holds the static body table and the info/audio directory.
package catalog

import "time"

// Kind categorizes bodies for rendering.
type Kind int

const (
	KindSun Kind = iota
	KindPlanet
	KindMoon
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	case KindMoon:
		return "moon"
	default:
		return "unknown"
	}
}

// Class separates rocky planets from giants for glyph selection.
type Class int

const (
	ClassInner Class = iota
	ClassGiant
)

// Body is one entry of the static body table.
type Body struct {
	Name     string        // Display name, also the registry key
	Kind     Kind          // Sun, planet, or moon
	Class    Class         // For planets: inner or giant
	Parent   string        // Parent body name; "" orbits the origin
	Distance float64       // Orbit radius in layout units
	Period   time.Duration // One revolution at unit speed
	Size     int           // Relative visual size in layout units
	Color    string        // Hex color for rendering
	ToneHz   float64       // Audio cue pitch; 0 = no cue
}

// sunPeriod only exists to satisfy the positive-period rule; the Sun has
// distance 0 and never moves.
const sunPeriod = 25 * time.Second

// Bodies is the body table in registration order: the Sun, then planets
// from the inside out, then moons grouped by planet.
var Bodies = []Body{
	{Name: "Soleil", Kind: KindSun, Distance: 0, Period: sunPeriod, Size: 60, Color: "#FDB813", ToneHz: 130.81},

	{Name: "Mercure", Kind: KindPlanet, Class: ClassInner, Distance: 100, Period: 4000 * time.Millisecond, Size: 8, Color: "#B5B5B5", ToneHz: 523.25},
	{Name: "Vénus", Kind: KindPlanet, Class: ClassInner, Distance: 150, Period: 7000 * time.Millisecond, Size: 12, Color: "#E8CDA2", ToneHz: 440.00},
	{Name: "Terre", Kind: KindPlanet, Class: ClassInner, Distance: 210, Period: 10000 * time.Millisecond, Size: 14, Color: "#2E86AB", ToneHz: 392.00},
	{Name: "Mars", Kind: KindPlanet, Class: ClassInner, Distance: 260, Period: 13000 * time.Millisecond, Size: 10, Color: "#C1440E", ToneHz: 329.63},
	{Name: "Jupiter", Kind: KindPlanet, Class: ClassGiant, Distance: 330, Period: 20000 * time.Millisecond, Size: 30, Color: "#C88B3A", ToneHz: 293.66},
	{Name: "Saturne", Kind: KindPlanet, Class: ClassGiant, Distance: 400, Period: 25000 * time.Millisecond, Size: 26, Color: "#E4D191", ToneHz: 261.63},
	{Name: "Uranus", Kind: KindPlanet, Class: ClassGiant, Distance: 470, Period: 30000 * time.Millisecond, Size: 20, Color: "#7DE8E8", ToneHz: 220.00},
	{Name: "Neptune", Kind: KindPlanet, Class: ClassGiant, Distance: 540, Period: 35000 * time.Millisecond, Size: 20, Color: "#4B70DD", ToneHz: 196.00},

	{Name: "Lune", Kind: KindMoon, Parent: "Terre", Distance: 28, Period: 2500 * time.Millisecond, Size: 5, Color: "#D0D0D0"},

	{Name: "Phobos", Kind: KindMoon, Parent: "Mars", Distance: 18, Period: 1800 * time.Millisecond, Size: 5, Color: "#A89F91"},
	{Name: "Deimos", Kind: KindMoon, Parent: "Mars", Distance: 25, Period: 2500 * time.Millisecond, Size: 5, Color: "#BFB8A5"},

	{Name: "Io", Kind: KindMoon, Parent: "Jupiter", Distance: 30, Period: 2200 * time.Millisecond, Size: 6, Color: "#E8D44D"},
	{Name: "Europe", Kind: KindMoon, Parent: "Jupiter", Distance: 40, Period: 3000 * time.Millisecond, Size: 6, Color: "#C9B79C"},
	{Name: "Ganymède", Kind: KindMoon, Parent: "Jupiter", Distance: 52, Period: 3800 * time.Millisecond, Size: 8, Color: "#9C8E7E"},
	{Name: "Callisto", Kind: KindMoon, Parent: "Jupiter", Distance: 64, Period: 4500 * time.Millisecond, Size: 7, Color: "#6E6259"},

	{Name: "Titan", Kind: KindMoon, Parent: "Saturne", Distance: 35, Period: 3500 * time.Millisecond, Size: 8, Color: "#D9A441"},
	{Name: "Encelade", Kind: KindMoon, Parent: "Saturne", Distance: 24, Period: 2000 * time.Millisecond, Size: 5, Color: "#F0F4F8"},
}

// BodyByName returns the table entry for name.
func BodyByName(name string) (Body, bool) {
	for _, b := range Bodies {
		if b.Name == name {
			return b, true
		}
	}
	return Body{}, false
}

// SceneRadius returns the largest distance from the origin any body can
// reach, in layout units.
func SceneRadius() float64 {
	radius := 0.0
	for _, b := range Bodies {
		r := b.Distance
		if b.Parent != "" {
			if p, ok := BodyByName(b.Parent); ok {
				r += p.Distance
			}
		}
		if r > radius {
			radius = r
		}
	}
	return radius
}
