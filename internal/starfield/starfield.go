// Package starfield scatters decorative background stars.
package starfield

import (
	"math/rand/v2"
	"time"
)

// DefaultCount is the number of stars scattered by default.
const DefaultCount = 150

// Twinkle period bounds.
const (
	MinTwinkle = 2 * time.Second
	MaxTwinkle = 6 * time.Second
)

// Star is one background star. X and Y are fractions of the viewport in
// [0,1).
type Star struct {
	X, Y    float64
	Twinkle time.Duration
	Phase   float64 // twinkle phase offset in [0,1)
}

// Generate scatters n stars using seed. The same seed always yields the
// same field.
func Generate(n int, seed uint64) []Star {
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	stars := make([]Star, n)
	span := float64(MaxTwinkle - MinTwinkle)
	for i := range stars {
		stars[i] = Star{
			X:       rng.Float64(),
			Y:       rng.Float64(),
			Twinkle: MinTwinkle + time.Duration(rng.Float64()*span),
			Phase:   rng.Float64(),
		}
	}
	return stars
}

// Brightness returns the star's brightness in [0,1] at elapsed time t.
// It ramps up then down once per twinkle period.
func (s Star) Brightness(t time.Duration) float64 {
	if s.Twinkle <= 0 {
		return 1
	}
	f := float64(t%s.Twinkle)/float64(s.Twinkle) + s.Phase
	f -= float64(int(f))
	if f < 0.5 {
		return f * 2
	}
	return (1 - f) * 2
}

// Glyph returns the rune drawn for the star at elapsed time t, or ' ' when
// it is too dim to draw.
func (s Star) Glyph(t time.Duration) rune {
	switch b := s.Brightness(t); {
	case b >= 0.8:
		return '∗'
	case b >= 0.45:
		return '·'
	case b >= 0.2:
		return '˙'
	default:
		return ' '
	}
}
