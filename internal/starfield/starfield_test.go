package starfield

import (
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	stars := Generate(DefaultCount, 42)

	if len(stars) != DefaultCount {
		t.Fatalf("len = %d, want %d", len(stars), DefaultCount)
	}
	for i, s := range stars {
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= 1 {
			t.Errorf("star %d outside viewport: %+v", i, s)
		}
		if s.Twinkle < MinTwinkle || s.Twinkle >= MaxTwinkle {
			t.Errorf("star %d twinkle %v out of range", i, s.Twinkle)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(20, 7)
	b := Generate(20, 7)
	c := Generate(20, 8)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different star %d", i)
		}
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical fields")
	}
}

func TestGenerateEmpty(t *testing.T) {
	if Generate(0, 1) != nil || Generate(-5, 1) != nil {
		t.Error("expected nil for non-positive count")
	}
}

func TestBrightness(t *testing.T) {
	s := Star{Twinkle: 4 * time.Second}

	tests := []struct {
		at   time.Duration
		want float64
	}{
		{0, 0},
		{time.Second, 0.5},
		{2 * time.Second, 1},
		{3 * time.Second, 0.5},
		{4 * time.Second, 0},
	}

	for _, tt := range tests {
		if got := s.Brightness(tt.at); got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("Brightness(%v) = %v, want %v", tt.at, got, tt.want)
		}
	}

	if (Star{}).Brightness(time.Second) != 1 {
		t.Error("zero twinkle should be fully bright")
	}
}

func TestGlyph(t *testing.T) {
	s := Star{Twinkle: 4 * time.Second}

	if g := s.Glyph(2 * time.Second); g != '∗' {
		t.Errorf("peak glyph = %q", g)
	}
	if g := s.Glyph(0); g != ' ' {
		t.Errorf("dark glyph = %q", g)
	}
}
