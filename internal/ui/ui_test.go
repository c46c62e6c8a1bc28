package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/audio"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

type fakeCue struct {
	plays   int
	playing bool
}

func (c *fakeCue) Play() error   { c.plays++; c.playing = true; return nil }
func (c *fakeCue) Stop()         { c.playing = false }
func (c *fakeCue) Playing() bool { return c.playing }

type harness struct {
	m      Model
	params *state.Params
	loop   *anim.Loop
	orbits *orbit.Registry
	cues   map[string]*fakeCue
}

// newHarness builds a 120x40 model; the canvas is 120x34 like newTestOrrery.
func newHarness(t *testing.T) *harness {
	t.Helper()

	params := state.NewParams(state.DefaultConfig())
	loop, orbits := newTestRegistry(t)
	cues := make(map[string]*fakeCue)
	dir := catalog.NewDirectory(func(b catalog.Body) audio.Resource {
		c := &fakeCue{}
		cues[b.Name] = c
		return c
	})
	sound := audio.NewDispatcher(dir, params, nil)
	ctrl := control.New(params, orbits, dir, sound, nil)

	h := &harness{
		m:      New(ctrl, loop, orbits, Options{}),
		params: params,
		loop:   loop,
		orbits: orbits,
		cues:   cues,
	}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) {
	for _, k := range keys {
		switch k {
		case "left":
			h.send(tea.KeyMsg{Type: tea.KeyLeft})
		case "right":
			h.send(tea.KeyMsg{Type: tea.KeyRight})
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) progress(name string) float64 {
	r, _ := h.orbits.Find(name)
	return r.Progress()
}

func TestModelFrameAdvancesOrbits(t *testing.T) {
	h := newHarness(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	h.send(FrameMsg(t0))
	if got := h.progress("Terre"); got != 0 {
		t.Errorf("first frame moved Terre to %v", got)
	}

	cmd := h.send(FrameMsg(t0.Add(200 * time.Millisecond)))
	if cmd == nil {
		t.Error("frame should schedule the next frame")
	}
	// 200ms of a 10s period
	if got := h.progress("Terre"); math.Abs(got-2) > 1e-9 {
		t.Errorf("Terre progress = %v, want 2", got)
	}
}

func TestModelFrameStepClamped(t *testing.T) {
	h := newHarness(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	h.send(FrameMsg(t0))
	h.send(FrameMsg(t0.Add(10 * time.Second)))

	// clamped to 250ms of a 10s period
	if got := h.progress("Terre"); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Terre progress = %v, want 2.5", got)
	}

	h.send(FrameMsg(t0.Add(5 * time.Second)))
	if got := h.progress("Terre"); math.Abs(got-2.5) > 1e-9 {
		t.Errorf("backwards frame moved Terre to %v", got)
	}
}

func TestModelSpeedLadder(t *testing.T) {
	h := newHarness(t)

	h.press("right")
	if h.params.Speed() != 1.5 {
		t.Fatalf("speed = %v, want 1.5", h.params.Speed())
	}
	earth, _ := h.orbits.Find("Terre")
	if want := orbit.EffectivePeriodFor(10*time.Second, 1.5); earth.EffectivePeriod() != want {
		t.Errorf("Terre period = %v, want %v", earth.EffectivePeriod(), want)
	}

	h.press("left", ",", ",")
	if h.params.Speed() != 0.25 {
		t.Errorf("speed = %v, want 0.25", h.params.Speed())
	}
	h.press(",")
	if h.params.Speed() != 0.25 {
		t.Errorf("speed below ladder = %v", h.params.Speed())
	}

	for i := 0; i < 10; i++ {
		h.press(".")
	}
	if h.params.Speed() != 5 {
		t.Errorf("speed = %v, want 5", h.params.Speed())
	}
}

func TestModelZoomKeys(t *testing.T) {
	h := newHarness(t)

	h.press("+")
	if h.params.Zoom() != 1.25 {
		t.Errorf("zoom = %v, want 1.25", h.params.Zoom())
	}
	h.press("0")
	if h.params.Zoom() != 1 {
		t.Errorf("zoom after reset = %v, want 1", h.params.Zoom())
	}
	h.press("-", "-", "-")
	if h.params.Zoom() != state.MinZoom {
		t.Errorf("zoom = %v, want %v", h.params.Zoom(), state.MinZoom)
	}
}

func TestModelWheelZoom(t *testing.T) {
	h := newHarness(t)

	h.send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := h.params.Zoom(); math.Abs(got-1.1) > 1e-9 {
		t.Errorf("zoom after wheel up = %v, want 1.1", got)
	}

	for i := 0; i < 30; i++ {
		h.send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	}
	if h.params.Zoom() != state.MinZoom {
		t.Errorf("zoom = %v, want %v", h.params.Zoom(), state.MinZoom)
	}

	if h.m.orrery.zoom != state.MinZoom {
		t.Errorf("canvas zoom = %v, not synced", h.m.orrery.zoom)
	}
}

func TestModelClickInspectsBody(t *testing.T) {
	h := newHarness(t)

	x, y, ok := h.m.orrery.ScreenPos("Terre")
	if !ok {
		t.Fatal("Terre not on canvas")
	}
	h.send(tea.MouseMsg{X: x, Y: y + headerRows, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})

	sel, ok := h.m.Selection()
	if !ok || sel.Name != "Terre" || !sel.Found {
		t.Fatalf("selection = %+v, %v", sel, ok)
	}
	if !h.cues["Terre"].playing {
		t.Error("Terre cue should be playing")
	}
	if b, _ := h.m.orrery.FocusedBody(); b.Name != "Terre" {
		t.Errorf("click should focus Terre, focus = %s", b.Name)
	}
	if !strings.Contains(h.m.View(), "◆ Terre") {
		t.Error("HUD should show the selection")
	}
}

func TestModelClickEmptySpace(t *testing.T) {
	h := newHarness(t)

	h.send(tea.MouseMsg{X: 0, Y: headerRows, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if _, ok := h.m.Selection(); ok {
		t.Error("click on empty space should not select")
	}

	// release events never select
	x, y, _ := h.m.orrery.ScreenPos("Mars")
	h.send(tea.MouseMsg{X: x, Y: y + headerRows, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if _, ok := h.m.Selection(); ok {
		t.Error("release should not select")
	}
}

func TestModelEnterInspectsFocused(t *testing.T) {
	h := newHarness(t)

	h.press("k", "enter")
	sel, _ := h.m.Selection()
	if sel.Name != "Mercure" || !sel.Found {
		t.Errorf("selection = %+v, want Mercure", sel)
	}

	// moons have no text
	h.m.orrery.Focus("Lune")
	h.press("enter")
	sel, _ = h.m.Selection()
	if sel.Name != "Lune" || sel.Found || sel.Markup != catalog.Fallback {
		t.Errorf("selection = %+v, want fallback for Lune", sel)
	}
	if !strings.Contains(h.m.View(), catalog.Fallback) {
		t.Error("HUD should show the fallback text")
	}
}

func TestModelPauseKey(t *testing.T) {
	h := newHarness(t)
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	h.send(FrameMsg(t0))
	h.press("p")
	if !h.params.Paused() {
		t.Fatal("p should pause")
	}
	h.send(FrameMsg(t0.Add(100 * time.Millisecond)))
	if got := h.progress("Terre"); got != 0 {
		t.Errorf("paused Terre moved to %v", got)
	}
	if !strings.Contains(h.m.View(), "PAUSE") {
		t.Error("status should show PAUSE")
	}

	h.send(tea.KeyMsg{Type: tea.KeySpace})
	if h.params.Paused() {
		t.Error("space should resume")
	}
}

func TestModelSoundToggle(t *testing.T) {
	h := newHarness(t)

	h.press("m")
	if h.params.SoundEnabled() {
		t.Fatal("m should disable sound")
	}
	h.press("enter")
	if h.cues["Soleil"].playing {
		t.Error("cue played while sound is off")
	}

	h.press("m")
	if !h.params.SoundEnabled() {
		t.Error("m should re-enable sound")
	}
}

func TestModelFirstKeyUnlocksAudio(t *testing.T) {
	h := newHarness(t)

	h.press("l", "l")
	for name, c := range h.cues {
		if c.plays != 1 || c.playing {
			t.Errorf("%s: plays=%d playing=%v, want primed once", name, c.plays, c.playing)
		}
	}
}

func TestModelQuit(t *testing.T) {
	h := newHarness(t)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestModelView(t *testing.T) {
	h := newHarness(t)

	view := h.m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 40 {
		t.Errorf("view has %d lines, want 40", lines)
	}
	for _, want := range []string{"LS-ORRERY", "Speed:", "Zoom:", "Sound:", "Stars:"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	h.send(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(h.m.View(), "too small") {
		t.Error("expected too-small message")
	}
}

func TestModelNotReady(t *testing.T) {
	_, reg := newTestRegistry(t)
	params := state.NewParams(state.DefaultConfig())
	dir := catalog.NewDirectory(nil)
	ctrl := control.New(params, reg, dir, audio.NewDispatcher(dir, params, nil), nil)

	m := New(ctrl, anim.NewLoop(), reg, Options{})
	if m.View() != "Initializing..." {
		t.Errorf("View before size = %q", m.View())
	}
}

func TestNextLevel(t *testing.T) {
	levels := []float64{0.5, 1, 2}

	tests := []struct {
		cur  float64
		dir  int
		want float64
	}{
		{1, 1, 2},
		{1, -1, 0.5},
		{1.3, 1, 2},
		{1.3, -1, 1},
		{2, 1, 2},
		{0.5, -1, 0.5},
		{9, 1, 9},
		{9, -1, 2},
	}

	for _, tt := range tests {
		if got := nextLevel(levels, tt.cur, tt.dir); got != tt.want {
			t.Errorf("nextLevel(%v, %d) = %v, want %v", tt.cur, tt.dir, got, tt.want)
		}
	}
}

func TestRenderProgressBar(t *testing.T) {
	tests := []struct {
		name       string
		frac       float64
		width      int
		wantFilled int
	}{
		{"empty", 0.0, 10, 0},
		{"full", 1.0, 10, 10},
		{"half", 0.5, 10, 5},
		{"over", 1.5, 10, 10},
		{"negative", -0.2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderProgressBar(tt.frac, tt.width)
			if !strings.HasPrefix(bar, "[") || !strings.HasSuffix(bar, "]") {
				t.Errorf("bar should have brackets, got %q", bar)
			}
			if n := strings.Count(bar, "█"); n != tt.wantFilled {
				t.Errorf("filled = %d, want %d", n, tt.wantFilled)
			}
		})
	}
}
