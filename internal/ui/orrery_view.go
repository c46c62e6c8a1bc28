package ui

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/starfield"
)

// Canvas colors
const (
	colorStar  = "238"
	colorRing  = "236"
	colorLabel = "249"
	colorFocus = "229"
)

// pickRadius is how far from a body, in cells, a click still selects it.
const pickRadius = 2.0

// LabelMode controls how body labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only the focused body
	LabelAll                      // Every body
)

func (l LabelMode) String() string {
	switch l {
	case LabelNone:
		return "off"
	case LabelFocused:
		return "focus"
	default:
		return "all"
	}
}

// OrreryModel renders the animated system onto a character canvas.
type OrreryModel struct {
	width  int
	height int

	orbits *orbit.Registry
	bodies []catalog.Body
	stars  []starfield.Star

	zoom  float64
	clock time.Duration // drives star twinkle

	focusIdx  int
	labelMode LabelMode
	showStars bool
}

// NewOrreryModel creates the view over the registry. bodies gives the focus
// order; bodies without an orbit record are skipped when drawing.
func NewOrreryModel(orbits *orbit.Registry, bodies []catalog.Body, stars []starfield.Star) OrreryModel {
	return OrreryModel{
		orbits:    orbits,
		bodies:    bodies,
		stars:     stars,
		zoom:      1,
		labelMode: LabelFocused,
		showStars: true,
	}
}

// SetSize updates the canvas size.
func (m OrreryModel) SetSize(width, height int) OrreryModel {
	m.width = width
	m.height = height
	return m
}

// SetFrame updates the zoom factor and the twinkle clock.
func (m OrreryModel) SetFrame(zoom float64, clock time.Duration) OrreryModel {
	m.zoom = zoom
	m.clock = clock
	return m
}

// Update handles view-local keys.
func (m OrreryModel) Update(msg tea.Msg) (OrreryModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "[":
			m.focusPrev()
		case "k", "]":
			m.focusNext()
		case "l":
			m.labelMode = (m.labelMode + 1) % 3
		case "t":
			m.showStars = !m.showStars
		}
	}
	return m, nil
}

func (m *OrreryModel) focusNext() {
	if len(m.bodies) == 0 {
		return
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.bodies)
}

func (m *OrreryModel) focusPrev() {
	if len(m.bodies) == 0 {
		return
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.bodies) - 1
	}
}

// Focus moves the focus to the named body.
func (m *OrreryModel) Focus(name string) bool {
	for i, b := range m.bodies {
		if b.Name == name {
			m.focusIdx = i
			return true
		}
	}
	return false
}

// FocusedBody returns the focused body.
func (m OrreryModel) FocusedBody() (catalog.Body, bool) {
	if m.focusIdx < 0 || m.focusIdx >= len(m.bodies) {
		return catalog.Body{}, false
	}
	return m.bodies[m.focusIdx], true
}

// LabelMode returns the current label mode.
func (m OrreryModel) LabelMode() LabelMode { return m.labelMode }

// ShowStars returns whether the starfield is visible.
func (m OrreryModel) ShowStars() bool { return m.showStars }

func (m OrreryModel) canvasSize() (int, int) {
	return max(m.width, 1), max(m.height, 5)
}

// projection maps layout units to canvas cells. Layout y grows downward,
// like screen rows. Rows are twice as tall as columns are wide, so y is
// halved.
type projection struct {
	cx, cy int
	scale  float64
}

func (m OrreryModel) projection() projection {
	w, h := m.canvasSize()
	cx, cy := w/2, h/2
	// fit the outermost orbit at zoom 1
	fit := float64(min(cx, cy*2)) * 0.95
	return projection{cx: cx, cy: cy, scale: fit / catalog.SceneRadius() * m.zoom}
}

func (p projection) toScreen(v orbit.Vec2) (int, int) {
	return p.cx + int(math.Round(v.X*p.scale)), p.cy + int(math.Round(v.Y*p.scale*0.5))
}

// bodyPos tracks a body's screen position.
type bodyPos struct {
	x, y      int
	body      catalog.Body
	isFocused bool
}

// positions returns screen positions in draw order: moons, then planets,
// then the Sun, so the Sun is always on top.
func (m OrreryModel) positions() []bodyPos {
	p := m.projection()
	var out []bodyPos
	for _, kind := range []catalog.Kind{catalog.KindMoon, catalog.KindPlanet, catalog.KindSun} {
		for i, b := range m.bodies {
			if b.Kind != kind {
				continue
			}
			rec, ok := m.orbits.Find(b.Name)
			if !ok {
				continue
			}
			x, y := p.toScreen(rec.Position())
			out = append(out, bodyPos{x: x, y: y, body: b, isFocused: i == m.focusIdx})
		}
	}
	return out
}

// ScreenPos returns the canvas cell of the named body.
func (m OrreryModel) ScreenPos(name string) (int, int, bool) {
	for _, pos := range m.positions() {
		if pos.body.Name == name {
			return pos.x, pos.y, true
		}
	}
	return 0, 0, false
}

// BodyAt returns the body nearest to canvas cell (x, y) within pickRadius.
// On a tie the body drawn on top wins.
func (m OrreryModel) BodyAt(x, y int) (catalog.Body, bool) {
	positions := m.positions()
	best := -1
	bestDist := pickRadius
	for i := len(positions) - 1; i >= 0; i-- {
		pos := positions[i]
		d := math.Hypot(float64(pos.x-x), float64(pos.y-y))
		if d < bestDist || (best < 0 && d <= bestDist) {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return catalog.Body{}, false
	}
	return positions[best].body, true
}

// View renders the canvas.
func (m OrreryModel) View() string {
	w, h := m.canvasSize()

	grid := make([][]rune, h)
	colors := make([][]string, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		colors[y] = make([]string, w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	p := m.projection()

	if m.showStars {
		m.drawStarfield(grid, colors)
	}

	for _, b := range m.bodies {
		if b.Kind == catalog.KindPlanet {
			drawCircle(grid, colors, p.cx, p.cy, b.Distance*p.scale)
		}
	}

	var visible []bodyPos
	for _, pos := range m.positions() {
		if pos.x < 0 || pos.x >= w || pos.y < 0 || pos.y >= h {
			continue
		}
		grid[pos.y][pos.x] = bodyGlyph(pos.body, pos.isFocused)
		colors[pos.y][pos.x] = pos.body.Color
		if pos.isFocused {
			colors[pos.y][pos.x] = colorFocus
		}
		visible = append(visible, pos)
	}

	m.renderLabels(grid, colors, visible)

	return renderGrid(grid, colors)
}

// drawStarfield places the background stars on empty cells. Stars sit at
// fixed viewport fractions and ignore zoom.
func (m OrreryModel) drawStarfield(grid [][]rune, colors [][]string) {
	h := len(grid)
	w := len(grid[0])
	for _, s := range m.stars {
		x := int(s.X * float64(w))
		y := int(s.Y * float64(h))
		if x < 0 || x >= w || y < 0 || y >= h || grid[y][x] != ' ' {
			continue
		}
		if g := s.Glyph(m.clock); g != ' ' {
			grid[y][x] = g
			colors[y][x] = colorStar
		}
	}
}

// drawCircle traces an orbit ring of radius r cells around (cx, cy).
func drawCircle(grid [][]rune, colors [][]string, cx, cy int, r float64) {
	if r < 1 {
		return
	}

	h := len(grid)
	w := len(grid[0])

	steps := int(2 * math.Pi * r)
	if steps < 8 {
		steps = 8
	}
	if steps > 360 {
		steps = 360
	}

	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		x := cx + int(math.Round(r*math.Cos(theta)))
		y := cy + int(math.Round(r*math.Sin(theta)*0.5))

		if x >= 0 && x < w && y >= 0 && y < h && (grid[y][x] == ' ' || isStarGlyph(grid[y][x])) {
			grid[y][x] = '·'
			colors[y][x] = colorRing
		}
	}
}

func isStarGlyph(r rune) bool {
	return r == '∗' || r == '˙'
}

// renderLabels writes body names to the right of their glyphs.
func (m OrreryModel) renderLabels(grid [][]rune, colors [][]string, positions []bodyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}
	h := len(grid)
	w := len(grid[0])

	for _, pos := range positions {
		if m.labelMode == LabelFocused && !pos.isFocused {
			continue
		}

		labelX := pos.x + 2
		labelY := pos.y
		if labelY < 0 || labelY >= h || labelX >= w {
			continue
		}

		text := pos.body.Name
		color := colorLabel
		if pos.isFocused {
			text = "◄ " + text
			color = colorFocus
		}

		x := labelX
		for _, r := range text {
			if x >= w {
				break
			}
			// labels may cover rings and stars, never bodies
			if c := grid[labelY][x]; c == ' ' || c == '·' || isStarGlyph(c) {
				grid[labelY][x] = r
				colors[labelY][x] = color
			}
			x++
		}
	}
}

func bodyGlyph(b catalog.Body, focused bool) rune {
	switch b.Kind {
	case catalog.KindSun:
		return '☉'
	case catalog.KindMoon:
		if focused {
			return '◎'
		}
		return '∘'
	default:
		if b.Class == catalog.ClassGiant {
			if focused {
				return '◉'
			}
			return '○'
		}
		if focused {
			return '●'
		}
		return '•'
	}
}

// renderGrid styles each run of same-colored cells once.
func renderGrid(grid [][]rune, colors [][]string) string {
	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteRune('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && colors[y][x] == colors[y][start] {
				continue
			}
			run := string(row[start:x])
			if c := colors[y][start]; c != "" {
				run = lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render(run)
			}
			b.WriteString(run)
			start = x
		}
	}
	return b.String()
}
