// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/control"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/starfield"
	"github.com/litescript/ls-orrery/internal/version"
)

// FrameMsg advances the animation by the wall time since the previous frame.
type FrameMsg time.Time

const (
	// DefaultFrame is the frame interval (about 30 fps).
	DefaultFrame = 33 * time.Millisecond

	// maxFrameStep caps a single advance so a stalled terminal does not
	// make bodies jump.
	maxFrameStep = 250 * time.Millisecond

	// wheelNotch is the scroll delta of one wheel click.
	wheelNotch = 100.0
)

// Screen layout, in rows.
const (
	headerRows = 1
	hudRows    = 4
	footerRows = 1
)

// Discrete steps offered by the keyboard.
var (
	speedLevels = []float64{0.25, 0.5, 1, 1.5, 2, 3, 5}
	zoomLevels  = []float64{0.5, 0.75, 1, 1.25, 1.5, 2, 2.5}
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// Options configures the root model.
type Options struct {
	Frame  time.Duration    // frame interval; DefaultFrame when zero
	Bodies []catalog.Body   // focus order; catalog.Bodies when nil
	Stars  []starfield.Star // background stars
	Log    *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	ctrl *control.Controller
	loop *anim.Loop
	log  *logging.Logger

	// Animation clock
	frame     time.Duration
	lastFrame time.Time
	clock     time.Duration

	// UI state
	width     int
	height    int
	ready     bool
	statusMsg string
	statusErr bool

	orrery    OrreryModel
	selection control.Selection
	selected  bool
}

// New creates the root model. loop must be the scheduler the registry's
// records were started on.
func New(ctrl *control.Controller, loop *anim.Loop, orbits *orbit.Registry, opts Options) Model {
	if opts.Frame <= 0 {
		opts.Frame = DefaultFrame
	}
	if opts.Bodies == nil {
		opts.Bodies = catalog.Bodies
	}
	if opts.Log == nil {
		opts.Log = logging.Discard()
	}

	m := Model{
		ctrl:   ctrl,
		loop:   loop,
		log:    opts.Log,
		frame:  opts.Frame,
		orrery: NewOrreryModel(orbits, opts.Bodies, opts.Stars),
	}
	m.sync()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("ls-orrery"),
		frameCmd(m.frame),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.ctrl.Gesture()

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "right", ".":
			m.stepSpeed(1)
		case "left", ",":
			m.stepSpeed(-1)

		case "+", "=":
			m.stepZoom(1)
		case "-", "_":
			m.stepZoom(-1)
		case "0":
			m.ctrl.SetZoom(1)

		case "m":
			if m.ctrl.ToggleSound() {
				m.setStatus("sound on")
			} else {
				m.setStatus("sound off")
			}

		case " ", "space", "p":
			m.ctrl.TogglePause()

		case "enter":
			if b, ok := m.orrery.FocusedBody(); ok {
				m.inspect(b.Name)
			}

		default:
			var cmd tea.Cmd
			m.orrery, cmd = m.orrery.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.orrery = m.orrery.SetSize(msg.Width, msg.Height-headerRows-hudRows-footerRows)

	case FrameMsg:
		m.advance(time.Time(msg))
		cmds = append(cmds, frameCmd(m.frame))
	}

	m.sync()
	return m, tea.Batch(cmds...)
}

// sync pushes the shared zoom and the twinkle clock into the canvas.
func (m *Model) sync() {
	m.orrery = m.orrery.SetFrame(m.ctrl.Params().Zoom(), m.clock)
}

// advance moves the scheduler forward by the time since the previous
// frame. The first frame only records the timestamp.
func (m *Model) advance(now time.Time) {
	var dt time.Duration
	if !m.lastFrame.IsZero() {
		dt = now.Sub(m.lastFrame)
	}
	m.lastFrame = now

	if dt < 0 {
		dt = 0
	}
	if dt > maxFrameStep {
		dt = maxFrameStep
	}
	m.loop.Advance(dt)
	m.clock += dt
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.Wheel(-wheelNotch)
	case tea.MouseButtonWheelDown:
		m.ctrl.Wheel(wheelNotch)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		m.ctrl.Gesture()
		if b, ok := m.orrery.BodyAt(msg.X, msg.Y-headerRows); ok {
			m.orrery.Focus(b.Name)
			m.inspect(b.Name)
		}
	}
}

func (m *Model) inspect(name string) {
	m.selection = m.ctrl.Select(name)
	m.selected = true
}

func (m *Model) stepSpeed(dir int) {
	cur := m.ctrl.Params().Speed()
	next := nextLevel(speedLevels, cur, dir)
	if next == cur {
		return
	}
	if err := m.ctrl.SetSpeed(next); err != nil {
		m.log.Warn("set speed: %v", err)
		m.statusMsg = err.Error()
		m.statusErr = true
		return
	}
	m.setStatus(fmt.Sprintf("speed %sx", formatFactor(next)))
}

func (m *Model) stepZoom(dir int) {
	m.ctrl.SetZoom(nextLevel(zoomLevels, m.ctrl.Params().Zoom(), dir))
}

func (m *Model) setStatus(s string) {
	m.statusMsg = s
	m.statusErr = false
}

// nextLevel returns the first level above (dir > 0) or below (dir < 0)
// cur. Values between levels snap to the neighbouring level; at either end
// cur is returned unchanged.
func nextLevel(levels []float64, cur float64, dir int) float64 {
	const eps = 1e-9
	if dir > 0 {
		for _, v := range levels {
			if v > cur+eps {
				return v
			}
		}
		return cur
	}
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] < cur-eps {
			return levels[i]
		}
	}
	return cur
}

// Selection returns the last inspected body, if any.
func (m Model) Selection() (control.Selection, bool) {
	return m.selection, m.selected
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 40 || m.height < 12 {
		return "Terminal too small for the orrery"
	}

	return m.renderHeader() + "\n" +
		m.orrery.View() + "\n" +
		m.renderHUD() + "\n" +
		m.renderFooter()
}

func (m Model) renderHeader() string {
	title := " ☉ LS-ORRERY"
	var b strings.Builder
	runes := []rune(title)
	for col, r := range runes {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(gradientColor(col, len(runes))))
		b.WriteString(style.Bold(true).Render(string(r)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  système solaire animé · v%s", version.Version)))
	return b.String()
}

// gradientColor returns a hex color for a position in the title gradient:
// blue to purple to magenta.
func gradientColor(col, width int) string {
	xRatio := float64(col) / float64(max(width, 1))

	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 139 + t*(217-139)
		g = 92 + t*(70-92)
		b = 246 + t*(239-246)
	}

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	return min(max(int(v), 0), 255)
}

// renderHUD renders exactly hudRows lines: the selected body, two lines of
// its text, and the parameter status.
func (m Model) renderHUD() string {
	lines := make([]string, 0, hudRows)

	width := max(m.width-4, 10)
	if m.selected {
		lines = append(lines, "  "+titleStyle.Render("◆ "+m.selection.Name))
		text := strings.Split(lipgloss.NewStyle().Width(width).Render(m.selection.Markup), "\n")
		for i := 0; i < 2; i++ {
			line := ""
			if i < len(text) {
				line = strings.TrimRight(text[i], " ")
			}
			if i == 1 && len(text) > 2 {
				line += "…"
			}
			lines = append(lines, "  "+valueStyle.Render(line))
		}
	} else {
		lines = append(lines,
			"  "+titleStyle.Render("☉ Soleil"),
			"  "+dimStyle.Render("click a body or press enter to inspect the focused one"),
			"",
		)
	}

	lines = append(lines, "  "+m.renderStatus())
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	p := m.ctrl.Params()

	sound := "off"
	if p.SoundEnabled() {
		sound = "on"
	}
	starsName := "off"
	if m.orrery.ShowStars() {
		starsName = "on"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Speed:"))
	b.WriteString(valueStyle.Render(formatFactor(p.Speed()) + "x"))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Zoom:"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.2fx", p.Zoom())))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Sound:"))
	b.WriteString(valueStyle.Render(sound))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Labels:"))
	b.WriteString(valueStyle.Render(m.orrery.LabelMode().String()))
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Stars:"))
	b.WriteString(valueStyle.Render(starsName))

	if body, ok := m.orrery.FocusedBody(); ok {
		if rec, ok := m.orrery.orbits.Find(body.Name); ok && rec.Distance() > 0 {
			b.WriteString("  ")
			b.WriteString(labelStyle.Render(body.Name + ":"))
			b.WriteString(renderProgressBar(rec.Progress()/100, 12))
		}
	}

	if p.Paused() {
		b.WriteString("  ")
		b.WriteString(m.renderShimmerText("PAUSE"))
	}
	return b.String()
}

func (m Model) renderFooter() string {
	help := dimStyle.Render("←/→: speed | +/-/wheel: zoom | j/k: focus | enter/click: inspect | m: sound | space: pause | l: labels | t: stars | q: quit")
	footer := "  " + help
	if m.statusMsg != "" {
		style := accentStyle
		if m.statusErr {
			style = errorStyle
		}
		footer += "  " + style.Render(m.statusMsg)
	}
	return footer
}

// renderProgressBar renders frac of a revolution as a bracketed bar.
func renderProgressBar(frac float64, width int) string {
	filled := int(frac * float64(width))
	filled = min(max(filled, 0), width)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + accentStyle.Render(bar) + "]"
}

// renderShimmerText renders text with a highlight sweeping across it.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	tick := int(m.clock / (80 * time.Millisecond))
	pos := tick % (len(runes) + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		switch {
		case dist <= 1:
			r8, g8, b8 = 180, 160, 220
		case dist <= 3:
			r8, g8, b8 = 140, 120, 180
		default:
			r8, g8, b8 = 80, 70, 120
		}

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)))
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

// formatFactor prints a multiplier without trailing zeros.
func formatFactor(v float64) string {
	return fmt.Sprintf("%g", v)
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
