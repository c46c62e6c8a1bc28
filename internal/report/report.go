// Package report renders the orbit state for headless output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

// SnapshotExport is the JSON-serializable representation of the system.
type SnapshotExport struct {
	Timestamp time.Time      `json:"timestamp"`
	Simulated string         `json:"simulated"`
	Params    state.Snapshot `json:"params"`
	Bodies    []BodyExport   `json:"bodies"`
}

// BodyExport is a JSON-friendly orbit record.
type BodyExport struct {
	Name              string  `json:"name"`
	Kind              string  `json:"kind"`
	Parent            string  `json:"parent,omitempty"`
	Distance          float64 `json:"distance"`
	BasePeriodMs      int64   `json:"base_period_ms"`
	EffectivePeriodMs int64   `json:"effective_period_ms"`
	Progress          float64 `json:"progress"`
	X                 float64 `json:"x"`
	Y                 float64 `json:"y"`
	AngleDeg          float64 `json:"angle_deg"`
	Paused            bool    `json:"paused"`
}

// ExportSnapshot converts the registry to an exportable format. simulated
// is how long the system has been animated.
func ExportSnapshot(orbits *orbit.Registry, params state.Snapshot, simulated time.Duration, at time.Time) *SnapshotExport {
	export := &SnapshotExport{
		Timestamp: at,
		Simulated: simulated.String(),
		Params:    params,
	}
	if orbits == nil {
		return export
	}

	for _, r := range orbits.Records() {
		pos := r.Position()
		b := BodyExport{
			Name:              r.Name(),
			Kind:              kindOf(r),
			Distance:          r.Distance(),
			BasePeriodMs:      r.BasePeriod().Milliseconds(),
			EffectivePeriodMs: r.EffectivePeriod().Milliseconds(),
			Progress:          r.Progress(),
			X:                 pos.X,
			Y:                 pos.Y,
			AngleDeg:          angleDeg(r),
			Paused:            r.Paused(),
		}
		if p := r.Parent(); p != nil {
			b.Parent = p.Name()
		}
		export.Bodies = append(export.Bodies, b)
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func kindOf(r *orbit.Record) string {
	if b, ok := catalog.BodyByName(r.Name()); ok {
		return b.Kind.String()
	}
	if r.Parent() != nil {
		return catalog.KindMoon.String()
	}
	return catalog.KindPlanet.String()
}

// angleDeg is the orbital angle around the parent (or the origin), in
// [0, 360). Layout y grows downward, so angles run clockwise on screen.
func angleDeg(r *orbit.Record) float64 {
	rel := r.Position()
	if p := r.Parent(); p != nil {
		rel = rel.Sub(p.Position())
	}
	if rel.Norm() == 0 {
		return 0
	}
	deg := math.Atan2(rel.Y, rel.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name     string
	Parent   string
	Distance float64
	Period   time.Duration
	Progress float64
	Angle    float64
	X, Y     float64
}

// GenerateSummaryRows creates summary rows from the registry.
func GenerateSummaryRows(orbits *orbit.Registry) []SummaryRow {
	if orbits == nil {
		return nil
	}

	var rows []SummaryRow
	for _, r := range orbits.Records() {
		row := SummaryRow{
			Name:     r.Name(),
			Distance: r.Distance(),
			Period:   r.EffectivePeriod(),
			Progress: r.Progress(),
			Angle:    angleDeg(r),
			X:        r.Position().X,
			Y:        r.Position().Y,
		}
		if p := r.Parent(); p != nil {
			row.Parent = p.Name()
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, orbits *orbit.Registry, params state.Snapshot, simulated time.Duration) {
	rows := GenerateSummaryRows(orbits)

	fmt.Fprintf(w, "Orrery @ t+%s  (speed %gx)\n", simulated, params.Speed)
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-10s %-8s %6s %8s %7s %7s %8s %8s\n",
		"Body", "Parent", "Dist", "Period", "Orbit", "Angle", "X", "Y")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, r := range rows {
		parent := r.Parent
		if parent == "" {
			parent = "-"
		}
		fmt.Fprintf(w, "%-10s %-8s %6.0f %8s %6.1f%% %6.1f° %8.1f %8.1f\n",
			truncateStr(r.Name, 10),
			truncateStr(parent, 8),
			r.Distance,
			r.Period.Round(10*time.Millisecond),
			r.Progress,
			r.Angle,
			r.X,
			r.Y,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(rows))
}

// MiniMapConfig sizes the mini map.
type MiniMapConfig struct {
	Width  int // inner width in cells
	Height int // inner height in rows
}

// DefaultMiniMapConfig returns a map that fits an 80 column terminal.
func DefaultMiniMapConfig() MiniMapConfig {
	return MiniMapConfig{Width: 41, Height: 21}
}

// WriteMiniMap draws a boxed top-down map of the Sun and planets. Planets
// are numbered from the inside out and listed in a legend below the map.
func WriteMiniMap(w io.Writer, orbits *orbit.Registry, cfg MiniMapConfig) {
	if orbits == nil || orbits.Len() == 0 {
		fmt.Fprintln(w, "No bodies to map")
		return
	}
	if cfg.Width < 5 || cfg.Height < 5 {
		cfg = DefaultMiniMapConfig()
	}

	grid := make([][]rune, cfg.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", cfg.Width))
	}

	cx, cy := cfg.Width/2, cfg.Height/2
	scale := float64(min(cx, cy*2)) / catalog.SceneRadius()

	var legend []string
	n := 0
	for _, r := range orbits.Records() {
		if r.Parent() != nil {
			continue
		}
		pos := r.Position()
		x := cx + int(math.Round(pos.X*scale))
		y := cy + int(math.Round(pos.Y*scale*0.5))
		if x < 0 || x >= cfg.Width || y < 0 || y >= cfg.Height {
			continue
		}

		if r.Distance() == 0 {
			grid[y][x] = '☉'
			continue
		}
		n++
		mark := rune('0' + n%10)
		if grid[y][x] == ' ' {
			grid[y][x] = mark
		}
		legend = append(legend, fmt.Sprintf("%c %s", mark, r.Name()))
	}

	fmt.Fprintln(w, "┌"+strings.Repeat("─", cfg.Width)+"┐")
	for _, row := range grid {
		fmt.Fprintln(w, "│"+string(row)+"│")
	}
	fmt.Fprintln(w, "└"+strings.Repeat("─", cfg.Width)+"┘")
	fmt.Fprintln(w, strings.Join(legend, "  "))
}

// truncateStr shortens s to maxLen runes.
func truncateStr(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-2]) + ".."
}
