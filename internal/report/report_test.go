package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-orrery/internal/anim"
	"github.com/litescript/ls-orrery/internal/catalog"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

func newSystem(t *testing.T) (*anim.Loop, *orbit.Registry) {
	t.Helper()
	loop := anim.NewLoop()
	reg := orbit.NewRegistry(loop)
	for _, b := range catalog.Bodies {
		if _, err := reg.Create(b.Name, b.Distance, b.Period, b.Parent, 1); err != nil {
			t.Fatalf("create %s: %v", b.Name, err)
		}
	}
	return loop, reg
}

func findBody(bodies []BodyExport, name string) (BodyExport, bool) {
	for _, b := range bodies {
		if b.Name == name {
			return b, true
		}
	}
	return BodyExport{}, false
}

func TestExportSnapshot(t *testing.T) {
	loop, reg := newSystem(t)
	// a quarter of Terre's year; Lune completes its 2.5s orbit
	loop.Advance(2500 * time.Millisecond)

	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	export := ExportSnapshot(reg, state.NewParams(state.DefaultConfig()).Snapshot(), 2500*time.Millisecond, at)

	if export.Timestamp != at {
		t.Errorf("Timestamp = %v, want %v", export.Timestamp, at)
	}
	if export.Simulated != "2.5s" {
		t.Errorf("Simulated = %q, want 2.5s", export.Simulated)
	}
	if len(export.Bodies) != len(catalog.Bodies) {
		t.Fatalf("Bodies = %d, want %d", len(export.Bodies), len(catalog.Bodies))
	}

	earth, _ := findBody(export.Bodies, "Terre")
	if math.Abs(earth.X) > 1e-6 || math.Abs(earth.Y-210) > 1e-6 {
		t.Errorf("Terre at (%v,%v), want (0,210)", earth.X, earth.Y)
	}
	if math.Abs(earth.AngleDeg-90) > 1e-6 {
		t.Errorf("Terre angle = %v, want 90", earth.AngleDeg)
	}
	if earth.Kind != "planet" || earth.Parent != "" || earth.BasePeriodMs != 10000 {
		t.Errorf("Terre = %+v", earth)
	}

	moon, _ := findBody(export.Bodies, "Lune")
	if moon.Parent != "Terre" || moon.Kind != "moon" {
		t.Errorf("Lune = %+v", moon)
	}
	if math.Abs(moon.X-28) > 1e-6 || math.Abs(moon.Y-210) > 1e-6 {
		t.Errorf("Lune at (%v,%v), want (28,210)", moon.X, moon.Y)
	}
}

func TestExportSnapshot_Nil(t *testing.T) {
	at := time.Now()
	export := ExportSnapshot(nil, state.Snapshot{}, 0, at)

	if export.Timestamp != at {
		t.Errorf("Timestamp = %v, want %v", export.Timestamp, at)
	}
	if len(export.Bodies) != 0 {
		t.Error("Bodies should be empty for a nil registry")
	}
}

func TestSnapshotExport_WriteJSON(t *testing.T) {
	_, reg := newSystem(t)
	export := ExportSnapshot(reg, state.Snapshot{Speed: 2, Zoom: 1, SoundEnabled: true}, time.Second, time.Unix(0, 0).UTC())

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var parsed struct {
		Params struct {
			Speed float64 `json:"speed"`
		} `json:"params"`
		Bodies []map[string]interface{} `json:"bodies"`
	}
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if parsed.Params.Speed != 2 {
		t.Errorf("params.speed = %v, want 2", parsed.Params.Speed)
	}
	if len(parsed.Bodies) != len(catalog.Bodies) {
		t.Errorf("bodies = %d", len(parsed.Bodies))
	}
	if !strings.Contains(buf.String(), "  ") {
		t.Error("JSON should be indented")
	}
	if strings.Contains(buf.String(), `"parent": ""`) {
		t.Error("empty parent should be omitted")
	}
}

func TestGenerateSummaryRows(t *testing.T) {
	_, reg := newSystem(t)
	if err := reg.RetuneAll(2); err != nil {
		t.Fatal(err)
	}

	rows := GenerateSummaryRows(reg)
	if len(rows) != len(catalog.Bodies) {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Name != "Soleil" || rows[0].Parent != "" {
		t.Errorf("first row = %+v", rows[0])
	}
	for _, r := range rows {
		if r.Name == "Mars" && r.Period != 6500*time.Millisecond {
			t.Errorf("Mars period at 2x = %v, want 6.5s", r.Period)
		}
	}

	if GenerateSummaryRows(nil) != nil {
		t.Error("expected nil rows for nil registry")
	}
}

func TestWriteSummaryTable(t *testing.T) {
	_, reg := newSystem(t)

	var buf bytes.Buffer
	WriteSummaryTable(&buf, reg, state.Snapshot{Speed: 1}, 0)
	output := buf.String()

	for _, want := range []string{"Orrery @ t+0s", "Body", "Ganymède", "Terre", "Total: 18 bodies"} {
		if !strings.Contains(output, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, orbit.NewRegistry(anim.NewLoop()), state.Snapshot{Speed: 1}, 0)
	if !strings.Contains(buf.String(), "No bodies") {
		t.Error("empty registry should report no bodies")
	}
}

func TestWriteMiniMap(t *testing.T) {
	_, reg := newSystem(t)

	var buf bytes.Buffer
	WriteMiniMap(&buf, reg, DefaultMiniMapConfig())
	output := buf.String()

	if !strings.Contains(output, "┌") || !strings.Contains(output, "┘") {
		t.Error("mini map should have box borders")
	}
	if !strings.Contains(output, "☉") {
		t.Error("mini map should show the Sun")
	}
	if !strings.Contains(output, "8 Neptune") {
		t.Error("legend should number Neptune 8")
	}
	if strings.Contains(output, "Lune") {
		t.Error("moons are not mapped")
	}
}

func TestWriteMiniMap_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteMiniMap(&buf, nil, DefaultMiniMapConfig())
	if !strings.Contains(buf.String(), "No bodies") {
		t.Error("nil registry should show no bodies message")
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"Ganymède", 8, "Ganymède"},
		{"Ganymède", 6, "Gany.."},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncateStr(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
