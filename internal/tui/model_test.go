package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/internal/config"
	"github.com/gogpu/prismal/surface/braille"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sized(t *testing.T) Model {
	t.Helper()
	cfg := prismal.NewRenderConfig()
	cfg.SetLayerCount(3)
	m := New(cfg, Options{Seed: 1})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	return next.(Model)
}

func press(m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model = m
	for _, k := range keys {
		next, cmd = next.(Model).Update(k)
	}
	return next.(Model), cmd
}

func TestResizeRendersFrame(t *testing.T) {
	m := sized(t)
	f := m.Frame()
	if f.Pass == 0 {
		t.Fatal("resize did not render")
	}
	w, h := m.canvasCells()
	if f.Bounds.Width != float64(w*braille.DotsX) || f.Bounds.Height != float64(h*braille.DotsY) {
		t.Errorf("bounds = %+v, want %dx%d cells in dots", f.Bounds, w, h)
	}
	if f.Stats.PolygonsDrawn == 0 {
		t.Error("frame has no polygons")
	}
}

func TestKeysMutateConfig(t *testing.T) {
	m := sized(t)
	cfg := m.Config()

	tests := []struct {
		key   string
		check func() bool
	}{
		{"+", func() bool { return cfg.LayerCount() == 4 }},
		{"-", func() bool { return cfg.LayerCount() == 3 }},
		{"s", func() bool { return cfg.StructureVertexCount() == 4 }},
		{"S", func() bool { return cfg.StructureVertexCount() == 3 }},
		{"p", func() bool { return cfg.PolygonVertexCount() == 4 }},
		{"P", func() bool { return cfg.PolygonVertexCount() == 3 }},
		{"]", func() bool { return cfg.Scale() > 1 }},
		{"[", func() bool { return cfg.Scale() > 0.999 && cfg.Scale() < 1.001 }},
		{"1", func() bool { return cfg.DrawingOptions().Has(prismal.ReverseOrder) }},
		{"4", func() bool { return cfg.DrawingOptions().Has(prismal.FillPolygons) }},
		{"2", func() bool { return !cfg.DrawingOptions().Has(prismal.StrokePolygons) }},
		{"c", func() bool { return cfg.StrokeScheme() != nil && cfg.FillScheme() != nil }},
		{"c", func() bool { return cfg.StrokeScheme() == nil && cfg.FillScheme() == nil }},
	}
	for _, tt := range tests {
		before := m.Frame().Pass
		m, _ = press(m, runes(tt.key))
		if !tt.check() {
			t.Errorf("after %q: config not updated", tt.key)
		}
		if m.Frame().Pass <= before {
			t.Errorf("after %q: no frame rendered", tt.key)
		}
	}
}

func TestLayersDoNotDropBelowOne(t *testing.T) {
	m := sized(t)
	m, _ = press(m, runes("-"), runes("-"), runes("-"), runes("-"))
	if got := m.Config().LayerCount(); got != prismal.MinLayerCount {
		t.Errorf("LayerCount() = %d, want %d", got, prismal.MinLayerCount)
	}
}

func TestScaleStopsAtMax(t *testing.T) {
	m := sized(t)
	keys := make([]tea.KeyMsg, 60)
	for i := range keys {
		keys[i] = runes("]")
	}
	m, _ = press(m, keys...)
	if got := m.Config().Scale(); got != config.MaxScale {
		t.Errorf("Scale() = %v, want %v", got, float64(config.MaxScale))
	}
}

func TestReseedChangesColors(t *testing.T) {
	m := sized(t)
	before := m.Frame().Drawables[0].StrokeColor
	m, _ = press(m, runes("n"))
	if m.Frame().Drawables[0].StrokeColor == before {
		t.Error("reseed kept the same random colors")
	}
	if !strings.HasPrefix(m.status, "seed ") {
		t.Errorf("status = %q", m.status)
	}
}

func TestHelpToggleResizesCanvas(t *testing.T) {
	m := sized(t)
	_, h := m.canvasCells()
	m, _ = press(m, runes("?"))
	if _, h2 := m.canvasCells(); h2 >= h {
		t.Errorf("full help should shrink the canvas: %d -> %d", h, h2)
	}
	if m.Frame().Bounds.Height != float64(func() int { _, h := m.canvasCells(); return h }()*braille.DotsY) {
		t.Error("driver bounds not updated after help toggle")
	}
}

func TestQuit(t *testing.T) {
	m := sized(t)
	_, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestView(t *testing.T) {
	if New(prismal.NewRenderConfig(), Options{}).View() != "" {
		t.Error("view before the first size message should be empty")
	}

	m := sized(t)
	out := m.View()
	if !strings.Contains(out, "prismal") || !strings.Contains(out, "layers") {
		t.Errorf("view missing title or status:\n%s", out)
	}
	if !strings.ContainsFunc(out, func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("view contains no braille dots")
	}
}

func TestStatusLine(t *testing.T) {
	m := sized(t)
	line := m.statusLine()
	for _, want := range []string{"layers ", "scale 1.00", "structure 3", "polygon 3", "stroke-polygons"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q missing %q", line, want)
		}
	}
	if got := m.p.Sprintf("%d polygons", 12345); got != "12,345 polygons" {
		t.Errorf("printer output = %q, want digit grouping", got)
	}
}
