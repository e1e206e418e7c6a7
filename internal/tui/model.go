// Package tui is an interactive terminal preview of a render configuration.
package tui

import (
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/prismal"
	"github.com/gogpu/prismal/internal/config"
	"github.com/gogpu/prismal/surface"
	"github.com/gogpu/prismal/surface/braille"
)

// scaleStep is the factor applied per scale key press.
const scaleStep = 1.1

// Schemes used by the color scheme toggle.
var (
	strokeGradient = prismal.Scheme(prismal.MustParseColor("#ff4d6d"), prismal.MustParseColor("#4d9dff"))
	fillGradient   = prismal.Scheme(prismal.MustParseColor("#ffd16659"), prismal.MustParseColor("#06d6a059"))
)

// Options configures the preview.
type Options struct {
	// Seed seeds the random colors; reseeding draws new seeds from it.
	Seed uint64

	// Color enables colored braille output.
	Color bool
}

// Model is the bubbletea model of the preview. The render configuration is
// shared: key presses mutate it through its setters and the driver redraws
// on every notification.
type Model struct {
	cfg    *prismal.RenderConfig
	driver *prismal.Driver
	keys   keyMap
	help   help.Model
	seeds  *rand.Rand
	p      *message.Printer
	color  bool

	width  int
	height int
	status string
}

// New creates a preview for cfg.
func New(cfg *prismal.RenderConfig, opts Options) Model {
	seeds := prismal.NewRand(opts.Seed)
	return Model{
		cfg:    cfg,
		driver: prismal.NewDriver(cfg, prismal.NewRenderer(prismal.WithRand(prismal.NewRand(seeds.Uint64()))), nil),
		keys:   defaultKeyMap(),
		help:   help.New(),
		seeds:  seeds,
		p:      message.NewPrinter(language.English),
		color:  opts.Color,
		status: "prismal ready",
	}
}

// Config returns the configuration being previewed.
func (m Model) Config() *prismal.RenderConfig { return m.cfg }

// Frame returns the last rendered frame.
func (m Model) Frame() prismal.Frame { return m.driver.LastFrame() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		w, h := m.canvasCells()
		m.driver.Resize(float64(w*braille.DotsX), float64(h*braille.DotsY))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cfg := m.cfg
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.driver.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		w, h := m.canvasCells()
		m.driver.Resize(float64(w*braille.DotsX), float64(h*braille.DotsY))
	case key.Matches(msg, m.keys.LayersUp):
		cfg.SetLayerCount(cfg.LayerCount() + 1)
	case key.Matches(msg, m.keys.LayersDown):
		cfg.SetLayerCount(cfg.LayerCount() - 1)
	case key.Matches(msg, m.keys.ScaleUp):
		cfg.SetScale(min(cfg.Scale()*scaleStep, config.MaxScale))
	case key.Matches(msg, m.keys.ScaleDown):
		cfg.SetScale(cfg.Scale() / scaleStep)
	case key.Matches(msg, m.keys.StructureUp):
		cfg.SetStructureVertexCount(cfg.StructureVertexCount() + 1)
	case key.Matches(msg, m.keys.StructureDown):
		cfg.SetStructureVertexCount(cfg.StructureVertexCount() - 1)
	case key.Matches(msg, m.keys.PolygonUp):
		cfg.SetPolygonVertexCount(cfg.PolygonVertexCount() + 1)
	case key.Matches(msg, m.keys.PolygonDown):
		cfg.SetPolygonVertexCount(cfg.PolygonVertexCount() - 1)
	case key.Matches(msg, m.keys.Schemes):
		if cfg.StrokeScheme() == nil {
			cfg.SetStrokeScheme(strokeGradient)
			cfg.SetFillScheme(fillGradient)
			m.status = "colors: schemes"
		} else {
			cfg.SetStrokeScheme(nil)
			cfg.SetFillScheme(nil)
			m.status = "colors: random"
		}
	case key.Matches(msg, m.keys.Reseed):
		seed := m.seeds.Uint64()
		m.driver.SetRenderer(prismal.NewRenderer(prismal.WithRand(prismal.NewRand(seed))))
		m.status = m.p.Sprintf("seed %d", seed)
	default:
		for _, t := range m.keys.Toggles {
			if key.Matches(msg, t.Binding) {
				cfg.SetDrawingOptions(cfg.DrawingOptions().Toggle(t.opt))
				m.status = t.opt.String() + ": " + onOff(cfg.DrawingOptions().Has(t.opt))
			}
		}
	}
	return m, nil
}

// canvasCells returns the cell size of the drawing area: everything but the
// title, status and help lines.
func (m Model) canvasCells() (w, h int) {
	helpLines := lipgloss.Height(m.help.View(m.keys))
	return max(m.width, 1), max(m.height-2-helpLines, 1)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	w, h := m.canvasCells()
	canvas, err := braille.New(surface.Options{Width: w, Height: h, Color: m.color})
	if err != nil {
		return err.Error()
	}
	m.driver.LastFrame().Paint(canvas)

	var b strings.Builder
	b.WriteString(titleStyle.Render(" prismal ") + statusStyle.Render(m.status))
	b.WriteByte('\n')
	b.WriteString(canvas.String())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) statusLine() string {
	cfg := m.cfg
	stats := m.driver.LastFrame().Stats
	line := m.p.Sprintf("layers %d/%d  scale %.2f  structure %d  polygon %d  %d polygons  %d culled",
		stats.LayersDrawn, cfg.LayerCount(), cfg.Scale(),
		cfg.StructureVertexCount(), cfg.PolygonVertexCount(),
		stats.PolygonsDrawn, stats.PolygonsCulled)
	return statusStyle.Render(line) + "  " + onStyle.Render(cfg.DrawingOptions().String())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
