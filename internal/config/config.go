// Package config loads render presets from YAML and the environment.
//
// A preset is validated against an embedded JSON Schema before it is decoded,
// so callers get every problem in the document at once instead of the first
// decode error.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/prismal"
)

//go:embed preset.schema.json
var presetSchema []byte

var schemaLoader = gojsonschema.NewBytesLoader(presetSchema)

// ErrInvalidPreset wraps every schema or value error of a preset.
var ErrInvalidPreset = errors.New("config: invalid preset")

// SchemeConfig is a pair of colors in preset form.
type SchemeConfig struct {
	Inner string `yaml:"inner"`
	Outer string `yaml:"outer"`
}

// StructureConfig holds the structure polygon style.
type StructureConfig struct {
	Stroke string  `yaml:"stroke"`
	Fill   string  `yaml:"fill"`
	Width  float64 `yaml:"width"`
}

// Preset is a complete render setup: the geometry, the style and the output
// size.
type Preset struct {
	Layers            int             `yaml:"layers"`
	Scale             float64         `yaml:"scale"`
	StructureVertices int             `yaml:"structure_vertices"`
	PolygonVertices   int             `yaml:"polygon_vertices"`
	Options           []string        `yaml:"options"`
	LineWidth         float64         `yaml:"line_width"`
	Background        string          `yaml:"background"`
	StrokeScheme      *SchemeConfig   `yaml:"stroke_scheme,omitempty"`
	FillScheme        *SchemeConfig   `yaml:"fill_scheme,omitempty"`
	Structure         StructureConfig `yaml:"structure"`
	Width             int             `yaml:"width"`
	Height            int             `yaml:"height"`

	// Seed fixes the random color fallback. Nil means time-seeded.
	Seed *uint64 `yaml:"seed,omitempty"`
}

// Defaults returns the built-in preset.
func Defaults() Preset {
	return Preset{
		Layers:            6,
		Scale:             1,
		StructureVertices: 6,
		PolygonVertices:   6,
		Options:           []string{"stroke-polygons"},
		LineWidth:         1,
		Background:        "#000000",
		Structure: StructureConfig{
			Stroke: "#ffffff",
			Fill:   "#ffffff1a",
			Width:  1,
		},
		Width:  800,
		Height: 800,
	}
}

// MaxScale is the largest scale a preset accepts.
const MaxScale = 100

// Env var names used as overrides.
const (
	EnvLayers = "PRISMAL_LAYERS"
	EnvScale  = "PRISMAL_SCALE"
	EnvSeed   = "PRISMAL_SEED"
)

// Parse validates data against the preset schema and decodes it on top of
// Defaults. Empty input yields the defaults.
func Parse(data []byte) (Preset, error) {
	p := Defaults()
	if len(strings.TrimSpace(string(data))) == 0 {
		return p, nil
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return p, fmt.Errorf("%w: yaml: %w", ErrInvalidPreset, err)
	}
	if err := Validate(doc); err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("%w: decode: %w", ErrInvalidPreset, err)
	}
	return p, nil
}

// Validate checks a decoded YAML or JSON document against the preset schema.
func Validate(doc any) error {
	if doc == nil {
		return nil
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: schema: %w", ErrInvalidPreset, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidPreset, strings.Join(msgs, "; "))
}

// Load reads and parses a preset file, then applies environment overrides.
// An empty path yields the defaults with overrides.
func Load(path string) (Preset, error) {
	p := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("config: read preset: %w", err)
		}
		if p, err = Parse(data); err != nil {
			return p, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := ApplyEnv(&p); err != nil {
		return p, err
	}
	return p, nil
}

// ApplyEnv overrides layers, scale and seed from PRISMAL_* variables.
func ApplyEnv(p *Preset) error {
	if v := os.Getenv(EnvLayers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvLayers, err)
		}
		p.Layers = n
	}
	if v := os.Getenv(EnvScale); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvScale, err)
		}
		p.Scale = f
	}
	if v := os.Getenv(EnvSeed); v != "" {
		s, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvSeed, err)
		}
		p.Seed = &s
	}
	return nil
}

// Validate checks the preset against the same schema Parse uses.
func (p Preset) Validate() error {
	data, err := p.Marshal()
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrInvalidPreset, err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: yaml: %w", ErrInvalidPreset, err)
	}
	return Validate(doc)
}

// Marshal encodes the preset as YAML.
func (p Preset) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// DrawingOptions parses the option names.
func (p Preset) DrawingOptions() (prismal.DrawingOptions, error) {
	opts, err := prismal.ParseDrawingOptions(p.Options...)
	if err != nil {
		return 0, fmt.Errorf("%w: options: %w", ErrInvalidPreset, err)
	}
	return opts, nil
}

// Apply writes the preset into cfg. Nothing is written when any value is
// invalid.
func (p Preset) Apply(cfg *prismal.RenderConfig) error {
	opts, err := p.DrawingOptions()
	if err != nil {
		return err
	}
	style, err := p.style()
	if err != nil {
		return err
	}
	stroke, err := p.StrokeScheme.scheme("stroke_scheme")
	if err != nil {
		return err
	}
	fill, err := p.FillScheme.scheme("fill_scheme")
	if err != nil {
		return err
	}

	cfg.SetLayerCount(p.Layers)
	cfg.SetScale(p.Scale)
	cfg.SetStructureVertexCount(p.StructureVertices)
	cfg.SetPolygonVertexCount(p.PolygonVertices)
	cfg.SetDrawingOptions(opts)
	cfg.SetStrokeScheme(stroke)
	cfg.SetFillScheme(fill)
	cfg.SetStyle(style)
	return nil
}

// RenderConfig returns a new configuration built from the preset.
func (p Preset) RenderConfig() (*prismal.RenderConfig, error) {
	cfg := prismal.NewRenderConfig()
	if err := p.Apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RendererOptions returns the renderer options implied by the preset.
func (p Preset) RendererOptions() []prismal.Option {
	if p.Seed == nil {
		return nil
	}
	return []prismal.Option{prismal.WithSeed(*p.Seed)}
}

func (p Preset) style() (prismal.Style, error) {
	s := prismal.DefaultStyle()
	s.LineWidth = p.LineWidth
	s.StructureLineWidth = p.Structure.Width

	var err error
	if s.Background, err = color("background", p.Background, s.Background); err != nil {
		return s, err
	}
	if s.StructureStroke, err = color("structure.stroke", p.Structure.Stroke, s.StructureStroke); err != nil {
		return s, err
	}
	if s.StructureFill, err = color("structure.fill", p.Structure.Fill, s.StructureFill); err != nil {
		return s, err
	}
	return s, nil
}

func (s *SchemeConfig) scheme(field string) (*prismal.ColorScheme, error) {
	if s == nil {
		return nil, nil
	}
	inner, err := color(field+".inner", s.Inner, prismal.Transparent)
	if err != nil {
		return nil, err
	}
	outer, err := color(field+".outer", s.Outer, prismal.Transparent)
	if err != nil {
		return nil, err
	}
	return prismal.Scheme(inner, outer), nil
}

// color parses v, returning def for an empty string.
func color(field, v string, def prismal.HSBA) (prismal.HSBA, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	c, err := prismal.ParseColor(v)
	if err != nil {
		return def, fmt.Errorf("%w: %s: %w", ErrInvalidPreset, field, err)
	}
	return c, nil
}

// ServerConfig holds the HTTP service settings.
type ServerConfig struct {
	Addr         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// ServerFromEnv reads PRISMAL_ADDR, PRISMAL_READ_TIMEOUT and
// PRISMAL_WRITE_TIMEOUT.
func ServerFromEnv() ServerConfig {
	return ServerConfig{
		Addr:         getEnv("PRISMAL_ADDR", ":8080"),
		ReadTimeout:  getEnvAsInt("PRISMAL_READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("PRISMAL_WRITE_TIMEOUT", 30),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
