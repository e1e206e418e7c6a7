package server

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/prismal/internal/config"
)

// PresetFromQuery overlays query parameters on base. get returns "" for
// absent keys. The result is validated against the preset schema.
//
// Parameters: layers, scale, structure, vertices, options (comma list),
// stroke and fill ("inner,outer" or "none"), width, height, seed,
// line_width, background. Hex colors may omit the leading '#'.
func PresetFromQuery(base config.Preset, get func(string) string) (config.Preset, error) {
	p := base
	p.Options = append([]string(nil), base.Options...)

	ints := []struct {
		key string
		dst *int
	}{
		{"layers", &p.Layers},
		{"structure", &p.StructureVertices},
		{"vertices", &p.PolygonVertices},
		{"width", &p.Width},
		{"height", &p.Height},
	}
	for _, f := range ints {
		if v := get(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return p, fmt.Errorf("%s: %w", f.key, err)
			}
			*f.dst = n
		}
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"scale", &p.Scale},
		{"line_width", &p.LineWidth},
	}
	for _, f := range floats {
		if v := get(f.key); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, fmt.Errorf("%s: %w", f.key, err)
			}
			*f.dst = x
		}
	}

	if v := get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return p, fmt.Errorf("seed: %w", err)
		}
		p.Seed = &seed
	}

	if v, ok := lookup(get, "options"); ok {
		p.Options = nil
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				p.Options = append(p.Options, name)
			}
		}
	}

	if v := get("background"); v != "" {
		p.Background = normalizeColor(v)
	}

	var err error
	if p.StrokeScheme, err = schemeParam(get, "stroke", p.StrokeScheme); err != nil {
		return p, err
	}
	if p.FillScheme, err = schemeParam(get, "fill", p.FillScheme); err != nil {
		return p, err
	}

	return p, p.Validate()
}

// lookup treats "none" as an explicitly empty value.
func lookup(get func(string) string, key string) (string, bool) {
	v := get(key)
	if v == "" {
		return "", false
	}
	if strings.EqualFold(v, "none") {
		return "", true
	}
	return v, true
}

func schemeParam(get func(string) string, key string, current *config.SchemeConfig) (*config.SchemeConfig, error) {
	v, ok := lookup(get, key)
	if !ok {
		return current, nil
	}
	if v == "" {
		return nil, nil
	}
	parts := splitTopLevel(v)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%s: want \"inner,outer\", got %q", key, v)
	}
	return &config.SchemeConfig{Inner: normalizeColor(parts[0]), Outer: normalizeColor(parts[1])}, nil
}

// splitTopLevel splits on commas outside parentheses, so hsba(...) values
// stay whole.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}

func normalizeColor(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "#") || strings.HasPrefix(strings.ToLower(v), "hsba(") {
		return v
	}
	return "#" + v
}
