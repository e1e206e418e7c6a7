package prismal

// ColorScheme is a pair of colors blended across the layers: Inner is used
// for layer 0 and Outer for the outermost layer.
type ColorScheme struct {
	Inner HSBA
	Outer HSBA
}

// Scheme is a convenience function to create a *ColorScheme.
func Scheme(inner, outer HSBA) *ColorScheme {
	return &ColorScheme{Inner: inner, Outer: outer}
}

// ResolveColor returns the color of the layer with the given index.
//
// Each HSBA component is blended linearly: with segments = layerCount-1, the
// inner color contributes (segments-layerIndex)/segments and the outer color
// layerIndex/segments. A single layer, or identical inner and outer colors,
// yields Inner unchanged.
func ResolveColor(scheme ColorScheme, layerIndex, layerCount int) HSBA {
	if layerCount <= 1 || scheme.Inner == scheme.Outer {
		return scheme.Inner
	}

	segments := float64(layerCount - 1)
	innerPortion := (segments - float64(layerIndex)) / segments
	outerPortion := float64(layerIndex) / segments

	mix := func(inner, outer float64) float64 {
		return innerPortion*inner + outerPortion*outer
	}
	return HSBA{
		H: mix(scheme.Inner.H, scheme.Outer.H),
		S: mix(scheme.Inner.S, scheme.Outer.S),
		B: mix(scheme.Inner.B, scheme.Outer.B),
		A: mix(scheme.Inner.A, scheme.Outer.A),
	}
}
