package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/gogpu/prismal"
)

type keyMap struct {
	LayersUp      key.Binding
	LayersDown    key.Binding
	ScaleUp       key.Binding
	ScaleDown     key.Binding
	StructureUp   key.Binding
	StructureDown key.Binding
	PolygonUp     key.Binding
	PolygonDown   key.Binding
	Toggles       []toggle
	Schemes       key.Binding
	Reseed        key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// toggle flips one drawing option.
type toggle struct {
	key.Binding
	opt prismal.DrawingOptions
}

func newToggle(k string, opt prismal.DrawingOptions) toggle {
	return toggle{
		Binding: key.NewBinding(key.WithKeys(k), key.WithHelp(k, opt.String())),
		opt:     opt,
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		LayersUp:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more layers")),
		LayersDown:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "fewer layers")),
		ScaleUp:       key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "scale up")),
		ScaleDown:     key.NewBinding(key.WithKeys("["), key.WithHelp("[", "scale down")),
		StructureUp:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s/S", "structure vertices")),
		StructureDown: key.NewBinding(key.WithKeys("S")),
		PolygonUp:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p/P", "polygon vertices")),
		PolygonDown:   key.NewBinding(key.WithKeys("P")),
		Toggles: []toggle{
			newToggle("1", prismal.ReverseOrder),
			newToggle("2", prismal.StrokePolygons),
			newToggle("3", prismal.StrokeStructure),
			newToggle("4", prismal.FillPolygons),
			newToggle("5", prismal.FillStructure),
			newToggle("6", prismal.ReplaceWithCircles),
		},
		Schemes: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "color schemes")),
		Reseed:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new colors")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LayersUp, k.LayersDown, k.Schemes, k.Reseed, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	toggles := make([]key.Binding, len(k.Toggles))
	for i, t := range k.Toggles {
		toggles[i] = t.Binding
	}
	return [][]key.Binding{
		{k.LayersUp, k.LayersDown, k.ScaleUp, k.ScaleDown},
		{k.StructureUp, k.PolygonUp, k.Schemes, k.Reseed},
		toggles,
		{k.Help, k.Quit},
	}
}
