// Package particles builds the tsparticles options for the decorative
// background fields. Nothing is computed from them server side.
package particles

import "github.com/adekomen/portfolio/internal/viewstate"

type Value[T any] struct {
	Value T `json:"value"`
}

type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Density struct {
	Enable bool `json:"enable"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
}

type Number struct {
	Value   int      `json:"value"`
	Density *Density `json:"density,omitempty"`
}

type OutModes struct {
	Default string `json:"default"`
}

type Move struct {
	Enable    bool     `json:"enable"`
	Speed     float64  `json:"speed"`
	Direction string   `json:"direction"`
	OutModes  OutModes `json:"outModes"`
}

type Shape struct {
	Type string `json:"type"`
}

type Particles struct {
	Number  Number         `json:"number"`
	Color   Value[string]  `json:"color"`
	Shape   Shape          `json:"shape"`
	Opacity Value[float64] `json:"opacity"`
	Size    Value[Range]   `json:"size"`
	Move    Move           `json:"move"`
}

type Background struct {
	Color Value[string] `json:"color"`
}

// Options is the subset of the tsparticles options object the site uses.
type Options struct {
	Background *Background `json:"background,omitempty"`
	Particles  Particles   `json:"particles"`
}

func circles(n int, color string, opacity, speed float64) Particles {
	return Particles{
		Number:  Number{Value: n},
		Shape:   Shape{Type: "circle"},
		Color:   Value[string]{color},
		Opacity: Value[float64]{opacity},
		Size:    Value[Range]{Range{Min: 1, Max: 3}},
		Move: Move{
			Enable:    true,
			Speed:     speed,
			Direction: "none",
			OutModes:  OutModes{Default: "out"},
		},
	}
}

// ForTheme returns the hero background field for theme.
func ForTheme(theme viewstate.Theme) Options {
	bg, fg := "#f3f4f6", "#3b82f6"
	if theme.IsDark() {
		bg, fg = "#111827", "#60a5fa"
	}
	p := circles(50, fg, 0.5, 1)
	p.Number.Density = &Density{Enable: true, Width: 800, Height: 800}
	return Options{
		Background: &Background{Color: Value[string]{bg}},
		Particles:  p,
	}
}

// Footer returns the lighter field drawn behind the footer.
func Footer() Options {
	return Options{Particles: circles(20, "#ffffff", 0.3, 0.5)}
}
