// Package palette provides the key/value styling applied to rendered process diagnostics.
package palette

import "github.com/fatih/color"

// Palette holds the styles used for the key/value pairs which make up a rendered diagnostic.
type Palette struct {
	Key   *color.Color
	Value *color.Color
}

// Current returns the palette used when rendering diagnostics.
//
// NOTE: Styling is automatically disabled when the output is not a terminal, or when the 'NO_COLOR' environment
// variable is set.
func Current() Palette {
	return Palette{
		Key:   color.New(color.FgBlue, color.Bold),
		Value: color.New(color.FgYellow, color.Bold),
	}
}

// Pair renders a single 'key=value' diagnostic pair.
func (p Palette) Pair(key, value string) string {
	return p.Key.Sprint(key) + "=" + p.Value.Sprint(value)
}
