// Package common contains small value types and math helpers shared by the engine packages.
// They are plain structs and functions, not interface-wrapped objects.
package common

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Gray returns an opaque gray with all color channels set to v.
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v, A: 1}
}
