package components

// Body holds physical properties of a ball.
type Body struct {
	Radius float32
}

// Tint is an RGBA fill color with every channel in [0,1].
type Tint struct {
	R, G, B, A float32
}

// Opaque returns a tint with the given channels and full alpha.
func Opaque(r, g, b float32) Tint {
	return Tint{R: r, G: g, B: b, A: 1}
}
