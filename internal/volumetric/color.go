package volumetric

// Color3 is a linear RGB triple, separate from the spatial vector type.
type Color3 struct {
	R, G, B float32
}

var (
	White = Color3{1, 1, 1}
	Black = Color3{0, 0, 0}
)

func (c Color3) Add(o Color3) Color3    { return Color3{c.R + o.R, c.G + o.G, c.B + o.B} }
func (c Color3) Scale(s float32) Color3 { return Color3{c.R * s, c.G * s, c.B * s} }
