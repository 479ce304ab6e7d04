package highlight

import "github.com/go-gl/mathgl/mgl32"

// Visual is the handle of the cursor drawn around the highlighted block(s). The tracker owns it and
// updates Position and Scale; renderers only read it.
type Visual struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Style    Style
}

// Style describes how the cursor should be drawn.
type Style struct {
	// Colour is a 0xRRGGBB colour.
	Colour    uint32
	LineWidth float32
	Opacity   float32
}

// DefaultStyle is a half transparent black wireframe.
var DefaultStyle = Style{Colour: 0x000000, LineWidth: 3, Opacity: 0.5}

// Scene is the rendering surface the cursor visual is added to and removed from.
type Scene interface {
	AddVisual(v *Visual)
	RemoveVisual(v *Visual)
}

// NopScene is a Scene that ignores every call.
type NopScene struct{}

func (NopScene) AddVisual(*Visual)    {}
func (NopScene) RemoveVisual(*Visual) {}
