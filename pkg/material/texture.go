package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns color at given surface coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Value(u, v float64, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3D grid of cubes of side scale
type CheckerTexture struct {
	InvScale float64
	Even     Texture
	Odd      Texture
}

// NewCheckerTexture creates a checker pattern over two child textures
func NewCheckerTexture(scale float64, even, odd Texture) *CheckerTexture {
	return &CheckerTexture{
		InvScale: 1.0 / scale,
		Even:     even,
		Odd:      odd,
	}
}

// NewCheckerTextureFromColors creates a checker pattern over two solid colors
func NewCheckerTextureFromColors(scale float64, c1, c2 core.Vec3) *CheckerTexture {
	return NewCheckerTexture(scale, NewSolidColor(c1), NewSolidColor(c2))
}

// Value selects the child texture by the parity of the cell containing point
func (c *CheckerTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	xInteger := int(math.Floor(c.InvScale * point.X))
	yInteger := int(math.Floor(c.InvScale * point.Y))
	zInteger := int(math.Floor(c.InvScale * point.Z))

	// A negative odd sum gives -1 here, so comparing against zero is enough
	if (xInteger+yInteger+zInteger)%2 == 0 {
		return c.Even.Value(u, v, point)
	}
	return c.Odd.Value(u, v, point)
}
