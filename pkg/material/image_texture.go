package material

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/loaders"
)

// unitInterval is the range surface coordinates are clamped to before sampling
var unitInterval = core.NewInterval(0, 1)

// ImageTexture provides color from a 2D RGB8 image
type ImageTexture struct {
	Image *loaders.RGBImage
}

// NewImageTexture creates a new image texture
func NewImageTexture(image *loaders.RGBImage) *ImageTexture {
	return &ImageTexture{Image: image}
}

// NewImageTextureFromFile loads the image at filename. A decode failure is returned to the
// caller, which should abort before rendering.
func NewImageTextureFromFile(filename string) (*ImageTexture, error) {
	image, err := loaders.LoadRGBImage(filename)
	if err != nil {
		return nil, err
	}
	return NewImageTexture(image), nil
}

// Value samples the texture at given UV coordinates using nearest-neighbor filtering
func (t *ImageTexture) Value(u, v float64, point core.Vec3) core.Vec3 {
	// With no image data, return solid cyan as a debugging aid
	if t.Image == nil || t.Image.Width <= 0 || t.Image.Height <= 0 {
		return core.NewVec3(0, 1, 1)
	}

	// Clamp input coordinates to [0,1] x [1,0]
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	u = unitInterval.Clamp(u)
	v = 1.0 - unitInterval.Clamp(v)

	x := int(u * float64(t.Image.Width))
	y := int(v * float64(t.Image.Height))
	pixel := t.Image.PixelData(x, y)

	const colorScale = 1.0 / 255.0
	return core.NewVec3(
		colorScale*float64(pixel[0]),
		colorScale*float64(pixel[1]),
		colorScale*float64(pixel[2]),
	)
}
