package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Intensity bounds applied after gamma correction, so that 1.0 maps to 255 rather than 256
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2 correction. Negative and NaN components map to 0.
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// Quantize converts a linear color component to an 8-bit gamma-corrected value
func Quantize(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(linearToGamma(linear)))
}

// ToRGB averages an accumulated sample sum and converts it to an opaque 8-bit color
func ToRGB(sum core.Vec3, samples int) color.RGBA {
	if samples <= 0 {
		return color.RGBA{A: 255}
	}

	avg := sum.Divide(float64(samples))
	return color.RGBA{
		R: Quantize(avg.X),
		G: Quantize(avg.Y),
		B: Quantize(avg.Z),
		A: 255,
	}
}
