package material

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Dielectric is a clear refractive material such as glass or water
type Dielectric struct {
	RefractiveIndex float64 // Relative to the surrounding medium; 1.5 for glass
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter either reflects or refracts the incoming ray. Attenuation is always white.
func (d *Dielectric) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	eta := d.RefractiveIndex
	if hit.FrontFace {
		eta = 1.0 / eta
	}

	in := rayIn.Direction.Normalize()
	cosTheta := math.Min(in.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	// Past the critical angle Snell's law has no solution
	totalInternal := eta*sinTheta > 1.0

	direction := in.Refract(hit.Normal, eta)
	if totalInternal || Reflectance(cosTheta, eta) > sampler.Float64() {
		direction = in.Reflect(hit.Normal)
	}

	return ScatterResult{
		Scattered:   core.NewRayAtTime(hit.Point, direction, rayIn.Time),
		Attenuation: core.NewVec3(1, 1, 1),
	}, true
}

// Reflectance is Schlick's approximation of the Fresnel reflection coefficient
func Reflectance(cosine, eta float64) float64 {
	r0 := (1 - eta) / (1 + eta)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
