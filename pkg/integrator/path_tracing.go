package integrator

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound of the hit interval. Starting slightly past the
// origin keeps a scattered ray from re-hitting its own surface through round-off.
const ShadowAcneEpsilon = 0.001

var (
	// DefaultBackgroundBottom is the sky color looking straight down
	DefaultBackgroundBottom = core.NewVec3(1.0, 1.0, 1.0)
	// DefaultBackgroundTop is the sky color looking straight up
	DefaultBackgroundTop = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator implements unidirectional path tracing with a fixed bounce limit
type PathTracingIntegrator struct {
	BackgroundTop    core.Vec3
	BackgroundBottom core.Vec3
}

// NewPathTracingIntegrator creates a path tracer with the white-to-sky-blue background
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{
		BackgroundTop:    DefaultBackgroundTop,
		BackgroundBottom: DefaultBackgroundBottom,
	}
}

// RayColor computes the color for a single ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, depth int, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, core.NewInterval(ShadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return pt.BackgroundGradient(ray)
	}

	scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, depth-1, world, sampler))
}

// BackgroundGradient returns a gradient color based on ray direction
func (pt *PathTracingIntegrator) BackgroundGradient(r core.Ray) core.Vec3 {
	// Normalize the ray direction to get consistent results
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	a := 0.5 * (unitDirection.Y + 1.0)

	// Linear interpolation: (1-a)*bottom + a*top
	return pt.BackgroundBottom.Multiply(1.0 - a).Add(pt.BackgroundTop.Multiply(a))
}
