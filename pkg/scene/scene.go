package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned by Create for a name with no builder
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnknownMaterial is returned when a scene file references an undefined material
	ErrUnknownMaterial = errors.New("unknown material")
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name       string
	World      geometry.Hittable     // Root of the object hierarchy, usually a BVH
	Camera     renderer.CameraConfig // Camera and sampling settings
	Background Background
	Primitives int // Number of primitives in World
}

// Background holds the two colors of the sky gradient
type Background struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// DefaultBackground returns the white to light blue sky
func DefaultBackground() Background {
	return Background{
		Top:    integrator.DefaultBackgroundTop,
		Bottom: integrator.DefaultBackgroundBottom,
	}
}

// NewIntegrator returns a path tracer using the scene's sky
func (s *Scene) NewIntegrator() *integrator.PathTracingIntegrator {
	return &integrator.PathTracingIntegrator{
		BackgroundTop:    s.Background.Top,
		BackgroundBottom: s.Background.Bottom,
	}
}

// BVHStats returns tree statistics when the world is a BVH
func (s *Scene) BVHStats() (geometry.BVHStats, bool) {
	if bvh, ok := s.World.(*geometry.BVHNode); ok {
		return bvh.Stats(), true
	}
	return geometry.BVHStats{}, false
}

// Options control scene construction
type Options struct {
	Seed        int64                 // Seeds random placement and BVH split axes
	TexturePath string                // Image used by textured scenes
	Camera      renderer.CameraConfig // Non-zero fields override the scene's camera
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		Seed:        42,
		TexturePath: "images/earthmap.jpg",
	}
}

// Builder constructs a scene from options
type Builder func(opts Options) (*Scene, error)

var builders = map[string]Builder{
	"random-spheres": NewRandomSpheresScene,
	"two-spheres":    NewTwoSpheresScene,
	"earth":          NewEarthScene,
	"single-sphere":  NewSingleSphereScene,
	"sky":            NewSkyScene,
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the named built-in scene
func Create(name string, opts Options) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}

	s, err := build(opts)
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", name, err)
	}
	return s, nil
}

// newScene assembles a scene, applying any camera overrides from opts
func newScene(name string, world geometry.Hittable, primitives int, camera renderer.CameraConfig, opts Options) *Scene {
	return &Scene{
		Name:       name,
		World:      world,
		Camera:     renderer.MergeCameraConfig(camera, opts.Camera),
		Background: DefaultBackground(),
		Primitives: primitives,
	}
}
