package scene

import (
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// showcaseCamera is the 16:9 view shared by the built-in scenes
func showcaseCamera() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 400
	config.SamplesPerPixel = 100
	config.MaxDepth = 50
	config.VFov = 20
	config.LookFrom = core.NewVec3(13, 2, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.VUp = core.NewVec3(0, 1, 0)
	config.DefocusAngle = 0
	return config
}

// NewRandomSpheresScene creates the cover scene: a checkered ground with a grid of small
// random spheres, some of them moving, and three large feature spheres
func NewRandomSpheresScene(opts Options) (*Scene, error) {
	random := core.NewSeededSampler(opts.Seed)
	world := geometry.NewHittableList()

	checker := material.NewCheckerTextureFromColors(0.32, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	world.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedLambertian(checker)))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse, bouncing upward during the shutter interval
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				center2 := center.Add(core.NewVec3(0, core.RandomRange(random, 0, 0.5), 0))
				world.Add(geometry.NewMovingSphere(center, center2, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := core.RandomRange(random, 0, 0.5)
				world.Add(geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				world.Add(geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	bvh, err := geometry.NewBVHFromList(world, random)
	if err != nil {
		return nil, err
	}

	camera := showcaseCamera()
	camera.DefocusAngle = 0.6
	camera.FocusDist = 10

	return newScene("random-spheres", bvh, world.Len(), camera, opts), nil
}

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene(opts Options) (*Scene, error) {
	checker := material.NewCheckerTextureFromColors(0.8, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	checkered := material.NewTexturedLambertian(checker)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checkered),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checkered),
	)

	return newScene("two-spheres", world, world.Len(), showcaseCamera(), opts), nil
}

// NewEarthScene creates a globe wrapped in the image at opts.TexturePath
func NewEarthScene(opts Options) (*Scene, error) {
	texture, err := material.NewImageTextureFromFile(opts.TexturePath)
	if err != nil {
		return nil, fmt.Errorf("earth texture: %w", err)
	}

	globe := geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(texture))
	world := geometry.NewHittableList(globe)

	camera := showcaseCamera()
	camera.LookFrom = core.NewVec3(0, 0, 12)

	return newScene("earth", world, world.Len(), camera, opts), nil
}

// NewSingleSphereScene creates a white unit sphere at the origin seen from (0,0,3)
func NewSingleSphereScene(opts Options) (*Scene, error) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(1, 1, 1))),
	)

	camera := renderer.DefaultCameraConfig()
	camera.LookFrom = core.NewVec3(0, 0, 3)
	camera.LookAt = core.NewVec3(0, 0, 0)
	camera.FocusDist = 3

	return newScene("single-sphere", world, world.Len(), camera, opts), nil
}

// NewSkyScene creates a ground sphere below a camera looking up into open sky
func NewSkyScene(opts Options) (*Scene, error) {
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100, 0), 99, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	camera := renderer.DefaultCameraConfig()
	camera.VFov = 30
	camera.LookFrom = core.NewVec3(0, 0, 0)
	camera.LookAt = core.NewVec3(0, 1, -1)

	return newScene("sky", world, world.Len(), camera, opts), nil
}
