package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidConfig is returned when a camera or render configuration cannot produce an image
var ErrInvalidConfig = errors.New("invalid render configuration")

// CameraConfig contains all camera configuration parameters
type CameraConfig struct {
	AspectRatio     float64 // Ratio of image width over height
	ImageWidth      int     // Rendered image width in pixels
	SamplesPerPixel int     // Random samples per pixel
	MaxDepth        int     // Maximum ray bounces into the scene

	VFov         float64   // Vertical field of view in degrees
	LookFrom     core.Vec3 // Point the camera looks from
	LookAt       core.Vec3 // Point the camera looks at
	VUp          core.Vec3 // Camera-relative up direction
	DefocusAngle float64   // Variation angle of rays through each pixel, in degrees
	FocusDist    float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns the default camera: a square 100px image looking down +z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, -1),
		LookAt:          core.NewVec3(0, 0, 0),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.VUp != (core.Vec3{}) {
		result.VUp = override.VUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDist != 0 {
		result.FocusDist = override.FocusDist
	}

	return result
}

// Validate reports whether the configuration can produce an image
func (c CameraConfig) Validate() error {
	switch {
	case c.ImageWidth <= 0:
		return fmt.Errorf("%w: image width %d must be positive", ErrInvalidConfig, c.ImageWidth)
	case c.AspectRatio <= 0:
		return fmt.Errorf("%w: aspect ratio %g must be positive", ErrInvalidConfig, c.AspectRatio)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d must be positive", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %d must be positive", ErrInvalidConfig, c.MaxDepth)
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("%w: vertical fov %g must be in (0, 180)", ErrInvalidConfig, c.VFov)
	case c.FocusDist <= 0:
		return fmt.Errorf("%w: focus distance %g must be positive", ErrInvalidConfig, c.FocusDist)
	case c.LookFrom.Equals(c.LookAt):
		return fmt.Errorf("%w: look-from and look-at coincide", ErrInvalidConfig)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	config CameraConfig

	imageHeight  int
	center       core.Vec3
	pixel00Loc   core.Vec3 // Location of pixel 0, 0
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera and derives its viewport from config
func NewCamera(config CameraConfig) *Camera {
	c := &Camera{config: config}

	// Image height is at least 1
	c.imageHeight = int(float64(config.ImageWidth) / config.AspectRatio)
	if c.imageHeight < 1 {
		c.imageHeight = 1
	}

	c.center = config.LookFrom

	// Determine viewport dimensions
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2.0 * h * config.FocusDist
	viewportWidth := viewportHeight * float64(config.ImageWidth) / float64(c.imageHeight)

	// Orthonormal basis for the camera frame
	c.w = config.LookFrom.Subtract(config.LookAt).Normalize()
	c.u = config.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(config.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(c.imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(degreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c
}

// GetRay returns a randomly sampled ray through pixel (i, j), originating from the
// defocus disk and carrying a random shutter time
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := c.samplePixelSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.sampleDefocusDisk(sampler)
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Float64())
}

// samplePixelSquare returns a random offset in the [-0.5, 0.5] square around a pixel center
func (c *Camera) samplePixelSquare(sampler core.Sampler) core.Vec3 {
	return core.NewVec3(sampler.Float64()-0.5, sampler.Float64()-0.5, 0)
}

// sampleDefocusDisk returns a random point on the camera defocus disk
func (c *Camera) sampleDefocusDisk(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// ImageWidth returns the rendered image width in pixels
func (c *Camera) ImageWidth() int { return c.config.ImageWidth }

// ImageHeight returns the rendered image height in pixels
func (c *Camera) ImageHeight() int { return c.imageHeight }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
