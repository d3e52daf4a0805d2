package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// constSampler returns the same value for every draw. 0.5 puts pixel samples on the
// pixel center.
type constSampler struct {
	value float64
}

func (c constSampler) Float64() float64      { return c.value }
func (c constSampler) IntN(min, max int) int { return min }

func TestCamera_DefaultConfig(t *testing.T) {
	config := DefaultCameraConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("Default config should be valid, got %v", err)
	}

	camera := NewCamera(config)
	if camera.ImageWidth() != 100 || camera.ImageHeight() != 100 {
		t.Errorf("Expected 100x100 image, got %dx%d", camera.ImageWidth(), camera.ImageHeight())
	}
}

func TestCamera_ImageHeightAtLeastOne(t *testing.T) {
	config := DefaultCameraConfig()
	config.ImageWidth = 4
	config.AspectRatio = 16.0

	camera := NewCamera(config)
	if camera.ImageHeight() != 1 {
		t.Errorf("Expected image height clamped to 1, got %d", camera.ImageHeight())
	}
}

func TestCamera_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CameraConfig)
	}{
		{"zero width", func(c *CameraConfig) { c.ImageWidth = 0 }},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }},
		{"zero samples", func(c *CameraConfig) { c.SamplesPerPixel = 0 }},
		{"zero depth", func(c *CameraConfig) { c.MaxDepth = 0 }},
		{"flat fov", func(c *CameraConfig) { c.VFov = 180 }},
		{"zero focus", func(c *CameraConfig) { c.FocusDist = 0 }},
		{"look at self", func(c *CameraConfig) { c.LookAt = c.LookFrom }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultCameraConfig()
			tt.modify(&config)
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := DefaultCameraConfig()
	merged := MergeCameraConfig(base, CameraConfig{
		ImageWidth: 320,
		LookFrom:   core.NewVec3(13, 2, 3),
	})

	if merged.ImageWidth != 320 {
		t.Errorf("Expected width override 320, got %d", merged.ImageWidth)
	}
	if !merged.LookFrom.Equals(core.NewVec3(13, 2, 3)) {
		t.Errorf("Expected look-from override, got %v", merged.LookFrom)
	}
	if merged.SamplesPerPixel != base.SamplesPerPixel || merged.VFov != base.VFov {
		t.Errorf("Unset fields should keep base values, got %+v", merged)
	}
}

func TestCamera_CenterPixelHitsSphere(t *testing.T) {
	// Unit sphere at the origin seen from (0,0,3) along -z
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(1, 1, 1)))

	config := DefaultCameraConfig()
	config.ImageWidth = 101
	config.LookFrom = core.NewVec3(0, 0, 3)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.FocusDist = 1
	camera := NewCamera(config)

	ray := camera.GetRay(50, 50, constSampler{value: 0.5})

	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, math.Inf(1)))
	if !isHit {
		t.Fatalf("Center pixel ray %v should hit the sphere", ray)
	}

	const tolerance = 1e-9
	if math.Abs(hit.T-2.0) > tolerance {
		t.Errorf("Expected hit at t=2, got %f", hit.T)
	}
	if !hit.FrontFace {
		t.Error("Expected a front-face hit")
	}
	expectedNormal := core.NewVec3(0, 0, 1)
	if hit.Normal.Subtract(expectedNormal).Length() > tolerance {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
}

func TestCamera_GetRayStaysInPixel(t *testing.T) {
	config := DefaultCameraConfig()
	config.LookFrom = core.NewVec3(0, 0, 0)
	config.LookAt = core.NewVec3(0, 0, -1)
	config.FocusDist = 1
	camera := NewCamera(config)

	// Same pixel sampled at the two corners of its footprint
	low := camera.GetRay(10, 20, constSampler{value: 0})
	high := camera.GetRay(10, 20, constSampler{value: 0.999999})

	pixelWidth := camera.pixelDeltaU.Length()
	if d := high.Direction.Subtract(low.Direction).Length(); d > pixelWidth*math.Sqrt2 {
		t.Errorf("Samples of one pixel are %f apart, more than a pixel diagonal %f", d, pixelWidth*math.Sqrt2)
	}
	if low.Time != 0 || high.Time < 0.99 {
		t.Errorf("Ray time should follow the sampler, got %f and %f", low.Time, high.Time)
	}
}

func TestCamera_DefocusMovesOrigin(t *testing.T) {
	config := DefaultCameraConfig()
	config.DefocusAngle = 10
	camera := NewCamera(config)
	random := core.NewSeededSampler(42)

	moved := false
	for i := 0; i < 20; i++ {
		ray := camera.GetRay(50, 50, random)
		offset := ray.Origin.Subtract(config.LookFrom)
		if offset.Length() > 0 {
			moved = true
		}
		// Origin stays in the lens plane
		if math.Abs(offset.Dot(camera.w)) > 1e-9 {
			t.Errorf("Ray origin %v left the lens plane", ray.Origin)
		}
	}
	if !moved {
		t.Error("Expected defocus blur to move the ray origin")
	}
}
