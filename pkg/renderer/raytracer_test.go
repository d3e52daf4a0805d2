package renderer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// testLogger records messages instead of printing them
type testLogger struct {
	messages int
}

func (l *testLogger) Printf(format string, args ...interface{}) {
	l.messages++
}

func createTestWorld() geometry.Hittable {
	return geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
	)
}

func createTestCamera() *Camera {
	config := DefaultCameraConfig()
	config.AspectRatio = 16.0 / 9.0
	config.ImageWidth = 32
	config.SamplesPerPixel = 4
	config.MaxDepth = 8
	config.LookFrom = core.NewVec3(0, 0, 0)
	config.LookAt = core.NewVec3(0, 0, -1)
	config.FocusDist = 1
	return NewCamera(config)
}

func TestRaytracer_Render(t *testing.T) {
	logger := &testLogger{}
	camera := createTestCamera()
	rt := NewRaytracer(createTestWorld(), camera, integrator.NewPathTracingIntegrator(), RenderConfig{NumWorkers: 2, Seed: 7}, logger)

	img, stats, err := rt.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 18 {
		t.Errorf("Expected 32x18 image, got %v", img.Bounds())
	}
	if stats.TotalPixels != 32*18 {
		t.Errorf("Expected %d pixels, got %d", 32*18, stats.TotalPixels)
	}
	if stats.TotalSamples != 32*18*4 {
		t.Errorf("Expected %d samples, got %d", 32*18*4, stats.TotalSamples)
	}
	if stats.Rows != 18 || stats.NumWorkers != 2 {
		t.Errorf("Expected 18 rows on 2 workers, got %d rows on %d", stats.Rows, stats.NumWorkers)
	}
	// One progress line per scanline plus the summary
	if logger.messages != 19 {
		t.Errorf("Expected 19 log messages, got %d", logger.messages)
	}

	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("Expected opaque pixels, found alpha %d at byte %d", img.Pix[i], i)
		}
	}
}

func TestRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	render := func(workers int) []byte {
		rt := NewRaytracer(createTestWorld(), createTestCamera(), integrator.NewPathTracingIntegrator(),
			RenderConfig{NumWorkers: workers, Seed: 99}, nil)
		img, _, err := rt.Render()
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		return img.Pix
	}

	single := render(1)
	for _, workers := range []int{2, 5} {
		if !bytes.Equal(single, render(workers)) {
			t.Errorf("Image rendered with %d workers differs from the single-worker image", workers)
		}
	}
}

func TestRaytracer_SeedChangesImage(t *testing.T) {
	render := func(seed int64) []byte {
		rt := NewRaytracer(createTestWorld(), createTestCamera(), integrator.NewPathTracingIntegrator(),
			RenderConfig{NumWorkers: 1, Seed: seed}, nil)
		img, _, err := rt.Render()
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return img.Pix
	}

	if bytes.Equal(render(1), render(2)) {
		t.Error("Different seeds should produce different noise")
	}
}

func TestRaytracer_SkyMatchesGradient(t *testing.T) {
	// Camera tilted up, away from a ground sphere far below
	config := DefaultCameraConfig()
	config.ImageWidth = 16
	config.SamplesPerPixel = 1
	config.VFov = 30
	config.LookFrom = core.NewVec3(0, 0, 0)
	config.LookAt = core.NewVec3(0, 1, -1)
	camera := NewCamera(config)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -100, 0), 99, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
	integ := integrator.NewPathTracingIntegrator()
	rt := NewRaytracer(world, camera, integ, DefaultRenderConfig(), nil)

	sampler := constSampler{value: 0.5}
	img, _, err := rt.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Re-render each row with a fixed sampler and compare to the closed-form gradient
	for j := 0; j < camera.ImageHeight(); j++ {
		rt.RenderRow(j, img, sampler)
		for i := 0; i < camera.ImageWidth(); i++ {
			expected := ToRGB(integ.BackgroundGradient(camera.GetRay(i, j, sampler)), 1)
			if got := img.RGBAAt(i, j); got != expected {
				t.Fatalf("Pixel (%d,%d) = %v, expected gradient %v", i, j, got, expected)
			}
		}
	}
}

func TestRaytracer_InvalidConfig(t *testing.T) {
	config := DefaultCameraConfig()
	config.SamplesPerPixel = 0
	rt := NewRaytracer(createTestWorld(), NewCamera(config), integrator.NewPathTracingIntegrator(), DefaultRenderConfig(), nil)

	if _, _, err := rt.Render(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	rt = NewRaytracer(createTestWorld(), createTestCamera(), integrator.NewPathTracingIntegrator(), RenderConfig{NumWorkers: -1}, nil)
	if _, _, err := rt.Render(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for negative workers, got %v", err)
	}
}

func TestRowSeed_Distinct(t *testing.T) {
	seen := make(map[int64]int)
	for row := 0; row < 1000; row++ {
		s := rowSeed(42, row)
		if prev, ok := seen[s]; ok {
			t.Fatalf("Rows %d and %d share seed %d", prev, row, s)
		}
		seen[s] = row
	}
	if rowSeed(1, 0) == rowSeed(2, 0) {
		t.Error("Base seed should affect row seeds")
	}
}

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().Equals(core.Vec3{}) {
		t.Errorf("Empty pixel should be black, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))
	if !ps.GetColor().Equals(core.NewVec3(0.5, 0.5, 0)) || ps.SampleCount != 2 {
		t.Errorf("Expected average (0.5,0.5,0) over 2 samples, got %v over %d", ps.GetColor(), ps.SampleCount)
	}
}
