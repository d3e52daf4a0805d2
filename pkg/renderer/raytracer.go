package renderer

import (
	"fmt"
	"image"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// RenderConfig contains settings that affect how, but not what, is rendered
type RenderConfig struct {
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Base seed; each scanline derives its own sampler from it
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0,
		Seed:       42,
	}
}

// Validate reports whether the render configuration is usable
func (c RenderConfig) Validate() error {
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count %d must not be negative", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// Raytracer handles the rendering process
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Hittable, camera *Camera, integ integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDiscardLogger()
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// Camera returns the camera rays are generated from
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Render traces every pixel and returns the finished image. The result depends only on
// the scene, camera and seed, never on the worker count.
func (rt *Raytracer) Render() (*image.RGBA, RenderStats, error) {
	if err := rt.camera.Config().Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	start := time.Now()

	pool := NewWorkerPool(rt, height, rt.config.NumWorkers)
	stats := RenderStats{NumWorkers: pool.GetNumWorkers()}

	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j, Image: img})
	}

	for remaining := height; remaining > 0; remaining-- {
		rt.logger.Printf("Scanlines remaining: %d\n", remaining)
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	rt.logger.Printf("Done. %d pixels, %d samples in %v using %d workers\n",
		stats.TotalPixels, stats.TotalSamples, stats.Duration, stats.NumWorkers)

	return img, stats, nil
}

// RenderRow renders scanline j into img using sampler for every random decision
func (rt *Raytracer) RenderRow(j int, img *image.RGBA, sampler core.Sampler) RenderStats {
	cfg := rt.camera.Config()
	width := rt.camera.ImageWidth()
	stats := RenderStats{Rows: 1}

	for i := 0; i < width; i++ {
		var pixel PixelStats
		for s := 0; s < cfg.SamplesPerPixel; s++ {
			ray := rt.camera.GetRay(i, j, sampler)
			pixel.AddSample(rt.integrator.RayColor(ray, cfg.MaxDepth, rt.world, sampler))
		}

		img.SetRGBA(i, j, ToRGB(pixel.ColorAccum, pixel.SampleCount))
		stats.TotalPixels++
		stats.TotalSamples += pixel.SampleCount
	}

	return stats
}

// RowSampler returns the deterministic sampler for scanline j
func (rt *Raytracer) RowSampler(j int) core.Sampler {
	return core.NewSeededSampler(rowSeed(rt.config.Seed, j))
}

// rowSeed mixes the base seed with the row index (splitmix64 finalizer) so that
// neighbouring rows get unrelated streams
func rowSeed(seed int64, row int) int64 {
	z := uint64(seed) + uint64(row+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}
