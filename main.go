package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene     string
	sceneFile string
	out       string
	texture   string
	width     int
	spp       int
	depth     int
	workers   int
	seed      int64
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

// run parses args, renders the selected scene and writes the image. PPM output to "-"
// goes to stdout; all logging goes to stderr.
func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()

	if info, err := renderer.HostInfo(); err != nil {
		logger.Printf("Host info unavailable: %v\n", err)
	} else {
		logger.Printf("Host: %s\n", info)
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	logger.Printf("Scene %s: %d primitives\n", selectedScene.Name, selectedScene.Primitives)
	if stats, ok := selectedScene.BVHStats(); ok {
		logger.Printf("BVH: %d nodes, %d leaf refs, max depth %d, avg leaf depth %.2f\n",
			stats.TotalNodes, stats.LeafRefs, stats.MaxDepth, stats.AvgDepth)
	}

	camera := renderer.NewCamera(selectedScene.Camera)
	raytracer := renderer.NewRaytracer(
		selectedScene.World,
		camera,
		selectedScene.NewIntegrator(),
		renderer.RenderConfig{NumWorkers: opts.workers, Seed: opts.seed},
		logger,
	)

	img, stats, err := raytracer.Render()
	if err != nil {
		return err
	}
	logger.Printf("Render completed in %v (%.0f samples/s)\n", stats.Duration, stats.SamplesPerSecond())

	if err := writeImage(opts.out, img, stdout); err != nil {
		return err
	}
	if opts.out != "-" {
		logger.Printf("Render saved as %s\n", opts.out)
	}
	return nil
}

// parseFlags reads the command line into options
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	defaults := scene.DefaultOptions()

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.scene, "scene", "random-spheres", "Built-in scene: "+strings.Join(scene.Names(), ", "))
	fs.StringVar(&opts.sceneFile, "scene-file", "", "Load the scene from a JSON file instead of -scene")
	fs.StringVar(&opts.out, "out", "-", "Output path: .ppm, .png, or - for PPM on stdout")
	fs.StringVar(&opts.texture, "texture", defaults.TexturePath, "Image used by the earth scene")
	fs.IntVar(&opts.width, "width", 0, "Image width override (0 keeps the scene value)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel override (0 keeps the scene value)")
	fs.IntVar(&opts.depth, "depth", 0, "Max bounce depth override (0 keeps the scene value)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = logical CPU count)")
	fs.Int64Var(&opts.seed, "seed", defaults.Seed, "Random seed for scene layout and sampling")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Weekend Raytracer")
		fmt.Fprintln(stderr, "Usage: raytracer [options]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.width < 0 || opts.spp < 0 || opts.depth < 0 {
		return opts, fmt.Errorf("%w: -width, -spp and -depth must not be negative", renderer.ErrInvalidConfig)
	}
	if _, err := outputFormat(opts.out); err != nil {
		return opts, err
	}

	return opts, nil
}

// createScene builds the scene selected by -scene-file or -scene
func createScene(opts options) (*scene.Scene, error) {
	sceneOpts := scene.Options{
		Seed:        opts.seed,
		TexturePath: opts.texture,
		Camera: renderer.CameraConfig{
			ImageWidth:      opts.width,
			SamplesPerPixel: opts.spp,
			MaxDepth:        opts.depth,
		},
	}

	if opts.sceneFile != "" {
		return scene.LoadFile(opts.sceneFile, sceneOpts)
	}
	return scene.Create(opts.scene, sceneOpts)
}

// outputFormat maps an output path to "ppm" or "png"
func outputFormat(path string) (string, error) {
	if path == "-" {
		return "ppm", nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return "ppm", nil
	case ".png":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (want .ppm or .png)", ext)
	}
}

// writeImage writes img to path in the format implied by its extension
func writeImage(path string, img image.Image, stdout io.Writer) error {
	format, err := outputFormat(path)
	if err != nil {
		return err
	}

	if path == "-" {
		return renderer.WritePPM(stdout, img)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	if format == "png" {
		return renderer.SavePNG(path, img)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	if err := renderer.WritePPM(file, img); err != nil {
		return err
	}
	return file.Close()
}
