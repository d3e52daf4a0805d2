package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Vec is a JSON triple [x, y, z]
type Vec [3]float64

func (v Vec) toVec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

func fromVec3(v core.Vec3) Vec { return Vec{v.X, v.Y, v.Z} }

// File is the on-disk description of a scene
type File struct {
	Name       string          `json:"name"`
	Camera     CameraFile      `json:"camera"`
	Background *BackgroundFile `json:"background,omitempty"`
	Materials  []MaterialFile  `json:"materials"`
	Spheres    []SphereFile    `json:"spheres"`
	BVH        bool            `json:"bvh"`
}

// CameraFile holds camera settings; omitted fields keep their defaults
type CameraFile struct {
	AspectRatio     float64 `json:"aspect_ratio,omitempty"`
	ImageWidth      int     `json:"image_width,omitempty"`
	SamplesPerPixel int     `json:"samples_per_pixel,omitempty"`
	MaxDepth        int     `json:"max_depth,omitempty"`
	VFov            float64 `json:"vfov,omitempty"`
	LookFrom        *Vec    `json:"lookfrom,omitempty"`
	LookAt          *Vec    `json:"lookat,omitempty"`
	VUp             *Vec    `json:"vup,omitempty"`
	DefocusAngle    float64 `json:"defocus_angle,omitempty"`
	FocusDist       float64 `json:"focus_dist,omitempty"`
}

// BackgroundFile overrides the sky gradient
type BackgroundFile struct {
	Top    Vec `json:"top"`
	Bottom Vec `json:"bottom"`
}

// TextureFile describes a texture: "solid", "checker" or "image"
type TextureFile struct {
	Type  string  `json:"type"`
	Color Vec     `json:"color,omitempty"`
	Scale float64 `json:"scale,omitempty"`
	Even  Vec     `json:"even,omitempty"`
	Odd   Vec     `json:"odd,omitempty"`
	Path  string  `json:"path,omitempty"` // Relative paths resolve against the scene file
}

// MaterialFile describes a named material: "lambertian", "metal" or "dielectric"
type MaterialFile struct {
	ID              string       `json:"id"`
	Type            string       `json:"type"`
	Albedo          Vec          `json:"albedo,omitempty"`
	Texture         *TextureFile `json:"texture,omitempty"` // Lambertian only, replaces Albedo
	Fuzz            float64      `json:"fuzz,omitempty"`
	RefractiveIndex float64      `json:"refractive_index,omitempty"`
}

// SphereFile describes a sphere; Center2 makes it move over the shutter interval
type SphereFile struct {
	Center   Vec     `json:"center"`
	Center2  *Vec    `json:"center2,omitempty"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// LoadFile reads a scene description from a JSON file and builds it
func LoadFile(path string, opts Options) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	var sf File
	if err := json.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	return sf.Build(filepath.Dir(path), opts)
}

// SaveFile writes a scene description to a JSON file
func SaveFile(path string, sf *File) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sf); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return f.Close()
}

// Build turns the description into a renderable scene. baseDir anchors relative texture paths.
func (sf *File) Build(baseDir string, opts Options) (*Scene, error) {
	materials := make(map[string]material.Material, len(sf.Materials))
	for _, mf := range sf.Materials {
		mat, err := mf.build(baseDir)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", mf.ID, err)
		}
		materials[mf.ID] = mat
	}

	list := geometry.NewHittableList()
	for i, s := range sf.Spheres {
		mat, ok := materials[s.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w: %q", i, ErrUnknownMaterial, s.Material)
		}
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		if s.Center2 != nil {
			list.Add(geometry.NewMovingSphere(s.Center.toVec3(), s.Center2.toVec3(), s.Radius, mat))
		} else {
			list.Add(geometry.NewSphere(s.Center.toVec3(), s.Radius, mat))
		}
	}

	var world geometry.Hittable = list
	if sf.BVH {
		bvh, err := geometry.NewBVHFromList(list, core.NewSeededSampler(opts.Seed))
		if err != nil {
			return nil, err
		}
		world = bvh
	}

	name := sf.Name
	if name == "" {
		name = "file"
	}

	s := newScene(name, world, list.Len(), sf.Camera.config(), opts)
	if err := s.Camera.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if sf.Background != nil {
		if !finite(sf.Background.Top[:]...) || !finite(sf.Background.Bottom[:]...) {
			return nil, fmt.Errorf("%w: background colors must be finite", renderer.ErrInvalidConfig)
		}
		s.Background = Background{
			Top:    sf.Background.Top.toVec3(),
			Bottom: sf.Background.Bottom.toVec3(),
		}
	}
	return s, nil
}

// finite reports whether every value is a real number
func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// validate rejects geometry whose intersection math would overflow to NaN.
// Negative radii are kept: they describe inward-facing shells.
func (s SphereFile) validate() error {
	if !finite(s.Center[:]...) || (s.Center2 != nil && !finite(s.Center2[:]...)) {
		return fmt.Errorf("%w: center must be finite", renderer.ErrInvalidConfig)
	}
	if !finite(s.Radius, s.Radius*s.Radius) {
		return fmt.Errorf("%w: radius %g is out of range", renderer.ErrInvalidConfig, s.Radius)
	}
	return nil
}

// config applies the fields present in the file to the default camera. Vectors are
// taken as given when present, so a zero vector such as an origin look-from survives.
func (cf CameraFile) config() renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	if cf.AspectRatio != 0 {
		config.AspectRatio = cf.AspectRatio
	}
	if cf.ImageWidth != 0 {
		config.ImageWidth = cf.ImageWidth
	}
	if cf.SamplesPerPixel != 0 {
		config.SamplesPerPixel = cf.SamplesPerPixel
	}
	if cf.MaxDepth != 0 {
		config.MaxDepth = cf.MaxDepth
	}
	if cf.VFov != 0 {
		config.VFov = cf.VFov
	}
	if cf.DefocusAngle != 0 {
		config.DefocusAngle = cf.DefocusAngle
	}
	if cf.FocusDist != 0 {
		config.FocusDist = cf.FocusDist
	}
	if cf.LookFrom != nil {
		config.LookFrom = cf.LookFrom.toVec3()
	}
	if cf.LookAt != nil {
		config.LookAt = cf.LookAt.toVec3()
	}
	if cf.VUp != nil {
		config.VUp = cf.VUp.toVec3()
	}
	return config
}

// NewCameraFile converts a camera configuration to its file form
func NewCameraFile(c renderer.CameraConfig) CameraFile {
	lookFrom, lookAt, vup := fromVec3(c.LookFrom), fromVec3(c.LookAt), fromVec3(c.VUp)
	return CameraFile{
		AspectRatio:     c.AspectRatio,
		ImageWidth:      c.ImageWidth,
		SamplesPerPixel: c.SamplesPerPixel,
		MaxDepth:        c.MaxDepth,
		VFov:            c.VFov,
		LookFrom:        &lookFrom,
		LookAt:          &lookAt,
		VUp:             &vup,
		DefocusAngle:    c.DefocusAngle,
		FocusDist:       c.FocusDist,
	}
}

func (mf MaterialFile) build(baseDir string) (material.Material, error) {
	if !finite(mf.Albedo[:]...) || !finite(mf.Fuzz) {
		return nil, fmt.Errorf("%w: albedo and fuzz must be finite", renderer.ErrInvalidConfig)
	}

	switch mf.Type {
	case "lambertian":
		if mf.Texture == nil {
			return material.NewLambertian(mf.Albedo.toVec3()), nil
		}
		texture, err := mf.Texture.build(baseDir)
		if err != nil {
			return nil, err
		}
		return material.NewTexturedLambertian(texture), nil
	case "metal":
		return material.NewMetal(mf.Albedo.toVec3(), mf.Fuzz), nil
	case "dielectric":
		if !(mf.RefractiveIndex > 0) || math.IsInf(mf.RefractiveIndex, 0) {
			return nil, fmt.Errorf("%w: refractive index %g must be positive", renderer.ErrInvalidConfig, mf.RefractiveIndex)
		}
		return material.NewDielectric(mf.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("%w type %q", ErrUnknownMaterial, mf.Type)
	}
}

func (tf TextureFile) build(baseDir string) (material.Texture, error) {
	switch tf.Type {
	case "solid":
		if !finite(tf.Color[:]...) {
			return nil, fmt.Errorf("%w: texture color must be finite", renderer.ErrInvalidConfig)
		}
		return material.NewSolidColor(tf.Color.toVec3()), nil
	case "checker":
		if !(tf.Scale > 0) || math.IsInf(tf.Scale, 0) || !finite(tf.Even[:]...) || !finite(tf.Odd[:]...) {
			return nil, fmt.Errorf("%w: checker scale %g must be positive and colors finite", renderer.ErrInvalidConfig, tf.Scale)
		}
		return material.NewCheckerTextureFromColors(tf.Scale, tf.Even.toVec3(), tf.Odd.toVec3()), nil
	case "image":
		path := tf.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		texture, err := material.NewImageTextureFromFile(path)
		if err != nil {
			return nil, err
		}
		return texture, nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", tf.Type)
	}
}
