package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/material"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// SceneFile is the YAML description of a scene
type SceneFile struct {
	Camera  *CameraFile  `yaml:"camera"`
	Spheres []SphereFile `yaml:"spheres"`
}

// CameraFile describes the camera placement
type CameraFile struct {
	Position Vec3Value  `yaml:"position"`
	Target   Vec3Value  `yaml:"target"`
	Up       *Vec3Value `yaml:"up"` // defaults to +Y
	VFov     float64    `yaml:"vfov"`
}

// SphereFile describes one sphere and its surface
type SphereFile struct {
	Center   Vec3Value    `yaml:"center"`
	Radius   float64      `yaml:"radius"`
	Material MaterialFile `yaml:"material"`
}

// MaterialFile describes a surface. Any combination of emission, diffuse
// albedo and glossy reflectance is allowed.
type MaterialFile struct {
	Albedo      *ColorValue `yaml:"albedo"`
	Emittance   *ColorValue `yaml:"emittance"`
	Intensity   *float64    `yaml:"intensity"` // scales emittance, defaults to 1
	Reflectance float64     `yaml:"reflectance"`
	Gloss       float64     `yaml:"gloss"`
}

// Vec3Value is a point or direction written as [x, y, z]
type Vec3Value core.Vec3

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Vec3Value) UnmarshalYAML(node *yaml.Node) error {
	components, err := decodeTriple(node)
	if err != nil {
		return err
	}
	*v = Vec3Value(core.NewVec3(components[0], components[1], components[2]))
	return nil
}

// ColorValue is an RGB color written either as [r, g, b] in [0, 1]
// or as a CSS/SVG color name such as "white" or "crimson"
type ColorValue core.Vec3

// UnmarshalYAML implements yaml.Unmarshaler
func (c *ColorValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		name := strings.ToLower(strings.TrimSpace(node.Value))
		rgba, ok := colornames.Map[name]
		if !ok {
			return fmt.Errorf("line %d: unknown color name %q", node.Line, node.Value)
		}
		*c = ColorValue(core.NewVec3(
			float64(rgba.R)/255.0,
			float64(rgba.G)/255.0,
			float64(rgba.B)/255.0,
		))
		return nil
	}

	components, err := decodeTriple(node)
	if err != nil {
		return err
	}
	*c = ColorValue(core.NewVec3(components[0], components[1], components[2]))
	return nil
}

func decodeTriple(node *yaml.Node) ([]float64, error) {
	var components []float64
	if err := node.Decode(&components); err != nil {
		return nil, fmt.Errorf("line %d: expected [x, y, z]: %w", node.Line, err)
	}
	if len(components) != 3 {
		return nil, fmt.Errorf("line %d: expected 3 components, got %d", node.Line, len(components))
	}
	return components, nil
}

// LoadScene reads a YAML scene file from disk
func LoadScene(filename string) (*scene.Scene, geometry.CameraConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, geometry.CameraConfig{}, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, camera, err := ParseScene(file)
	if err != nil {
		return nil, geometry.CameraConfig{}, fmt.Errorf("%s: %w", filename, err)
	}
	return s, camera, nil
}

// ParseScene decodes a YAML scene description. Malformed input is reported
// as core.ErrInvalidScene and never panics.
func ParseScene(r io.Reader) (*scene.Scene, geometry.CameraConfig, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file SceneFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, geometry.CameraConfig{}, errorsmod.Wrap(core.ErrInvalidScene, "empty scene file")
		}
		return nil, geometry.CameraConfig{}, errorsmod.Wrap(core.ErrInvalidScene, err.Error())
	}

	return file.Build()
}

// Build validates the description and constructs the scene and camera
func (f SceneFile) Build() (*scene.Scene, geometry.CameraConfig, error) {
	camera, err := f.cameraConfig()
	if err != nil {
		return nil, geometry.CameraConfig{}, err
	}

	s := scene.New()
	for i, sphere := range f.Spheres {
		mat, err := sphere.Material.build()
		if err != nil {
			return nil, geometry.CameraConfig{}, errorsmod.Wrapf(core.ErrInvalidScene, "sphere %d: %v", i, err)
		}
		if !(sphere.Radius > 0) {
			return nil, geometry.CameraConfig{}, errorsmod.Wrapf(core.ErrInvalidScene, "sphere %d: radius must be positive, got %g", i, sphere.Radius)
		}
		s.AddSphere(core.Vec3(sphere.Center), sphere.Radius, mat)
	}

	return s, camera, nil
}

func (f SceneFile) cameraConfig() (geometry.CameraConfig, error) {
	if f.Camera == nil {
		return geometry.CameraConfig{}, errorsmod.Wrap(core.ErrInvalidScene, "missing camera")
	}

	up := core.NewVec3(0, 1, 0)
	if f.Camera.Up != nil {
		up = core.Vec3(*f.Camera.Up)
	}

	config := geometry.CameraConfig{
		Center: core.Vec3(f.Camera.Position),
		LookAt: core.Vec3(f.Camera.Target),
		Up:     up,
		VFov:   f.Camera.VFov,
	}

	if !(config.VFov > 0 && config.VFov < 180) {
		return geometry.CameraConfig{}, errorsmod.Wrapf(core.ErrInvalidScene, "camera vfov must be in (0, 180), got %g", config.VFov)
	}
	forward := config.LookAt.Subtract(config.Center)
	if forward.Length() < core.Epsilon || up.Cross(forward).Length() < core.Epsilon {
		return geometry.CameraConfig{}, errorsmod.Wrap(core.ErrInvalidScene, "camera target must differ from position and not be parallel to up")
	}

	return config, nil
}

func (m MaterialFile) build() (material.Material, error) {
	if m.Reflectance < 0 || m.Reflectance > 1 {
		return material.Material{}, fmt.Errorf("reflectance must be in [0, 1], got %g", m.Reflectance)
	}
	if m.Gloss < 0 || m.Gloss > 1 {
		return material.Material{}, fmt.Errorf("gloss must be in [0, 1], got %g", m.Gloss)
	}

	var albedo, emittance core.Vec3
	if m.Albedo != nil {
		albedo = core.Vec3(*m.Albedo)
		if albedo.X < 0 || albedo.Y < 0 || albedo.Z < 0 || albedo.X > 1 || albedo.Y > 1 || albedo.Z > 1 {
			return material.Material{}, fmt.Errorf("albedo components must be in [0, 1], got %v", albedo)
		}
	}
	if m.Emittance != nil {
		emittance = core.Vec3(*m.Emittance)
		if emittance.X < 0 || emittance.Y < 0 || emittance.Z < 0 {
			return material.Material{}, fmt.Errorf("emittance must be non-negative, got %v", emittance)
		}
	}
	if m.Intensity != nil {
		if *m.Intensity < 0 {
			return material.Material{}, fmt.Errorf("intensity must be non-negative, got %g", *m.Intensity)
		}
		emittance = emittance.Multiply(*m.Intensity)
	}

	mat := material.NewReflective(albedo, m.Reflectance, m.Gloss)
	mat.Emittance = emittance
	return mat, nil
}
