package scene

import (
	"sort"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
)

type builtinScene struct {
	info  SceneInfo
	build func() (*Scene, geometry.CameraConfig)
}

var builtins = map[string]builtinScene{
	"spec-balls": {
		info: SceneInfo{
			ID:          "spec-balls",
			Name:        "Specular Balls",
			Description: "Five glossy balls in a cross lit by one bright sphere",
		},
		build: NewSpecBallsScene,
	},
	"gloss-ramp": {
		info: SceneInfo{
			ID:          "gloss-ramp",
			Name:        "Gloss Ramp",
			Description: "A row of reflectors with gloss from 0 to 1 on a diffuse floor",
		},
		build: NewGlossRampScene,
	},
	"single-light": {
		info: SceneInfo{
			ID:          "single-light",
			Name:        "Single Light",
			Description: "One white emitter in front of the camera",
		},
		build: NewSingleLightScene,
	},
	"dark-diffuse": {
		info: SceneInfo{
			ID:          "dark-diffuse",
			Name:        "Dark Diffuse",
			Description: "Diffuse spheres with no light source; renders black",
		},
		build: NewDarkDiffuseScene,
	},
}

// Builtin builds a named built-in scene and its default camera
func Builtin(name string) (*Scene, geometry.CameraConfig, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, geometry.CameraConfig{}, errorsmod.Wrapf(core.ErrUnknownScene, "%q (available: %v)", name, BuiltinNames())
	}
	s, camera := b.build()
	return s, camera, nil
}

// BuiltinNames returns the built-in scene names in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListBuiltinScenes returns metadata for every built-in scene
func ListBuiltinScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, name := range BuiltinNames() {
		info := builtins[name].info
		info.Type = SceneTypeBuiltin
		scenes = append(scenes, info)
	}
	return scenes
}
