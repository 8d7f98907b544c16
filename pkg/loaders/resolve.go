package loaders

import (
	"os"
	"path/filepath"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// ResolveScene loads a scene by built-in name, by the name of a YAML file
// in sceneDir, or by a direct path to a YAML file
func ResolveScene(sceneName, sceneDir string) (*scene.Scene, geometry.CameraConfig, error) {
	if sceneName == "" {
		return nil, geometry.CameraConfig{}, errorsmod.Wrap(core.ErrUnknownScene, "empty scene name")
	}

	if IsSceneFile(sceneName) {
		return LoadScene(sceneName)
	}

	if s, camera, err := scene.Builtin(sceneName); err == nil {
		return s, camera, nil
	}

	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(sceneDir, sceneName+ext)
		if _, err := os.Stat(path); err == nil {
			return LoadScene(path)
		}
	}

	return nil, geometry.CameraConfig{}, errorsmod.Wrapf(core.ErrUnknownScene,
		"%q is neither built in (%s) nor a scene in %s", sceneName, strings.Join(scene.BuiltinNames(), ", "), sceneDir)
}

// IsSceneFile reports whether name looks like a path to a YAML scene
func IsSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
