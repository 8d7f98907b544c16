package loaders

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

func TestResolveScene(t *testing.T) {
	sceneDir := filepath.Join("..", "..", "scenes")

	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"spec-balls scene", "spec-balls", false},
		{"gloss-ramp scene", "gloss-ramp", false},
		{"single-light scene", "single-light", false},
		{"dark-diffuse scene", "dark-diffuse", false},

		// YAML scenes (by name)
		{"gloss-pair YAML", "gloss-pair", false},

		// YAML scenes (by path)
		{"direct YAML path", filepath.Join(sceneDir, "spec-balls.yaml"), false},
		{"direct YAML path 2", filepath.Join(sceneDir, "gloss-pair.yaml"), false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid YAML path", filepath.Join(sceneDir, "nonexistent.yaml"), true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene, camera, err := ResolveScene(tt.sceneType, sceneDir)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if scene != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if scene == nil {
				t.Fatalf("Expected scene for valid scene type '%s', got nil", tt.sceneType)
			}
			if scene.Len() == 0 {
				t.Errorf("Scene '%s' should have primitives", tt.sceneType)
			}
			if camera.VFov <= 0 {
				t.Errorf("Scene camera vfov should be positive, got %f", camera.VFov)
			}
		})
	}
}

func TestResolveScene_UnknownIsRegisteredError(t *testing.T) {
	_, _, err := ResolveScene("nonexistent", t.TempDir())
	if !errors.Is(err, core.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestIsSceneFile(t *testing.T) {
	tests := map[string]bool{
		"spec-balls":         false,
		"scenes/a.yaml":      true,
		"B.YML":              true,
		"scenes/readme.txt":  false,
		"spec-balls.yaml.gz": false,
	}
	for name, want := range tests {
		if got := IsSceneFile(name); got != want {
			t.Errorf("IsSceneFile(%q) = %t, want %t", name, got, want)
		}
	}
}
