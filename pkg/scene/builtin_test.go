package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
)

func TestBuiltin(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, camera, err := Builtin(name)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if s.Len() == 0 {
				t.Error("Expected primitives in built-in scene")
			}
			if camera.VFov <= 0 || camera.VFov >= 180 {
				t.Errorf("Unexpected vertical fov %f", camera.VFov)
			}
		})
	}
}

func TestBuiltin_Unknown(t *testing.T) {
	s, _, err := Builtin("nonexistent")
	if err == nil {
		t.Fatal("Expected error for unknown scene")
	}
	if !errors.Is(err, core.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil scene, got %v", s)
	}
}

func TestSpecBallsScene_Layout(t *testing.T) {
	s, camera := NewSpecBallsScene()
	if s.Len() != 6 {
		t.Fatalf("Expected 6 primitives, got %d", s.Len())
	}

	lights := 0
	for _, p := range s.Primitives() {
		if p.Material.IsEmissive() {
			lights++
		}
	}
	if lights != 1 {
		t.Errorf("Expected exactly one light, got %d", lights)
	}
	if camera.VFov != 55 {
		t.Errorf("Expected vfov 55, got %f", camera.VFov)
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	content := "# Scene: Glossy Cross\n# Description: five balls\ncamera:\n  vfov: 40\n"
	if err := os.WriteFile(filepath.Join(dir, "cross.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plain.yml"), []byte("spheres: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 2 {
		t.Fatalf("Expected 2 scene files, got %d", len(scenes))
	}

	if scenes[0].Name != "Glossy Cross" || scenes[0].Description != "five balls" {
		t.Errorf("Metadata not parsed: %+v", scenes[0])
	}
	if scenes[1].Name != "plain" || scenes[1].Type != SceneTypeFile {
		t.Errorf("Expected fallback metadata, got %+v", scenes[1])
	}

	// IDs are resolvable names, not paths
	if scenes[0].ID != "cross" || scenes[1].ID != "plain" {
		t.Errorf("Expected IDs cross and plain, got %q and %q", scenes[0].ID, scenes[1].ID)
	}
	if scenes[0].FilePath != filepath.Join(dir, "cross.yaml") {
		t.Errorf("Unexpected file path %q", scenes[0].FilePath)
	}
}

func TestListSceneFiles_MissingDir(t *testing.T) {
	scenes, err := ListSceneFiles(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != 0 {
		t.Errorf("Expected no scenes, got %d", len(scenes))
	}
}

func TestListAllScenes(t *testing.T) {
	scenes, err := ListAllScenes(t.TempDir())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(scenes) != len(BuiltinNames()) {
		t.Errorf("Expected %d built-in scenes, got %d", len(BuiltinNames()), len(scenes))
	}
	for _, s := range scenes {
		if s.Type != SceneTypeBuiltin {
			t.Errorf("Expected builtin type, got %q", s.Type)
		}
	}
}
