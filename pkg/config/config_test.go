package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config != DefaultConfig() {
		t.Errorf("Expected defaults %+v, got %+v", DefaultConfig(), config)
	}
}

func TestLoad_Layers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "width: 640\nheight: 480\nspp: 32\nmax_depth: 8\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PATHTRACER_SPP", "128")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("max-depth", 5, "")
	flags.Int("threads", 0, "")
	if err := flags.Parse([]string{"--max-depth", "12"}); err != nil {
		t.Fatal(err)
	}

	v := New()
	if err := BindFlags(v, flags); err != nil {
		t.Fatalf("Unexpected bind error: %v", err)
	}

	config, err := Load(v, path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"width from file", config.Width, 640},
		{"height from file", config.Height, 480},
		{"spp from env", config.SamplesPerPixel, 128},
		{"max depth from flag", config.MaxDepth, 12},
		{"threads default", config.Threads, 0},
		{"tile size default", config.TileSize, DefaultConfig().TileSize},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, tt.got)
		}
	}
}

func TestLoad_SearchPath(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, ConfigName+".yaml"), []byte("seed: 99\noutput: out.png\n"), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := Load(New(), "")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if config.Seed != 99 || config.Output != "out.png" {
		t.Errorf("Expected seed 99 and output out.png, got %d %q", config.Seed, config.Output)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestRenderOptions(t *testing.T) {
	camera := geometry.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   55,
	}

	config := DefaultConfig()
	config.Seed = 3
	opts := config.RenderOptions(camera)

	if opts.Width != config.Width || opts.Height != config.Height || opts.SamplesPerPixel != config.SamplesPerPixel {
		t.Errorf("Options %+v do not match config %+v", opts, config)
	}
	if opts.Seed != 3 || opts.MaxDepth != config.MaxDepth || opts.TileSize != config.TileSize {
		t.Errorf("Options %+v do not match config %+v", opts, config)
	}
	if opts.Camera != camera {
		t.Errorf("Expected scene camera to be kept, got %+v", opts.Camera)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("Default options should validate: %v", err)
	}

	config.VFov = 30
	if opts := config.RenderOptions(camera); opts.Camera.VFov != 30 {
		t.Errorf("Expected vfov override 30, got %f", opts.Camera.VFov)
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pathtracer.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	config, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Unexpected error loading written config: %v", err)
	}
	if config != DefaultConfig() {
		t.Errorf("Expected %+v, got %+v", DefaultConfig(), config)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (stand-in for testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
