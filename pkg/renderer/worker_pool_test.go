package renderer

import (
	"errors"
	"testing"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/geometry"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// MockIntegrator returns a fixed color for every ray
type MockIntegrator struct {
	returnColor core.Vec3
}

func (m *MockIntegrator) Radiance(ray core.Ray, s *scene.Scene, sampler core.Sampler) core.Vec3 {
	return m.returnColor
}

func createMockTileRenderer(width, height, spp int) *TileRenderer {
	camera := geometry.NewCamera(testCamera(), width, height)
	return NewTileRenderer(scene.New(), camera, &MockIntegrator{returnColor: core.NewVec3(0.25, 0.5, 1)}, spp)
}

func TestNewWorkerPool_NegativeWorkers(t *testing.T) {
	pool, err := NewWorkerPool(createMockTileRenderer(4, 4, 1), -1, 1, 0)
	if !errors.Is(err, core.ErrInvalidThreads) {
		t.Errorf("Expected ErrInvalidThreads, got %v", err)
	}
	if pool != nil {
		t.Error("Expected nil pool")
	}
}

func TestWorkerPool_EveryTileOnce(t *testing.T) {
	width, height := 37, 21
	tr := createMockTileRenderer(width, height, 2)
	tiles := NewTileGrid(width, height, 5)

	pool, err := NewWorkerPool(tr, 3, len(tiles), 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pool.GetNumWorkers() != 3 {
		t.Errorf("Expected 3 workers, got %d", pool.GetNumWorkers())
	}

	buf := NewPixelBuffer(width, height)
	pool.Start()
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Buffer: buf})
	}

	done := make(map[int]bool)
	totalSamples := 0
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatal("Result queue closed early")
		}
		if done[result.TileID] {
			t.Errorf("Tile %d rendered twice", result.TileID)
		}
		done[result.TileID] = true
		totalSamples += result.Samples
	}
	pool.Stop()

	if len(done) != len(tiles) {
		t.Errorf("Expected %d tiles, got %d", len(tiles), len(done))
	}
	if totalSamples != width*height*2 {
		t.Errorf("Expected %d samples, got %d", width*height*2, totalSamples)
	}
	for i, c := range buf.Pixels {
		if c != core.NewVec3(0.25, 0.5, 1) {
			t.Fatalf("Pixel %d not written: %v", i, c)
		}
	}
}
