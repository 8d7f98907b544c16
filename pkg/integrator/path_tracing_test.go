package integrator

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-glossy-pathtracer/pkg/core"
	"github.com/df07/go-glossy-pathtracer/pkg/material"
	"github.com/df07/go-glossy-pathtracer/pkg/scene"
)

// createLightScene creates a single white emitter at (0, 0, -5)
func createLightScene() *scene.Scene {
	s := scene.New()
	s.AddSphere(core.NewVec3(0, 0, -5), 1, material.NewLight(core.NewVec3(1, 1, 1)))
	return s
}

// createFurnaceScene places a sphere with the given material at the origin
// inside a large uniformly emitting enclosure
func createFurnaceScene(mat material.Material) *scene.Scene {
	s := scene.New()
	s.AddSphere(core.NewVec3(0, 0, 0), 1, mat)
	s.AddSphere(core.NewVec3(0, 0, 0), 100, material.NewLight(core.NewVec3(1, 1, 1)))
	return s
}

func newTestSampler(seed int64) core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// TestPathTracingDepthTermination tests that ray depth is properly limited
func TestPathTracingDepthTermination(t *testing.T) {
	sc := createLightScene()
	sampler := newTestSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1).Normalize())

	integrator := NewPathTracingIntegrator(0)
	if color := integrator.Radiance(ray, sc, sampler); color != (core.Vec3{}) {
		t.Errorf("Expected black color for max depth 0, got %v", color)
	}

	integrator = NewPathTracingIntegrator(3)
	if color := integrator.Trace(ray, sc, sampler, 3); color != (core.Vec3{}) {
		t.Errorf("Expected black color at depth == max depth, got %v", color)
	}
	if color := integrator.Trace(ray, sc, sampler, 7); color != (core.Vec3{}) {
		t.Errorf("Expected black color past max depth, got %v", color)
	}
}

func TestPathTracingMissIsBlack(t *testing.T) {
	sc := createLightScene()
	integrator := NewPathTracingIntegrator(5)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0).Normalize())

	if color := integrator.Radiance(ray, sc, newTestSampler(42)); color != (core.Vec3{}) {
		t.Errorf("Expected black background, got %v", color)
	}
}

func TestPathTracingLightReturnsEmittance(t *testing.T) {
	sc := createLightScene()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1).Normalize())

	for _, maxDepth := range []int{1, 2, 10} {
		integrator := NewPathTracingIntegrator(maxDepth)
		color := integrator.Radiance(ray, sc, newTestSampler(int64(maxDepth)))
		if color != core.NewVec3(1, 1, 1) {
			t.Errorf("maxDepth=%d: expected exact emittance (1, 1, 1), got %v", maxDepth, color)
		}
	}
}

func TestPathTracingNoLightIsBlack(t *testing.T) {
	sc := scene.New()
	sc.AddSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8)))
	sc.AddSphere(core.NewVec3(0, -101, -5), 100, material.NewReflective(core.NewVec3(0.5, 0.5, 0.5), 0.5, 0.7))

	integrator := NewPathTracingIntegrator(8)
	sampler := newTestSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1).Normalize())

	for i := 0; i < 200; i++ {
		if color := integrator.Radiance(ray, sc, sampler); color != (core.Vec3{}) {
			t.Fatalf("sample %d: expected black with no emitters, got %v", i, color)
		}
	}
}

func TestPathTracingPerfectMirror(t *testing.T) {
	mirror := material.NewReflective(core.NewVec3(0, 0, 0), 1, 1)
	emittance := core.NewVec3(2, 3, 4)

	sc := scene.New()
	sc.AddSphere(core.NewVec3(0, 0, 0), 1, mirror)
	sc.AddSphere(core.NewVec3(0, 0, 10), 1, material.NewLight(emittance))

	// Straight down onto the mirror; the reflection heads back past the eye into the light
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1).Normalize())

	integrator := NewPathTracingIntegrator(2)
	if color := integrator.Radiance(ray, sc, newTestSampler(42)); color != emittance {
		t.Errorf("Expected mirror to show light %v, got %v", emittance, color)
	}

	// One bounce is not enough to reach the light
	integrator = NewPathTracingIntegrator(1)
	if color := integrator.Radiance(ray, sc, newTestSampler(42)); color != (core.Vec3{}) {
		t.Errorf("Expected black with max depth 1, got %v", color)
	}
}

func TestPathTracingDiffuseFurnace(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.25, 0.75)
	sc := createFurnaceScene(material.NewDiffuse(albedo))
	integrator := NewPathTracingIntegrator(2)
	sampler := newTestSampler(42)
	ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1).Normalize())

	// Every diffuse bounce reaches the enclosure, so each sample is exactly albedo
	for i := 0; i < 100; i++ {
		color := integrator.Radiance(ray, sc, sampler)
		if color.Subtract(albedo).Length() > 1e-12 {
			t.Fatalf("sample %d: expected %v, got %v", i, albedo, color)
		}
	}
}

func TestPathTracingGlossyFurnace(t *testing.T) {
	// At normal incidence the cone stays above the surface and
	// E[weight·cosθ] = 2/(1+cosα) · (1+cosα)/2 = 1. The widest lobe has
	// cosα below Epsilon, falls back to weight 1 and keeps only E[cosθ] = 1/2.
	tests := []struct {
		gloss float64
		want  float64
	}{
		{0, 0.5},
		{0.3, 1},
		{0.7, 1},
		{0.95, 1},
		{1, 1},
	}

	for _, tt := range tests {
		sc := createFurnaceScene(material.NewReflective(core.NewVec3(0, 0, 0), 1, tt.gloss))
		integrator := NewPathTracingIntegrator(2)
		sampler := newTestSampler(42)
		ray := core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1).Normalize())

		values := make([]float64, 20000)
		for i := range values {
			values[i] = integrator.Radiance(ray, sc, sampler).X
		}

		mean, std := stat.MeanStdDev(values, nil)
		if math.Abs(mean-tt.want) > 0.02 {
			t.Errorf("gloss=%.2f: expected mean radiance %.2f, got %.4f (std %.4f)", tt.gloss, tt.want, mean, std)
		}
	}
}

func TestPathTracingGlossyBelowSurfaceIsBlack(t *testing.T) {
	// A grazing ray with the widest lobe sends about half the samples below the surface
	sc := createFurnaceScene(material.NewReflective(core.NewVec3(0, 0, 0), 1, 0))
	integrator := NewPathTracingIntegrator(2)
	sampler := newTestSampler(42)
	ray := core.NewRay(core.NewVec3(-5, 0.999, 0), core.NewVec3(1, 0, 0).Normalize())

	zeros := 0
	for n := 0; n < 2000; n++ {
		color := integrator.Radiance(ray, sc, sampler)
		if color.X < 0 {
			t.Fatalf("Negative radiance %v", color)
		}
		if color == (core.Vec3{}) {
			zeros++
		}
	}

	if zeros == 0 {
		t.Error("Expected some grazing glossy samples to be discarded")
	}
}

func TestPathTracingFiniteAndNonNegative(t *testing.T) {
	sc, _ := scene.NewSpecBallsScene()
	integrator := NewPathTracingIntegrator(5)
	random := rand.New(rand.NewSource(42))
	sampler := core.NewRandomSampler(random)

	for n := 0; n < 5000; n++ {
		dir := core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, -1).Normalize()
		color := integrator.Radiance(core.NewRay(core.NewVec3(0, 0, 0), dir), sc, sampler)

		if color.HasNaN() || math.IsInf(color.X+color.Y+color.Z, 0) {
			t.Fatalf("Non-finite radiance %v for direction %v", color, dir)
		}
		if color.X < 0 || color.Y < 0 || color.Z < 0 {
			t.Fatalf("Negative radiance %v for direction %v", color, dir)
		}
	}
}
