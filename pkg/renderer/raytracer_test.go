package renderer

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// MockScene implements Scene for testing
type MockScene struct {
	camera *Camera
	world  geometry.Shape
}

func (m *MockScene) GetCamera() *Camera       { return m.camera }
func (m *MockScene) GetWorld() geometry.Shape { return m.world }

// MockIntegrator returns a fixed color, or the result of colorFn when set
type MockIntegrator struct {
	returnColor core.Vec3
	colorFn     func(ray core.Ray) core.Vec3
	callCount   int
}

func (m *MockIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Vec3 {
	m.callCount++
	if m.colorFn != nil {
		return m.colorFn(ray)
	}
	return m.returnColor
}

// createMockScene creates the small diffuse-sphere-on-ground scene
func createMockScene(aspectRatio float64) *MockScene {
	camera := NewCamera(CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: aspectRatio,
	})

	world := geometry.NewWorld(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
	)

	return &MockScene{camera: camera, world: world}
}

func TestRaytracer_SamplesEveryPixel(t *testing.T) {
	scene := createMockScene(2.0)
	mockIntegrator := &MockIntegrator{returnColor: core.NewVec3(0.25, 0.25, 0.25)}

	raytracer := NewRaytracer(scene, 8, 4)
	raytracer.SetSamplingConfig(SamplingConfig{SamplesPerPixel: 3, MaxDepth: 50, Seed: 1})
	raytracer.SetIntegrator(mockIntegrator)

	img, stats := raytracer.RenderPass()

	if mockIntegrator.callCount != 8*4*3 {
		t.Errorf("Expected %d integrator calls, got %d", 8*4*3, mockIntegrator.callCount)
	}
	if stats.TotalPixels != 32 || stats.TotalSamples != 96 || stats.AverageSamples != 3 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.MinSamples != 3 || stats.MaxSamplesUsed != 3 {
		t.Errorf("Every pixel should use exactly 3 samples: %+v", stats)
	}

	expected := ToRGB(core.NewVec3(0.25, 0.25, 0.25))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if got := img.RGBAAt(x, y); got != expected {
				t.Fatalf("Pixel (%d,%d): expected %v, got %v", x, y, expected, got)
			}
		}
	}
}

func TestRaytracer_TopRowLooksUp(t *testing.T) {
	scene := createMockScene(1.0)
	white := core.NewVec3(1, 1, 1)
	mockIntegrator := &MockIntegrator{colorFn: func(ray core.Ray) core.Vec3 {
		if ray.Direction.Y >= 0 {
			return white
		}
		return core.Vec3{}
	}}

	raytracer := NewRaytracer(scene, 2, 2)
	raytracer.SetSamplingConfig(SamplingConfig{SamplesPerPixel: 4, MaxDepth: 50, Seed: 42})
	raytracer.SetIntegrator(mockIntegrator)

	img, _ := raytracer.RenderPass()

	for x := 0; x < 2; x++ {
		if got := img.RGBAAt(x, 0); got != ToRGB(white) {
			t.Errorf("Top row pixel %d should see upward rays, got %v", x, got)
		}
		if got := img.RGBAAt(x, 1); got != ToRGB(core.Vec3{}) {
			t.Errorf("Bottom row pixel %d should see downward rays, got %v", x, got)
		}
	}
}

func TestRaytracer_EmptyWorldShowsSkyGradient(t *testing.T) {
	scene := createMockScene(1.0)
	scene.world = geometry.NewWorld()

	raytracer := NewRaytracer(scene, 4, 4)
	raytracer.SetSamplingConfig(SamplingConfig{SamplesPerPixel: 2, MaxDepth: 50, Seed: 42})

	img, _ := raytracer.RenderPass()

	top := img.RGBAAt(1, 0)
	bottom := img.RGBAAt(1, 3)
	if top.B != 255 || bottom.B != 255 {
		t.Errorf("Sky blue channel should saturate everywhere, got top %v bottom %v", top, bottom)
	}
	if top.R >= bottom.R {
		t.Errorf("Sky should get bluer toward the zenith: top %v, bottom %v", top, bottom)
	}
}

func TestRaytracer_DeterministicForSeed(t *testing.T) {
	render := func(seed int64) []byte {
		raytracer := NewRaytracer(createMockScene(2.0), 8, 4)
		raytracer.SetSamplingConfig(SamplingConfig{SamplesPerPixel: 4, MaxDepth: 10, Seed: seed})
		img, _ := raytracer.RenderPass()
		return img.Pix
	}

	if !bytes.Equal(render(7), render(7)) {
		t.Error("Same seed should produce identical images")
	}
	if bytes.Equal(render(7), render(8)) {
		t.Error("Different seeds should produce different noise")
	}
}

func TestDefaultSamplingConfig(t *testing.T) {
	config := DefaultSamplingConfig()
	if config.MaxDepth != 50 {
		t.Errorf("Expected default max depth 50, got %d", config.MaxDepth)
	}
	if config.SamplesPerPixel <= 0 {
		t.Errorf("Expected positive samples per pixel, got %d", config.SamplesPerPixel)
	}
}

func TestRaytracer_SamplingConfigKeepsIntegrator(t *testing.T) {
	mockIntegrator := &MockIntegrator{returnColor: core.NewVec3(1, 0, 0)}

	raytracer := NewRaytracer(createMockScene(2.0), 2, 1)
	raytracer.SetIntegrator(mockIntegrator)
	raytracer.SetSamplingConfig(SamplingConfig{SamplesPerPixel: 2, MaxDepth: 5, Seed: 3})

	img, _ := raytracer.RenderPass()

	if mockIntegrator.callCount != 4 {
		t.Errorf("Expected the installed integrator to trace all 4 samples, got %d calls", mockIntegrator.callCount)
	}
	if got := img.RGBAAt(0, 0); got != ToRGB(core.NewVec3(1, 0, 0)) {
		t.Errorf("Expected the installed integrator's color, got %v", got)
	}

	// nil goes back to the path tracer
	raytracer.SetIntegrator(nil)
	raytracer.RenderPass()
	if mockIntegrator.callCount != 4 {
		t.Errorf("Installed integrator should no longer be called, got %d calls", mockIntegrator.callCount)
	}
}
