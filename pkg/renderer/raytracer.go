package renderer

import (
	"image"
	"math/rand"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Seed for the reference renderer's random source
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// Raytracer is the single-threaded reference renderer. It owns one random
// source and consumes it in a fixed order, so a seed identifies an image.
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     SamplingConfig
	integrator integrator.Integrator
	customInt  bool // integrator was installed by SetIntegrator
	random     *rand.Rand
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	rt := &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
	}
	rt.SetSamplingConfig(DefaultSamplingConfig())
	return rt
}

// SetSamplingConfig updates the sampling configuration and reseeds the random source.
// The default path tracer is rebuilt for the new MaxDepth; an integrator installed
// with SetIntegrator is kept.
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
	if !rt.customInt {
		rt.integrator = integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: config.MaxDepth})
	}
	rt.random = rand.New(rand.NewSource(config.Seed))
}

// SetIntegrator replaces the light transport algorithm. Passing nil restores
// the default path tracer.
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	if integratorInst == nil {
		rt.customInt = false
		rt.integrator = integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: rt.config.MaxDepth})
		return
	}
	rt.customInt = true
	rt.integrator = integratorInst
}

// GetSamplingConfig returns the current sampling configuration
func (rt *Raytracer) GetSamplingConfig() SamplingConfig {
	return rt.config
}

// RenderPass renders the full image. Rows are traced top to bottom and pixels
// left to right; row j of the camera grid (j=0 at the bottom) lands in image row height-1-j.
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()
	stats := newRenderStats(rt.width*rt.height, rt.config.SamplesPerPixel)

	for j := rt.height - 1; j >= 0; j-- {
		for i := 0; i < rt.width; i++ {
			var ps PixelStats

			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				// Convert pixel coordinates to normalized coordinates with jitter
				s := (float64(i) + rt.random.Float64()) / float64(rt.width)
				t := (float64(j) + rt.random.Float64()) / float64(rt.height)

				ray := camera.GetRay(s, t, rt.random)
				ps.AddSample(rt.integrator.RayColor(ray, world, 0, rt.random))
			}

			img.SetRGBA(i, rt.height-1-j, ToRGB(ps.GetColor()))
			stats.addPixel(ps.SampleCount)
		}
	}

	stats.finalize()
	stats.Duration = time.Since(start)
	return img, stats
}
