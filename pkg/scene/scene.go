package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Shading selects the light transport used to render a scene
type Shading int

const (
	ShadingPath    Shading = iota // Monte Carlo path tracing under the sky
	ShadingNormals                // Surface normals mapped to color
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera         *renderer.Camera
	CameraConfig   renderer.CameraConfig
	World          *geometry.World // Objects in the scene
	SamplingConfig SamplingConfig
	Shading        Shading
}

// SamplingConfig contains the scene's preferred output size and quality
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// newScene builds the camera from the merged configuration and wraps the shapes in a world
func newScene(defaultCamera renderer.CameraConfig, cameraOverrides []renderer.CameraConfig, sampling SamplingConfig, shapes ...geometry.Shape) *Scene {
	cameraConfig := defaultCamera
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCamera, cameraOverrides[0])
	}

	return &Scene{
		Camera:         renderer.NewCamera(cameraConfig),
		CameraConfig:   cameraConfig,
		World:          geometry.NewWorld(shapes...),
		SamplingConfig: sampling,
	}
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// NewIntegrator returns the integrator this scene should be rendered with.
// maxDepth <= 0 uses the scene's own bounce limit.
func (s *Scene) NewIntegrator(maxDepth int) integrator.Integrator {
	if s.Shading == ShadingNormals {
		return integrator.NewNormalIntegrator(integrator.DefaultSky())
	}
	if maxDepth <= 0 {
		maxDepth = s.SamplingConfig.MaxDepth
	}
	return integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: maxDepth})
}

// Resize changes the output size and keeps the camera aspect ratio in step with it
func (s *Scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = height
	s.CameraConfig.AspectRatio = float64(width) / float64(height)
	s.Camera = renderer.NewCamera(s.CameraConfig)
}
