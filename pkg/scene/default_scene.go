package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// defaultSpheres returns the three feature spheres: diffuse centre, fuzzy gold on the right,
// and a hollow glass bubble on the left made from a negative-radius inner shell
func defaultSpheres() []geometry.Shape {
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	return []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, lambertianBlue),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, metalGold),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, materialGlass),
	}
}

// NewDefaultScene creates the three-sphere scene on a large ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(-2, 2, 1),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        30.0,
		AspectRatio: 2.0,
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          200,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	ground := geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0)))
	shapes := append(defaultSpheres(), ground)

	return newScene(defaultCameraConfig, cameraOverrides, samplingConfig, shapes...)
}

// NewPlaneScene creates the default spheres resting above an infinite ground plane
func NewPlaneScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40.0,
		AspectRatio: 16.0 / 9.0,
		Aperture:    0.05,
	}

	samplingConfig := SamplingConfig{
		Width:           400,
		Height:          225,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	ground := geometry.NewPlane(
		core.NewVec3(0, -0.5, 0),
		core.NewVec3(0, 1, 0),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	)
	shapes := append(defaultSpheres(), ground)

	return newScene(defaultCameraConfig, cameraOverrides, samplingConfig, shapes...)
}

// NewNormalsScene creates the two-sphere picture shaded by surface normal
func NewNormalsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	// Reproduces the fixed frame with lower-left corner (-2,-1,-1) and a 4x2 image plane
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90.0,
		AspectRatio: 2.0,
	}

	samplingConfig := SamplingConfig{
		Width:           200,
		Height:          100,
		SamplesPerPixel: 100,
		MaxDepth:        1,
	}

	white := material.NewLambertian(core.NewVec3(1, 1, 1))
	s := newScene(defaultCameraConfig, cameraOverrides, samplingConfig,
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, white),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, white),
	)
	s.Shading = ShadingNormals
	return s
}
