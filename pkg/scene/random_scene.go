package scene

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// DefaultRandomSeed is the layout seed used when the random scene is built by name
const DefaultRandomSeed = 1

// NewRandomScene creates the cover picture: a field of small random spheres around
// three large ones. The same seed always yields the same layout.
func NewRandomScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20.0,
		AspectRatio:   3.0 / 2.0,
		Aperture:      0.1,
		FocusDistance: 10.0,
	}

	samplingConfig := SamplingConfig{
		Width:           600,
		Height:          400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}

	random := rand.New(rand.NewSource(seed))
	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMaterial := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())

			// Keep the small spheres out of the large metal sphere
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case chooseMaterial < 0.8:
				mat = material.NewLambertian(core.RandomColor(random).MultiplyVec(core.RandomColor(random)))
			case chooseMaterial < 0.95:
				albedo := core.NewVec3(
					core.RandomRange(random, 0.5, 1),
					core.RandomRange(random, 0.5, 1),
					core.RandomRange(random, 0.5, 1),
				)
				mat = material.NewMetal(albedo, core.RandomRange(random, 0, 0.5))
			default:
				mat = material.NewDielectric(1.5)
			}

			shapes = append(shapes, geometry.NewSphere(center, 0.2, mat))
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return newScene(defaultCameraConfig, cameraOverrides, samplingConfig, shapes...)
}
