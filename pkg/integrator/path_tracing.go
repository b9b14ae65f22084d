package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Config controls the path tracer
type Config struct {
	MaxDepth int     // Bounce cap; a hit at this depth contributes black
	TMin     float64 // Lower bound on hit distance, avoids shadow acne
	Sky      Sky     // Background gradient
}

// DefaultConfig returns the standard settings: 50 bounces, 0.001 epsilon, white-blue sky
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		TMin:     0.001,
		Sky:      DefaultSky(),
	}
}

// PathTracingIntegrator implements unidirectional path tracing with an implicit sky light
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A zero TMin or zero Sky falls back to the defaults; MaxDepth is taken as given.
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	defaults := DefaultConfig()
	if config.TMin <= 0 {
		config.TMin = defaults.TMin
	}
	if config.Sky == (Sky{}) {
		config.Sky = defaults.Sky
	}
	return &PathTracingIntegrator{config: config}
}

// Config returns the integrator settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor computes the color for a single ray by recursing through scattering events
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Vec3 {
	hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
	if !isHit {
		return pt.config.Sky.Color(ray)
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth >= pt.config.MaxDepth {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
	if !didScatter {
		return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
	}

	return scatter.Attenuation.MultiplyVec(
		pt.RayColor(scatter.Scattered, world, depth+1, random))
}

// RayColorIterative is RayColor unrolled into a loop with an accumulated
// throughput. It draws random numbers in the same order, so for the same
// seed it agrees with RayColor up to floating point reassociation.
func (pt *PathTracingIntegrator) RayColorIterative(ray core.Ray, world geometry.Shape, random *rand.Rand) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; ; depth++ {
		hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(pt.config.Sky.Color(ray))
		}
		if depth >= pt.config.MaxDepth {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, random)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}
}
