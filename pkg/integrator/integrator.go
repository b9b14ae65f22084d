package integrator

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the linear radiance arriving along ray. depth is the
	// number of bounces already taken; callers start at 0.
	RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Vec3
}

// Sky is the implicit light source: a vertical gradient seen by every ray that escapes the scene
type Sky struct {
	Horizon core.Vec3 // Color for rays pointing straight down (t=0); level rays see the midpoint blend
	Zenith  core.Vec3 // Color for rays pointing straight up
}

// DefaultSky returns the white-to-blue gradient
func DefaultSky() Sky {
	return Sky{
		Horizon: core.NewVec3(1.0, 1.0, 1.0),
		Zenith:  core.NewVec3(0.5, 0.7, 1.0),
	}
}

// Color returns the gradient color based on ray direction
func (s Sky) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)
	return s.Horizon.Lerp(s.Zenith, t)
}
