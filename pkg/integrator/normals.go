package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// NormalIntegrator shades each primary hit by its surface normal mapped into [0,1]³.
// Nothing scatters and no random numbers are consumed.
type NormalIntegrator struct {
	sky Sky
}

// NewNormalIntegrator creates a normal-visualisation integrator over the given sky
func NewNormalIntegrator(sky Sky) *NormalIntegrator {
	if sky == (Sky{}) {
		sky = DefaultSky()
	}
	return &NormalIntegrator{sky: sky}
}

// RayColor returns 0.5*(n+1) at the nearest hit, or the sky on a miss
func (ni *NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, depth int, random *rand.Rand) core.Vec3 {
	hit, isHit := world.Hit(ray, 0, math.Inf(1))
	if !isHit {
		return ni.sky.Color(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
