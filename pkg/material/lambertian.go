package material

import (
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// NewLambertian creates a perfectly diffuse material
func NewLambertian(albedo core.Vec3) Material {
	return Material{Kind: KindLambertian, Albedo: albedo}
}

// scatterLambertian aims at a random point in the unit sphere tangent to
// the hit point, which approximates a cosine-weighted diffuse lobe.
func (m Material) scatterLambertian(hit HitRecord, random *rand.Rand) ScatterResult {
	target := hit.Point.Add(hit.Normal).Add(core.RandomInUnitSphere(random))
	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, target.Subtract(hit.Point)),
		Attenuation: m.Albedo,
	}
}
