package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: KindDielectric, RefractiveIndex: refractiveIndex}
}

// scatterDielectric picks reflection or refraction with Schlick probability.
// Total internal reflection always reflects. Glass never tints.
func (m Material) scatterDielectric(rayIn core.Ray, hit HitRecord, random *rand.Rand) ScatterResult {
	attenuation := core.NewVec3(1.0, 1.0, 1.0)
	direction := rayIn.Direction
	reflected := Reflect(direction, hit.Normal)

	var outwardNormal core.Vec3
	var ratio, cosine float64
	if dn := direction.Dot(hit.Normal); dn > 0 {
		// Exiting the material
		outwardNormal = hit.Normal.Negate()
		ratio = m.RefractiveIndex
		cosine = m.RefractiveIndex * dn / direction.Length()
	} else {
		// Entering the material
		outwardNormal = hit.Normal
		ratio = 1.0 / m.RefractiveIndex
		cosine = -dn / direction.Length()
	}

	reflectProb := 1.0
	refracted, ok := Refract(direction, outwardNormal, ratio)
	if ok {
		reflectProb = Reflectance(cosine, m.RefractiveIndex)
	}

	scattered := core.NewRay(hit.Point, refracted)
	if random.Float64() < reflectProb {
		scattered = core.NewRay(hit.Point, reflected)
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}
}

// Refract bends v through a surface with normal n using Snell's law, where
// ratio is eta_incident / eta_transmitted. It reports false on total
// internal reflection.
func Refract(v, n core.Vec3, ratio float64) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - ratio*ratio*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	refracted := uv.Subtract(n.Multiply(dt)).Multiply(ratio).Subtract(n.Multiply(math.Sqrt(discriminant)))
	return refracted, true
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractiveIndex float64) float64 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
