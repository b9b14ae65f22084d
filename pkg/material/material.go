package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Kind identifies which scattering model a Material uses
type Kind int

const (
	KindLambertian Kind = iota // Diffuse
	KindMetal                  // Fuzzy mirror
	KindDielectric             // Clear glass
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindMetal:
		return "metal"
	case KindDielectric:
		return "dielectric"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material is a closed sum over the three surface types. It is a small
// immutable value and is copied into every HitRecord.
//
// Only the fields relevant to Kind are meaningful: Albedo for lambertian
// and metal, Fuzz for metal, RefractiveIndex for dielectric.
type Material struct {
	Kind            Kind
	Albedo          core.Vec3
	Fuzz            float64
	RefractiveIndex float64
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   core.Ray  // The scattered ray
	Attenuation core.Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection
	Normal   core.Vec3 // Unit outward normal (inward for negative-radius spheres)
	Material Material  // Material of the hit object
}

// Scatter computes how rayIn leaves the surface described by hit.
// It returns false when the ray is absorbed.
func (m Material) Scatter(rayIn core.Ray, hit HitRecord, random *rand.Rand) (ScatterResult, bool) {
	switch m.Kind {
	case KindLambertian:
		return m.scatterLambertian(hit, random), true
	case KindMetal:
		return m.scatterMetal(rayIn, hit, random)
	case KindDielectric:
		return m.scatterDielectric(rayIn, hit, random), true
	default:
		return ScatterResult{}, false
	}
}

// String describes the material and its parameters
func (m Material) String() string {
	switch m.Kind {
	case KindLambertian:
		return fmt.Sprintf("lambertian(albedo=%v)", m.Albedo)
	case KindMetal:
		return fmt.Sprintf("metal(albedo=%v, fuzz=%g)", m.Albedo, m.Fuzz)
	case KindDielectric:
		return fmt.Sprintf("dielectric(ior=%g)", m.RefractiveIndex)
	default:
		return m.Kind.String()
	}
}
