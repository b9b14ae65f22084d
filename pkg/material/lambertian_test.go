package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := HitRecord{
		T:        1,
		Point:    core.NewVec3(0, 0, 0),
		Normal:   core.NewVec3(0, 0, 1),
		Material: lambertian,
	}

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(rayIn, hit, random)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Errorf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}

		// normal + point in unit sphere never points below the tangent plane
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Errorf("Scattered direction %v points into the surface", scatter.Scattered.Direction)
		}

		// The offset from the normal must lie inside the unit sphere
		offset := scatter.Scattered.Direction.Subtract(hit.Normal)
		if offset.LengthSquared() >= 1.0 {
			t.Errorf("Diffuse offset %v outside unit sphere", offset)
		}
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindLambertian, "lambertian"},
		{KindMetal, "metal"},
		{KindDielectric, "dielectric"},
		{Kind(9), "kind(9)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Expected %q, got %q", tt.expected, got)
		}
	}
}

func TestMaterial_UnknownKindAbsorbs(t *testing.T) {
	m := Material{Kind: Kind(42)}
	_, didScatter := m.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1)), HitRecord{Normal: core.NewVec3(0, 0, 1)}, rand.New(rand.NewSource(1)))
	if didScatter {
		t.Error("Unknown material kinds should absorb")
	}
}
