package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float64
		expectedFuzz float64
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
		{"Clamp large positive", 10.0, 1.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, random)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Incident (0, -1, -1) normalized reflects to (0, -0.707, 0.707)
	expected := core.NewVec3(0, -1, 1).Normalize()
	actual := scatter.Scattered.Direction

	if actual.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, actual)
	}

	if !scatter.Attenuation.Equals(albedo) {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_GrazingFuzzyReflectionIsAbsorbed(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 1.0)
	random := rand.New(rand.NewSource(42))

	// Almost tangent incoming ray: the mirror direction barely leaves the surface,
	// so a unit fuzz sends a large share of samples below it.
	rayIn := core.NewRay(core.NewVec3(-1, 0.001, 0), core.NewVec3(1, -0.001, 0))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	absorbed := 0
	for i := 0; i < 1000; i++ {
		scatter, didScatter := metal.Scatter(rayIn, hit, random)
		below := scatter.Scattered.Direction.Dot(hit.Normal) <= 0
		if below == didScatter {
			t.Fatalf("Scatter reported %t for direction %v", didScatter, scatter.Scattered.Direction)
		}
		if !didScatter {
			absorbed++
		}
	}

	if absorbed == 0 {
		t.Error("Expected some grazing fuzzy reflections to be absorbed")
	}
	t.Logf("Absorbed %d of 1000 grazing samples", absorbed)
}

func TestReflect_NormalComponentFlips(t *testing.T) {
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		v := core.RandomInUnitSphere(random).Multiply(5)
		n := core.RandomInUnitSphere(random)
		if n.LengthSquared() < 1e-6 {
			continue
		}
		n = n.Normalize()

		r := Reflect(v, n)
		if math.Abs(r.Dot(n)+v.Dot(n)) > 1e-9 {
			t.Errorf("reflect(v,n)·n = %f, expected %f", r.Dot(n), -v.Dot(n))
		}
		if math.Abs(r.Length()-v.Length()) > 1e-9 {
			t.Errorf("Reflection should preserve length: %f vs %f", r.Length(), v.Length())
		}
	}
}
