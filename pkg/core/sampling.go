package core

import (
	"math/rand"
)

// RandomInUnitSphere generates a random point strictly inside the unit sphere.
// Points are drawn uniformly from the [-1,1]³ cube and rejected until one lands inside.
func RandomInUnitSphere(random *rand.Rand) Vec3 {
	for {
		p := Vec3{
			X: 2*random.Float64() - 1,
			Y: 2*random.Float64() - 1,
			Z: 2*random.Float64() - 1,
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point in the z=0 unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(2*random.Float64()-1, 2*random.Float64()-1, 0)
		// Accept if inside unit disk
		if p.X*p.X+p.Y*p.Y < 1.0 {
			return p
		}
	}
}

// RandomColor returns a color with each channel uniform in [0, 1)
func RandomColor(random *rand.Rand) Vec3 {
	return NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// RandomRange returns a float uniform in [lo, hi)
func RandomRange(random *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*random.Float64()
}
