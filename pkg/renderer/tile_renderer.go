package renderer

import (
	"image"
	"math/rand"

	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator.
// It holds no mutable state and may be shared by every worker.
type TileRenderer struct {
	scene         Scene
	integrator    integrator.Integrator
	width, height int
}

// NewTileRenderer creates a new tile renderer for a width x height image
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator, width, height int) *TileRenderer {
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		width:      width,
		height:     height,
	}
}

// RenderTileBounds tops up every pixel in bounds (image coordinates, y down)
// to targetSamples samples, drawing all randomness from random.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) RenderStats {
	camera := tr.scene.GetCamera()
	world := tr.scene.GetWorld()
	stats := newRenderStats(bounds.Dx()*bounds.Dy(), targetSamples)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := tr.height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[y][i]
			initial := ps.SampleCount

			for ps.SampleCount < targetSamples {
				s := (float64(i) + random.Float64()) / float64(tr.width)
				t := (float64(j) + random.Float64()) / float64(tr.height)

				ray := camera.GetRay(s, t, random)
				ps.AddSample(tr.integrator.RayColor(ray, world, 0, random))
			}

			stats.addPixel(ps.SampleCount - initial)
		}
	}

	stats.finalize()
	return stats
}
