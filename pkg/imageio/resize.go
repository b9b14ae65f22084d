package imageio

import (
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Downsample shrinks a supersampled render by an integer factor.
// Each output pixel is filtered from its factor x factor block with CatmullRom.
func Downsample(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}

	b := img.Bounds()
	width := max(1, b.Dx()/factor)
	height := max(1, b.Dy()/factor)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Thumbnail scales img to fit within maxSize x maxSize, keeping its aspect ratio.
// Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxSize uint) image.Image {
	return resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)
}
