package imageio

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
)

// ReadImage loads a PPM, TGA, PNG or JPEG image, choosing the decoder by extension.
// Unknown extensions are sniffed from the file header.
func ReadImage(filename string) (image.Image, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, err := decode(file, strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filename, err)
	}
	return img, nil
}

// decode dispatches on ext. The tga package registers an empty magic string,
// so header sniffing is only trusted for extensions nothing else claims.
func decode(r io.Reader, ext string) (image.Image, error) {
	switch ext {
	case ".ppm":
		return ReadPPM(r)
	case ".tga":
		return tga.Decode(r)
	case ".png":
		return png.Decode(r)
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err
	}
}
