package imageio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// maxPPMPixels caps the image a PPM header may ask ReadPPM to allocate
const maxPPMPixels = 1 << 26

// WritePPM writes img as a plain-text (P3) PPM: a three line header followed by
// one "r g b" triple per pixel, rows top to bottom, pixels left to right.
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write ppm header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", c.R, c.G, c.B); err != nil {
				return fmt.Errorf("failed to write ppm pixel: %w", err)
			}
		}
	}

	return bw.Flush()
}

// ReadPPM parses a plain-text (P3) PPM. Comments starting with '#' are skipped
// and channel values are rescaled from the file's maximum to 255.
func ReadPPM(r io.Reader) (*image.RGBA, error) {
	sc := newTokenScanner(r)

	width, height, maxVal, err := readPPMHeader(sc)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var rgb [3]uint8
			for i := range rgb {
				v, err := sc.nextInt()
				if err != nil {
					return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, err)
				}
				if v < 0 || v > maxVal {
					return nil, fmt.Errorf("pixel (%d,%d): value %d outside [0,%d]", x, y, v, maxVal)
				}
				rgb[i] = uint8(v * 255 / maxVal)
			}
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}

	return img, nil
}

func readPPMHeader(sc *tokenScanner) (width, height, maxVal int, err error) {
	magic, err := sc.next()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read ppm magic: %w", err)
	}
	if magic != "P3" {
		return 0, 0, 0, fmt.Errorf("unsupported ppm magic %q", magic)
	}

	if width, err = sc.nextInt(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read ppm width: %w", err)
	}
	if height, err = sc.nextInt(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read ppm height: %w", err)
	}
	if maxVal, err = sc.nextInt(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read ppm max value: %w", err)
	}
	if width <= 0 || height <= 0 || maxVal <= 0 || maxVal > 65535 || width > maxPPMPixels/height {
		return 0, 0, 0, fmt.Errorf("invalid ppm header %dx%d max %d", width, height, maxVal)
	}

	return width, height, maxVal, nil
}

// tokenScanner splits PPM text into whitespace separated tokens, dropping comments
type tokenScanner struct {
	sc      *bufio.Scanner
	pending []string
}

func newTokenScanner(r io.Reader) *tokenScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &tokenScanner{sc: sc}
}

func (t *tokenScanner) next() (string, error) {
	for len(t.pending) == 0 {
		if !t.sc.Scan() {
			if err := t.sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		line := t.sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		t.pending = strings.Fields(line)
	}

	token := t.pending[0]
	t.pending = t.pending[1:]
	return token, nil
}

func (t *tokenScanner) nextInt() (int, error) {
	token, err := t.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", token)
	}
	return v, nil
}
