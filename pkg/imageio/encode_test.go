package imageio

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"ppm", FormatPPM, false},
		{".PNG", FormatPNG, false},
		{" webp ", FormatWebP, false},
		{"tga", FormatTGA, false},
		{"jpeg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("output/default/render.webp"); err != nil || f != FormatWebP {
		t.Errorf("Expected webp, got %q (%v)", f, err)
	}
	if _, err := FormatFromPath("render"); err == nil {
		t.Error("Expected error for a path without extension")
	}
}

func TestFormat_Metadata(t *testing.T) {
	if FormatPNG.Extension() != ".png" {
		t.Errorf("Unexpected extension %q", FormatPNG.Extension())
	}
	for _, f := range Formats {
		if f.ContentType() == "application/octet-stream" {
			t.Errorf("Format %q has no content type", f)
		}
	}
}

func TestEncode_AllFormats(t *testing.T) {
	img := testImage()

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			data, err := EncodeBytes(img, format)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(data) == 0 {
				t.Fatal("Expected encoded bytes")
			}
		})
	}

	if _, err := EncodeBytes(img, Format("bmp")); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestEncode_LosslessRoundTrips(t *testing.T) {
	img := testImage()

	pngData, err := EncodeBytes(img, FormatPNG)
	if err != nil {
		t.Fatalf("PNG encode failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		t.Fatalf("PNG decode failed: %v", err)
	}
	if mse, err := Compare(img, decoded); err != nil || mse != 0 {
		t.Errorf("PNG round trip: mse %f, err %v", mse, err)
	}

	tgaData, err := EncodeBytes(img, FormatTGA)
	if err != nil {
		t.Fatalf("TGA encode failed: %v", err)
	}
	decoded, err = tga.Decode(bytes.NewReader(tgaData))
	if err != nil {
		t.Fatalf("TGA decode failed: %v", err)
	}
	if mse, err := Compare(img, decoded); err != nil || mse != 0 {
		t.Errorf("TGA round trip: mse %f, err %v", mse, err)
	}
}

func TestWriteFileAndReadImage(t *testing.T) {
	tmpDir := t.TempDir()
	img := testImage()

	for _, format := range []Format{FormatPPM, FormatPNG, FormatTGA} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(tmpDir, "nested", "render"+format.Extension())
			if err := WriteFile(path, img); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			loaded, err := ReadImage(path)
			if err != nil {
				t.Fatalf("ReadImage failed: %v", err)
			}
			if mse, err := Compare(img, loaded); err != nil || mse != 0 {
				t.Errorf("Round trip through %s: mse %f, err %v", format, mse, err)
			}
		})
	}

	if err := WriteFile(filepath.Join(tmpDir, "render.gif"), img); err == nil {
		t.Error("Expected error for unsupported extension")
	}
	if _, err := ReadImage(filepath.Join(tmpDir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}
