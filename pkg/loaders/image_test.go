package loaders

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadRGBImage creates a test PNG and verifies loading
func TestLoadRGBImage(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.png")

	// Create a simple 3x2 test image
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})
	img.Set(2, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.Set(0, 1, color.NRGBA{R: 0, G: 255, B: 0, A: 255})
	img.Set(1, 1, color.NRGBA{R: 0, G: 0, B: 255, A: 255})
	img.Set(2, 1, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	f, err := os.Create(testFile)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatalf("Failed to encode PNG: %v", err)
	}
	f.Close()

	rgb, err := LoadRGBImage(testFile)
	if err != nil {
		t.Fatalf("LoadRGBImage failed: %v", err)
	}

	if rgb.Width != 3 || rgb.Height != 2 {
		t.Errorf("Expected 3x2 image, got %dx%d", rgb.Width, rgb.Height)
	}
	if rgb.BytesPerScanline != 9 || len(rgb.Data) != 18 {
		t.Errorf("Expected 9 bytes per row and 18 total, got %d and %d", rgb.BytesPerScanline, len(rgb.Data))
	}

	tests := []struct {
		x, y     int
		expected [3]byte
	}{
		{0, 0, [3]byte{255, 255, 255}},
		{1, 0, [3]byte{255, 0, 0}},
		{2, 0, [3]byte{10, 20, 30}},
		{0, 1, [3]byte{0, 255, 0}},
		{1, 1, [3]byte{0, 0, 255}},
		{2, 1, [3]byte{1, 2, 3}},
		// Out of range coordinates clamp to the edge
		{-4, 0, [3]byte{255, 255, 255}},
		{9, 9, [3]byte{1, 2, 3}},
	}
	for _, tt := range tests {
		if got := rgb.PixelData(tt.x, tt.y); got != tt.expected {
			t.Errorf("PixelData(%d,%d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestLoadRGBImage_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := LoadRGBImage(filepath.Join(tmpDir, "missing.png")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	garbage := filepath.Join(tmpDir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRGBImage(garbage); err == nil {
		t.Error("Expected an error for undecodable data")
	}
}

func TestNewRGBImage_OffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; conversion must rebase them
	parent := image.NewRGBA(image.Rect(0, 0, 4, 4))
	parent.SetRGBA(2, 3, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	sub := parent.SubImage(image.Rect(2, 2, 4, 4))

	rgb := NewRGBImage(sub)
	if rgb.Width != 2 || rgb.Height != 2 {
		t.Fatalf("Expected 2x2, got %dx%d", rgb.Width, rgb.Height)
	}
	if got := rgb.PixelData(0, 1); got != [3]byte{7, 8, 9} {
		t.Errorf("Expected rebased pixel (7,8,9), got %v", got)
	}
}
