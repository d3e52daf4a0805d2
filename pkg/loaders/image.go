package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	"github.com/fogleman/gg"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// BytesPerPixel is the stride of one RGB8 pixel
const BytesPerPixel = 3

// RGBImage is a decoded image as tightly packed 8-bit RGB triples, row 0 at the top
type RGBImage struct {
	Width            int
	Height           int
	BytesPerScanline int
	Data             []byte
}

// LoadRGBImage loads a PNG or JPEG image and converts it to an RGB8 buffer
func LoadRGBImage(filename string) (*RGBImage, error) {
	// gg.LoadImage opens the file and auto-detects PNG/JPEG from the header
	img, err := gg.LoadImage(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
	}
	return NewRGBImage(img), nil
}

// NewRGBImage converts any decoded image to RGB8, dropping alpha
func NewRGBImage(img image.Image) *RGBImage {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	stride := width * BytesPerPixel
	data := make([]byte, stride*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]; the high byte is the 8-bit value
			offset := y*stride + x*BytesPerPixel
			data[offset] = uint8(r >> 8)
			data[offset+1] = uint8(g >> 8)
			data[offset+2] = uint8(b >> 8)
		}
	}

	return &RGBImage{
		Width:            width,
		Height:           height,
		BytesPerScanline: stride,
		Data:             data,
	}
}

// PixelData returns the RGB triple at (x, y). Coordinates are clamped to the image
// so the last row and column repeat instead of wrapping.
func (img *RGBImage) PixelData(x, y int) [3]byte {
	x = core.Clamp(x, 0, img.Width-1)
	y = core.Clamp(y, 0, img.Height-1)
	offset := y*img.BytesPerScanline + x*BytesPerPixel
	return [3]byte{img.Data[offset], img.Data[offset+1], img.Data[offset+2]}
}
