package imagepack

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"imagepacker/rectpack"
)

// BytesPerPixel is the size of one RGBA8 pixel.
const BytesPerPixel = 4

// Buffer is a tightly packed RGBA8 pixel buffer with straight alpha.
// Row y starts at Pix[y*Width*4].
type Buffer struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewBuffer allocates a transparent buffer.
func NewBuffer(width, height int) Buffer {
	return Buffer{
		Pix:    make([]uint8, width*height*BytesPerPixel),
		Width:  width,
		Height: height,
	}
}

// FromImage copies img into a new buffer, converting to non-premultiplied RGBA.
func FromImage(img image.Image) Buffer {
	n := imaging.Clone(img)
	return Buffer{Pix: n.Pix, Width: n.Rect.Dx(), Height: n.Rect.Dy()}
}

// NRGBA returns an image view sharing the buffer's pixels.
func (b Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * BytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Validate reports whether the buffer is non-empty and its pixel slice
// matches its dimensions.
func (b Buffer) Validate() error {
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: buffer size %dx%d", ErrInvalidArgument, b.Width, b.Height)
	}
	if uint64(b.Width)*uint64(b.Height) >= MaxPixels {
		return fmt.Errorf("%w: buffer size %dx%d", ErrCapacityExceeded, b.Width, b.Height)
	}
	if want := b.Width * b.Height * BytesPerPixel; len(b.Pix) != want {
		return fmt.Errorf("%w: buffer has %d bytes, want %d for %dx%d",
			ErrInvalidArgument, len(b.Pix), want, b.Width, b.Height)
	}
	return nil
}

// Bounds returns the buffer's extent.
func (b Buffer) Bounds() rectpack.Rect {
	return rectpack.NewRect(0, 0, b.Width, b.Height)
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (b Buffer) PixOffset(x, y int) int {
	return (y*b.Width + x) * BytesPerPixel
}

// At returns the pixel at (x, y), or transparent black outside the buffer.
func (b Buffer) At(x, y int) color.NRGBA {
	if x < 0 || x >= b.Width || y < 0 || y >= b.rows() {
		return color.NRGBA{}
	}
	i := b.PixOffset(x, y)
	return color.NRGBA{R: b.Pix[i], G: b.Pix[i+1], B: b.Pix[i+2], A: b.Pix[i+3]}
}

// Set writes the pixel at (x, y); writes outside the buffer are dropped.
func (b Buffer) Set(x, y int, c color.NRGBA) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.rows() {
		return
	}
	i := b.PixOffset(x, y)
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
}

// rows returns how many complete rows Pix actually holds, capped at Height.
func (b Buffer) rows() int {
	stride := b.Width * BytesPerPixel
	if stride <= 0 {
		return 0
	}
	return min(b.Height, len(b.Pix)/stride)
}
