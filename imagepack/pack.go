// Package imagepack packs RGBA8 sprite buffers into a single atlas buffer.
//
// Each sprite is trimmed to its tight rect (the bounding box of its visible
// pixels), the tight rects are laid out by rectpack.Pack, and the trimmed
// pixels are copied to their packed positions. The UV offset of a sprite is
// the translation from its source coordinates to atlas coordinates.
package imagepack

import (
	"fmt"
	"image"

	"imagepacker/rectpack"
)

// MaxPixels bounds the atlas size; the pixel count must stay below it.
const MaxPixels = rectpack.MaxArea

var (
	ErrInvalidArgument  = rectpack.ErrInvalidArgument
	ErrCapacityExceeded = rectpack.ErrCapacityExceeded
)

// UVOffset translates a sprite's source coordinates into atlas coordinates.
type UVOffset = rectpack.Point

// Options controls PackOptions.
type Options struct {
	// Padding is the gap kept free around every sprite.
	Padding int
	// AlphaThreshold: pixels with alpha at or below it count as transparent
	// when computing tight rects.
	AlphaThreshold uint8
	// Workers bounds the number of goroutines; 0 means runtime.NumCPU().
	Workers int
}

// Result is a packed atlas.
type Result struct {
	// Buffer holds Width x Height pixels.
	Buffer Buffer
	Width  int
	Height int
	// Rects[i] is where the tight pixels of source i sit in Buffer.
	Rects []rectpack.Rect
	// TightRects[i] is the visible area of source i in its own coordinates.
	TightRects []rectpack.Rect
	// UVOffsets[i] = Rects[i] origin - TightRects[i] origin.
	UVOffsets []UVOffset
}

// Image returns the atlas as an image sharing the result's pixels.
func (r *Result) Image() *image.NRGBA {
	return r.Buffer.NRGBA()
}

// Pack packs buffers, where buffers[i] holds widths[i] x heights[i] RGBA8
// pixels. The three slices must have the same length.
func Pack(buffers [][]uint8, widths, heights []int, padding int) (*Result, error) {
	return PackOptions(buffers, widths, heights, Options{Padding: padding})
}

// PackOptions is Pack with an alpha threshold and worker count.
func PackOptions(buffers [][]uint8, widths, heights []int, opts Options) (*Result, error) {
	if len(buffers) != len(widths) || len(buffers) != len(heights) {
		return nil, fmt.Errorf("%w: %d buffers, %d widths, %d heights",
			ErrInvalidArgument, len(buffers), len(widths), len(heights))
	}
	srcs := make([]Buffer, len(buffers))
	for i := range buffers {
		srcs[i] = Buffer{Pix: buffers[i], Width: widths[i], Height: heights[i]}
	}
	return PackBuffers(srcs, opts)
}

// PackImages converts decoded images to buffers and packs them.
func PackImages(imgs []image.Image, opts Options) (*Result, error) {
	srcs := make([]Buffer, len(imgs))
	parallel(len(imgs), opts.Workers, func(i int) {
		srcs[i] = FromImage(imgs[i])
	})
	return PackBuffers(srcs, opts)
}

// PackBuffers packs srcs into one atlas. On error no result is returned.
func PackBuffers(srcs []Buffer, opts Options) (*Result, error) {
	if opts.Padding < 0 {
		return nil, fmt.Errorf("%w: negative padding %d", ErrInvalidArgument, opts.Padding)
	}
	for i, b := range srcs {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("buffer %d: %w", i, err)
		}
	}

	tight := make([]rectpack.Rect, len(srcs))
	parallel(len(srcs), opts.Workers, func(i int) {
		tight[i] = TightRect(srcs[i], opts.AlphaThreshold)
		tight[i].ID = i
	})

	packed, size, err := rectpack.Pack(tight, opts.Padding)
	if err != nil {
		return nil, err
	}
	if uint64(size.Width)*uint64(size.Height) >= MaxPixels {
		return nil, fmt.Errorf("%w: atlas %s is too big to allocate", ErrCapacityExceeded, size.String())
	}

	uv := make([]UVOffset, len(srcs))
	for i := range srcs {
		uv[i] = packed[i].Point.Sub(tight[i].Point)
	}

	dst := NewBuffer(size.Width, size.Height)
	Blit(dst, packed, srcs, tight, opts.Workers)

	Logger().Info("imagepack: packed atlas",
		"sprites", len(srcs), "width", size.Width, "height", size.Height, "padding", opts.Padding)
	return &Result{
		Buffer:     dst,
		Width:      size.Width,
		Height:     size.Height,
		Rects:      packed,
		TightRects: tight,
		UVOffsets:  uv,
	}, nil
}
