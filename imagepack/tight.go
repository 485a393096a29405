package imagepack

import "imagepacker/rectpack"

// TightRect returns the smallest rect holding every pixel whose alpha is
// above threshold. A fully transparent buffer keeps its full bounds so the
// sprite still gets a slot in the atlas.
func TightRect(b Buffer, threshold uint8) rectpack.Rect {
	rows := b.rows()
	if b.Width <= 0 || rows <= 0 {
		return rectpack.Rect{}
	}
	minX, minY := b.Width, rows
	maxX, maxY := -1, -1
	for y := 0; y < rows; y++ {
		i := b.PixOffset(0, y) + 3
		for x := 0; x < b.Width; x++ {
			if b.Pix[i] > threshold {
				minX = min(minX, x)
				maxX = max(maxX, x)
				minY = min(minY, y)
				maxY = y
			}
			i += BytesPerPixel
		}
	}
	if maxX < 0 {
		return b.Bounds()
	}
	return rectpack.NewRectLTRB(minX, minY, maxX+1, maxY+1)
}
