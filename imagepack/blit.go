package imagepack

import (
	"runtime"
	"sync"

	"imagepacker/rectpack"
)

// parallel runs fn(i) for every i in [0, n) on at most workers goroutines.
// workers <= 0 means runtime.NumCPU().
func parallel(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if n < 2 || workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for i := 0; i < n; i++ {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-semaphore }()
			fn(i)
		}(i)
	}
	wg.Wait()
}

// Blit copies src[i] restricted to from[i] into dst at to[i] for every i
// present in all three slices. When to[i] is larger than from[i] the source
// is centred inside it. Reads and writes are clipped to the buffers, so
// malformed rects never index out of range.
//
// Sources are copied concurrently; the caller must make sure the to rects
// do not overlap, which holds for rects produced by rectpack.Pack.
func Blit(dst Buffer, to []rectpack.Rect, src []Buffer, from []rectpack.Rect, workers int) {
	n := min(len(to), len(src), len(from))
	Logger().Debug("imagepack: blit", "buffers", n, "workers", workers)
	parallel(n, workers, func(i int) {
		blitOne(dst, to[i], src[i], from[i])
	})
}

func blitOne(dst Buffer, to rectpack.Rect, src Buffer, from rectpack.Rect) {
	w := min(from.Width, to.Width)
	h := min(from.Height, to.Height)
	if w <= 0 || h <= 0 {
		return
	}
	dx := to.X + max((to.Width-from.Width)/2, 0)
	dy := to.Y + max((to.Height-from.Height)/2, 0)
	sx := from.X
	sy := from.Y

	// clip columns against both buffers
	if sx < 0 {
		w, dx, sx = w+sx, dx-sx, 0
	}
	if dx < 0 {
		w, sx, dx = w+dx, sx-dx, 0
	}
	w = min(w, src.Width-sx, dst.Width-dx)
	if w <= 0 {
		return
	}

	srcRows, dstRows := src.rows(), dst.rows()
	for row := 0; row < h; row++ {
		y, ty := sy+row, dy+row
		if y < 0 || ty < 0 {
			continue
		}
		if y >= srcRows || ty >= dstRows {
			break
		}
		s := src.PixOffset(sx, y)
		d := dst.PixOffset(dx, ty)
		copy(dst.Pix[d:d+w*BytesPerPixel], src.Pix[s:s+w*BytesPerPixel])
	}
}
