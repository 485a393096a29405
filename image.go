package main

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"imagepacker/imagepack"
)

// 支持的输入图片格式
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".webp": true,
}

// listImageFiles 列出目录中的所有图片文件
func listImageFiles(dir string, sorted bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取输入目录 %s 失败: %w", dir, err)
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("输入目录 %s 中没有找到任何图片文件", dir)
	}
	if sorted {
		sort.Sort(natural.StringSlice(paths))
	}
	return paths, nil
}

// readImageFiles 并行解码所有图片，返回的切片与 paths 一一对应
func readImageFiles(paths []string, workers int) ([]image.Image, error) {
	imgs := make([]image.Image, len(paths))
	errs := make([]error, len(paths))
	var wg sync.WaitGroup
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	semaphore := make(chan struct{}, workers)
	for i, path := range paths {
		wg.Add(1)
		semaphore <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-semaphore }()
			img, err := imaging.Open(path)
			if err != nil {
				errs[i] = fmt.Errorf("无法解码图片 %s: %w", path, err)
				return
			}
			imgs[i] = img
		}(i, path)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return imgs, nil
}

// spriteInfos 根据打包结果生成每个精灵的元数据，键为文件名
func spriteInfos(res *imagepack.Result, paths []string, imgs []image.Image) map[string]SpriteInfo {
	sprites := make(map[string]SpriteInfo, len(paths))
	for i, path := range paths {
		bounds := imgs[i].Bounds()
		tight := res.TightRects[i]
		r := res.Rects[i]

		info := SpriteInfo{Filename: filepath.Base(path)}
		info.Region.X, info.Region.Y = r.X, r.Y
		info.Region.W, info.Region.H = r.Width, r.Height
		info.SourceSize.W, info.SourceSize.H = bounds.Dx(), bounds.Dy()
		info.SourceRect.X, info.SourceRect.Y = tight.X, tight.Y
		info.SourceRect.W, info.SourceRect.H = tight.Width, tight.Height
		info.UVOffset.X, info.UVOffset.Y = res.UVOffsets[i].X, res.UVOffsets[i].Y
		info.Trimmed = tight.X > 0 || tight.Y > 0 ||
			tight.Width < bounds.Dx() || tight.Height < bounds.Dy()
		sprites[info.Filename] = info
	}
	return sprites
}
