package main

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// unpack 按 atlas.json 把图集还原为原始尺寸的子图
func unpack(opts *Options) error {
	jsonData, err := os.ReadFile(opts.UnpackPath)
	if err != nil {
		return fmt.Errorf("读取图集JSON文件失败: %w", err)
	}
	var data AtlasData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return fmt.Errorf("解析JSON失败: %w", err)
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if len(data.Sprites) == 0 {
		return nil
	}

	atlasPath := filepath.Join(filepath.Dir(opts.UnpackPath), data.Image)
	atlas, err := imaging.Open(atlasPath)
	if err != nil {
		return fmt.Errorf("打开图集图片失败: %w", err)
	}

	for name, sprite := range data.Sprites {
		region := image.Rect(sprite.Region.X, sprite.Region.Y,
			sprite.Region.X+sprite.Region.W, sprite.Region.Y+sprite.Region.H)
		if !region.In(atlas.Bounds()) {
			return fmt.Errorf("精灵 %s 的区域 %v 超出图集范围 %v", name, region, atlas.Bounds())
		}
		// 还原到原始尺寸，裁掉的透明边重新补上
		canvas := imaging.New(sprite.SourceSize.W, sprite.SourceSize.H, color.NRGBA{})
		sub := imaging.Crop(atlas, region)
		canvas = imaging.Paste(canvas, sub, image.Pt(sprite.SourceRect.X, sprite.SourceRect.Y))

		outputPath := filepath.Join(opts.OutputDir, filepath.Base(name))
		if _, err := imaging.FormatFromFilename(outputPath); err != nil {
			// webp 只能解码，改存为 png
			outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".png"
		}
		if err := imaging.Save(canvas, outputPath); err != nil {
			return fmt.Errorf("保存 %s 失败: %w", outputPath, err)
		}
		slog.Debug("已解包", "sprite", name, "output", outputPath)
	}
	slog.Info("图集解包完成", "sprites", len(data.Sprites), "output", opts.OutputDir)
	return nil
}
