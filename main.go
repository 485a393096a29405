package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"

	"imagepacker/imagepack"
)

const (
	VERSION = "0.2.0"

	atlasImageName = "atlas.png"
	atlasJSONName  = "atlas.json"
)

// SpriteInfo 存储精灵图的信息
type SpriteInfo struct {
	Filename string `json:"filename"`
	Region   struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"region"`
	SourceSize struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"sourceSize"`
	SourceRect struct {
		X int `json:"x"`
		Y int `json:"y"`
		W int `json:"w"`
		H int `json:"h"`
	} `json:"sourceRect"`
	UVOffset struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"uvOffset"`
	Trimmed bool `json:"trimmed"`
}

// AtlasData 是 atlas.json 的内容
type AtlasData struct {
	Meta struct {
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
		Padding   int    `json:"padding"`
	} `json:"meta"`
	Image string `json:"image"`
	Size  struct {
		W int `json:"w"`
		H int `json:"h"`
	} `json:"size"`
	Sprites map[string]SpriteInfo `json:"sprites"`
}

// writeAtlasJSON 生成图集的JSON元数据
func writeAtlasJSON(path string, res *imagepack.Result, sprites map[string]SpriteInfo, padding int) error {
	var data AtlasData
	data.Meta.Version = VERSION
	data.Meta.Timestamp = time.Now().Format("2006-01-02 15:04:05")
	data.Meta.Padding = padding
	data.Image = atlasImageName
	data.Size.W, data.Size.H = res.Width, res.Height
	data.Sprites = sprites

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, jsonData, 0644)
}

// build 读取输入目录中的图片，打包并写出 atlas.png 和 atlas.json
func build(opts *Options) error {
	start := time.Now()
	paths, err := listImageFiles(opts.InputDir, opts.IsFilesSort)
	if err != nil {
		return err
	}
	slog.Info("找到图片文件", "count", len(paths), "dir", opts.InputDir)

	imgs, err := readImageFiles(paths, opts.Workers)
	if err != nil {
		return err
	}
	slog.Debug("图片解码完成", "elapsed", time.Since(start))

	packStart := time.Now()
	res, err := imagepack.PackImages(imgs, imagepack.Options{
		Padding:        opts.Padding,
		AlphaThreshold: uint8(opts.AlphaThreshold),
		Workers:        opts.Workers,
	})
	if err != nil {
		return fmt.Errorf("打包失败: %w", err)
	}
	slog.Debug("打包完成", "elapsed", time.Since(packStart))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	imagePath := filepath.Join(opts.OutputDir, atlasImageName)
	if res.Width > 0 && res.Height > 0 {
		if err := imaging.Save(res.Image(), imagePath); err != nil {
			return fmt.Errorf("保存图集失败: %w", err)
		}
	}
	jsonPath := filepath.Join(opts.OutputDir, atlasJSONName)
	if err := writeAtlasJSON(jsonPath, res, spriteInfos(res, paths, imgs), opts.Padding); err != nil {
		return fmt.Errorf("生成JSON元数据失败: %w", err)
	}

	slog.Info("图集已生成",
		"image", imagePath,
		"json", jsonPath,
		"size", fmt.Sprintf("%dx%d", res.Width, res.Height),
		"elapsed", time.Since(start))
	return nil
}

func run(args []string) error {
	if err := loadEnv(); err != nil {
		return err
	}
	fset := flag.NewFlagSet("imagepacker", flag.ContinueOnError)
	opts, err := parseOptions(fset, args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	imagepack.SetLogger(logger)

	if opts.UnpackPath != "" {
		return unpack(&opts)
	}
	return build(&opts)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "imagepacker:", err)
		os.Exit(1)
	}
}
