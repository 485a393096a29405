package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量前缀，所有命令行参数都可以通过 IMAGEPACKER_<NAME> 提供默认值
const envPrefix = "IMAGEPACKER_"

type Options struct {
	UnpackPath     string // 解包路径（atlas.json）
	InputDir       string // 输入目录
	OutputDir      string // 输出目录
	Padding        int    // 填充
	AlphaThreshold uint   // 透明度阈值
	IsFilesSort    bool   // 是否按文件名自然排序
	Workers        int    // 并发数，0 表示 CPU 核心数
	Verbose        bool   // 输出调试日志
}

// loadEnv 加载 .env 文件（如果存在），不会覆盖已经设置的环境变量。
func loadEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("加载 .env 失败: %w", err)
	}
	return nil
}

func envString(name, def string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		return v
	}
	return def
}

func envInt(name string, def int) (int, error) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("环境变量 %s%s: %w", envPrefix, name, err)
	}
	return n, nil
}

func envBool(name string, def bool) (bool, error) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("环境变量 %s%s: %w", envPrefix, name, err)
	}
	return b, nil
}

// parseOptions 解析命令行参数。环境变量提供默认值，命令行参数优先。
func parseOptions(fset *flag.FlagSet, args []string) (Options, error) {
	padding, err := envInt("PADDING", 0)
	if err != nil {
		return Options{}, err
	}
	threshold, err := envInt("THRESHOLD", 0)
	if err != nil {
		return Options{}, err
	}
	workers, err := envInt("WORKERS", 0)
	if err != nil {
		return Options{}, err
	}
	sorted, err := envBool("SORT", true)
	if err != nil {
		return Options{}, err
	}

	var opts Options
	fset.StringVar(&opts.UnpackPath, "unpack", envString("UNPACK", ""), "解包路径（atlas.json）")
	fset.StringVar(&opts.InputDir, "input", envString("INPUT", "input"), "输入目录")
	fset.StringVar(&opts.OutputDir, "output", envString("OUTPUT", "output"), "输出目录")
	fset.IntVar(&opts.Padding, "padding", padding, "填充")
	fset.UintVar(&opts.AlphaThreshold, "threshold", uint(max(threshold, 0)), "透明度阈值 (0-255)")
	fset.BoolVar(&opts.IsFilesSort, "sort", sorted, "按文件名自然排序")
	fset.IntVar(&opts.Workers, "workers", workers, "并发数，0 表示 CPU 核心数")
	fset.BoolVar(&opts.Verbose, "v", false, "输出调试日志")
	if err := fset.Parse(args); err != nil {
		return Options{}, err
	}

	if opts.Padding < 0 {
		return Options{}, fmt.Errorf("padding 不能为负数: %d", opts.Padding)
	}
	if opts.AlphaThreshold > 255 {
		return Options{}, fmt.Errorf("threshold 超出范围: %d", opts.AlphaThreshold)
	}
	return opts, nil
}
