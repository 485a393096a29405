package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// writeSprite saves a w x h png that is transparent except for visible.
func writeSprite(t *testing.T, path string, w, h int, visible image.Rectangle, c color.NRGBA) *image.NRGBA {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{})
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		for x := visible.Min.X; x < visible.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatal(err)
	}
	return img
}

func TestBuildAndUnpack(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	restored := t.TempDir()

	want := map[string]*image.NRGBA{
		"hero.png":   writeSprite(t, filepath.Join(in, "hero.png"), 20, 16, image.Rect(3, 2, 15, 14), color.NRGBA{R: 200, A: 255}),
		"coin.png":   writeSprite(t, filepath.Join(in, "coin.png"), 8, 8, image.Rect(0, 0, 8, 8), color.NRGBA{G: 180, B: 20, A: 128}),
		"shadow.png": writeSprite(t, filepath.Join(in, "shadow.png"), 5, 30, image.Rect(1, 25, 4, 30), color.NRGBA{A: 60}),
	}

	opts := Options{InputDir: in, OutputDir: out, Padding: 2, IsFilesSort: true, Workers: 2}
	if err := build(&opts); err != nil {
		t.Fatalf("build() = %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, atlasJSONName))
	if err != nil {
		t.Fatal(err)
	}
	var data AtlasData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Sprites) != len(want) {
		t.Fatalf("atlas.json has %d sprites, want %d", len(data.Sprites), len(want))
	}
	for _, side := range []int{data.Size.W, data.Size.H} {
		if side <= 0 || side&(side-1) != 0 {
			t.Errorf("atlas size %dx%d is not a power of two", data.Size.W, data.Size.H)
		}
	}
	hero := data.Sprites["hero.png"]
	if !hero.Trimmed || hero.SourceRect.W != 12 || hero.SourceRect.H != 12 {
		t.Errorf("hero sprite info = %+v", hero)
	}
	if hero.UVOffset.X != hero.Region.X-hero.SourceRect.X || hero.UVOffset.Y != hero.Region.Y-hero.SourceRect.Y {
		t.Errorf("hero uv offset = %+v", hero.UVOffset)
	}
	if data.Sprites["coin.png"].Trimmed {
		t.Error("opaque coin should not be trimmed")
	}

	unpackOpts := Options{UnpackPath: filepath.Join(out, atlasJSONName), OutputDir: restored}
	if err := unpack(&unpackOpts); err != nil {
		t.Fatalf("unpack() = %v", err)
	}
	for name, img := range want {
		got, err := imaging.Open(filepath.Join(restored, name))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(imaging.Clone(got).Pix, img.Pix) {
			t.Errorf("%s did not survive the round trip", name)
		}
	}
}

func TestBuildEmptyDir(t *testing.T) {
	opts := Options{InputDir: t.TempDir(), OutputDir: t.TempDir()}
	if err := build(&opts); err == nil {
		t.Error("build() on an empty directory should fail")
	}
}

func TestListImageFilesNatural(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img10.png", "img2.png", "img1.png", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	paths, err := listImageFiles(dir, true)
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"img1.png", "img2.png", "img10.png"}
	if len(paths) != len(wantOrder) {
		t.Fatalf("got %v", paths)
	}
	for i, p := range paths {
		if filepath.Base(p) != wantOrder[i] {
			t.Errorf("paths[%d] = %s, want %s", i, filepath.Base(p), wantOrder[i])
		}
	}
}

func newFlagSet() *flag.FlagSet {
	fset := flag.NewFlagSet("test", flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	return fset
}

func TestParseOptions(t *testing.T) {
	t.Setenv(envPrefix+"PADDING", "3")
	t.Setenv(envPrefix+"INPUT", "sprites")

	opts, err := parseOptions(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Padding != 3 || opts.InputDir != "sprites" || !opts.IsFilesSort {
		t.Errorf("env defaults not applied: %+v", opts)
	}

	opts, err = parseOptions(newFlagSet(), []string{"-padding", "5", "-sort=false"})
	if err != nil {
		t.Fatal(err)
	}
	if opts.Padding != 5 || opts.IsFilesSort {
		t.Errorf("flags did not override env: %+v", opts)
	}
}

func TestParseOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{"bad env int", "x", nil},
		{"negative padding", "", []string{"-padding", "-1"}},
		{"threshold range", "", []string{"-threshold", "300"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv(envPrefix+"WORKERS", tt.env)
			}
			if _, err := parseOptions(newFlagSet(), tt.args); err == nil {
				t.Error("parseOptions() = nil error")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(envPrefix+"OUTPUT=from-dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envPrefix+"OUTPUT", "")
	os.Unsetenv(envPrefix + "OUTPUT")
	if err := loadEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := envString("OUTPUT", "output"); got != "from-dotenv" {
		t.Errorf("OUTPUT = %q, want from-dotenv", got)
	}
	if err := loadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
