package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/preset"
	"github.com/lixenwraith/lightning/raster"
	"github.com/lixenwraith/lightning/vmath"
)

var (
	output     = flag.String("o", "lightning.png", "Output PNG path")
	width      = flag.Int("w", 512, "Image width in pixels")
	height     = flag.Int("h", 768, "Image height in pixels")
	presetName = flag.String("preset", "classic", "Preset name or 1-based number")
	presetFile = flag.String("presets", "", "TOML preset file replacing the built-in presets")
	seed       = flag.Uint64("seed", 42, "Generation seed")
	color      = flag.String("color", "azure", "Palette name or #rrggbb")
	noGlow     = flag.Bool("no-glow", false, "Skip the wide glow pass")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("lightning-png: ")

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	entries := preset.Builtins()
	if *presetFile != "" {
		loaded, err := preset.Load(*presetFile)
		if err != nil {
			return err
		}
		entries = loaded
	}
	idx, err := preset.Index(entries, *presetName)
	if err != nil {
		return err
	}

	palette, err := raster.ParsePalette(*color)
	if err != nil {
		return err
	}

	cfg := entries[idx].Config().WithSeed(*seed)
	tree, err := lightning.Generate(vmath.Vec3F{Y: 200}, vmath.Vec3F{}, cfg)
	if err != nil {
		return err
	}

	opts := raster.DefaultImageOptions()
	opts.Width, opts.Height = *width, *height
	opts.Palette = palette
	opts.Glow = !*noGlow

	f, err := os.Create(*output)
	if err != nil {
		return err
	}
	if err := raster.WritePNG(f, tree, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("%s: %s %s\n", *output, entries[idx].Name, tree.Stats())
	return nil
}
