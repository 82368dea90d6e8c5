package raster

import "errors"

var (
	ErrUnknownPalette = errors.New("raster: unknown palette")
	ErrImageSize      = errors.New("raster: image size must be positive")
)
