// Package raster draws lightning trees onto cell grids and images.
//
// Terminal output traces every segment at twice the cell resolution and packs the hits of
// each cell into a quadrant (or half-block) glyph. Image output strokes the segments with
// anti-aliased lines through gogpu/gg. Both paths color by energy through a Palette.
package raster
