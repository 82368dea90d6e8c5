package vmath

import (
	"math"
)

// Vec3F is a float64 3D vector used for bolt geometry
// Y is up; the horizontal plane is XZ
type Vec3F struct {
	X, Y, Z float64
}

func V3FAdd(a, b Vec3F) Vec3F {
	return Vec3F{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3FSub(a, b Vec3F) Vec3F {
	return Vec3F{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3FScale(v Vec3F, s float64) Vec3F {
	return Vec3F{v.X * s, v.Y * s, v.Z * s}
}

func V3FDot(a, b Vec3F) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func V3FMagSq(v Vec3F) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3FMag(v Vec3F) float64 {
	return math.Sqrt(V3FMagSq(v))
}

// V3FDist returns the euclidean distance between a and b
func V3FDist(a, b Vec3F) float64 {
	return V3FMag(V3FSub(b, a))
}

// V3FNormalize returns the unit vector of v, or the zero vector when v has no length
func V3FNormalize(v Vec3F) Vec3F {
	mag := V3FMag(v)
	if mag == 0 || !IsFinite(mag) {
		return Vec3F{}
	}
	inv := 1.0 / mag
	return Vec3F{v.X * inv, v.Y * inv, v.Z * inv}
}

// V3FMidpoint returns the point halfway between a and b
func V3FMidpoint(a, b Vec3F) Vec3F {
	return Vec3F{(a.X + b.X) * 0.5, (a.Y + b.Y) * 0.5, (a.Z + b.Z) * 0.5}
}

// V3FLerp interpolates from a (t=0) to b (t=1), t is not clamped
func V3FLerp(a, b Vec3F, t float64) Vec3F {
	return Vec3F{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FPerpendicular returns a unit vector orthogonal to dir lying in the horizontal plane
// Near-vertical directions fall back to +X
func V3FPerpendicular(dir Vec3F) Vec3F {
	if math.Abs(dir.X) > PerpendicularEpsilon || math.Abs(dir.Z) > PerpendicularEpsilon {
		return V3FNormalize(Vec3F{X: -dir.Z, Y: 0, Z: dir.X})
	}
	return Vec3F{X: 1}
}

// V3FIsFinite reports whether every component is neither NaN nor infinite
func V3FIsFinite(v Vec3F) bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// V3FMin returns the per-component minimum
func V3FMin(a, b Vec3F) Vec3F {
	return Vec3F{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z)}
}

// V3FMax returns the per-component maximum
func V3FMax(a, b Vec3F) Vec3F {
	return Vec3F{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z)}
}
