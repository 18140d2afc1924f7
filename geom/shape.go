package geom

import "math"

// AABB is an axis-aligned box given by its min and max corners.
type AABB struct {
	Min, Max Vec2
}

// BoxAt builds an AABB from a centre and half extents.
func BoxAt(center, half Vec2) AABB {
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Rect builds an AABB from its bottom-left corner and size.
func Rect(x, y, w, h float64) AABB {
	return AABB{Min: Vec2{X: x, Y: y}, Max: Vec2{X: x + w, Y: y + h}}
}

func (b AABB) Width() float64 { return b.Max.X - b.Min.X }
func (b AABB) Height() float64 { return b.Max.Y - b.Min.Y }
func (b AABB) Center() Vec2 { return b.Min.Add(b.Max).Scale(0.5) }

func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b AABB) Overlaps(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X && b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y
}

// Union returns the smallest box holding both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{
		Min: Vec2{X: math.Min(b.Min.X, o.Min.X), Y: math.Min(b.Min.Y, o.Min.Y)},
		Max: Vec2{X: math.Max(b.Max.X, o.Max.X), Y: math.Max(b.Max.Y, o.Max.Y)},
	}
}

// Inflate grows the box by d on every side.
func (b AABB) Inflate(d float64) AABB {
	pad := Vec2{X: d, Y: d}
	return AABB{Min: b.Min.Sub(pad), Max: b.Max.Add(pad)}
}

// Translate moves the box by d.
func (b AABB) Translate(d Vec2) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Polygon returns the corners counter-clockwise from the bottom-left.
func (b AABB) Polygon() []Vec2 {
	return []Vec2{
		b.Min,
		{X: b.Max.X, Y: b.Min.Y},
		b.Max,
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// SegmentBounds returns the AABB covering the segment from a to b.
func SegmentBounds(a, b Vec2) AABB {
	return AABB{
		Min: Vec2{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec2{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// RayResult is the outcome of a ray against a convex polygon.
type RayResult int

const (
	RayMiss RayResult = iota
	RayHit
	RayInside
)

// RayPolygon clips the ray origin+t*dir, t in [0, maxDist], against a convex
// counter-clockwise polygon. dir must be a unit vector. On RayHit it returns the
// entry distance and the outward normal of the entered edge. RayInside means
// the origin already lies within the polygon.
func RayPolygon(origin, dir Vec2, maxDist float64, poly []Vec2) (float64, Vec2, RayResult) {
	if len(poly) < 3 {
		return 0, Zero, RayMiss
	}

	tEnter := math.Inf(-1)
	tExit := math.Inf(1)
	var normal Vec2

	for i := range poly {
		a := poly[i]
		b := poly[(i+1)%len(poly)]
		edge := b.Sub(a)
		n := Vec2{X: edge.Y, Y: -edge.X}.Normalize()
		if n.IsZero() {
			continue
		}

		numer := n.Dot(origin.Sub(a))
		denom := n.Dot(dir)
		if denom == 0 {
			if numer > 0 {
				return 0, Zero, RayMiss
			}
			continue
		}

		t := -numer / denom
		if denom < 0 {
			if t > tEnter {
				tEnter = t
				normal = n
			}
		} else if t < tExit {
			tExit = t
		}
		if tEnter > tExit {
			return 0, Zero, RayMiss
		}
	}

	if tExit < 0 {
		return 0, Zero, RayMiss
	}
	if tEnter < 0 {
		return 0, Zero, RayInside
	}
	if tEnter > maxDist {
		return 0, Zero, RayMiss
	}
	return tEnter, normal, RayHit
}
