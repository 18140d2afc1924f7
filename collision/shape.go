package collision

import (
	"github.com/automoto/paradox/geom"
)

// Slope kinds for 45 degree ramp tiles.
const (
	SlopeNone      = ""
	Slope45UpRight = "45_up_right"
	Slope45UpLeft  = "45_up_left"
)

// Shape is a convex counter-clockwise polygon on one or more layers.
type Shape struct {
	Poly   []geom.Vec2
	Bounds geom.AABB
	Layers LayerMask
	Data   any
}

// NewShape builds a shape and caches its bounds.
func NewShape(poly []geom.Vec2, layers LayerMask, data any) Shape {
	s := Shape{Poly: poly, Layers: layers, Data: data}
	if len(poly) > 0 {
		s.Bounds = geom.AABB{Min: poly[0], Max: poly[0]}
		for _, p := range poly[1:] {
			s.Bounds = s.Bounds.Union(geom.AABB{Min: p, Max: p})
		}
	}
	return s
}

// BoxShape is a solid rectangle.
func BoxShape(box geom.AABB, layers LayerMask, data any) Shape {
	return NewShape(box.Polygon(), layers, data)
}

// RampShape is a right triangle filling the lower half of box. Up-right ramps
// rise from the left edge to the top right corner, up-left ramps mirror that.
// Any other slope kind yields a box.
func RampShape(box geom.AABB, slope string, layers LayerMask, data any) Shape {
	switch slope {
	case Slope45UpRight:
		return NewShape([]geom.Vec2{
			box.Min,
			{X: box.Max.X, Y: box.Min.Y},
			box.Max,
		}, layers, data)
	case Slope45UpLeft:
		return NewShape([]geom.Vec2{
			box.Min,
			{X: box.Max.X, Y: box.Min.Y},
			{X: box.Min.X, Y: box.Max.Y},
		}, layers, data)
	}
	return BoxShape(box, layers, data)
}

// Translate returns a copy of s moved by d.
func (s Shape) Translate(d geom.Vec2) Shape {
	poly := make([]geom.Vec2, len(s.Poly))
	for i, p := range s.Poly {
		poly[i] = p.Add(d)
	}
	return NewShape(poly, s.Layers, s.Data)
}

// Raycast intersects the ray with this shape only.
func (s Shape) Raycast(origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool) {
	if !s.Layers.Has(mask) {
		return Hit{}, false
	}
	t, n, res := geom.RayPolygon(origin, dir, distance, s.Poly)
	if res != geom.RayHit {
		return Hit{}, false
	}
	return Hit{
		Point:    origin.Add(dir.Scale(t)),
		Normal:   n,
		Distance: t,
		Layers:   s.Layers,
		Collider: s.Data,
	}, true
}

// Nearest casts against every shape and keeps the closest hit.
func Nearest(shapes []Shape, origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool) {
	dir = dir.Normalize()
	var best Hit
	found := false
	for i := range shapes {
		hit, ok := shapes[i].Raycast(origin, dir, distance, mask)
		if !ok {
			continue
		}
		if !found || hit.Distance < best.Distance {
			best = hit
			found = true
		}
	}
	return best, found
}

// Shapes is a Caster that tests every shape. It is immutable, so concurrent
// queries need no locking.
type Shapes []Shape

func (s Shapes) Raycast(origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool) {
	return Nearest(s, origin, dir, distance, mask)
}
