// Package cpworld answers ray queries with Chipmunk segment queries. Layers
// map onto shape filter categories, so the query mask is the filter mask.
// Chipmunk reports a zero-length hit for segments starting inside a shape;
// those are re-tested against the exact polygon, which ignores them.
package cpworld

import (
	"sync"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/geom"
	"github.com/jakecoffman/cp"
)

const allCategories = ^uint(0)

// World holds static shapes in a Chipmunk space. Queries lock the space, so
// they are serialised.
type World struct {
	mu     sync.Mutex
	space  *cp.Space
	shapes map[*cp.Shape]collision.Shape
}

func New() *World {
	return &World{
		space:  cp.NewSpace(),
		shapes: make(map[*cp.Shape]collision.Shape),
	}
}

func toCP(v geom.Vec2) cp.Vector   { return cp.Vector{X: v.X, Y: v.Y} }
func fromCP(v cp.Vector) geom.Vec2 { return geom.Vec2{X: v.X, Y: v.Y} }

// Add registers shape as a static polygon.
func (w *World) Add(shape collision.Shape) *cp.Shape {
	verts := make([]cp.Vector, len(shape.Poly))
	for i, p := range shape.Poly {
		verts[i] = toCP(p)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	s := cp.NewPolyShapeRaw(w.space.StaticBody, len(verts), verts, 0)
	s.SetFilter(cp.ShapeFilter{Categories: uint(shape.Layers), Mask: allCategories})
	w.space.AddShape(s)
	w.shapes[s] = shape
	return s
}

func (w *World) Remove(s *cp.Shape) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.space.RemoveShape(s)
	delete(w.shapes, s)
}

// Raycast implements collision.Caster.
func (w *World) Raycast(origin, dir geom.Vec2, distance float64, mask collision.LayerMask) (collision.Hit, bool) {
	dir = dir.Normalize()
	if dir.IsZero() || distance <= 0 || mask == collision.NoLayers {
		return collision.Hit{}, false
	}
	end := origin.Add(dir.Scale(distance))
	filter := cp.ShapeFilter{Categories: allCategories, Mask: uint(mask)}

	var (
		best  collision.Hit
		found bool
	)
	consider := func(h collision.Hit) {
		if !found || h.Distance < best.Distance {
			best, found = h, true
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.space.SegmentQuery(toCP(origin), toCP(end), 0, filter,
		func(s *cp.Shape, point, normal cp.Vector, alpha float64, _ interface{}) {
			shape, ok := w.shapes[s]
			if !ok {
				return
			}
			if alpha <= 0 {
				if h, ok := shape.Raycast(origin, dir, distance, mask); ok {
					consider(h)
				}
				return
			}
			consider(collision.Hit{
				Point:    fromCP(point),
				Normal:   fromCP(normal),
				Distance: alpha * distance,
				Layers:   shape.Layers,
				Collider: shape.Data,
			})
		}, nil)
	return best, found
}
