// Package resolvworld answers ray queries with a resolv Space as the broad
// phase and exact polygon tests as the narrow phase.
package resolvworld

import (
	"math"
	"sync"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/tags"
	"github.com/solarlune/resolv"
)

// Body is a collider registered in the world.
type Body struct {
	Object *resolv.Object
	shape  collision.Shape
}

// Shape returns the collider's current geometry.
func (b *Body) Shape() collision.Shape { return b.shape }

// PixelsPerUnit is the resolution of the resolv grid. resolv assumes whole
// pixels: an object covers the cells up to X+W-1, so it is fed pixels rather
// than world units.
const PixelsPerUnit = 16

// World wraps a resolv Space. Probing adds a temporary object to the space,
// so queries are serialised.
type World struct {
	mu       sync.Mutex
	space    *resolv.Space
	cellSize float64
}

// New creates a world covering width x height units, bucketed in cellSize cells.
func New(width, height, cellSize int) *World {
	if cellSize < 1 {
		cellSize = 1
	}
	cell := cellSize * PixelsPerUnit
	return &World{
		space:    resolv.NewSpace(width*PixelsPerUnit, height*PixelsPerUnit, cell, cell),
		cellSize: float64(cellSize),
	}
}

// object converts box to pixels, at least one pixel on each side.
func object(box geom.AABB, objTags ...string) *resolv.Object {
	w := math.Max(box.Width()*PixelsPerUnit, 1)
	h := math.Max(box.Height()*PixelsPerUnit, 1)
	return resolv.NewObject(box.Min.X*PixelsPerUnit, box.Min.Y*PixelsPerUnit, w, h, objTags...)
}

// Add registers a shape. Each set layer bit becomes a tag, plus any extra tags.
func (w *World) Add(shape collision.Shape, extra ...string) *Body {
	objTags := append(tags.LayerTags(shape.Layers), extra...)
	obj := object(shape.Bounds, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, obj.W, obj.H))

	body := &Body{Object: obj, shape: shape}
	obj.Data = body

	w.mu.Lock()
	w.space.Add(obj)
	w.mu.Unlock()
	return body
}

// Remove unregisters a body.
func (w *World) Remove(body *Body) {
	w.mu.Lock()
	w.space.Remove(body.Object)
	w.mu.Unlock()
}

// Translate moves a body by d, e.g. a platform following a tween.
func (w *World) Translate(body *Body, d geom.Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	body.shape = body.shape.Translate(d)
	body.Object.X = body.shape.Bounds.Min.X * PixelsPerUnit
	body.Object.Y = body.shape.Bounds.Min.Y * PixelsPerUnit
	body.Object.Update()
}

// MoveTo places a body's bounds at min.
func (w *World) MoveTo(body *Body, min geom.Vec2) {
	w.Translate(body, min.Sub(body.shape.Bounds.Min))
}

// Raycast implements collision.Caster.
func (w *World) Raycast(origin, dir geom.Vec2, distance float64, mask collision.LayerMask) (collision.Hit, bool) {
	dir = dir.Normalize()
	if dir.IsZero() || mask == collision.NoLayers {
		return collision.Hit{}, false
	}
	// Pad by a cell: resolv buckets by whole cells and a ray along an axis has
	// a zero-width box.
	seg := geom.SegmentBounds(origin, origin.Add(dir.Scale(distance)))
	probe := object(seg.Inflate(w.cellSize), tags.ResolvProbe)

	w.mu.Lock()
	w.space.Add(probe)
	check := probe.Check(0, 0)
	w.space.Remove(probe)

	var candidates []collision.Shape
	if check != nil {
		candidates = make([]collision.Shape, 0, len(check.Objects))
		for _, obj := range check.Objects {
			body, ok := obj.Data.(*Body)
			if !ok || !body.shape.Layers.Has(mask) {
				continue
			}
			if !body.shape.Bounds.Overlaps(seg) {
				continue
			}
			candidates = append(candidates, body.shape)
		}
	}
	w.mu.Unlock()

	return collision.Nearest(candidates, origin, dir, distance, mask)
}

// AddTrigger registers a box that rays never hit. Triggers are found with
// Overlapping.
func (w *World) AddTrigger(box geom.AABB, data any, tag string) *Body {
	return w.Add(collision.BoxShape(box, collision.NoLayers, data), tag)
}

// Overlapping returns the bodies tagged tag whose bounds overlap box.
func (w *World) Overlapping(box geom.AABB, tag string) []*Body {
	probe := object(box.Inflate(w.cellSize), tags.ResolvProbe)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.space.Add(probe)
	check := probe.Check(0, 0, tag)
	w.space.Remove(probe)
	if check == nil {
		return nil
	}

	var bodies []*Body
	for _, obj := range check.Objects {
		body, ok := obj.Data.(*Body)
		if ok && body.shape.Bounds.Overlaps(box) {
			bodies = append(bodies, body)
		}
	}
	return bodies
}
