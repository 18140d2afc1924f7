// Package collision defines the obstacle query the controller casts rays
// against, plus a brute-force implementation over static shapes.
package collision

import (
	"github.com/automoto/paradox/geom"
)

// LayerMask is a bit set over collision layers.
type LayerMask uint32

const (
	NoLayers  LayerMask = 0
	AllLayers LayerMask = ^LayerMask(0)
)

// Layer returns the mask with only bit i set.
func Layer(i uint) LayerMask { return LayerMask(1) << i }

func (m LayerMask) Has(o LayerMask) bool { return m&o != 0 }
func (m LayerMask) Contains(o LayerMask) bool { return m&o == o }
func (m LayerMask) Without(o LayerMask) LayerMask { return m &^ o }

// Hit is the nearest intersection reported by a Caster.
type Hit struct {
	Point    geom.Vec2
	Normal   geom.Vec2
	Distance float64
	Layers   LayerMask
	Collider any
}

// Caster answers ray queries against world geometry. Implementations must be
// safe for concurrent Raycast calls. A ray whose origin lies inside a collider
// ignores that collider.
type Caster interface {
	Raycast(origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool)
}

// CasterFunc adapts a function to the Caster interface.
type CasterFunc func(origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool)

func (f CasterFunc) Raycast(origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool) {
	return f(origin, dir, distance, mask)
}

// Multi reports the nearest hit across several casters, e.g. static level
// geometry and moving platforms kept in separate worlds.
type Multi []Caster

func (m Multi) Raycast(origin, dir geom.Vec2, distance float64, mask LayerMask) (Hit, bool) {
	var best Hit
	found := false
	for _, c := range m {
		hit, ok := c.Raycast(origin, dir, distance, mask)
		if ok && (!found || hit.Distance < best.Distance) {
			best, found = hit, true
		}
	}
	return best, found
}
