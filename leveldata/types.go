// Package leveldata turns Tiled TMX maps into collision data in world units.
// World space is y-up with one unit per tile unless a pixel scale is given.
package leveldata

import (
	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/geom"
)

// Level holds everything collision-relevant parsed from a TMX file.
type Level struct {
	Name        string
	Bounds      geom.AABB
	Tiles       []Tile
	Spawns      []Spawn
	Platforms   []MovingPlatform
	Checkpoints []Checkpoint
	DeadZones   []geom.AABB
}

// Tile is one solid or one-way tile.
type Tile struct {
	Box    geom.AABB
	Slope  string // "", "45_up_right", "45_up_left"
	OneWay bool
}

// Spawn marks where an actor's feet start.
type Spawn struct {
	Position geom.Vec2
	Index    int
}

// MovingPlatform travels from Box by Offset and back, taking Duration
// seconds each way.
type MovingPlatform struct {
	Box      geom.AABB
	Offset   geom.Vec2
	Duration float64
	Ease     string
	OneWay   bool
}

type Checkpoint struct {
	Box geom.AABB
	ID  int
}

// Shapes returns the static colliders. Solid tiles go on solid, one-way tiles
// on oneWay. Collider data is the tile index.
func (l *Level) Shapes(solid, oneWay collision.LayerMask) collision.Shapes {
	shapes := make(collision.Shapes, 0, len(l.Tiles))
	for i, t := range l.Tiles {
		layers := solid
		if t.OneWay {
			layers = oneWay
		}
		if t.Slope != collision.SlopeNone {
			shapes = append(shapes, collision.RampShape(t.Box, t.Slope, layers, i))
			continue
		}
		shapes = append(shapes, collision.BoxShape(t.Box, layers, i))
	}
	return shapes
}

// Spawn returns the spawn with the given index, falling back to the leftmost.
func (l *Level) Spawn(index int) (Spawn, bool) {
	for _, s := range l.Spawns {
		if s.Index == index {
			return s, true
		}
	}
	if len(l.Spawns) == 0 {
		return Spawn{}, false
	}
	return l.Spawns[0], true
}
