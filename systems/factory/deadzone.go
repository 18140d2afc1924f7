package factory

import (
	"github.com/automoto/paradox/collision/resolvworld"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/tags"
)

// CreateDeadZone adds an invisible trigger that respawns heroes touching it.
func CreateDeadZone(world *resolvworld.World, box geom.AABB) *resolvworld.Body {
	return world.AddTrigger(box, nil, tags.ResolvDeadZone)
}
