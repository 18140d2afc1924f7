package components

import (
	"github.com/automoto/paradox/geom"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// PlatformData describes a platform shuttling between Origin and
// Origin+Offset. Its Tween yields the progress along that path in [0, 1].
type PlatformData struct {
	Origin geom.Vec2
	Offset geom.Vec2
	Delta  geom.Vec2 // displacement applied in the current tick
}

var Platform = donburi.NewComponentType[PlatformData]()

var Tween = donburi.NewComponentType[gween.Sequence]()
