package components

import (
	"github.com/automoto/paradox/geom"
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	Velocity geom.Vec2
	JumpHeld bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
