package components

import (
	"github.com/automoto/paradox/controller"
	"github.com/yohamta/donburi"
)

// BodyData is a box moved by a kinematic mover.
type BodyData struct {
	Mover *controller.Mover
	Actor controller.Actor
	Last  controller.Result
	// Ground is the collider under the actor after the last move, nil when
	// airborne or standing on a slope contact.
	Ground any
}

var Body = donburi.NewComponentType[BodyData]()
