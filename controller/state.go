package controller

import (
	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/geom"
)

// CollisionState is the contact snapshot of a single Move.
type CollisionState struct {
	Right, Left, Above, Below bool
	BecameGroundedThisFrame   bool
}

func (s *CollisionState) Reset() {
	*s = CollisionState{}
}

// HasCollision reports whether any side is in contact.
func (s CollisionState) HasCollision() bool {
	return s.Right || s.Left || s.Above || s.Below
}

// Axis names the scan a contact came from.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Contact is one ray touching an obstacle during a Move.
type Contact struct {
	collision.Hit
	Axis      Axis
	Direction geom.Vec2
	Slope     bool
}

// Actor is the box being moved. Position is the box centre.
type Actor struct {
	Position geom.Vec2
	Size     geom.Vec2
	Scale    geom.Vec2
}

// NewActor returns an unscaled actor.
func NewActor(position, size geom.Vec2) Actor {
	return Actor{Position: position, Size: size, Scale: geom.Vec2{X: 1, Y: 1}}
}

func (a Actor) HalfExtents() geom.Vec2 {
	return a.Size.Mul(a.Scale.Abs()).Scale(0.5)
}

func (a Actor) Bounds() geom.AABB {
	return geom.BoxAt(a.Position, a.HalfExtents())
}

// Result is everything a Move produced.
type Result struct {
	Actor    Actor
	Delta    geom.Vec2
	Velocity geom.Vec2
	State    CollisionState
	Contacts []Contact
}
