package controller

import (
	"math"

	"github.com/automoto/paradox/geom"
)

// SlopeAngle is the angle in degrees between a surface normal and up.
func SlopeAngle(normal geom.Vec2) float64 {
	return geom.AngleDeg(normal, geom.Up)
}

// tryMoveSlope handles a hit of the bottom horizontal ray. It reports whether
// the contact was taken as a slope; false sends it to ordinary wall handling.
//
// The hit distance is not considered, so the actor starts following a slope
// as soon as the bottom ray reaches it.
func (m *Mover) tryMoveSlope(mv *move, normal geom.Vec2, goingRight bool) bool {
	// Normals with no upward component are walls or overhangs (angle >= 90).
	if normal.Y <= 0 {
		return false
	}

	angle := SlopeAngle(normal)
	if angle >= m.cfg.SlopeLimit {
		if m.cfg.SteepSlopeAsWall {
			return false
		}
		// Too steep: stop without touching dy or the collision flags.
		mv.delta.X = 0
		return true
	}

	// Ascending faster than the threshold is a jump; leave it alone.
	if mv.delta.Y >= m.cfg.JumpThreshold {
		return true
	}

	mv.delta.X *= m.cfg.SlopeSpeed.Evaluate(angle)
	if goingRight {
		m.state.Right = true
	} else {
		m.state.Left = true
	}
	mv.delta.Y = math.Abs(math.Tan(geom.Deg2Rad(angle)) * mv.delta.X)
	m.state.Below = true
	return true
}
