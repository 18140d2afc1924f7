package systems

import (
	"math"

	"github.com/automoto/paradox/components"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/controller"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// NewHeroSystem runs the hero motor for a fixed dt in seconds: run speed
// eased toward the input, gravity, jumps, then one Move per hero.
func NewHeroSystem(dt float64, hero *cfg.HeroConfig, logger *zap.Logger) func(*ecs.ECS) {
	return func(ecs *ecs.ECS) {
		tags.Hero.Each(ecs.World, func(e *donburi.Entry) {
			body := components.Body.Get(e)
			physics := components.Physics.Get(e)
			input := components.Input.Get(e)

			physics.Velocity = Steer(*hero, body.Mover.Velocity(), body.Mover.IsGrounded(), physics, *input, dt)
			face(&body.Actor, input.Horizontal)

			res := body.Mover.Move(body.Actor, physics.Velocity.Scale(dt), dt)
			body.Actor = res.Actor
			body.Last = res
			body.Ground = groundCollider(res)

			if res.State.BecameGroundedThisFrame {
				data := components.Hero.Get(e)
				data.Landings++
				logger.Info("landed",
					zap.String("hero", data.Name),
					zap.Float64("x", res.Actor.Position.X),
					zap.Float64("y", res.Actor.Position.Y),
				)
			}
		})
	}
}

// Steer returns the velocity to move with this tick, starting from the
// velocity the mover observed last tick. It updates the jump latch.
func Steer(hero cfg.HeroConfig, velocity geom.Vec2, grounded bool, physics *components.PhysicsData, input components.InputData, dt float64) geom.Vec2 {
	if physics.JumpHeld {
		if !input.Jump {
			physics.JumpHeld = false
			// Releasing jump on the way up cuts the ascent.
			if velocity.Y > 0 {
				velocity.Y = 0
			}
		}
	} else if input.Jump {
		physics.JumpHeld = true
		if grounded {
			velocity.Y = math.Sqrt(-2 * hero.MaxJumpHeight * hero.Gravity)
		}
	}

	target := geom.ClampFloat(input.Horizontal, -1, 1) * hero.RunSpeed
	damping := hero.TimeToRunInAir
	if grounded {
		damping = hero.TimeToRunOnGround
	}
	if velocity.X*target < 0 {
		damping /= hero.TurnSpeedScalar
	}
	t := 1.0
	if damping > 0 {
		t = geom.ClampFloat(dt/damping, 0, 1)
	}
	velocity.X += (target - velocity.X) * t

	velocity.Y += hero.Gravity * dt
	return velocity
}

// face flips the actor's horizontal scale toward the input direction.
func face(actor *controller.Actor, horizontal float64) {
	if horizontal > 0 && actor.Scale.X < 0 || horizontal < 0 && actor.Scale.X > 0 {
		actor.Scale.X = -actor.Scale.X
	}
}

// groundCollider is the collider the last downward ray landed on.
func groundCollider(res controller.Result) any {
	var ground any
	for _, c := range res.Contacts {
		if c.Axis == controller.Vertical && c.Direction == geom.Down {
			ground = c.Collider
		}
	}
	return ground
}
