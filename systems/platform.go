package systems

import (
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// NewPlatformSystem advances moving platforms by dt seconds. Heroes standing
// on a platform are carried first, so their rays never start inside it.
func NewPlatformSystem(dt float64) func(*ecs.ECS) {
	return func(ecs *ecs.ECS) {
		levelEntry, ok := components.Level.First(ecs.World)
		if !ok {
			return
		}
		level := components.Level.Get(levelEntry)

		tags.MovingPlatform.Each(ecs.World, func(e *donburi.Entry) {
			platform := components.Platform.Get(e)
			tw := components.Tween.Get(e)
			obj := components.Object.Get(e)

			progress, _, done := tw.Update(float32(dt))
			if done {
				tw.Reset()
			}

			target := platform.Origin.Add(platform.Offset.Scale(float64(progress)))
			platform.Delta = target.Sub(obj.Shape().Bounds.Min)
			if platform.Delta.IsZero() {
				return
			}
			carryRiders(ecs, e, platform.Delta)
			level.World.Translate(obj.Body, platform.Delta)
		})
	}
}

func carryRiders(ecs *ecs.ECS, platform *donburi.Entry, d geom.Vec2) {
	tags.Hero.Each(ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		if body.Ground == platform {
			body.Actor.Position = body.Actor.Position.Add(d)
		}
	})
}
