package systems

import (
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/controller"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// NewDeathSystem respawns heroes that fall below the level or touch a dead
// zone, at the active checkpoint if there is one and at their spawn point
// otherwise.
func NewDeathSystem(logger *zap.Logger) func(*ecs.ECS) {
	return func(ecs *ecs.ECS) {
		levelEntry, ok := components.Level.First(ecs.World)
		if !ok {
			return
		}
		level := components.Level.Get(levelEntry)
		floor := level.Level.Bounds.Min.Y

		tags.Hero.Each(ecs.World, func(e *donburi.Entry) {
			body := components.Body.Get(e)
			bounds := body.Actor.Bounds()
			fell := bounds.Max.Y < floor
			if !fell && len(level.World.Overlapping(bounds, tags.ResolvDeadZone)) == 0 {
				return
			}

			hero := components.Hero.Get(e)
			feet, ok := respawnPoint(level, hero.SpawnIndex)
			if !ok {
				return
			}
			Respawn(e, feet)
			hero.Respawns++
			logger.Info("hero died",
				zap.String("hero", hero.Name),
				zap.Bool("fell", fell),
				zap.Int("respawns", hero.Respawns),
			)
		})
	}
}

func respawnPoint(level *components.LevelData, spawnIndex int) (geom.Vec2, bool) {
	if level.ActiveCheckpoint != nil {
		return level.ActiveCheckpoint.Spawn, true
	}
	spawn, ok := level.Level.Spawn(spawnIndex)
	return spawn.Position, ok
}

// Respawn places a hero's feet at feet and clears its motion.
func Respawn(e *donburi.Entry, feet geom.Vec2) {
	body := components.Body.Get(e)
	body.Actor.Position = feet.Add(geom.V(0, body.Actor.HalfExtents().Y))
	body.Mover.Reset()
	body.Ground = nil
	body.Last = controller.Result{Actor: body.Actor}
	physics := components.Physics.Get(e)
	*physics = components.PhysicsData{}
}
