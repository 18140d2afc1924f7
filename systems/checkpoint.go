package systems

import (
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// NewCheckpointSystem activates checkpoints heroes touch and saves progress
// to store. A failed save is logged and play continues.
func NewCheckpointSystem(store Store, logger *zap.Logger) func(*ecs.ECS) {
	return func(ecs *ecs.ECS) {
		levelEntry, ok := components.Level.First(ecs.World)
		if !ok {
			return
		}
		level := components.Level.Get(levelEntry)

		tags.Hero.Each(ecs.World, func(heroEntry *donburi.Entry) {
			body := components.Body.Get(heroEntry)
			for _, obj := range level.World.Overlapping(body.Actor.Bounds(), tags.ResolvCheckpoint) {
				checkpointEntry, ok := obj.Shape().Data.(*donburi.Entry)
				if !ok || !checkpointEntry.Valid() {
					continue
				}
				checkpoint := components.Checkpoint.Get(checkpointEntry)
				if checkpoint.Activated {
					continue
				}
				checkpoint.Activated = true
				level.ActiveCheckpoint = &components.ActiveCheckpointData{
					CheckpointID: checkpoint.CheckpointID,
					Spawn:        checkpoint.Spawn,
				}

				hero := components.Hero.Get(heroEntry)
				logger.Info("checkpoint reached",
					zap.String("hero", hero.Name),
					zap.Int("checkpoint", checkpoint.CheckpointID),
				)

				progress := &SavedGameProgress{
					Level:        level.Level.Name,
					CheckpointID: checkpoint.CheckpointID,
					SpawnX:       checkpoint.Spawn.X,
					SpawnY:       checkpoint.Spawn.Y,
					Heroes:       SnapshotHeroes(ecs),
				}
				if err := SaveGameProgress(store, progress); err != nil {
					logger.Warn("could not save progress", zap.Error(err))
				}
			}
		})
	}
}

// SnapshotHeroes captures every hero's position and velocity.
func SnapshotHeroes(ecs *ecs.ECS) []SavedHero {
	var heroes []SavedHero
	tags.Hero.Each(ecs.World, func(e *donburi.Entry) {
		hero := components.Hero.Get(e)
		body := components.Body.Get(e)
		v := components.Physics.Get(e).Velocity
		heroes = append(heroes, SavedHero{
			Name:     hero.Name,
			X:        body.Actor.Position.X,
			Y:        body.Actor.Position.Y,
			VX:       v.X,
			VY:       v.Y,
			Respawns: hero.Respawns,
		})
	})
	return heroes
}
