package factory

import (
	"github.com/automoto/paradox/archetypes"
	"github.com/automoto/paradox/collision/resolvworld"
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/leveldata"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateCheckpoint(ecs *ecs.ECS, world *resolvworld.World, c leveldata.Checkpoint) *donburi.Entry {
	checkpoint := archetypes.Checkpoint.Spawn(ecs)
	body := world.AddTrigger(c.Box, checkpoint, tags.ResolvCheckpoint)
	components.Object.SetValue(checkpoint, components.ObjectData{Body: body})
	components.Checkpoint.SetValue(checkpoint, components.CheckpointData{
		CheckpointID: c.ID,
		// Respawn standing on the checkpoint's bottom edge
		Spawn: geom.V(c.Box.Center().X, c.Box.Min.Y),
	})
	return checkpoint
}
