package factory

import (
	"github.com/automoto/paradox/archetypes"
	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/collision/resolvworld"
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func CreateLevel(ecs *ecs.ECS, level *leveldata.Level, caster collision.Caster, world *resolvworld.World) *donburi.Entry {
	entry := archetypes.Level.Spawn(ecs)
	components.Level.Set(entry, &components.LevelData{
		Level:  level,
		Caster: caster,
		World:  world,
	})
	return entry
}
