package archetypes

import (
	"github.com/automoto/paradox/components"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Hero = newArchetype(
		tags.Hero,
		components.Hero,
		components.Body,
		components.Physics,
		components.Input,
	)
	MovingPlatform = newArchetype(
		tags.Platform,
		tags.MovingPlatform,
		components.Object,
		components.Platform,
		components.Tween,
	)
	Checkpoint = newArchetype(
		tags.Checkpoint,
		components.Checkpoint,
		components.Object,
	)
	Level = newArchetype(
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
