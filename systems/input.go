package systems

import (
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// InputSource supplies each hero's intent for a tick.
type InputSource interface {
	Input(tick uint64, hero *components.HeroData) components.InputData
}

// InputFunc adapts a function to InputSource.
type InputFunc func(tick uint64, hero *components.HeroData) components.InputData

func (f InputFunc) Input(tick uint64, hero *components.HeroData) components.InputData {
	return f(tick, hero)
}

// NewInputSystem copies intent from src into every hero's Input.
func NewInputSystem(src InputSource) func(*ecs.ECS) {
	return func(ecs *ecs.ECS) {
		levelEntry, ok := components.Level.First(ecs.World)
		if !ok {
			return
		}
		tick := components.Level.Get(levelEntry).Tick

		tags.Hero.Each(ecs.World, func(e *donburi.Entry) {
			components.Input.SetValue(e, src.Input(tick, components.Hero.Get(e)))
		})
	}
}
