package factory

import (
	"fmt"

	"github.com/automoto/paradox/archetypes"
	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/components"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/controller"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateHero spawns a hero standing with its feet on spawn.
func CreateHero(ecs *ecs.ECS, caster collision.Caster, moverCfg controller.Config, hero cfg.HeroConfig,
	name string, spawn leveldata.Spawn, logger *zap.Logger) (*donburi.Entry, error) {
	size := geom.V(hero.Width, hero.Height)
	actor := controller.NewActor(spawn.Position.Add(geom.V(0, size.Y/2)), size)
	if err := moverCfg.Fits(actor); err != nil {
		return nil, fmt.Errorf("hero %s: %w", name, err)
	}
	mover, err := controller.New(caster, moverCfg, controller.WithLogger(logger.With(zap.String("hero", name))))
	if err != nil {
		return nil, fmt.Errorf("hero %s: %w", name, err)
	}

	entry := archetypes.Hero.Spawn(ecs)
	components.Hero.SetValue(entry, components.HeroData{
		Name:       name,
		SpawnIndex: spawn.Index,
	})
	components.Body.SetValue(entry, components.BodyData{
		Mover: mover,
		Actor: actor,
	})
	return entry, nil
}
