package factory

import (
	"fmt"

	"github.com/automoto/paradox/archetypes"
	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/collision/resolvworld"
	"github.com/automoto/paradox/components"
	"github.com/automoto/paradox/curve"
	"github.com/automoto/paradox/leveldata"
	"github.com/automoto/paradox/tags"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateMovingPlatform adds p to world on layers. The collider data is the
// platform entry, so movers can tell what they stand on.
func CreateMovingPlatform(ecs *ecs.ECS, world *resolvworld.World, p leveldata.MovingPlatform, layers collision.LayerMask) (*donburi.Entry, error) {
	easing, err := curve.Ease(p.Ease)
	if err != nil {
		return nil, fmt.Errorf("moving platform: %w", err)
	}

	platform := archetypes.MovingPlatform.Spawn(ecs)
	kind := tags.ResolvSolid
	if p.OneWay {
		kind = tags.ResolvOneWay
	}
	body := world.Add(collision.BoxShape(p.Box, layers, platform), kind)
	components.Object.SetValue(platform, components.ObjectData{Body: body})
	components.Platform.SetValue(platform, components.PlatformData{
		Origin: p.Box.Min,
		Offset: p.Offset,
	})

	// The tween runs the platform's progress out to the offset and back.
	d := float32(p.Duration)
	tw := gween.NewSequence()
	tw.Add(
		gween.New(0, 1, d, easing),
		gween.New(1, 0, d, easing),
	)
	components.Tween.Set(platform, tw)

	return platform, nil
}
