package sim

import (
	"fmt"
	"math"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/collision/cpworld"
	"github.com/automoto/paradox/collision/resolvworld"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/leveldata"
	"github.com/automoto/paradox/tags"
)

// layers maps level geometry onto the mover's masks.
type layers struct {
	solid, oneWay collision.LayerMask
}

func newLayers(platform, oneWay collision.LayerMask) layers {
	l := layers{solid: platform.Without(oneWay), oneWay: oneWay}
	if l.oneWay == collision.NoLayers {
		l.oneWay = l.solid
	}
	return l
}

func (l layers) forPlatform(oneWay bool) collision.LayerMask {
	if oneWay {
		return l.oneWay
	}
	return l.solid
}

// buildColliders puts the static level into the configured backend. Moving
// platforms and triggers always live in the returned resolv world; the
// returned caster sees both.
func buildColliders(level *leveldata.Level, simCfg cfg.SimConfig, l layers) (collision.Caster, *resolvworld.World, error) {
	width := int(math.Ceil(level.Bounds.Max.X)) + simCfg.CellSize
	height := int(math.Ceil(level.Bounds.Max.Y)) + simCfg.CellSize
	world := resolvworld.New(width, height, simCfg.CellSize)
	shapes := level.Shapes(l.solid, l.oneWay)

	switch simCfg.Backend {
	case cfg.BackendChipmunk:
		static := cpworld.New()
		for _, s := range shapes {
			static.Add(s)
		}
		return collision.Multi{static, world}, world, nil
	case cfg.BackendResolv, "":
		for i, s := range shapes {
			world.Add(s, tileTags(level.Tiles[i])...)
		}
		return world, world, nil
	default:
		return nil, nil, fmt.Errorf("sim: unknown backend %q", simCfg.Backend)
	}
}

func tileTags(t leveldata.Tile) []string {
	kind := tags.ResolvSolid
	if t.OneWay {
		kind = tags.ResolvOneWay
	}
	if t.Slope != collision.SlopeNone {
		return []string{kind, tags.ResolvRamp, t.Slope}
	}
	return []string{kind}
}
