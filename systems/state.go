package systems

import (
	"math"

	"github.com/automoto/paradox/components"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/controller"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// NewStateSystem classifies each hero's last move and logs transitions.
func NewStateSystem(logger *zap.Logger) func(*ecs.ECS) {
	return func(ecs *ecs.ECS) {
		components.Hero.Each(ecs.World, func(e *donburi.Entry) {
			hero := components.Hero.Get(e)
			body := components.Body.Get(e)

			next := ClassifyState(body.Last)
			if next == hero.State {
				return
			}
			logger.Debug("state change",
				zap.String("hero", hero.Name),
				zap.Stringer("from", hero.State),
				zap.Stringer("to", next),
			)
			hero.State = next
		})
	}
}

// ClassifyState derives a motion state from a move result.
func ClassifyState(res controller.Result) cfg.StateID {
	state := res.State
	switch {
	case state.Below && math.Abs(res.Velocity.X) > cfg.RunningSpeed:
		return cfg.Running
	case state.Below:
		return cfg.Idle
	case res.Velocity.Y > 0:
		return cfg.Jump
	case state.Left || state.Right:
		return cfg.WallSlide
	default:
		return cfg.Falling
	}
}
