package sim

import (
	"sync"
	"time"

	cfg "github.com/automoto/paradox/config"
	"go.uber.org/zap"
)

// GameLoop steps a Simulation in real time.
type GameLoop struct {
	sim      *Simulation
	tickRate int
	maxTicks uint64
	reload   <-chan cfg.File
	stopChan chan struct{}
	stopOnce sync.Once
}

type LoopOption func(*GameLoop)

// WithMaxTicks stops the loop after n ticks. Zero runs until Stop.
func WithMaxTicks(n uint64) LoopOption {
	return func(g *GameLoop) { g.maxTicks = n }
}

// WithReload applies configurations received on ch between ticks.
func WithReload(ch <-chan cfg.File) LoopOption {
	return func(g *GameLoop) { g.reload = ch }
}

func NewGameLoop(sim *Simulation, tickRate int, opts ...LoopOption) *GameLoop {
	g := &GameLoop{
		sim:      sim,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run blocks until Stop is called or the tick limit is reached.
func (g *GameLoop) Run() {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	logger := g.sim.logger
	logger.Info("game loop started", zap.Int("tick_rate", g.tickRate))

	for {
		select {
		case <-g.stopChan:
			logger.Info("game loop stopped", zap.Uint64("tick", g.sim.Tick()))
			return
		case conf, ok := <-g.reload:
			if !ok {
				g.reload = nil
				continue
			}
			if err := g.sim.Reconfigure(conf); err != nil {
				logger.Warn("configuration rejected", zap.Error(err))
			}
		case <-ticker.C:
			g.sim.Step()
			if g.maxTicks > 0 && g.sim.Tick() >= g.maxTicks {
				logger.Info("game loop finished", zap.Uint64("tick", g.sim.Tick()))
				return
			}
		}
	}
}

// Stop ends Run. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

// RunTicks steps the simulation n times without waiting between ticks.
func RunTicks(sim *Simulation, n int) {
	for i := 0; i < n; i++ {
		sim.Step()
	}
}
