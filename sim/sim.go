// Package sim owns a level, its heroes and the ECS systems that move them,
// stepping at a fixed tick the way a game loop would drive the controller.
package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/paradox/collision"
	"github.com/automoto/paradox/components"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/controller"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/leveldata"
	"github.com/automoto/paradox/systems"
	"github.com/automoto/paradox/systems/factory"
	"github.com/automoto/paradox/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

var (
	ErrNoSpawn       = errors.New("sim: level has no spawn point")
	ErrTooManyHeroes = errors.New("sim: hero limit reached")
	ErrDuplicateHero = errors.New("sim: hero name in use")
)

// HeroState is a read-only snapshot of one hero.
type HeroState struct {
	Name     string
	Position geom.Vec2
	Velocity geom.Vec2
	Contacts controller.CollisionState
	State    cfg.StateID
	Landings int
	Respawns int
}

// Simulation is safe for concurrent use; Step serialises with every other
// method.
type Simulation struct {
	mu         sync.Mutex
	ecs        *ecs.ECS
	levelEntry *donburi.Entry
	conf       cfg.File
	hero       *cfg.HeroConfig
	mover      controller.Config
	layers     layers
	store      systems.Store
	input      systems.InputSource
	logger     *zap.Logger
	dt         float64
}

type Option func(*Simulation)

func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore persists checkpoints to store, typically a *gdata.Manager.
func WithStore(store systems.Store) Option {
	return func(s *Simulation) { s.store = store }
}

// WithInput sets where hero intent comes from. Without it heroes stand still.
func WithInput(src systems.InputSource) Option {
	return func(s *Simulation) { s.input = src }
}

// New builds the colliders for level and the systems that run each tick.
func New(level *leveldata.Level, conf cfg.File, opts ...Option) (*Simulation, error) {
	mover, err := conf.Mover.Controller()
	if err != nil {
		return nil, err
	}
	if conf.Sim.TickRate <= 0 {
		return nil, fmt.Errorf("sim: tick rate %d must be positive", conf.Sim.TickRate)
	}

	s := &Simulation{
		conf:   conf,
		mover:  mover,
		layers: newLayers(mover.PlatformMask, mover.OneWayPlatformMask),
		logger: zap.NewNop(),
		dt:     1 / float64(conf.Sim.TickRate),
		input: systems.InputFunc(func(uint64, *components.HeroData) components.InputData {
			return components.InputData{}
		}),
	}
	s.hero = &s.conf.Hero
	for _, opt := range opts {
		opt(s)
	}

	caster, world, err := buildColliders(level, conf.Sim, s.layers)
	if err != nil {
		return nil, err
	}

	s.ecs = ecs.NewECS(donburi.NewWorld())
	s.levelEntry = factory.CreateLevel(s.ecs, level, caster, world)
	for _, p := range level.Platforms {
		if _, err := factory.CreateMovingPlatform(s.ecs, world, p, s.layers.forPlatform(p.OneWay)); err != nil {
			return nil, fmt.Errorf("sim: level %s: %w", level.Name, err)
		}
	}
	for _, c := range level.Checkpoints {
		factory.CreateCheckpoint(s.ecs, world, c)
	}
	for _, box := range level.DeadZones {
		factory.CreateDeadZone(world, box)
	}

	// Heroes move before platforms so a hero landing this tick is carried.
	s.ecs.AddSystem(systems.NewInputSystem(s.input))
	s.ecs.AddSystem(systems.NewHeroSystem(s.dt, s.hero, s.logger))
	s.ecs.AddSystem(systems.NewPlatformSystem(s.dt))
	s.ecs.AddSystem(systems.NewDeathSystem(s.logger))
	s.ecs.AddSystem(systems.NewCheckpointSystem(s.store, s.logger))
	s.ecs.AddSystem(systems.NewStateSystem(s.logger))

	s.logger.Info("level loaded",
		zap.String("level", level.Name),
		zap.String("backend", conf.Sim.Backend),
		zap.Int("tiles", len(level.Tiles)),
		zap.Int("platforms", len(level.Platforms)),
		zap.Int("checkpoints", len(level.Checkpoints)),
		zap.Int("dead_zones", len(level.DeadZones)),
		zap.Int("spawns", len(level.Spawns)),
	)
	return s, nil
}

func (s *Simulation) levelData() *components.LevelData {
	return components.Level.Get(s.levelEntry)
}

// Caster returns the ray caster every hero moves against.
func (s *Simulation) Caster() collision.Caster {
	return s.levelData().Caster
}

// TickDuration is the fixed time step in seconds.
func (s *Simulation) TickDuration() float64 {
	return s.dt
}

// SpawnHero adds a hero at the spawn point with the given index, or the
// leftmost spawn when no spawn has that index.
func (s *Simulation) SpawnHero(name string, spawnIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	var dup bool
	tags.Hero.Each(s.ecs.World, func(e *donburi.Entry) {
		count++
		dup = dup || components.Hero.Get(e).Name == name
	})
	if dup {
		return fmt.Errorf("%q: %w", name, ErrDuplicateHero)
	}
	if s.conf.Sim.MaxActors > 0 && count >= s.conf.Sim.MaxActors {
		return fmt.Errorf("%d heroes: %w", count, ErrTooManyHeroes)
	}

	level := s.levelData().Level
	spawn, ok := level.Spawn(spawnIndex)
	if !ok {
		return fmt.Errorf("level %s: %w", level.Name, ErrNoSpawn)
	}
	if _, err := factory.CreateHero(s.ecs, s.levelData().Caster, s.mover, *s.hero, name, spawn, s.logger); err != nil {
		return err
	}
	s.logger.Info("hero spawned",
		zap.String("hero", name),
		zap.Float64("x", spawn.Position.X),
		zap.Float64("y", spawn.Position.Y),
	)
	return nil
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ecs.Update()
	s.levelData().Tick++
}

// Tick is the number of steps taken.
func (s *Simulation) Tick() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levelData().Tick
}

// Heroes snapshots every hero in spawn order.
func (s *Simulation) Heroes() []HeroState {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []HeroState
	tags.Hero.Each(s.ecs.World, func(e *donburi.Entry) {
		out = append(out, heroState(e))
	})
	return out
}

// Hero snapshots the named hero.
func (s *Simulation) Hero(name string) (HeroState, bool) {
	for _, h := range s.Heroes() {
		if h.Name == name {
			return h, true
		}
	}
	return HeroState{}, false
}

func heroState(e *donburi.Entry) HeroState {
	hero := components.Hero.Get(e)
	body := components.Body.Get(e)
	return HeroState{
		Name:     hero.Name,
		Position: body.Actor.Position,
		Velocity: body.Mover.Velocity(),
		Contacts: body.Mover.State(),
		State:    hero.State,
		Landings: hero.Landings,
		Respawns: hero.Respawns,
	}
}

// Reconfigure applies a reloaded configuration to the running simulation.
// Mover and hero tuning take effect on the next tick; the tick rate, backend
// and level layout are fixed at construction. An invalid conf changes nothing.
func (s *Simulation) Reconfigure(conf cfg.File) error {
	mover, err := conf.Mover.Controller()
	if err != nil {
		return err
	}
	if l := newLayers(mover.PlatformMask, mover.OneWayPlatformMask); l != s.layers {
		return fmt.Errorf("sim: collision layers cannot change while running")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var ferr error
	tags.Hero.Each(s.ecs.World, func(e *donburi.Entry) {
		body := components.Body.Get(e)
		if err := mover.Fits(body.Actor); err != nil && ferr == nil {
			ferr = err
		}
	})
	if ferr != nil {
		return ferr
	}
	tags.Hero.Each(s.ecs.World, func(e *donburi.Entry) {
		// Validated above.
		_ = components.Body.Get(e).Mover.Configure(mover)
	})

	if conf.Sim.TickRate != s.conf.Sim.TickRate || conf.Sim.Backend != s.conf.Sim.Backend {
		s.logger.Warn("tick rate and backend changes need a restart")
	}
	s.mover = mover
	s.conf.Mover = conf.Mover
	*s.hero = conf.Hero
	s.logger.Info("configuration reloaded")
	return nil
}

// SaveCheckpoint writes the active checkpoint, or the first spawn when none
// is active, together with every hero's state.
func (s *Simulation) SaveCheckpoint() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := s.levelData()
	progress := &systems.SavedGameProgress{
		Level:  level.Level.Name,
		Heroes: systems.SnapshotHeroes(s.ecs),
	}
	if active := level.ActiveCheckpoint; active != nil {
		progress.CheckpointID = active.CheckpointID
		progress.SpawnX, progress.SpawnY = active.Spawn.X, active.Spawn.Y
	} else if spawn, ok := level.Level.Spawn(0); ok {
		progress.SpawnX, progress.SpawnY = spawn.Position.X, spawn.Position.Y
	}
	return systems.SaveGameProgress(s.store, progress)
}

// RestoreCheckpoint loads saved progress for this level. Heroes present in
// the save are put back at rest where they were saved. It reports whether a
// save existed.
func (s *Simulation) RestoreCheckpoint() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	level := s.levelData()
	progress, err := systems.LoadGameProgress(s.store, level.Level.Name)
	if err != nil || progress == nil {
		return false, err
	}
	level.ActiveCheckpoint = progress.Checkpoint()

	saved := make(map[string]systems.SavedHero, len(progress.Heroes))
	for _, h := range progress.Heroes {
		saved[h.Name] = h
	}
	tags.Hero.Each(s.ecs.World, func(e *donburi.Entry) {
		hero := components.Hero.Get(e)
		h, ok := saved[hero.Name]
		if !ok {
			return
		}
		body := components.Body.Get(e)
		systems.Respawn(e, geom.V(h.X, h.Y-body.Actor.HalfExtents().Y))
		hero.Respawns = h.Respawns
	})

	s.logger.Info("checkpoint restored",
		zap.String("level", level.Level.Name),
		zap.Int("checkpoint", progress.CheckpointID),
	)
	return true, nil
}
