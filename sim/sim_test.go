package sim

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/automoto/paradox/assets"
	"github.com/automoto/paradox/components"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/geom"
	"github.com/automoto/paradox/leveldata"
	"github.com/automoto/paradox/systems"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type memStore struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (m *memStore) SaveItem(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[key], nil
}

// floorLevel is a 40x30 room: a floor with its top at y=1, a wall from x=30
// and two spawns standing on the floor.
func floorLevel() *leveldata.Level {
	return &leveldata.Level{
		Name:   "test",
		Bounds: geom.Rect(0, 0, 40, 30),
		Tiles: []leveldata.Tile{
			{Box: geom.Rect(0, 0, 40, 1)},
			{Box: geom.Rect(30, 1, 1, 10)},
		},
		Spawns: []leveldata.Spawn{
			{Position: geom.V(2, 1), Index: 0},
			{Position: geom.V(10, 1), Index: 1},
		},
	}
}

func hold(in components.InputData) systems.InputSource {
	return systems.InputFunc(func(uint64, *components.HeroData) components.InputData { return in })
}

func newSim(t *testing.T, level *leveldata.Level, opts ...Option) *Simulation {
	t.Helper()
	s, err := New(level, cfg.Defaults(), opts...)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.SpawnHero("hero", 0); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return s
}

func mustHero(t *testing.T, s *Simulation) HeroState {
	t.Helper()
	h, ok := s.Hero("hero")
	if !ok {
		t.Fatalf("hero missing")
	}
	return h
}

func TestHeroSettlesOnFloor(t *testing.T) {
	for _, backend := range []string{cfg.BackendResolv, cfg.BackendChipmunk} {
		t.Run(backend, func(t *testing.T) {
			conf := cfg.Defaults()
			conf.Sim.Backend = backend
			s, err := New(floorLevel(), conf)
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if err := s.SpawnHero("hero", 0); err != nil {
				t.Fatalf("spawn: %v", err)
			}

			RunTicks(s, 10)
			h := mustHero(t, s)
			if !h.Contacts.Below {
				t.Fatalf("hero not grounded: %+v", h.Contacts)
			}
			if math.Abs(h.Position.Y-2) > 1e-9 {
				t.Fatalf("hero centre y=%v, want 2", h.Position.Y)
			}
			if h.Landings != 1 {
				t.Fatalf("landings %d, want 1", h.Landings)
			}
			if h.State != cfg.Idle {
				t.Fatalf("state %v", h.State)
			}
		})
	}
}

func TestHeroRunsIntoWall(t *testing.T) {
	s := newSim(t, floorLevel(), WithInput(hold(components.InputData{Horizontal: 1})))

	RunTicks(s, 5*60)
	h := mustHero(t, s)
	if !h.Contacts.Right || !h.Contacts.Below {
		t.Fatalf("contacts %+v", h.Contacts)
	}
	if math.Abs(h.Position.X-29.5) > 1e-6 {
		t.Fatalf("hero x=%v, want 29.5", h.Position.X)
	}
}

func TestJump(t *testing.T) {
	cases := []struct {
		name       string
		holdTicks  uint64
		minHeight  float64
		maxHeight  float64
		wantState  cfg.StateID
		checkAfter int
	}{
		// Discrete integration at 60Hz peaks a little under MaxJumpHeight.
		{"full", 1000, 7.5, 8, cfg.Jump, 10},
		{"released early", 5, 1.5, 2.5, cfg.Falling, 12},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// Stand for two ticks, then press jump.
			input := systems.InputFunc(func(tick uint64, _ *components.HeroData) components.InputData {
				return components.InputData{Jump: tick >= 2 && tick < 2+c.holdTicks}
			})
			s := newSim(t, floorLevel(), WithInput(input))

			peak := 0.0
			var stateAt cfg.StateID
			for i := 0; i < 120; i++ {
				s.Step()
				h := mustHero(t, s)
				peak = math.Max(peak, h.Position.Y-2)
				if i == c.checkAfter {
					stateAt = h.State
				}
			}
			if peak < c.minHeight || peak > c.maxHeight {
				t.Fatalf("peak %v outside [%v, %v]", peak, c.minHeight, c.maxHeight)
			}
			if stateAt != c.wantState {
				t.Fatalf("state %v, want %v", stateAt, c.wantState)
			}
			if h := mustHero(t, s); !h.Contacts.Below || h.Landings != 2 {
				t.Fatalf("hero did not land again: %+v", h)
			}
		})
	}
}

func TestFallingOutRespawns(t *testing.T) {
	level := &leveldata.Level{
		Name:   "pit",
		Bounds: geom.Rect(0, 0, 20, 20),
		Spawns: []leveldata.Spawn{{Position: geom.V(5, 10)}},
	}
	s := newSim(t, level)

	RunTicks(s, 60)
	h := mustHero(t, s)
	if h.Respawns != 1 {
		t.Fatalf("respawns %d, want 1", h.Respawns)
	}
	if h.Position.Y < 0 {
		t.Fatalf("hero still below the level: %v", h.Position)
	}
}

func TestDeadZoneRespawns(t *testing.T) {
	level := floorLevel()
	level.DeadZones = []geom.AABB{geom.Rect(8, 1, 2, 0.5)}
	core, logs := observer.New(zap.InfoLevel)
	s := newSim(t, level, WithLogger(zap.New(core)), WithInput(hold(components.InputData{Horizontal: 1})))

	for i := 0; i < 120 && mustHero(t, s).Respawns == 0; i++ {
		s.Step()
	}
	h := mustHero(t, s)
	if h.Respawns != 1 {
		t.Fatalf("respawns %d", h.Respawns)
	}
	if h.Position.X != 2 || h.Position.Y != 2 {
		t.Fatalf("respawned at %v", h.Position)
	}
	if logs.FilterMessage("hero died").FilterField(zap.Bool("fell", false)).Len() != 1 {
		t.Fatalf("death not logged: %v", logs.All())
	}
}

func TestCheckpointSaveAndRestore(t *testing.T) {
	level := floorLevel()
	level.Checkpoints = []leveldata.Checkpoint{{Box: geom.Rect(1, 1, 3, 3), ID: 7}}
	store := newMemStore()

	core, logs := observer.New(zap.InfoLevel)
	s := newSim(t, level, WithStore(store), WithLogger(zap.New(core)))
	RunTicks(s, 2)

	if n := logs.FilterMessage("checkpoint reached").Len(); n != 1 {
		t.Fatalf("checkpoint logged %d times", n)
	}
	data := store.items["progress_test"]
	var progress systems.SavedGameProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		t.Fatalf("saved progress: %v (%q)", err, data)
	}
	if progress.CheckpointID != 7 || progress.SpawnX != 2.5 || progress.SpawnY != 1 {
		t.Fatalf("progress %+v", progress)
	}
	if len(progress.Heroes) != 1 || progress.Heroes[0].Name != "hero" {
		t.Fatalf("heroes %+v", progress.Heroes)
	}

	// A fresh run spawning elsewhere is put back where the save was made.
	restored, err := New(level, cfg.Defaults(), WithStore(store))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := restored.SpawnHero("hero", 1); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	ok, err := restored.RestoreCheckpoint()
	if err != nil || !ok {
		t.Fatalf("restore: ok=%v err=%v", ok, err)
	}
	h := mustHero(t, restored)
	if math.Abs(h.Position.X-progress.Heroes[0].X) > 1e-9 || math.Abs(h.Position.Y-progress.Heroes[0].Y) > 1e-9 {
		t.Fatalf("restored at %v, saved %+v", h.Position, progress.Heroes[0])
	}
}

func TestRestoreWithoutSave(t *testing.T) {
	s := newSim(t, floorLevel(), WithStore(newMemStore()))
	ok, err := s.RestoreCheckpoint()
	if ok || err != nil {
		t.Fatalf("ok=%v err=%v", ok, err)
	}
}

func TestSaveCheckpointWithoutActive(t *testing.T) {
	store := newMemStore()
	s := newSim(t, floorLevel(), WithStore(store))
	if err := s.SaveCheckpoint(); err != nil {
		t.Fatalf("save: %v", err)
	}
	progress, err := systems.LoadGameProgress(store, "test")
	if err != nil || progress == nil {
		t.Fatalf("load: %v", err)
	}
	if progress.SpawnX != 2 || progress.SpawnY != 1 {
		t.Fatalf("progress %+v", progress)
	}
}

func TestPlatformCarriesHero(t *testing.T) {
	for _, thickness := range []float64{1, 0.5, 0.25} {
		for _, backend := range []string{cfg.BackendResolv, cfg.BackendChipmunk} {
			t.Run(fmt.Sprintf("%s/%v", backend, thickness), func(t *testing.T) {
				level := &leveldata.Level{
					Name:   "lift",
					Bounds: geom.Rect(0, 0, 20, 20),
					Platforms: []leveldata.MovingPlatform{{
						Box:      geom.Rect(0, 3-thickness, 6, thickness),
						Offset:   geom.V(0, 4),
						Duration: 1,
					}},
					Spawns: []leveldata.Spawn{{Position: geom.V(2, 3)}},
				}
				conf := cfg.Defaults()
				conf.Sim.Backend = backend
				s, err := New(level, conf)
				if err != nil {
					t.Fatalf("new: %v", err)
				}
				if err := s.SpawnHero("hero", 0); err != nil {
					t.Fatalf("spawn: %v", err)
				}

				RunTicks(s, 30)
				h := mustHero(t, s)
				if !h.Contacts.Below {
					t.Fatalf("hero fell off the lift: %+v at %v", h.Contacts, h.Position)
				}
				// Half way up after half a second: platform top at 5, hero centre at 6.
				if math.Abs(h.Position.Y-6) > 1e-3 {
					t.Fatalf("hero y=%v, want 6", h.Position.Y)
				}
				if h.Respawns != 0 {
					t.Fatalf("respawned %d times", h.Respawns)
				}
			})
		}
	}
}

func TestOneWayPlatformFromBelow(t *testing.T) {
	for _, backend := range []string{cfg.BackendResolv, cfg.BackendChipmunk} {
		t.Run(backend, func(t *testing.T) {
			level := floorLevel()
			level.Tiles = append(level.Tiles, leveldata.Tile{Box: geom.Rect(0, 4, 6, 0.5), OneWay: true})
			jump := systems.InputFunc(func(tick uint64, _ *components.HeroData) components.InputData {
				return components.InputData{Jump: tick >= 2}
			})
			conf := cfg.Defaults()
			conf.Sim.Backend = backend
			s, err := New(level, conf, WithInput(jump))
			if err != nil {
				t.Fatalf("new: %v", err)
			}
			if err := s.SpawnHero("hero", 0); err != nil {
				t.Fatalf("spawn: %v", err)
			}

			RunTicks(s, 120)
			h := mustHero(t, s)
			// Jumped through the ledge and landed on top of it.
			if !h.Contacts.Below || math.Abs(h.Position.Y-5.5) > 1e-6 {
				t.Fatalf("hero at %v contacts %+v", h.Position, h.Contacts)
			}
		})
	}
}

// demoLevel loads the embedded demo with an extra spawn for the tests.
func demoLevel(t *testing.T, extra geom.Vec2) *leveldata.Level {
	t.Helper()
	level := assets.NewLevelLoader(0).MustLoadLevel("demo")
	level.Spawns = append(level.Spawns, leveldata.Spawn{Position: extra, Index: 2})
	return level
}

func TestDemoPitRespawns(t *testing.T) {
	level := demoLevel(t, geom.V(24, 2))
	// Without the lift the pit is open.
	level.Platforms = nil

	core, logs := observer.New(zap.InfoLevel)
	s, err := New(level, cfg.Defaults(), WithLogger(zap.New(core)), WithInput(hold(components.InputData{Horizontal: 1})))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.SpawnHero("hero", 2); err != nil {
		t.Fatalf("spawn: %v", err)
	}

	for i := 0; i < 180 && mustHero(t, s).Respawns == 0; i++ {
		s.Step()
	}
	h := mustHero(t, s)
	if h.Respawns != 1 {
		t.Fatalf("respawns %d, hero at %v", h.Respawns, h.Position)
	}
	if h.Position.X != 24 || h.Position.Y != 3 {
		t.Fatalf("respawned at %v", h.Position)
	}
	if logs.FilterMessage("hero died").FilterField(zap.Bool("fell", false)).Len() != 1 {
		t.Fatalf("pit death not logged: %v", logs.All())
	}
}

func TestDemoLiftCarriesHero(t *testing.T) {
	s, err := New(demoLevel(t, geom.V(28, 2)), cfg.Defaults())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := s.SpawnHero("hero", 2); err != nil {
		t.Fatalf("spawn: %v", err)
	}

	// The lift rises 4 units in 2s; after 1s its top is at 4.
	RunTicks(s, 60)
	h := mustHero(t, s)
	if !h.Contacts.Below || h.Respawns != 0 {
		t.Fatalf("hero at %v contacts %+v respawns %d", h.Position, h.Contacts, h.Respawns)
	}
	if math.Abs(h.Position.Y-5) > 1e-3 {
		t.Fatalf("hero y=%v, want 5", h.Position.Y)
	}
}

func TestSpawnErrors(t *testing.T) {
	s := newSim(t, floorLevel())
	if err := s.SpawnHero("hero", 0); !errors.Is(err, ErrDuplicateHero) {
		t.Fatalf("duplicate: %v", err)
	}

	conf := cfg.Defaults()
	conf.Sim.MaxActors = 1
	full, err := New(floorLevel(), conf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := full.SpawnHero("a", 0); err != nil {
		t.Fatalf("spawn: %v", err)
	}
	if err := full.SpawnHero("b", 0); !errors.Is(err, ErrTooManyHeroes) {
		t.Fatalf("limit: %v", err)
	}

	empty, err := New(&leveldata.Level{Name: "empty", Bounds: geom.Rect(0, 0, 4, 4)}, cfg.Defaults())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := empty.SpawnHero("a", 0); !errors.Is(err, ErrNoSpawn) {
		t.Fatalf("no spawn: %v", err)
	}
}

func TestReconfigure(t *testing.T) {
	s := newSim(t, floorLevel(), WithInput(hold(components.InputData{Horizontal: 1})))

	bad := cfg.Defaults()
	bad.Mover.VerticalRays = 1
	if err := s.Reconfigure(bad); err == nil {
		t.Fatalf("invalid configuration accepted")
	}

	fat := cfg.Defaults()
	fat.Mover.SkinWidth = 0.6
	if err := s.Reconfigure(fat); err == nil {
		t.Fatalf("skin wider than the hero accepted")
	}

	slow := cfg.Defaults()
	slow.Hero.RunSpeed = 0
	if err := s.Reconfigure(slow); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
	RunTicks(s, 30)
	if h := mustHero(t, s); h.Position.X != 2 {
		t.Fatalf("hero moved with zero run speed: %v", h.Position)
	}
}
