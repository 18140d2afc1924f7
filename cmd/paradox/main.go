package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/automoto/paradox/assets"
	cfg "github.com/automoto/paradox/config"
	"github.com/automoto/paradox/logging"
	"github.com/automoto/paradox/sim"
	"github.com/automoto/paradox/systems"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	level      string
	scriptPath string
	heroes     int
	ticks      int
	realtime   bool
	watch      bool
	restore    bool
	backend    string
	logFile    string
	logLevel   string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "YAML configuration file (empty = built-in defaults)")
	flag.StringVar(&o.level, "level", "demo", "Level name")
	flag.StringVar(&o.scriptPath, "script", "", "YAML input script (empty = built-in demo run)")
	flag.IntVar(&o.heroes, "heroes", 1, "Number of heroes to spawn")
	flag.IntVar(&o.ticks, "ticks", 0, "Ticks to simulate (0 = script length plus two seconds)")
	flag.BoolVar(&o.realtime, "realtime", false, "Step at the configured tick rate instead of as fast as possible")
	flag.BoolVar(&o.watch, "watch", false, "Reload -config when it changes (requires -realtime)")
	flag.BoolVar(&o.restore, "restore", false, "Resume from the last saved checkpoint")
	flag.StringVar(&o.backend, "backend", "", "Collision backend override: resolv or chipmunk")
	flag.StringVar(&o.logFile, "log-file", "", "Also write logs to this rotating file")
	flag.StringVar(&o.logLevel, "log-level", "", "Log level override")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Fprintf(os.Stderr, "paradox: %v\n", err)
		os.Exit(1)
	}
}

func run(o options) error {
	conf := cfg.Defaults()
	if o.configPath != "" {
		loaded, err := cfg.Load(o.configPath)
		if err != nil {
			return err
		}
		conf = loaded
	}
	if o.backend != "" {
		conf.Sim.Backend = o.backend
	}
	if o.logFile != "" {
		conf.Log.File = o.logFile
	}
	if o.logLevel != "" {
		conf.Log.Level = o.logLevel
	}

	logger, err := logging.New(conf.Log)
	if err != nil {
		return err
	}
	defer logging.Sync(logger)

	levels, names, err := assets.NewLevelLoader(conf.Sim.TileSize).LoadLevels()
	if err != nil {
		return err
	}
	level, ok := levels[o.level]
	if !ok {
		return fmt.Errorf("unknown level %q (have %s)", o.level, strings.Join(names, ", "))
	}

	simOpts := []sim.Option{sim.WithLogger(logger)}
	if store, err := systems.OpenStore(conf.Sim.AppName); err != nil {
		logger.Warn("checkpoints will not be saved", zap.Error(err))
	} else {
		simOpts = append(simOpts, sim.WithStore(store))
	}

	script, err := loadScript(o.scriptPath, conf.Sim.TickRate)
	if err != nil {
		return err
	}
	simOpts = append(simOpts, sim.WithInput(script))

	s, err := sim.New(level, conf, simOpts...)
	if err != nil {
		return err
	}
	for i := 0; i < o.heroes; i++ {
		if err := s.SpawnHero(fmt.Sprintf("hero%d", i+1), i); err != nil {
			return err
		}
	}
	if o.restore {
		ok, err := s.RestoreCheckpoint()
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("no saved checkpoint", zap.String("level", level.Name))
		}
	}

	ticks := o.ticks
	if ticks <= 0 {
		ticks = int((script.Duration() + 2) * float64(conf.Sim.TickRate))
	}

	if o.realtime {
		if err := runRealtime(s, conf, o, ticks, logger); err != nil {
			return err
		}
	} else {
		sim.RunTicks(s, ticks)
	}

	for _, h := range s.Heroes() {
		fmt.Printf("%-8s pos=(%.3f, %.3f) vel=(%.3f, %.3f) state=%-9s grounded=%-5v landings=%d respawns=%d\n",
			h.Name, h.Position.X, h.Position.Y, h.Velocity.X, h.Velocity.Y,
			h.State, h.Contacts.Below, h.Landings, h.Respawns)
	}
	return nil
}

func runRealtime(s *sim.Simulation, conf cfg.File, o options, ticks int, logger *zap.Logger) error {
	loopOpts := []sim.LoopOption{sim.WithMaxTicks(uint64(ticks))}
	if o.watch && o.configPath != "" {
		w, err := cfg.Watch(o.configPath)
		if err != nil {
			return err
		}
		defer w.Close()
		go func() {
			for err := range w.Errors {
				logger.Warn("configuration reload failed", zap.Error(err))
			}
		}()
		loopOpts = append(loopOpts, sim.WithReload(w.Updates))
	}

	loop := sim.NewGameLoop(s, conf.Sim.TickRate, loopOpts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			logger.Info("shutting down")
			loop.Stop()
		}
	}()

	loop.Run()
	return nil
}

// The built-in run: across the ramp, over the pit and onto the checkpoint.
var demoSteps = []sim.Step{
	{At: 0, Horizontal: 1},
	{At: 0.9, Horizontal: 1, Jump: true},
	{At: 1.3, Horizontal: 1},
	{At: 1.4, Horizontal: 1, Jump: true},
	{At: 1.8, Horizontal: 1},
	{At: 3, Horizontal: 0},
}

func loadScript(path string, tickRate int) (*sim.Script, error) {
	if path == "" {
		return sim.NewScript(tickRate, demoSteps...)
	}
	return sim.LoadScript(path, tickRate)
}
