package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/superpong/audio"
	"github.com/lixenwraith/superpong/config"
	"github.com/lixenwraith/superpong/console"
	"github.com/lixenwraith/superpong/core"
	"github.com/lixenwraith/superpong/engine"
	"github.com/lixenwraith/superpong/level"
	"github.com/lixenwraith/superpong/logging"
	"github.com/lixenwraith/superpong/scene"
	"github.com/lixenwraith/superpong/session"
	"github.com/lixenwraith/superpong/terminal"
)

const version = "0.3.0"

var (
	configFlag = flag.String("config", "", "Config file (default <user config dir>/superpong/config.toml)")
	dataFlag   = flag.String("data", "", "Data dir for the save file and logs")
	stagesFlag = flag.String("stages", "", "Dir with extra .yaml/.lua stage scripts")
	debugFlag  = flag.Bool("debug", false, "Enable debug logging")
	seedFlag   = flag.Int64("seed", 0, "Random seed, 0 picks one from the clock")
	fpsFlag    = flag.Bool("fps", false, "Show the frame rate counter")
)

func main() {
	// Panic recovery: restore the terminal even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *dataFlag != "" {
		cfg.Paths.Data = *dataFlag
	}
	if *stagesFlag != "" {
		cfg.Paths.Stages = *stagesFlag
	}
	if *debugFlag {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = "debug"
	}
	if err := cfg.ResolveDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare directories: %v\n", err)
		return 1
	}

	logs, err := logging.New(cfg.Logging, cfg.Paths.Data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logging: %v\n", err)
		return 1
	}
	defer logs.Close()
	core.OnCrash(func() { _ = logs.Logger.Sync() })
	log := logs.Logger
	log.Info("starting", zap.String("version", version), zap.String("data", cfg.Paths.Data))

	settings, err := config.LoadSettings(cfg.Paths.Config)
	if err != nil {
		log.Warn("settings unreadable, using defaults", zap.Error(err))
		settings = config.DefaultSettings()
	}

	// The save file is checked before the screen takes over stdin
	store := session.NewStore(cfg.Paths.Data, log)
	state, err := store.Load(session.ReaderPrompter{In: os.Stdin, Out: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load game: %v\n", err)
		return 1
	}

	stages, err := level.Builtin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load stages: %v\n", err)
		return 1
	}
	if err := stages.LoadDir(cfg.Paths.Stages); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load stages: %v\n", err)
		return 1
	}
	log.Info("stages loaded", zap.Strings("names", stages.Names()))

	// Non-fatal, game can run without sound
	sound := audio.NewSoundManager(cfg.Audio, log)
	if cfg.Audio.Enabled {
		if err := sound.Initialize(); err != nil {
			log.Warn("audio unavailable", zap.Error(err))
		}
	}
	defer sound.Cleanup()

	term, err := terminal.New(nil, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		return 1
	}
	core.OnCrash(term.Close)
	defer term.Close()
	term.ShowFPS(*fpsFlag)

	return loop(cfg, log, term, sound, stages, store, &state, settings)
}

func loop(cfg *config.Config, log *zap.Logger, term *terminal.Terminal, cues audio.Cues,
	stages *level.Catalog, store *session.Store, state *session.State, settings config.Settings) int {
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tp := engine.NewMonotonicTimeProvider()
	clock := engine.NewClock(tp, seed, term.Width())
	graph := engine.NewGraph(0)
	defer graph.Close()
	con := console.New(settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := scene.Deps{
		Graph:       graph,
		Time:        tp,
		Cues:        cues,
		Log:         log,
		Stages:      stages,
		Session:     state,
		Store:       store,
		FadeCadence: cfg.Loop.FadeCadence,
		Version:     version,
	}
	ctrl, err := scene.NewController(ctx, deps, term, con, settings, cfg.Paths.Config, clock.Next(engine.Input{}, settings))
	if err != nil {
		return fatal(log, term, err)
	}
	defer ctrl.Close()
	if err := ctrl.Execute(core.ApplySettings(settings)); err != nil {
		return fatal(log, term, err)
	}

	ticker := time.NewTicker(cfg.Loop.TickRate)
	defer ticker.Stop()

	var lastFrame time.Time
	for !ctrl.Exit() {
		<-ticker.C
		clock.SetWidth(term.Width())

		tick := clock.Next(term.Input(con.Active()), ctrl.Settings())
		if err := ctrl.Update(tick); err != nil {
			return fatal(log, term, err)
		}

		// Frames are dropped, never the simulation tick
		if interval := term.FrameInterval(); interval == 0 || tick.Now.Sub(lastFrame) >= interval {
			term.Render(graph.Snapshot(), ctrl.CameraOffset(), con)
			lastFrame = tick.Now
		}
	}

	log.Info("exiting", zap.Uint32("stage", state.Stage), zap.Uint32("score", state.Score))
	return 0
}

func fatal(log *zap.Logger, term *terminal.Terminal, err error) int {
	log.Error("fatal", zap.Error(err))
	term.Alert("Fatal error", err.Error())
	return 1
}

func configPath() string {
	if *configFlag != "" {
		return *configFlag
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "superpong", "config.toml")
}
