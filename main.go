package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/leonelquinteros/gotext"
	"github.com/sirupsen/logrus"

	"mazer/pkg/engine/input"
	"mazer/pkg/engine/terminal"
	"mazer/pkg/engine/world"
	"mazer/pkg/game/animator"
	"mazer/pkg/game/config"
	"mazer/pkg/game/devtools"
	"mazer/pkg/game/generator"
	"mazer/pkg/game/maze"
	"mazer/pkg/game/renderer/tui"
	"mazer/pkg/game/solver"
	"mazer/pkg/game/state"
)

// builtinConfiguration is the 3x3 maze used when no file is given
func builtinConfiguration() maze.Configuration {
	return maze.Configuration{
		ColCount:         3,
		RowCount:         3,
		MaxSoftWallCount: 1,
		Entrypoints:      []world.Position{world.Pos(0, 0)},
		Checkpoints:      []maze.Checkpoint{{Position: world.Pos(2, 2), Level: 1}},
	}
}

func initGotext(settings config.Settings) {
	gotext.Configure(settings.LocaleDir, settings.Language, "default")
}

// loadConfiguration reads the maze file named by the flag, then the settings, else the built-in maze
func loadConfiguration(flagFile string, settings config.Settings) (maze.Configuration, error) {
	path := flagFile
	if path == "" {
		path = settings.MazeFile
	}
	if path == "" {
		return builtinConfiguration(), nil
	}
	return maze.LoadConfiguration(path)
}

// generateConfiguration creates a random maze; seed 0 picks one from the clock
func generateConfiguration(seed int64, logger logrus.FieldLogger) (maze.Configuration, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := generator.NewLineWalker(seed)
	logger.WithFields(logrus.Fields{"generator": g.Name(), "seed": seed}).Info("generating maze")
	return g.Generate(generator.DefaultOptions)
}

func main() {
	configFile := flag.String("config", "", "maze configuration file (YAML); defaults to a built-in 3x3 maze")
	dump := flag.Bool("dump", false, "print the base board and exit")
	envFile := flag.String("env", "", "dotenv file with settings (defaults to .env when present)")
	generate := flag.Bool("generate", false, "play a randomly generated maze instead of a configuration file")
	seed := flag.Int64("seed", 0, "seed for -generate (0 picks one from the clock)")
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	settings, err := config.Load(logger, envFiles...)
	if err != nil {
		logger.WithError(err).Fatal("loading settings")
	}
	logger.SetLevel(settings.LogLevel)

	initGotext(settings)

	var cfg maze.Configuration
	if *generate {
		cfg, err = generateConfiguration(*seed, logger)
	} else {
		cfg, err = loadConfiguration(*configFile, settings)
	}
	if err != nil {
		logger.WithError(err).Fatal("loading maze")
	}

	if *dump {
		board, err := maze.Build(cfg)
		if err != nil {
			logger.WithError(err).Fatal("building board")
		}
		if err := devtools.DumpBoard(os.Stdout, board); err != nil {
			logger.WithError(err).Fatal("dumping board")
		}
		return
	}

	if err := run(context.Background(), cfg, settings, logger); err != nil {
		logger.WithError(err).Fatal("shell stopped")
	}
}

func run(ctx context.Context, cfg maze.Configuration, settings config.Settings, logger logrus.FieldLogger) error {
	// The built-in engine is plain Go and ready as soon as it is asked for
	capability := solver.Shared(func() error { return nil })
	scorer := solver.NewScorer(solver.NewReference(), capability,
		solver.WithContext(ctx),
		solver.WithLogger(logger),
	)

	if err := capability.Wait(ctx); err != nil {
		return fmt.Errorf("starting engine: %w", err)
	}

	m, err := state.New(cfg,
		state.WithLogger(logger),
		state.WithAnimator(animator.New(
			animator.WithInterval(settings.TickInterval),
			animator.WithLogger(logger),
		)),
		state.WithScorer(scorer),
		state.WithMessageLimit(settings.MessageLimit),
	)
	if err != nil {
		return fmt.Errorf("creating maze: %w", err)
	}

	r := tui.New()
	r.Init()

	interactive := terminal.IsTerminal(os.Stdout)
	device := input.DeviceScript
	if interactive {
		device = input.DeviceTerminal
	}

	sh := newShell(m, scorer, r, os.Stdout, logger, interactive)
	return sh.run(ctx, input.NewLineReader(os.Stdin, device))
}
