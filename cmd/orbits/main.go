// cmd/orbits/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orbits/pkg/config"
	"github.com/opd-ai/go-orbits/pkg/engine"
	"github.com/opd-ai/go-orbits/pkg/event"
	"github.com/opd-ai/go-orbits/pkg/logging"
	"github.com/opd-ai/go-orbits/pkg/physics"
	"github.com/opd-ai/go-orbits/pkg/physics/chipmunk"
	"github.com/opd-ai/go-orbits/pkg/progress"
	"github.com/opd-ai/go-orbits/pkg/render"
	engorender "github.com/opd-ai/go-orbits/pkg/render/engo"
)

type options struct {
	configPath    string
	createDefault bool
	levelPath     string
	levelName     string
	renderer      string
	width         float64
	height        float64
	fullscreen    bool
	listLevels    bool
	noSave        bool
	logFile       string
	pull          string
	maxTime       float64
	fps           int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "orbits.json", "Path to configuration file (.json, .yaml or .toml)")
	flag.BoolVar(&opts.createDefault, "default", false, "Create default configuration file")
	flag.StringVar(&opts.levelPath, "level", "", "Path to a level file (overrides -level-name)")
	flag.StringVar(&opts.levelName, "level-name", "first-orbit", "Name of a built-in level")
	flag.StringVar(&opts.renderer, "renderer", "engo", "Renderer type: 'engo', 'terminal' or 'headless'")
	flag.Float64Var(&opts.width, "width", 0, "Viewport width (overrides config)")
	flag.Float64Var(&opts.height, "height", 0, "Viewport height (overrides config)")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "Run in fullscreen mode (Engo only)")
	flag.BoolVar(&opts.listLevels, "list-levels", false, "List built-in levels and exit")
	flag.BoolVar(&opts.noSave, "no-save", false, "Do not record progress")
	flag.StringVar(&opts.logFile, "log-file", "", "Write logs to this file instead of stderr")
	flag.StringVar(&opts.pull, "pull", "50,0", "Pull vector x,y for the headless launch")
	flag.Float64Var(&opts.maxTime, "max-time", 30, "Seconds of game time to simulate (headless only)")
	flag.IntVar(&opts.fps, "fps", 30, "Frames per second (terminal only)")
	flag.Parse()

	if opts.listLevels {
		for _, name := range config.LevelNames() {
			fmt.Println(name)
		}
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "orbits: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			return fmt.Errorf("failed to create default configuration: %w", err)
		}
		fmt.Printf("created default configuration %s\n", opts.configPath)
		return nil
	}

	gameConfig, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logWriter, closeLog, err := openLog(opts.logFile, opts.renderer)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := logging.New(logging.Options{
		Writer: logWriter,
		Level:  gameConfig.Logging.Level,
		Format: gameConfig.Logging.Format,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level, err := loadLevel(opts)
	if err != nil {
		return err
	}

	newProvider := func() (physics.Provider, error) {
		return chipmunk.NewSpace(chipmunk.Config{
			Damping:    gameConfig.Physics.Damping,
			Iterations: uint(gameConfig.Physics.Iterations),
		}), nil
	}

	// The tracker must be listening before the first level loads.
	eventBus := event.NewEventBus()
	if !opts.noSave {
		store := progress.OpenApp(progress.AppName, logger)
		tracker := progress.NewTracker(store, eventBus, logger)
		defer tracker.Close()
		defer reportProgress(store)
	}

	game, err := engine.NewGame(gameConfig, level, nil,
		engine.WithLogger(logger),
		engine.WithEventBus(eventBus),
		engine.WithProviderFactory(newProvider),
		engine.WithContext(ctx),
	)
	if err != nil {
		return err
	}

	logger.Info(ctx, "starting game",
		"level", level.Name,
		"renderer", opts.renderer,
	)

	switch opts.renderer {
	case "engo":
		engorender.Run(ctx, game, gameConfig.Viewport, logger)
		return nil
	case "terminal":
		return runTerminal(ctx, game, logger, opts.fps)
	case "headless":
		return runHeadless(game, opts, logger)
	default:
		return fmt.Errorf("unknown renderer %q", opts.renderer)
	}
}

// loadConfig reads the configuration file, falling back to defaults when it
// does not exist, and applies environment and flag overrides.
func loadConfig(opts options) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(opts.configPath); errors.Is(err, os.ErrNotExist) {
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	if err := config.ApplyEnvironmentOverrides(gameConfig); err != nil {
		return nil, fmt.Errorf("failed to apply environment configuration: %w", err)
	}
	if opts.width > 0 {
		gameConfig.Viewport.Width = opts.width
	}
	if opts.height > 0 {
		gameConfig.Viewport.Height = opts.height
	}
	if opts.fullscreen {
		gameConfig.Viewport.Fullscreen = true
	}
	if err := gameConfig.Validate(); err != nil {
		return nil, err
	}
	return gameConfig, nil
}

func loadLevel(opts options) (*config.Level, error) {
	if opts.levelPath != "" {
		return config.LoadLevel(opts.levelPath)
	}
	return config.EmbeddedLevel(opts.levelName)
}

// openLog picks the log destination. The terminal renderer owns the screen,
// so without a log file its logs are dropped.
func openLog(path, renderer string) (io.Writer, func(), error) {
	if path == "" {
		if renderer == "terminal" {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runTerminal(ctx context.Context, game *engine.Game, logger *logging.Logger, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	renderer := render.NewTerminalRenderer(screen, game.Snapshot().Viewport)
	controller := render.NewTerminalController(game, renderer, logger)
	return controller.Run(ctx, fps)
}

func runHeadless(game *engine.Game, opts options, logger *logging.Logger) error {
	pull, err := parseVector(opts.pull)
	if err != nil {
		return fmt.Errorf("invalid -pull: %w", err)
	}
	if err := game.QueueLaunch(pull); err != nil {
		return err
	}

	status := game.Simulate(opts.maxTime, render.NewNullRenderer(logger))
	state := game.Snapshot()
	fmt.Printf("level=%s status=%s ticks=%d flight=%.2fs position=(%.1f, %.1f)\n",
		state.Level, status, state.Tick, state.FlightTime,
		state.Player.Position.X, state.Player.Position.Y)
	if state.CrashReason != "" {
		fmt.Printf("reason: %s\n", state.CrashReason)
	}
	return nil
}

// reportProgress prints the record of every level played this run.
func reportProgress(store *progress.Store) {
	for _, level := range store.Levels() {
		rec, err := store.Record(level)
		if err != nil {
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d attempts, %d crashes, %d finishes\n",
			level, rec.Attempts, rec.Crashes, rec.Finishes)
	}
}

// parseVector parses "x,y".
func parseVector(s string) (physics.Vector2D, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return physics.Vector2D{}, fmt.Errorf("want x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return physics.Vector2D{}, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return physics.Vector2D{}, err
	}
	return physics.Vector2D{X: x, Y: y}, nil
}
