package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/cellwars/internal/config"
	"github.com/mitchelldurbincs/cellwars/internal/game"
	"github.com/mitchelldurbincs/cellwars/internal/game/core"
	"github.com/mitchelldurbincs/cellwars/internal/game/events"
	"github.com/mitchelldurbincs/cellwars/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/cellwars/internal/logging"
	"github.com/mitchelldurbincs/cellwars/internal/ui"
	"github.com/mitchelldurbincs/cellwars/internal/ui/renderer"
	"github.com/mitchelldurbincs/cellwars/internal/ui/terminal"
)

func main() {
	// Command line flags
	configPath := flag.String("config", "", "Path to config file")
	difficulty := flag.String("difficulty", "", "Difficulty: easy, standard, hard or unfair (empty to prompt)")
	seed := flag.Int64("seed", -1, "Random seed, 0 for time based (-1 to use config default)")
	gridSize := flag.Int("grid-size", -1, "Board edge length (-1 to use config default)")
	maxTurns := flag.Int("max-turns", -1, "Turn limit before a stalemate, 0 for none (-1 to use config default)")
	flag.Parse()

	os.Exit(run(*configPath, *difficulty, *seed, *gridSize, *maxTurns))
}

func run(configPath, difficultyFlag string, seed int64, gridSize, maxTurns int) int {
	// Initialize configuration
	if err := config.Init(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize config: %v\n", err)
		return 1
	}

	// Flags override config
	if seed != -1 {
		config.Set("game.seed", seed)
	}
	if gridSize != -1 {
		config.Set("game.grid_size", gridSize)
	}
	if maxTurns != -1 {
		config.Set("game.max_turns", maxTurns)
	}
	if difficultyFlag != "" {
		config.Set("game.difficulty", difficultyFlag)
	}

	cfg := config.Get()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid settings: %v\n", err)
		return 1
	}

	logger := logging.New("cellwars", cfg.Logging)
	defer logger.Close()
	log := logger.Logger

	defer recordPanic(cfg.Development.PanicLog, log)

	log.Info().
		Str("config_file", config.ConfigFilePath()).
		Int("grid_size", cfg.Game.GridSize).
		Str("difficulty", cfg.Game.Difficulty).
		Int("max_turns", cfg.Game.MaxTurns).
		Msg("Starting Cell Wars")

	config.WatchConfig(func(_ *config.Config, err error) {
		if err != nil {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
			return
		}
		log.Info().Msg("Config reloaded; changes apply to the next game")
	})

	bus := events.NewEventBus(log)
	eventLevel := zerolog.DebugLevel
	if cfg.Development.VerboseLogging {
		eventLevel = zerolog.InfoLevel
	}
	eventLogger := subscribers.NewLoggerSubscriber("event-logger", log, eventLevel)
	eventLogger.SetDevMode(cfg.Development.VerboseLogging)
	bus.Subscribe(eventLogger)

	newSession := func(ctx context.Context, d core.Difficulty) (*game.Session, error) {
		gameCfg, err := game.ConfigFromSettings(config.Get(), log)
		if err != nil {
			return nil, err
		}
		gameCfg.Difficulty = d
		gameCfg.EventBus = bus
		return game.NewSession(ctx, gameCfg)
	}

	r := renderer.NewBoardRenderer(cfg.UI.ShowCoordinates, cfg.UI.ShowPower)
	app := ui.NewApp(os.Stdin, os.Stdout, r, newSession, log)
	if difficultyFlag != "" {
		d, err := core.ParseDifficulty(difficultyFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid difficulty: %v\n", err)
			return 1
		}
		app.Difficulty = &d
	}

	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Cell Wars needs an interactive terminal.")
		return 1
	}

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var session *game.Session
	err := terminal.WithRawMode(terminal.FdMode(os.Stdin.Fd()), os.Stdout, func() error {
		var runErr error
		session, runErr = app.Run(ctx)
		return runErr
	})
	if err != nil {
		log.Error().Err(err).Msg("Game terminated with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if session == nil {
		fmt.Println("Goodbye!")
		return 0
	}
	player := session.Stats(core.OwnedByPlayer)
	computer := session.Stats(core.OwnedByComputer)
	log.Info().
		Str("game_id", session.ID).
		Str("outcome", session.Phase().String()).
		Int("turn", session.Turn()).
		Int("player_cities", player.Cities).
		Int("computer_cities", computer.Cities).
		Int("ruins", session.Ruins()).
		Int("transitions", len(session.History())).
		Msg("Game finished")

	fmt.Println(game.OutcomeText(session))
	fmt.Printf("Turns played: %d   Your cities: %d (power %d)   Enemy cities: %d   Ruins: %d\n",
		session.Turn(), player.Cities, player.Power, computer.Cities, session.Ruins())
	return 0
}

// recordPanic writes a crashing panic and its stack to path, then re-raises it.
// The terminal has already been restored by the raw mode guard.
func recordPanic(path string, log zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	log.Error().Interface("panic", r).Msg("Unrecovered panic")

	if path != "" {
		report := fmt.Sprintf("Oops.\n%s\n%v\n\nBacktrace:\n%s", time.Now().Format(time.RFC3339), r, debug.Stack())
		if err := os.WriteFile(path, []byte(report), 0644); err == nil {
			fmt.Fprintf(os.Stderr, "Cell Wars crashed. Details were written to %s\n", path)
		}
	}
	panic(r)
}
