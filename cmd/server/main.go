package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cbodonnell/flipmatch/pkg/api"
	"github.com/cbodonnell/flipmatch/pkg/catalog"
	"github.com/cbodonnell/flipmatch/pkg/config"
	"github.com/cbodonnell/flipmatch/pkg/events"
	"github.com/cbodonnell/flipmatch/pkg/game"
	"github.com/cbodonnell/flipmatch/pkg/game/types"
	"github.com/cbodonnell/flipmatch/pkg/log"
	"github.com/cbodonnell/flipmatch/pkg/queue"
	"github.com/cbodonnell/flipmatch/pkg/repositories"
	"github.com/cbodonnell/flipmatch/pkg/shuffle"
	"github.com/cbodonnell/flipmatch/pkg/state"
	"github.com/cbodonnell/flipmatch/pkg/version"
	"github.com/cbodonnell/flipmatch/pkg/workers"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	port := flag.Int("port", cfg.Port, "Port to listen on")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level")
	databaseURL := flag.String("database-url", cfg.DatabaseURL, "Database connection string (sqlite://, postgresql://, file://, memory://)")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting flipmatch server version %s", version.Get())
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repository, err := repositories.Open(ctx, *databaseURL)
	if err != nil {
		panic(fmt.Sprintf("Failed to open repository: %v", err))
	}
	defer repository.Close(context.Background())

	pool, err := loadPool(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to load token catalog: %v", err))
	}
	log.Info("Loaded %d tokens", len(pool))

	var rng shuffle.Source
	if cfg.Seed != 0 {
		log.Info("Using fixed shuffle seed %d", cfg.Seed)
		rng = shuffle.NewSource(cfg.Seed)
	}

	saveRequestChan := make(chan workers.SaveGameStateRequest, workers.SaveRequestBufferSize)
	saveGameStateWorker := workers.NewSaveGameStateWorker(workers.NewSaveGameStateWorkerOptions{
		Repository:      repository,
		SaveRequestChan: saveRequestChan,
	})
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		saveGameStateWorker.Start(workerCtx)
		close(workerDone)
	}()

	commandQueue := queue.NewInMemoryQueue(queue.QueueBufferSize)
	stateManager := state.NewInMemoryStateManager()
	eventHub := api.NewEventHub()
	eventManager := events.NewEventManager()
	eventManager.RegisterHandler(eventHub.Notify)
	eventManager.RegisterHandler(events.LogHandler(logger.With("component", "events")))

	session, err := game.NewSession(ctx, game.NewSessionOptions{
		Pool:            pool,
		Repository:      repository,
		Notifier:        eventManager,
		Scheduler:       game.QueueScheduler{Queue: commandQueue},
		Rng:             rng,
		MismatchDelay:   cfg.MismatchDelay,
		StateManager:    stateManager,
		SaveRequestChan: saveRequestChan,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create session: %v", err))
	}

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		CommandQueue: commandQueue,
		Session:      session,
		LoopInterval: cfg.LoopInterval,
	})
	loopCtx, stopLoop := context.WithCancel(context.Background())
	loopDone := make(chan error, 1)
	go func() {
		loopDone <- gameManager.Start(loopCtx)
	}()

	commander := game.NewCommander(commandQueue)
	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:         *port,
		Controller:   commander,
		StateManager: stateManager,
		Repository:   repository,
		Events:       eventHub,
	})
	go apiServer.Start()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	eventHub.Close()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop API server: %v", err)
	}

	// The quit signal saves an active game before the loop stops.
	if err := commander.Quit(shutdownCtx); err != nil {
		log.Error("Failed to quit game: %v", err)
	}
	stopLoop()
	if err := <-loopDone; err != nil {
		log.Error("Game loop stopped with error: %v", err)
	}

	stopWorker()
	<-workerDone
	saveGameStateWorker.Flush(shutdownCtx)
	log.Info("Shutdown complete")
}

func loadPool(cfg config.Config) ([]types.Token, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(cfg.CatalogSize), nil
	}
	return catalog.Load(cfg.CatalogPath)
}
