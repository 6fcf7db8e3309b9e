package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"fishtable/internal/auth"
	"fishtable/internal/config"
	"fishtable/internal/game"
	"fishtable/internal/handler"
	"fishtable/internal/jackpot"
	"fishtable/internal/ledger"
	"fishtable/internal/logger"
	"fishtable/internal/service"
	"fishtable/internal/table"
	"fishtable/internal/worker"

	_ "fishtable/docs"
)

// @title Fish Table API
// @version 1.0
// @description Wallet, credit approval and table API for the fish shooting game. Gameplay runs over the /ws websocket.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", true)
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Setup logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	// Root context to be canceled on SIGINT / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage: postgres or in-process memory
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := openStorage(initCtx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.close()

	// Optional redis for sessions, login attempts and pool snapshots
	cache := openCache(initCtx, cfg, log)
	defer cache.close()

	publisher := openPublisher(cfg, log)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event publisher")
		}
	}()

	bets, err := cfg.Game.BetValues()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid bets")
	}
	rngs := newRandomSources(cfg.Game.Seed)

	// Fish catalog from storage, the built-in one when storage has none
	catalog, err := loadCatalog(initCtx, store.fishTypes, cfg.Game.TargetRTP, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load fish catalog")
	}

	engine := game.NewEngine(catalog, rngs.spawn, game.EngineConfig{
		Tables:        cfg.Game.Tables,
		PathsPerTable: cfg.Game.Paths,
		FishLifetime:  cfg.Game.FishLifetime,
		SpawnPerTick:  cfg.Game.SpawnPerTick,
		Selector: game.SelectorOptions{
			BigFishIDs:       game.DefaultBigFishIDs,
			BigFishThreshold: cfg.Game.BigFishThreshold,
			MaxWaitFactor:    3,
		},
	}, logger.WithComponent(log, "engine"))

	// Ledger is the only writer of balances and quotas
	walletLedger := ledger.New(store.wallets, store.quotas, store.entries, store.db, cfg.Game.MaxCredit, logger.WithComponent(log, "ledger"))

	pools := jackpot.NewEngine(jackpot.Config{
		Contribution: cfg.Jackpot.Contribution,
		TargetRTP:    cfg.Jackpot.TargetRTP,
		Scaling:      cfg.Jackpot.Scaling,
		RollInterval: cfg.Jackpot.RollInterval,
		Seed:         cfg.Jackpot.Seed,
	}, rngs.jackpot, cache.poolStore, logger.WithComponent(log, "jackpot"))
	if err := pools.Load(initCtx, cfg.Game.Tables); err != nil {
		log.Fatal().Err(err).Msg("failed to load jackpot pools")
	}
	payer := jackpot.NewPayer(pools, walletLedger, store.jackpots, logger.WithComponent(log, "jackpot"))

	tables := table.NewManager(cfg.Game.Tables, cfg.Game.Seats, logger.WithComponent(log, "tables"))

	// Services
	gameService := service.NewGameService(walletLedger, store.stakes, engine, payer, tables, publisher, rngs.hits, bets, logger.WithComponent(log, "game"))
	creditService := service.NewCreditService(walletLedger, store.users, store.credits, store.db, tables, publisher, logger.WithComponent(log, "credit"))
	walletService := service.NewWalletService(walletLedger, store.users, logger.WithComponent(log, "wallet"))
	sweeper := service.NewStakeSweeper(store.stakes, store.wallets, store.db, payer, cfg.Worker.StaleStakeAge, cfg.Worker.SweepBatch, logger.WithComponent(log, "sweeper"))

	if cfg.Server.SeedDemo {
		seedDemo(store, cfg.Auth.JWTSecret, log)
	}

	// Workers
	spawnWorker := worker.NewSpawnWorker(engine, tables, cfg.Game.SpawnInterval, logger.WithComponent(log, "spawn"))
	spawnWorker.Start(ctx)
	defer spawnWorker.Stop()

	sweepWorker := worker.NewSweepWorker(sweeper, cfg.Worker.SweepInterval, logger.WithComponent(log, "sweeper"))
	sweepWorker.Start(ctx)
	defer sweepWorker.Stop()

	feed := worker.NewJackpotFeed(pools, tables, cfg.Jackpot.FeedSchedule, logger.WithComponent(log, "feed"))
	if err := feed.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start jackpot feed")
	}
	defer feed.Stop()

	// http and websocket handlers
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	socket := handler.NewGameSocket(gameService, tables, auth.NewDirectory(store.users, verifier),
		cache.sessions, cache.attempts, handler.SocketConfig{
			WriteTimeout:   cfg.Socket.WriteTimeout,
			PongTimeout:    cfg.Socket.PongTimeout,
			PingInterval:   cfg.Socket.PingInterval,
			MaxMessageSize: cfg.Socket.MaxMessageSize,
			SendBuffer:     cfg.Socket.SendBuffer,
			AllowedOrigins: cfg.Socket.AllowedOrigins,
		}, logger.WithComponent(log, "socket"))

	h := handler.NewHandler(gameService, creditService, walletService, verifier, socket, log)
	router := h.SetupRoutes()

	// http server configuration
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Shutdown does not see hijacked websocket connections
	srv.RegisterOnShutdown(socket.CloseAll)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Str("port", cfg.Server.Port).Str("db_driver", cfg.Database.Driver).Int("tables", cfg.Game.Tables).Msg("Server started")

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info().Msg("Shutdown signal received, starting graceful shutdown...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
	} else {
		log.Info().Msg("HTTP server stopped gracefully")
	}
	if err := socket.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Int("connections", socket.Connections()).Msg("game connections still open at shutdown deadline")
	} else {
		log.Info().Msg("game connections closed")
	}

	log.Info().Msg("Shutdown complete")
}
