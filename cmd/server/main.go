package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/config"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/engine"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/game/rules"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/repository"
	"github.com/MichaelWei1990/LegendOfThreeKingdoms-sub007/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seatCount  = flag.Int("seats", 4, "number of seats in the game")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting resolution server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	eng := engine.New(rules.Config{
		BaseDrawCount:      cfg.Game.BaseDrawCount,
		BaseAttackRange:    cfg.Game.BaseAttackRange,
		AttackLimitPerTurn: cfg.Game.AttackLimitPerTurn,
	}, logger)

	for i := 0; i < *seatCount; i++ {
		eng.Game.AddPlayer(fmt.Sprintf("seat-%d", i), cfg.Game.InitialHealth)
	}
	deck := game.StandardDeck()
	game.Shuffle(deck, rand.New(rand.NewSource(time.Now().UnixNano())))
	eng.Game.AddCards(game.DeckZone(), deck...)
	logger.Info("game created",
		zap.String("game_id", eng.Game.ID),
		zap.Int("seats", *seatCount),
		zap.Int("deck_size", len(deck)),
	)

	var replays *repository.ReplayRepository
	if cfg.Database.DSN != "" {
		db, dbErr := repository.NewDB(ctx, cfg.Database.DSN, logger)
		if dbErr != nil {
			logger.Fatal("failed to connect to database", zap.Error(dbErr))
		}
		defer db.Close()

		replays = repository.NewReplayRepository(db)
		if schemaErr := replays.EnsureSchema(ctx); schemaErr != nil {
			logger.Fatal("failed to prepare replay schema", zap.Error(schemaErr))
		}
		logger.Info("replay repository initialized")
	} else {
		logger.Info("no database configured; replay persistence disabled")
	}

	hub := server.NewChoiceHub(cfg.Server.ChoiceTimeout, logger)
	hub.SetActionHandler(func(seat int, action server.ActionMessage) (any, error) {
		card, _, ok := eng.Game.FindCard(action.CardID)
		if !ok {
			return nil, fmt.Errorf("unknown card %s", action.CardID)
		}
		outcome, actErr := eng.PlayCard(seat, card, action.Targets, hub.Choose)
		if actErr != nil {
			return nil, actErr
		}
		if replays != nil {
			entries := repository.ReplayEntriesFromHistory(outcome.History)
			if saveErr := replays.SaveReplay(ctx, eng.Game.ID, entries); saveErr != nil {
				logger.Error("failed to persist replay", zap.Error(saveErr))
			}
		}
		return outcome, nil
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: mux,
	}

	go func() {
		logger.Info("starting websocket server", zap.String("address", cfg.Server.Address))
		if serveErr := httpServer.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("websocket server error", zap.Error(serveErr))
		}
	}()

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("websocket server shutdown error", zap.Error(shutdownErr))
	}

	logger.Info("resolution server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
