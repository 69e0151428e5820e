package main

import (
	"cognitive-intel/internal/agent"
	"cognitive-intel/internal/core/types"
	"cognitive-intel/internal/domain"
	"cognitive-intel/internal/engine"
	"cognitive-intel/internal/infrastructure/storage"
	"cognitive-intel/internal/report"
	"cognitive-intel/internal/server"
	"cognitive-intel/internal/version"
	"cognitive-intel/pkg/logger"
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.Fatal("Invalid config: ", err)
	}

	var seed int64
	var schemaPath, botPlayer string
	var restore bool
	// Флаги перекрывают переменные окружения
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 keeps CD_SEED or random)")
	flag.StringVar(&schemaPath, "schemas", cfg.SchemaPath, "Path to kind schemas YAML (empty for built-in)")
	flag.BoolVar(&restore, "restore", false, "Restore intel coverage from the latest snapshot")
	flag.StringVar(&botPlayer, "bot", "", "Run a headless agent as this player (e.g. P2)")
	flag.Parse()

	if seed != 0 {
		cfg.Seed = seed
	}
	cfg.SchemaPath = schemaPath

	logger.Log.Info("Starting Cognitive Intel...")
	logger.Log.Info(version.String())

	schemas, err := report.LoadRegistryFile(cfg.SchemaPath)
	if err != nil {
		logger.Log.Fatal("Failed to load schemas: ", err)
	}

	store, err := storage.Open(cfg.SnapshotBackend, cfg.SnapshotDir)
	if err != nil {
		logger.Log.Fatal("Failed to open snapshot store: ", err)
	}
	defer store.Close()

	// Снимок читается до генерации: сектор строится с его сидом,
	// иначе ID сущностей не совпадут.
	var snap *domain.IntelSnapshot
	if restore {
		snap, err = store.LoadLatest(context.Background())
		switch {
		case errors.Is(err, storage.ErrNoSnapshot):
			logger.Log.Warn("No snapshot to restore, starting fresh")
		case err != nil:
			logger.Log.Fatal("Failed to load snapshot: ", err)
		default:
			if seed != 0 && seed != snap.Seed {
				logger.Log.Fatalf("Snapshot seed %d conflicts with -seed %d", snap.Seed, seed)
			}
			cfg.Seed = snap.Seed
		}
	}
	logger.Log.Infof("🎲 Master Seed: %d", cfg.Seed)

	// 2. Инициализация ядра с конфигом
	gameService := engine.NewService(cfg, schemas)

	if snap != nil {
		if err := gameService.Restore(snap); err != nil {
			logger.Log.Fatal("Failed to restore snapshot: ", err)
		}
		logger.Log.Infof("Restored snapshot %s (tick %d)", snap.ID, snap.Tick)
	}

	// Graceful Shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gameService.Start(ctx)

	if botPlayer != "" {
		player, err := types.ParsePlayerID(botPlayer)
		if err != nil || !gameService.HasPlayer(player) {
			logger.Log.Fatalf("Bad bot player %q", botPlayer)
		}
		go agent.NewBot(player, gameService.Hub).Run(ctx)
	}

	// 3. Запуск сервера
	srv := server.New(gameService, cfg.Port)
	if err := srv.Run(ctx); err != nil {
		logger.Log.Error("Server error: ", err)
		stop()
	}

	logger.Log.Info("Shutting down...")

	// Сохраняем покрытие разведки
	saved, err := gameService.SaveSnapshot(context.Background(), store)
	if err != nil {
		logger.Log.Error("Failed to save snapshot: ", err)
	} else {
		logger.Log.Infof("Snapshot %s saved (tick %d, %d records)", saved.ID, saved.Tick, len(saved.Entries))
	}

	logger.Log.Info("Done.")
}
