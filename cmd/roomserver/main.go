package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/voxelroom/internal/config"
	"github.com/udisondev/voxelroom/internal/db"
	"github.com/udisondev/voxelroom/internal/room"
	"github.com/udisondev/voxelroom/internal/voxel"
)

const (
	ConfigPath = "config/roomserver.yaml"

	statsInterval = 30 * time.Second
	saveTimeout   = 30 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config FIRST to determine log level
	cfgPath := ConfigPath
	if p := os.Getenv("VOXELROOM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadRoomServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("room server starting",
		"log_level", cfg.LogLevel,
		"world", fmt.Sprintf("%dx%dx%d", cfg.World.SizeX, cfg.World.SizeY, cfg.World.SizeZ),
		"use_database", cfg.UseDatabase)

	bus := voxel.NewDirtyBus()
	store := voxel.NewStore(cfg.World.Options(), voxel.DefaultRegistry(), bus)

	var terrain *db.TerrainPersistence
	if cfg.UseDatabase {
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		terrain = db.NewTerrainPersistence(db.NewChunkRepository(database.Pool()))
		if _, err := terrain.LoadStore(ctx, store); err != nil {
			return fmt.Errorf("loading terrain: %w", err)
		}
	}

	generated := false
	if store.LoadedCount() == 0 {
		if _, err := voxel.GenerateWorld(store, cfg.World.Generator()); err != nil {
			return fmt.Errorf("generating terrain: %w", err)
		}
		generated = true
	}

	// Rooms are computed lazily; subscribe after bulk loading so the load
	// notifications don't churn an empty cache.
	cache := room.NewStoreCache(store)
	defer cache.Close()
	sub := cache.Attach(bus)
	defer sub.Cancel()

	scanner := room.NewScanner(cache, cfg.Scanner.Interval)
	if cfg.Scanner.Workers > 0 {
		scanner.SetNumWorkers(cfg.Scanner.Workers)
	}
	if cfg.Scanner.ParallelThreshold > 0 {
		scanner.SetParallelThreshold(cfg.Scanner.ParallelThreshold)
	}
	for _, p := range cfg.Watch {
		scanner.Watch(p.BlockPos())
	}
	if len(cfg.Watch) == 0 && generated {
		watchCellars(scanner, cfg.World)
	}
	slog.Info("room scanner configured", "watched", scanner.Count())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := scanner.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("room scanner: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		reportStats(gctx, cache, store)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	if terrain != nil {
		// ctx is already cancelled here.
		saveCtx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if _, err := terrain.SaveStore(saveCtx, store); err != nil {
			return fmt.Errorf("saving terrain: %w", err)
		}
	}

	slog.Info("room server stopped")
	return nil
}

// watchCellars watches one seed in every generated cellar.
func watchCellars(scanner *room.Scanner, w config.World) {
	gen := w.Generator()
	for cx := range w.SizeX >> voxel.ChunkShift {
		for cz := range w.SizeZ >> voxel.ChunkShift {
			if lo, _, ok := gen.Cellar(cx, cz); ok {
				scanner.Watch(lo)
			}
		}
	}
}

// reportStats logs cache counters until ctx is cancelled.
func reportStats(ctx context.Context, cache *room.Cache, store *voxel.Store) {
	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := cache.Stats()
			slog.Info("room cache stats",
				"hits", st.Hits,
				"misses", st.Misses,
				"evictions", st.Evictions,
				"buckets", st.Buckets,
				"rooms", st.Rooms,
				"pool", cache.Pool().Size(),
				"chunks", store.LoadedCount(),
				"dirty_events", store.Bus().Published())
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
