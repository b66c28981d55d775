package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-model/internal/catalog"
	"github.com/rocketscienceinc/tictactoe-model/internal/config"
	"github.com/rocketscienceinc/tictactoe-model/internal/display"
	"github.com/rocketscienceinc/tictactoe-model/internal/entity"
	"github.com/rocketscienceinc/tictactoe-model/internal/repository"
	"github.com/rocketscienceinc/tictactoe-model/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-model/internal/service"
	"github.com/rocketscienceinc/tictactoe-model/internal/stats"
	"github.com/rocketscienceinc/tictactoe-model/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-model/transport/rest"
)

// RunApp - builds the catalog and stats store, runs the configured number of
// training games and, when enabled, serves the stats over HTTP until signaled.
// Human-vs-bot games are served only when redis holds them.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	boards := catalog.Build(conf.BoardSize)
	log.Info("Board catalog built", "size", boards.BoardSize(), "boards", boards.Len())

	rng := newRand(conf.Seed)

	store, err := stats.New(boards, stats.Mode(conf.StatsMode), rng)
	if err != nil {
		return fmt.Errorf("could not create stats store: %w", err)
	}

	var archive repository.GameRepository
	if conf.Redis.Enabled {
		client, closeFn, err := connectRedis(ctx, log, &conf.Redis)
		if err != nil {
			return err
		}
		defer closeFn()

		archive = repository.NewGameRepository(client)
	}

	bot := service.NewBotService(rng)
	trainer := usecase.NewTrainer(logger, boards, store, bot, archive)

	if _, err = trainer.Train(ctx, conf.TrainingGames); err != nil {
		if !errors.Is(err, context.Canceled) {
			return fmt.Errorf("training failed: %w", err)
		}
		log.Warn("Training interrupted", "error", err)
	}

	if err = printSample(os.Stdout, boards, store); err != nil {
		return err
	}

	if !conf.HTTP.Enabled {
		return nil
	}

	router := rest.NewRouter(logger, boards, store, nil)
	if archive != nil {
		play := usecase.NewPlay(logger, boards, store, bot, archive)
		router = rest.NewRouter(logger, boards, store, play)
	}

	log.Info("Starting HTTP server", "port", conf.HTTP.Port, "play", archive != nil)
	if err = rest.Start(ctx, conf.HTTP.Port, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

// newRand seeds from the clock when seed is 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func connectRedis(ctx context.Context, log *slog.Logger, conf *config.Redis) (*redis.Client, func(), error) {
	client, err := storage.New(ctx, conf.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return client, closeFn, nil
}

func printSample(w io.Writer, boards *catalog.Catalog, store *stats.Store) error {
	empty := strings.Repeat(string(entity.EmptyCell), boards.Cells())

	id, err := boards.LookupID(empty)
	if err != nil {
		return fmt.Errorf("could not look up empty board: %w", err)
	}

	rec, err := store.Snapshot(id, entity.PlayerX)
	if err != nil {
		return fmt.Errorf("could not read stats: %w", err)
	}

	center := boards.Cells() / 2

	ms, err := store.MoveStats(id, center, entity.PlayerX)
	if err != nil {
		return fmt.Errorf("could not read move stats: %w", err)
	}

	fmt.Fprintf(w, "board %d:\n%s\n\n", id, display.FormatBoard(empty, boards.BoardSize()))
	fmt.Fprintf(w, "%s\n\n", display.FormatRecord(&rec, boards.BoardSize()))
	fmt.Fprint(w, display.FormatMoveStats(id, center, entity.PlayerX, ms))

	return nil
}
