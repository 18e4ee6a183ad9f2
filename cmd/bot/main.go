package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog/log"

	"school-report-bot/internal/common/config"
	"school-report-bot/internal/common/logger"
	delivery "school-report-bot/internal/features/moderation/delivery/telegram"
	"school-report-bot/internal/features/moderation/models"
	"school-report-bot/internal/features/moderation/service"
	"school-report-bot/internal/features/moderation/store"
	opshttp "school-report-bot/internal/http"
	"school-report-bot/internal/platform/telegram"
	"school-report-bot/internal/workers"
)

func main() {
	cfg := config.Load()
	logger.Init("school-report-bot", cfg.Debug)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := store.New()
	backend := openBackend(ctx, cfg)

	// Загрузка снапшота best-effort: битый или отсутствующий файл не
	// мешает запуску.
	snap, err := backend.Load(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("failed to load snapshot, starting fresh")
	case snap == nil:
		log.Info().Msg("no snapshot found, starting fresh")
	default:
		st.Load(snap)
		log.Info().Int("users", len(snap.Users)).Msg("snapshot loaded")
	}

	client := telegram.NewClient(cfg.Telegram.BotToken)
	me, err := client.GetMe(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to authenticate bot")
	}
	log.Info().Str("username", me.Username).Int64("bot_id", me.ID).Msg("bot starting")

	router := service.NewRouter(client, map[models.Category]int64{
		models.CategoryHooligan: cfg.Chats.Hooligans,
		models.CategoryIdea:     cfg.Chats.Ideas,
		models.CategoryProblem:  cfg.Chats.Problems,
	})
	broadcaster := service.NewBroadcaster(client)
	pipeline := service.NewPipeline(st, client, router, broadcaster, cfg.Telegram.AdminID)
	handler := delivery.NewHandler(client, client, pipeline, st, cfg.Telegram.AdminID, cfg.Telegram.PollTimeoutSec)

	var wg sync.WaitGroup

	saver := workers.NewAutosave(st, backend, workers.DefaultAutosaveInterval)
	wg.Add(1)
	go func() {
		defer wg.Done()
		saver.Start(ctx)
	}()

	if cfg.Server.Addr != "" {
		ops := opshttp.NewServer(cfg.Server.Addr, cfg.Server.Origin, st)
		wg.Add(1)
		go func() {
			defer wg.Done()
			ops.Start(ctx)
		}()
	}

	handler.Run(ctx)

	// Дожидаемся финального сохранения автосейвера.
	wg.Wait()
	log.Info().Msg("bot stopped and data saved")
}

func openBackend(ctx context.Context, cfg *config.Config) store.SnapshotBackend {
	if cfg.Storage.RedisAddr == "" {
		return store.NewFileBackend(cfg.Storage.DataFile)
	}
	backend, err := store.OpenRedisBackend(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB, cfg.Storage.RedisKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	return backend
}
