package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/moxibot/moxi-yt-bot/internal/config"
	"github.com/moxibot/moxi-yt-bot/internal/extractor"
	"github.com/moxibot/moxi-yt-bot/internal/handlers"
	"github.com/moxibot/moxi-yt-bot/internal/limits"
	"github.com/moxibot/moxi-yt-bot/internal/middleware"
	"github.com/moxibot/moxi-yt-bot/internal/scheduler"
	"github.com/moxibot/moxi-yt-bot/store"
	"github.com/moxibot/moxi-yt-bot/types"
)

func main() {
	_ = config.LoadEnvFile("config.env")
	cfg := config.FromEnv()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	if err := cfg.WriteCookiesFile(); err != nil {
		log.Printf("Failed to write cookies file, continuing without: %v", err)
	}
	defer cfg.RemoveCookiesFile()

	var users types.UserStore = store.NoopUserStore{}
	if cfg.PostgresDSN != "" || os.Getenv("POSTGRES_HOST") != "" {
		pgStore, err := store.NewPostgresStore(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Printf("User store disabled, failed to connect to Postgres: %v", err)
		} else {
			defer pgStore.Close()
			users = pgStore
		}
	} else {
		log.Println("User store disabled: no Postgres configured")
	}

	var cleanups types.CleanupStore = store.NewMemoryCleanupStore()
	redisAddr := fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort)
	rdb, err := store.NewRedisClient(redisAddr, cfg.RedisPassword, cfg.RedisDB, "moxi_bot")
	if err != nil {
		log.Printf("Cleanup persistence disabled, failed to connect to Redis: %v", err)
	} else {
		defer rdb.Close()
		cleanups = store.NewRedisCleanupStore(rdb)
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Minute,
	}
	pollTimeout := 50 * time.Second

	b, err := bot.New(
		cfg.BotToken,
		bot.WithHTTPClient(pollTimeout, httpClient),
	)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	cleanupScheduler := scheduler.NewScheduler(cleanups, b)
	cleanupScheduler.Start()
	defer cleanupScheduler.Stop()

	h := handlers.NewHandlers(
		cfg,
		store.NewMemorySessionStore(),
		users,
		handlers.NewGate(cfg.ForceJoinChannel, b),
		extractor.NewYtDlpExtractor(),
		limits.NewGuard(cfg.MaxFileSizeMB),
		cleanupScheduler,
	)

	middlewares := middleware.NewMessageAnalyzer(users)
	handlerChain := middlewares.IdentifyUserMiddleware(
		middlewares.AnalyzeMessageMiddleware(
			h.MainHandler,
		),
	)

	b.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil
	}, handlerChain)

	b.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, handlerChain)

	log.Printf("%s started. Press Ctrl+C to stop.", cfg.BotName)
	b.Start(ctx)
}
