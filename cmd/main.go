package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eaglebank/console/internal/apiclient"
	"github.com/eaglebank/console/internal/command"
	"github.com/eaglebank/console/internal/config"
	"github.com/eaglebank/console/internal/handler"
	"github.com/eaglebank/console/internal/notify"
	"github.com/eaglebank/console/internal/query"
	"github.com/eaglebank/console/internal/service"
	"github.com/eaglebank/console/internal/store"
	"github.com/eaglebank/console/internal/view"
	"github.com/eaglebank/console/shared/events"
	"github.com/eaglebank/console/shared/logger"
	"github.com/eaglebank/console/shared/middleware"
	redisClient "github.com/eaglebank/console/shared/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const sessionSweepInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger is configured from cfg, so this one goes to stderr raw.
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it the token, toasts and activity feed stay
	// in process memory.
	var (
		tokens   apiclient.TokenSource
		notifier notify.Notifier
		feed     events.Feed
	)
	redisCfg := redisClient.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
	if redisCfg.Enabled() {
		redis, err := redisClient.NewClient(ctx, redisCfg)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redis.Close()

		tokens = apiclient.NewRedisTokenStore(redis.Client, cfg.Token.Key)
		notifier = notify.NewRedisNotifier(redis.Client, cfg.Notify.TTL, log)
		feed = events.NewPublisher(redis.Client)
		log.Info("Client state stored in Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		tokens = apiclient.NewMemoryTokenStore(cfg.Token.Value)
		notifier = notify.NewMemoryNotifier()
		feed = events.NewMemoryFeed(events.DefaultMaxLen)
		log.Info("Client state kept in memory")
	}

	api, err := apiclient.NewClient(apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, tokens, log)
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}

	// --- CQRS wiring ---
	memberSvc := service.NewMemberService(api)
	accountSvc := service.NewAccountService(api)
	transactionSvc := service.NewTransactionService(api)

	querySvc := query.NewConsoleQueryService(memberSvc, accountSvc, transactionSvc, notifier, feed, log)
	commandSvc := command.NewConsoleCommandService(memberSvc, accountSvc, transactionSvc, querySvc, notifier, feed, log)

	sessions := store.NewRegistry(cfg.Session.TTL, log)
	go sessions.Run(ctx, sessionSweepInterval)

	tmpl, err := view.Load()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.SessionMiddleware(int(cfg.Session.TTL.Seconds())))
	router.SetHTMLTemplate(tmpl)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handler.NewHandler(commandSvc, querySvc, sessions, notifier).Register(router)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Console starting",
			zap.String("port", cfg.App.Port),
			zap.String("env", cfg.App.Env),
			zap.String("api", cfg.API.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
}
