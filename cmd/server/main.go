package main

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/cache"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/config"
	httpapi "github.com/SerhiiL06/feathered-friends-marketplace/internal/http"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/payment"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/tasks"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger := telemetry.NewLogger(slog.LevelInfo)
	slog.SetDefault(logger)

	ctx := context.Background()

	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Error("mongodb connection failed", "error", err)
		os.Exit(1)
	}
	defer mongoDB.Client().Disconnect(ctx)

	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		logger.Error("index creation failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to mongodb", "uri", cfg.MongoURI)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis", "addr", cfg.RedisAddr)

	products := repository.NewMongoProductRepository(mongoDB)
	orders := repository.NewMongoOrderRepository(mongoDB)
	users := repository.NewMongoUserRepository(mongoDB)

	cartStore := cache.NewRedisCartStore(redisClient, cfg.CartTTL)
	bookmarkStore := cache.NewRedisBookmarkStore(redisClient)
	throttle := cache.NewRedisPasswordThrottle(redisClient)

	liqpay := payment.NewLiqPayClient(payment.Config{
		PublicKey:  cfg.LiqPayPublicKey,
		PrivateKey: cfg.LiqPayPrivateKey,
		Host:       cfg.LiqPayHost,
		ResultURL:  cfg.LiqPayResultURL,
	})

	cartService := service.NewCartService(cartStore, products, logger)
	orderService := service.NewOrderService(cartService, orders, liqpay, logger)
	productService := service.NewProductService(products, logger)
	userService := service.NewUserService(users, throttle, logger)
	bookmarkService := service.NewBookmarkService(bookmarkStore, products, logger)

	router := httpapi.NewRouter(httpapi.RouterDeps{
		Cart:           httpapi.NewCartHandler(cartService),
		Orders:         httpapi.NewOrderHandler(orderService),
		Products:       httpapi.NewProductHandler(productService),
		Users:          httpapi.NewUserHandler(userService),
		Bookmarks:      httpapi.NewBookmarkHandler(bookmarkService),
		RequestTimeout: cfg.RequestTimeout,
		SessionTTL:     cfg.CartTTL,
	})

	reaperCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	reaper := tasks.NewTagReaper(products, logger, cfg.TagSweepEvery)
	go reaper.Run(reaperCtx)

	srv := &nethttp.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("marketplace listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	stopReaper()

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}
