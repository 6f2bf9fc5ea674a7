package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/marketplace-core/internal/app"
	"github.com/SergeyBogomolovv/marketplace-core/internal/archive"
	"github.com/SergeyBogomolovv/marketplace-core/internal/broker"
	"github.com/SergeyBogomolovv/marketplace-core/internal/config"
	"github.com/SergeyBogomolovv/marketplace-core/internal/gateway"
	"github.com/SergeyBogomolovv/marketplace-core/internal/handler"
	"github.com/SergeyBogomolovv/marketplace-core/internal/postgres"
	"github.com/SergeyBogomolovv/marketplace-core/internal/repo"
	"github.com/SergeyBogomolovv/marketplace-core/internal/service"
	"github.com/SergeyBogomolovv/marketplace-core/internal/telemetry"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/cache"
	"github.com/SergeyBogomolovv/marketplace-core/pkg/trm"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// @title           Marketplace Core API
// @version         1.0
// @description     Заказы, платежи, купоны и доставка
func main() {
	conf := config.New()
	logger := telemetry.NewLogger(os.Stdout, conf.Env)
	panicIfErr("invalid config", conf.Validate())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, conf.Telemetry, conf.Env)
	panicIfErr("failed to setup tracer", err)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			logger.Error("failed to shutdown tracer", slog.Any("error", err))
		}
	}()

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	logger.Info("postgres connected")

	if conf.Postgres.MigrateOnStart {
		panicIfErr("failed to migrate db", postgres.Migrate(db))
		logger.Info("migrations applied")
	}

	txManager := trm.NewManager(db)
	pgRepo := repo.NewPostgresRepo(db)

	var starters []app.Starter
	var couponCache service.Cache
	switch conf.Cache.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		defer client.Close()
		redisCache := cache.NewRedisCache(logger, client, conf.Redis.KeyPrefix, conf.Cache.TTL)
		couponCache = redisCache
		starters = append(starters, redisCache)
	default:
		lru := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)
		couponCache = lru
		starters = append(starters, lru)
	}

	publisher := broker.NewKafkaPublisher(conf.Kafka)
	defer publisher.Close()

	var archiver service.Archiver
	if conf.Archive.Enabled {
		archiver = archive.NewFileSink(conf.Archive.Root)
	}
	emitter := service.NewEmitter(logger, publisher, archiver)

	loc, err := time.LoadLocation(conf.Gateway.TimeZone)
	panicIfErr("failed to load gateway timezone", err)
	vnpay := gateway.NewVNPay(gateway.Config{
		TmnCode:    conf.Gateway.TmnCode,
		HashSecret: conf.Gateway.HashSecret,
		PayURL:     conf.Gateway.PayURL,
		Version:    conf.Gateway.Version,
		Command:    conf.Gateway.Command,
		Locale:     conf.Gateway.Locale,
		OrderType:  conf.Gateway.OrderType,
		Location:   loc,
	})

	couponService := service.NewCouponService(logger, txManager, pgRepo, couponCache, emitter)
	orderService := service.NewOrderService(logger, txManager, pgRepo, couponService, emitter)
	paymentService := service.NewPaymentService(logger, txManager, pgRepo, pgRepo, vnpay, emitter, conf.Payment)
	shippingService := service.NewShippingService(logger, txManager, pgRepo, pgRepo, emitter)

	service.RegisterMetrics()
	handler.RegisterMetrics()

	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	httpHandler := handler.NewHTTPHandler(logger, orderService, couponService, paymentService, shippingService)

	app := app.New(logger, conf)

	app.SetHTTPHandlers(httpHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(starters...)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

