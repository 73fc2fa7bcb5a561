package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/beantrail/pkg/app"
	"github.com/ghuser/beantrail/pkg/cache"
	"github.com/ghuser/beantrail/pkg/config"
	"github.com/ghuser/beantrail/pkg/database"
	"github.com/ghuser/beantrail/pkg/events"
	"github.com/ghuser/beantrail/pkg/logger"
	"github.com/ghuser/beantrail/pkg/telemetry"
	chainEvents "github.com/ghuser/beantrail/services/supplychain/domain/events"
	"github.com/ghuser/beantrail/services/supplychain/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires one cache-warming handler per transition topic.
// Topics are independent streams, so each gets its own subscription and
// error drain.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	handler := handleTransition(a)

	for _, topic := range chainEvents.Topics() {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered", "topics", chainEvents.Topics())
	return nil
}

// handleTransition returns the handler shared by every transition topic.
// Handlers must be idempotent — EventBus retries up to 3× on failure.
// It re-reads the item after each custody change and warms the Redis
// read-model cache so the next fetch is served without a database hit.
func handleTransition(a *app.Application) func(context.Context, *message.Message) error {
	itemCache := cache.NewItemCache(a.Redis)
	items := postgres.NewItemRepository(a.Db)

	return func(ctx context.Context, msg *message.Message) error {
		var evt chainEvents.TransitionEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		item, err := items.GetByUPC(ctx, evt.UPC)
		if err != nil {
			return err
		}

		cached := &cache.CachedItem{
			SKU:           item.SKU,
			UPC:           item.UPC,
			ProductID:     item.ProductID,
			OwnerID:       item.OwnerID,
			FarmerID:      item.FarmerID,
			FarmName:      item.FarmName,
			FarmInfo:      item.FarmInfo,
			FarmLatitude:  item.FarmLatitude,
			FarmLongitude: item.FarmLongitude,
			ProductNotes:  item.ProductNotes,
			Price:         item.Price,
			State:         uint8(item.State),
			DistributorID: item.DistributorID,
			RetailerID:    item.RetailerID,
			ConsumerID:    item.ConsumerID,
			CreatedAt:     item.CreatedAt,
		}

		if err := itemCache.Set(ctx, cached); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed",
				"upc", evt.UPC, "event", evt.Name, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "cache warmed",
				"upc", evt.UPC, "event", evt.Name, "state", evt.State.String())
		}

		return nil
	}
}
