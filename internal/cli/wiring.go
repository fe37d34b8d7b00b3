package cli

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/rail_ticket/internal/adapter/cache"
	"github.com/srgjo27/rail_ticket/internal/adapter/provider/gateway"
	"github.com/srgjo27/rail_ticket/internal/adapter/repository/postgres"
	"github.com/srgjo27/rail_ticket/internal/config"
	"github.com/srgjo27/rail_ticket/internal/core/domain"
	"github.com/srgjo27/rail_ticket/internal/core/ports"
	"github.com/srgjo27/rail_ticket/internal/core/services"
	platformcache "github.com/srgjo27/rail_ticket/internal/platform/cache"
	"github.com/srgjo27/rail_ticket/internal/platform/database"
)

func sessionFactory(cfg config.ProviderConfig) services.SessionFactory {
	return func(trainType domain.TrainType) (ports.ProviderSession, error) {
		return gateway.NewClient(gateway.Config{
			BaseURL:   cfg.BaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}, trainType)
	}
}

type backend struct {
	db          *sql.DB
	redisClient *redis.Client
	service     *services.BookingService
}

func (b *backend) Close() {
	if b.redisClient != nil {
		b.redisClient.Close()
	}
	if b.db != nil {
		b.db.Close()
	}
}

func newBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	b := &backend{db: db, redisClient: platformcache.NewRedisClient(cfg.Redis)}
	if err := platformcache.Ping(ctx, b.redisClient); err != nil {
		b.Close()
		return nil, err
	}

	b.service = services.NewBookingService(
		sessionFactory(cfg.Provider),
		postgres.NewBookingRepository(db),
		cache.NewSessionLock(b.redisClient),
		services.Options{
			PaymentWindow: cfg.Booking.PaymentWindow,
			LockTTL:       cfg.Booking.LockTTL,
		},
	)

	return b, nil
}
