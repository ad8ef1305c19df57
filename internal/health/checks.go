package health

import (
	"context"
	"fmt"
	"time"

	"github.com/cursedbuild/storefront/internal/config"
	"github.com/cursedbuild/storefront/internal/storage"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const Version = "1.0.0"

// NewHealthHandler checks the configured storage backend. Redis and postgres use
// the health-go checks; other backends are pinged directly when they support it.
func NewHealthHandler(cfg *config.Config, store storage.Store) (*health.Health, error) {

	checks := []health.Config{storageCheck(cfg, store)}

	if cfg.RateConfig.Enabled && cfg.Storage.Driver != "redis" {
		checks = append(checks, health.Config{
			Name:      "rate-limiter",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check:     healthRedis.New(healthRedis.Config{DSN: cfg.RedisConnect.GetDSN()}),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "storefront",
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func storageCheck(cfg *config.Config, store storage.Store) health.Config {

	check := health.Config{
		Name:      "storage",
		Timeout:   3 * time.Second,
		SkipOnErr: false,
	}

	switch cfg.Storage.Driver {
	case "postgres":
		check.Check = postgres.New(postgres.Config{DSN: cfg.Database.GetDSN()})
	case "redis":
		check.Check = healthRedis.New(healthRedis.Config{DSN: cfg.RedisConnect.GetDSN()})
	default:
		check.Check = func(ctx context.Context) error {
			if p, ok := store.(storage.Pinger); ok {
				return p.Ping(ctx)
			}

			return nil
		}
	}

	return check
}
