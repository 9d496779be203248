package app

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/order_guard/config"
	cachemem "github.com/Gunvolt24/order_guard/internal/cache/memory"
	"github.com/Gunvolt24/order_guard/internal/inventory"
	"github.com/Gunvolt24/order_guard/internal/ports"
	"github.com/Gunvolt24/order_guard/internal/repo/postgres"
	"github.com/Gunvolt24/order_guard/internal/repo/redis"
	"github.com/Gunvolt24/order_guard/internal/usecase"
)

// stockBackend: источник остатков для StockValidator и приёмник сида.
// cache == nil для in-memory бэкенда.
type stockBackend struct {
	reader ports.StockReader
	writer ports.StockWriter
	cache  *cachemem.StockCache
	close  func()
}

// buildStock поднимает выбранное хранилище остатков и оборачивает внешнее хранилище кэшем.
func buildStock(ctx context.Context, cfg *config.Config, log ports.Logger) (*stockBackend, error) {
	b := &stockBackend{close: func() {}}

	switch cfg.Stock.Backend {
	case config.StockPostgres:
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				return nil, fmt.Errorf("migrate stock schema: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, err
		}
		repo := postgres.NewStockRepository(pool)
		b.reader, b.writer, b.close = repo, repo, pool.Close

	case config.StockRedis:
		client, err := redis.NewClient(ctx, redis.Options{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, err
		}
		store := redis.NewStockStore(client, cfg.Redis.Key)
		b.reader, b.writer = store, store
		b.close = func() {
			if err := client.Close(); err != nil {
				log.Warnf(ctx, "redis close: %v", err)
			}
		}

	default:
		mem := inventory.NewMemoryStock(nil)
		b.reader, b.writer = mem, mem
	}

	if cfg.Stock.Backend != config.StockMemory && cfg.Cache.Enabled {
		b.cache = cachemem.NewStockCache(b.reader, cfg.Cache.Capacity, cfg.Cache.TTL)
		b.reader = b.cache
	}

	log.Infof(ctx, "stock backend=%s cache=%t", cfg.Stock.Backend, b.cache != nil)
	return b, nil
}

// seed загружает остатки из YAML-файла, если он задан.
func (b *stockBackend) seed(ctx context.Context, path string, log ports.Logger) error {
	if path == "" {
		return nil
	}
	levels, err := inventory.LoadSeedFile(path)
	if err != nil {
		return err
	}

	svc := usecase.NewInventoryService(b.writer, nil, log)
	if b.cache != nil {
		svc = usecase.NewInventoryService(b.writer, b.cache, log)
	}
	return svc.Seed(ctx, levels)
}
