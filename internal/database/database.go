package database

import (
	"context"
	"fmt"
	"time"

	"go-gin-event-hub/config"
	apperrors "go-gin-event-hub/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolCache 是共用的 Postgres 連線池快取
type PoolCache = ConnectionCache[*pgxpool.Pool]

// NewPoolCache 立即解析資料庫設定，設定錯誤時直接回傳 ErrConnectionConfiguration；
// 實際連線延後到第一次 Acquire。
func NewPoolCache(cfg *config.DatabaseConfig) (*PoolCache, error) {
	poolConfig, err := parsePoolConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewConnectionCache(
		func(ctx context.Context) (*pgxpool.Pool, error) {
			return connectPool(ctx, poolConfig.Copy())
		},
		WithConnectTimeout[*pgxpool.Pool](cfg.ConnectTimeout),
		WithCloser(func(pool *pgxpool.Pool) { pool.Close() }),
	), nil
}

func parsePoolConfig(cfg *config.DatabaseConfig) (*pgxpool.Config, error) {
	if cfg == nil || cfg.URL == "" {
		return nil, fmt.Errorf("%w: database url is empty", apperrors.ErrConnectionConfiguration)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConnectionConfiguration, err)
	}

	// 設置連接池參數
	poolConfig.MaxConns = 25                      // 最大連接數
	poolConfig.MinConns = 5                       // 最小連接數
	poolConfig.MaxConnLifetime = time.Hour        // 連接最大生命週期
	poolConfig.MaxConnIdleTime = time.Minute * 30 // 最大閒置時間
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 && cfg.MinConns <= poolConfig.MaxConns {
		poolConfig.MinConns = cfg.MinConns
	}
	// 時間統一以 UTC 處理
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	return poolConfig, nil
}

func connectPool(ctx context.Context, poolConfig *pgxpool.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
