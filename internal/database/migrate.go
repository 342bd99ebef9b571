package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SlugUniqueIndex 是 slug 唯一索引名稱，repository 以此辨識 slug 衝突
const SlugUniqueIndex = "events_slug_key"

//go:embed schema.sql
var schemaSQL string

// Migrate 建立 events 資料表與索引，可重複執行
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
