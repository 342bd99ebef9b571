// Package importer 從檔案批次建立活動，每筆紀錄都走與 API 相同的 EventService。
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go-gin-event-hub/internal/model"
	"go-gin-event-hub/internal/service"
	apperrors "go-gin-event-hub/pkg/app_errors"
	"go-gin-event-hub/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Failure 記錄單筆匯入失敗；Fields 只有驗證錯誤時才會有值
type Failure struct {
	Index  int
	Title  string
	Err    error
	Fields map[string]string
}

type Result struct {
	Created  []*model.Event
	Failures []Failure
}

type Importer struct {
	service service.EventService
	workers int
}

func NewImporter(service service.EventService, workers int) *Importer {
	if workers < 1 {
		workers = 1
	}
	return &Importer{service: service, workers: workers}
}

// LoadFile 依副檔名解析 YAML（.yaml/.yml）或 JSON 檔案中的活動清單
func LoadFile(path string) ([]model.CreateEventParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var events []model.CreateEventParams
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &events)
	case ".json":
		err = json.Unmarshal(data, &events)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return events, nil
}

// Run 以最多 workers 個 goroutine 建立活動。單筆失敗不會中斷其他紀錄；
// ctx 取消時尚未開始的紀錄會以 ctx.Err() 記為失敗。
func (i *Importer) Run(ctx context.Context, events []model.CreateEventParams) *Result {
	log := logger.WithComponent("importer")

	var (
		mu     sync.Mutex
		result = &Result{}
	)

	g := new(errgroup.Group)
	g.SetLimit(i.workers)
	for idx, params := range events {
		idx, params := idx, params // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			var (
				created *model.Event
				err     = ctx.Err()
			)
			if err == nil {
				created, err = i.service.Create(ctx, params)
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failure := Failure{Index: idx, Title: params.Title, Err: err}
				var verr *apperrors.ValidationError
				if errors.As(err, &verr) {
					failure.Fields = verr.Fields
				}
				result.Failures = append(result.Failures, failure)
				log.Warn("Failed to import event",
					zap.Int("index", idx),
					zap.String("title", params.Title),
					zap.Any("fields", failure.Fields),
					zap.Error(err))
				return nil
			}
			result.Created = append(result.Created, created)
			log.Debug("Imported event", zap.Int("index", idx), zap.String("slug", created.Slug))
			return nil
		})
	}
	_ = g.Wait()

	return result
}
