package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "go-gin-event-hub/pkg/app_errors"

	"golang.org/x/sync/singleflight"
)

const connectKey = "connect"

// Dialer 建立一個新的連線 handle。ctx 帶有 ConnectionCache 設定的逾時。
type Dialer[H any] func(ctx context.Context) (H, error)

// ConnectionCache 在第一次 Acquire 時才建立連線，之後所有呼叫者共用同一個 handle。
//
// 同一時間最多只有一個連線嘗試：併發的呼叫者會等待同一個嘗試並拿到相同結果。
// 嘗試失敗後不保留失敗狀態，下一個呼叫者會重新連線。
type ConnectionCache[H any] struct {
	dial    Dialer[H]
	closeFn func(H)
	timeout time.Duration

	mu    sync.Mutex
	conn  H
	ready bool

	group singleflight.Group
}

type CacheOption[H any] func(*ConnectionCache[H])

// WithConnectTimeout 設定單次連線嘗試的逾時；呼叫者的 ctx 只影響自己的等待
func WithConnectTimeout[H any](d time.Duration) CacheOption[H] {
	return func(c *ConnectionCache[H]) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCloser 設定 Close 與 Reset 釋放 handle 的方式
func WithCloser[H any](fn func(H)) CacheOption[H] {
	return func(c *ConnectionCache[H]) {
		c.closeFn = fn
	}
}

func NewConnectionCache[H any](dial Dialer[H], opts ...CacheOption[H]) *ConnectionCache[H] {
	c := &ConnectionCache[H]{
		dial:    dial,
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire 回傳已建立的 handle，必要時建立一個。
// 連線失敗回傳包裝 ErrConnectionAttempt 的錯誤。
func (c *ConnectionCache[H]) Acquire(ctx context.Context) (H, error) {
	if conn, ok := c.cached(); ok {
		return conn, nil
	}

	ch := c.group.DoChan(connectKey, func() (interface{}, error) {
		// 上一個嘗試可能在我們進入 DoChan 之前剛好成功
		if conn, ok := c.cached(); ok {
			return conn, nil
		}

		dialCtx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		conn, err := c.dial(dialCtx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrConnectionAttempt, err)
		}

		c.mu.Lock()
		c.conn = conn
		c.ready = true
		c.mu.Unlock()
		return conn, nil
	})

	var zero H
	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(H), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Reset 釋放目前的 handle，下一次 Acquire 會重新連線。供測試使用。
func (c *ConnectionCache[H]) Reset() {
	c.mu.Lock()
	conn, ready := c.conn, c.ready
	var zero H
	c.conn = zero
	c.ready = false
	c.mu.Unlock()

	if ready && c.closeFn != nil {
		c.closeFn(conn)
	}
}

// Close 在程序結束時釋放 handle
func (c *ConnectionCache[H]) Close() {
	c.Reset()
}

func (c *ConnectionCache[H]) cached() (H, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn, c.ready
}
