package cache

import (
	"context"
	"time"
)

// RenderCache stores rendered report and ticket HTML keyed by a content
// fingerprint, so unchanged data skips a re-render.
type RenderCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, html string, ttl time.Duration) error
}

type NoopRenderCache struct{}

func (NoopRenderCache) Get(_ context.Context, _ string) (string, bool, error) {
	return "", false, nil
}

func (NoopRenderCache) Set(_ context.Context, _ string, _ string, _ time.Duration) error {
	return nil
}
