package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/owenj053/netone-backend/internal/domain"
)

// cachedProvider memoizes snapshots in Redis keyed by rounded coordinates,
// so a burst of tickets on one site hits the provider once.
type cachedProvider struct {
	inner  Provider
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// WithCache wraps a provider with a Redis snapshot cache. Cache failures fall
// through to the provider.
func WithCache(inner Provider, client *redis.Client, ttl time.Duration, logger *zap.Logger) Provider {
	if inner == nil || client == nil {
		return inner
	}
	return &cachedProvider{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("weather:%.2f:%.2f", lat, lon)
}

func (p *cachedProvider) Current(ctx context.Context, lat, lon float64) (*domain.WeatherSnapshot, error) {
	key := cacheKey(lat, lon)

	if raw, err := p.client.Get(ctx, key).Bytes(); err == nil {
		var snapshot domain.WeatherSnapshot
		if err := json.Unmarshal(raw, &snapshot); err == nil {
			return &snapshot, nil
		}
	} else if err != redis.Nil {
		p.logger.Warn("weather cache read failed", zap.Error(err))
	}

	snapshot, err := p.inner.Current(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(snapshot); err == nil {
		if err := p.client.Set(ctx, key, raw, p.ttl).Err(); err != nil {
			p.logger.Warn("weather cache write failed", zap.Error(err))
		}
	}
	return snapshot, nil
}
