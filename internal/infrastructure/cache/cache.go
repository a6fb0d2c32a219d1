package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eticket-service/pkg/eticket"
)

// Cache stores encoded parse responses. Parsing is a pure function of the
// document, so an entry stays valid until the parser rules change.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		TTL:  time.Hour,
	}
}

func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

// Get reports a miss for absent keys and for any Redis error
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *RedisCache) Set(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to cache %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, key string) ([]byte, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, key string, payload []byte) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

// Key derives the cache key of a document. variant separates response shapes
// built from the same document; fingerprint separates parser configurations.
func Key(raw eticket.RawInput, variant, fingerprint string) string {
	keyData := struct {
		PlainText   string
		HTMLText    string
		Variant     string
		Fingerprint string
	}{
		PlainText:   raw.PlainText,
		HTMLText:    raw.HTMLText,
		Variant:     variant,
		Fingerprint: fingerprint,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "eticket:" + hex.EncodeToString(hash[:])
}
