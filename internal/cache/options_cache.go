package cache

import (
	"cmp"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	filterOptionsKeyPrefix = "inventory:filter_options"
	optionsScanBatchSize   = 100
	defaultOptionsTTL      = 5 * time.Minute
	redisPingTimeout       = 5 * time.Second
)

// FilterOptionsCache stores the location/item selector lists per warehouse table.
type FilterOptionsCache interface {
	GetOptions(ctx context.Context, table string) (*domain.FilterOptions, bool, error)
	SetOptions(ctx context.Context, table string, opts *domain.FilterOptions) error
	InvalidateAll(ctx context.Context) error
}

type redisFilterOptionsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopFilterOptionsCache struct{}

func NewFilterOptionsCache(cfg config.CacheConfig) (FilterOptionsCache, error) {
	if !cfg.Enabled {
		return &noopFilterOptionsCache{}, nil
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisFilterOptionsCache{
		client: client,
		ttl:    optionsTTL(cfg),
	}, nil
}

// redisOptions prefers REDIS_URL and otherwise builds the address from host and port.
func redisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opts, nil
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(cmp.Or(cfg.RedisHost, "127.0.0.1"), cmp.Or(cfg.RedisPort, "6379")),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func optionsTTL(cfg config.CacheConfig) time.Duration {
	if cfg.OptionsTTLSeconds <= 0 {
		return defaultOptionsTTL
	}
	return time.Duration(cfg.OptionsTTLSeconds) * time.Second
}

func NewNoopFilterOptionsCache() FilterOptionsCache {
	return &noopFilterOptionsCache{}
}

func (c *redisFilterOptionsCache) GetOptions(ctx context.Context, table string) (*domain.FilterOptions, bool, error) {
	payload, err := c.client.Get(ctx, buildFilterOptionsKey(table)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var opts domain.FilterOptions
	if err := json.Unmarshal(payload, &opts); err != nil {
		return nil, false, fmt.Errorf("decode filter options cache: %w", err)
	}

	return &opts, true, nil
}

func (c *redisFilterOptionsCache) SetOptions(ctx context.Context, table string, opts *domain.FilterOptions) error {
	payload, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("encode filter options cache: %w", err)
	}

	if err := c.client.Set(ctx, buildFilterOptionsKey(table), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// InvalidateAll removes every cached option list, whatever table it was built from.
func (c *redisFilterOptionsCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, filterOptionsKeyPrefix+":*", optionsScanBatchSize).Iterator()

	batch := make([]string, 0, optionsScanBatchSize)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == optionsScanBatchSize {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("redis delete failed: %w", err)
		}
	}
	return nil
}

func (n *noopFilterOptionsCache) GetOptions(ctx context.Context, table string) (*domain.FilterOptions, bool, error) {
	return nil, false, nil
}

func (n *noopFilterOptionsCache) SetOptions(ctx context.Context, table string, opts *domain.FilterOptions) error {
	return nil
}

func (n *noopFilterOptionsCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildFilterOptionsKey(table string) string {
	normalized := strings.ToLower(strings.TrimSpace(table))
	if normalized == "" {
		return fmt.Sprintf("%s:default", filterOptionsKeyPrefix)
	}
	sum := sha1.Sum([]byte(normalized))
	return fmt.Sprintf("%s:%s", filterOptionsKeyPrefix, hex.EncodeToString(sum[:]))
}
