package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"amc-crm/internal/app/config"

	"github.com/go-redis/redis/v8"
)

const (
	jwtPrefix = "jwt:blacklist:"
	tagPrefix = "reports:tag:"
)

// Client — обертка над Redis: blacklist JWT-токенов и кеш отчетов
type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	c := &Client{cfg: cfg}

	c.client = redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:    cfg.Password,
		Username:    cfg.User,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	if err := c.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return c, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// WriteJWTToBlacklist помещает токен в blacklist до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, jwtPrefix+jwtStr, true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен найден в blacklist
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	return c.client.Get(ctx, jwtPrefix+jwtStr).Err()
}

// ============ Кеш отчетов с явной инвалидацией по тегам ============
// Каждая мутация объявляет, какие именованные наборы результатов она
// инвалидирует; ключи набора хранятся во множестве тега.

// GetReport читает закешированный отчет. Возвращает false при промахе
func (c *Client) GetReport(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetReport кеширует отчет и привязывает ключ к тегу
func (c *Client) SetReport(ctx context.Context, tag, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return err
	}
	return c.client.SAdd(ctx, tagPrefix+tag, key).Err()
}

// InvalidateReports удаляет все закешированные результаты перечисленных тегов
func (c *Client) InvalidateReports(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		keys, err := c.client.SMembers(ctx, tagPrefix+tag).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if err := c.client.Del(ctx, tagPrefix+tag).Err(); err != nil {
			return err
		}
	}
	return nil
}
