// Package cache кэширует публичные списки (витрину предстоящих подкастов)
// в Redis. Кэш опционален: при nil клиенте все операции становятся no-op,
// а при ошибках Redis сервис продолжает работать без кэша.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyUpcomingPodcasts ключ витрины предстоящих подкастов
const KeyUpcomingPodcasts = "podcasts:upcoming"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache обертка над Redis для JSON значений с фиксированным TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// New создает кэш. Проверяет соединение коротким Ping: при недоступном
// Redis возвращает выключенный кэш вместо ошибки.
func New(addr, password string, db int, ttl time.Duration, log Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable at %s, caching disabled: %v", addr, err)
		return &Cache{log: log}
	}

	return &Cache{client: client, ttl: ttl, log: log}
}

// Disabled возвращает выключенный кэш (все операции no-op)
func Disabled() *Cache {
	return &Cache{}
}

// Get читает значение по ключу в dest. Возвращает false при промахе,
// выключенном кэше или ошибке Redis.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.log.Warn("cache: get %q: %v", key, err)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.log.Warn("cache: unmarshal %q: %v", key, err)
		return false
	}

	return true
}

// Set сохраняет значение по ключу с TTL кэша. Ошибки только логируются.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache: marshal %q: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Warn("cache: set %q: %v", key, err)
	}
}

// Invalidate удаляет ключи; используется после любых изменений подкастов
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache: invalidate %v: %v", keys, err)
	}
}

// Close закрывает соединение с Redis
func (c *Cache) Close() error {
	if c.client == nil {
		return nil
	}
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("cache: close: %w", err)
	}
	return nil
}
