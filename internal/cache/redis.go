// Package cache реализует кеширование данных и push-канал изменений
// профилей пользователей на основе Redis.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/wedding-planner/internal/config"
)

// Cache инкапсулирует клиент Redis.
type Cache struct {
	DB *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{DB: db}, nil
}

// Get пытается получить значение из кеша по ключу.
func (c *Cache) Get(key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.DB.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	err = json.Unmarshal([]byte(val), result)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение в кеш с временем жизни.
func (c *Cache) Set(key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.DB.Set(context.Background(), key, jsonData, expiration).Err()
}

// Invalidate удаляет значение из кеша по ключу.
func (c *Cache) Invalidate(key string) error {
	return c.DB.Del(context.Background(), key).Err()
}

// ProfileChannel возвращает имя push-канала изменений профиля пользователя.
func ProfileChannel(userUID string) string {
	return "user_profiles:changed:" + userUID
}

// PublishProfileChanged отправляет уведомление об изменении профиля
// пользователя всем подписчикам его канала.
func (c *Cache) PublishProfileChanged(ctx context.Context, userUID string) error {
	const op = "cache.PublishProfileChanged"
	if err := c.DB.Publish(ctx, ProfileChannel(userUID), "changed").Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SubscribeProfileChanged подписывается на push-канал профиля пользователя.
// Возвращает канал сообщений и функцию отписки.
func (c *Cache) SubscribeProfileChanged(ctx context.Context, userUID string) (<-chan *redis.Message, func() error) {
	sub := c.DB.Subscribe(ctx, ProfileChannel(userUID))
	return sub.Channel(), sub.Close
}
