// Package cache provides a Redis-backed read-through cache for user
// records and the public product listing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campuskart/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

const productListingKey = "products:all"

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg *RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCacheService creates a cache service with a default TTL.
func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Set stores a JSON-encoded value under key with the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, s.ttl).Err()
}

// Get loads a JSON-encoded value into dest. Returns ErrCacheMiss when absent.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to get cache value: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return nil
}

// Delete removes keys from the cache.
func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// GenerateKey builds a namespaced cache key.
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// cachedUser wraps User so the password hash survives the JSON round trip.
// The API projection on User excludes the hash, so caching the record
// directly would hand repositories a user with an empty credential.
type cachedUser struct {
	models.User
	Password string `json:"password"`
}

// CacheUser stores a user record, including its password hash.
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}
	entry := cachedUser{User: *user, Password: user.Password}
	return s.Set(ctx, s.GenerateKey("user", "id", user.ID), entry)
}

// GetUser loads a cached user record.
func (s *CacheService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var entry cachedUser
	if err := s.Get(ctx, s.GenerateKey("user", "id", id), &entry); err != nil {
		return nil, err
	}
	user := entry.User
	user.Password = entry.Password
	return &user, nil
}

// InvalidateUser drops a cached user record.
func (s *CacheService) InvalidateUser(ctx context.Context, id uint) error {
	return s.Delete(ctx, s.GenerateKey("user", "id", id))
}

// CacheProductListing stores the public product listing.
func (s *CacheService) CacheProductListing(ctx context.Context, products []models.Product) error {
	return s.Set(ctx, productListingKey, products)
}

// GetProductListing loads the cached public product listing.
func (s *CacheService) GetProductListing(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.Get(ctx, productListingKey, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// InvalidateProductListing drops the cached product listing.
func (s *CacheService) InvalidateProductListing(ctx context.Context) error {
	return s.Delete(ctx, productListingKey)
}

// HealthCheck verifies the Redis connection.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client.
func (s *CacheService) Close() error {
	return s.client.Close()
}
