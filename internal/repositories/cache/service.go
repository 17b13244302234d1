package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"voucherdesk/internal/models"

	"github.com/redis/go-redis/v9"
)

const dashboardSnapshotKey = "dashboard:snapshot"

// CacheService wraps Redis with JSON encoding and the console's cache keys:
// user lookups, the derived dashboard snapshot, and per-admin console
// preferences.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}
	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New("user not found in cache")
	}
	return &user, nil
}

// Dashboard snapshot caching. The snapshot is cheap to rebuild, so a short
// TTL bounds staleness instead of explicit invalidation.
func (s *CacheService) CacheDashboard(ctx context.Context, snap *models.DashboardSnapshot, ttl time.Duration) error {
	return s.SetWithTTL(ctx, dashboardSnapshotKey, snap, ttl)
}

func (s *CacheService) GetDashboard(ctx context.Context) (*models.DashboardSnapshot, bool) {
	var snap models.DashboardSnapshot
	found, err := s.Get(ctx, dashboardSnapshotKey, &snap)
	if err != nil || !found {
		return nil, false
	}
	return &snap, true
}

// Console preferences: which detail-page section an admin last expanded.
func (s *CacheService) SetExpandedSection(ctx context.Context, adminID uint, section string) error {
	key := s.GenerateKey("console", "expanded", adminID)
	return s.client.Set(ctx, key, section, 0).Err()
}

func (s *CacheService) GetExpandedSection(ctx context.Context, adminID uint) (string, bool) {
	key := s.GenerateKey("console", "expanded", adminID)
	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
