package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wiretrack-http-service/config"

	"github.com/go-redis/redis/v8"
)

// InterfaceRedisService 定义缓存服务接口
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheProjectSummary(projectID uint, summary interface{}, expiration time.Duration) error
	GetProjectSummary(projectID uint, dest interface{}) error
	InvalidateProjectSummary(projectID uint) error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheProjectSummary 缓存项目的完成度汇总
func (s *RedisService) CacheProjectSummary(projectID uint, summary interface{}, expiration time.Duration) error {
	key := fmt.Sprintf("project_summary:%d", projectID)
	return s.Set(key, summary, expiration)
}

// GetProjectSummary 从缓存读取项目完成度汇总
func (s *RedisService) GetProjectSummary(projectID uint, dest interface{}) error {
	key := fmt.Sprintf("project_summary:%d", projectID)
	return s.Get(key, dest)
}

// InvalidateProjectSummary 阶段或关联变更后使汇总缓存失效
func (s *RedisService) InvalidateProjectSummary(projectID uint) error {
	key := fmt.Sprintf("project_summary:%d", projectID)
	return s.Delete(key)
}
