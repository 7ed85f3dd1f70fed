package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/settleco/accord/internal/models"
)

const (
	// Key prefix for Redis
	userKeyPrefix = "user:"
)

// ErrUserNotFound is returned when a user is not found
var ErrUserNotFound = errors.New("user not found")

// Config holds configuration for the Redis user repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed user repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// SaveUser persists a user profile to Redis
func (r *redisRepository) SaveUser(ctx context.Context, input *SaveUserInput) error {
	if input == nil || input.User == nil {
		return errors.New("input and user cannot be nil")
	}

	userJSON, err := json.Marshal(input.User)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	userKey := fmt.Sprintf("%s%s", userKeyPrefix, input.User.ID)
	if err := r.client.Set(ctx, userKey, userJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetUser retrieves a user profile by ID from Redis
func (r *redisRepository) GetUser(ctx context.Context, input *GetUserInput) (*models.User, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	userKey := fmt.Sprintf("%s%s", userKeyPrefix, input.UserID)
	userJSON, err := r.client.Get(ctx, userKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}
