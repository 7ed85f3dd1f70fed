package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/settleco/accord/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "case_session:"
	otpKeyPrefix     = "session_otp:"
	statusKeyPrefix  = "sessions_by_status:"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// allStatuses is used to move a session between status index sets on save
var allStatuses = []models.SessionStatus{
	models.SessionStatusCreated,
	models.SessionStatusHandshake,
	models.SessionStatusPendingPolice,
	models.SessionStatusMeetingStarted,
	models.SessionStatusPoliceSigned,
	models.SessionStatusCompleted,
}

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
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

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.Session.ID)
	pipe.Set(ctx, sessionKey, sessionJSON, 0)

	// The join code stays resolvable for the life of the session so that
	// reconnect lookups keep working after the handshake
	if input.Session.OTP != "" {
		otpKey := fmt.Sprintf("%s%s", otpKeyPrefix, input.Session.OTP)
		pipe.Set(ctx, otpKey, input.Session.ID, 0)
	}

	// Keep the session in exactly one status index set
	for _, status := range allStatuses {
		statusKey := fmt.Sprintf("%s%s", statusKeyPrefix, status)
		if status == input.Session.Status {
			pipe.SAdd(ctx, statusKey, input.Session.ID)
		} else {
			pipe.SRem(ctx, statusKey, input.Session.ID)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", sessionKeyPrefix, input.SessionID)
	sessionJSON, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// GetSessionByOTP retrieves a session by its join code
func (r *redisRepository) GetSessionByOTP(ctx context.Context, input *GetSessionByOTPInput) (*models.Session, error) {
	if input == nil || input.OTP == "" {
		return nil, errors.New("input and OTP cannot be empty")
	}

	otpKey := fmt.Sprintf("%s%s", otpKeyPrefix, input.OTP)
	sessionID, err := r.client.Get(ctx, otpKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session ID for OTP: %w", err)
	}

	return r.GetSession(ctx, &GetSessionInput{
		SessionID: sessionID,
	})
}

// GetSessionsByStatus retrieves all sessions in any of the given statuses
func (r *redisRepository) GetSessionsByStatus(ctx context.Context, input *GetSessionsByStatusInput) (*GetSessionsByStatusOutput, error) {
	if input == nil || len(input.Statuses) == 0 {
		return nil, errors.New("input and statuses cannot be empty")
	}

	sessions := make([]*models.Session, 0)
	for _, status := range input.Statuses {
		statusKey := fmt.Sprintf("%s%s", statusKeyPrefix, status)
		sessionIDs, err := r.client.SMembers(ctx, statusKey).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get sessions for status %s: %w", status, err)
		}

		for _, sessionID := range sessionIDs {
			session, err := r.GetSession(ctx, &GetSessionInput{
				SessionID: sessionID,
			})
			if err != nil {
				// Index entry without a blob; skip rather than fail the query
				if errors.Is(err, ErrSessionNotFound) {
					continue
				}
				return nil, err
			}
			sessions = append(sessions, session)
		}
	}

	return &GetSessionsByStatusOutput{
		Sessions: sessions,
	}, nil
}
