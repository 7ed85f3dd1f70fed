package draft

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
	draftKeyPrefix         = "draft:"
	evidenceKeyPrefix      = "evidence:"
	draftEvidenceKeyPrefix = "draft_evidence:" // set of evidence IDs per draft
)

// ErrDraftNotFound is returned when a draft is not found
var ErrDraftNotFound = errors.New("draft not found")

// Config holds configuration for the Redis draft repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed draft repository
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

// SaveDraft persists a draft and its evidence items to Redis
func (r *redisRepository) SaveDraft(ctx context.Context, input *SaveDraftInput) error {
	if input == nil || input.Draft == nil {
		return errors.New("input and draft cannot be nil")
	}

	draftJSON, err := json.Marshal(input.Draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	pipe := r.client.Pipeline()

	draftKey := fmt.Sprintf("%s%s", draftKeyPrefix, input.Draft.ID)
	pipe.Set(ctx, draftKey, draftJSON, 0)

	evidenceSetKey := fmt.Sprintf("%s%s", draftEvidenceKeyPrefix, input.Draft.ID)
	for _, item := range input.Evidence {
		evidenceJSON, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal evidence: %w", err)
		}

		evidenceKey := fmt.Sprintf("%s%s", evidenceKeyPrefix, item.ID)
		pipe.Set(ctx, evidenceKey, evidenceJSON, 0)
		pipe.SAdd(ctx, evidenceSetKey, item.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// GetDraft retrieves a draft by ID from Redis
func (r *redisRepository) GetDraft(ctx context.Context, input *GetDraftInput) (*models.Draft, error) {
	if input == nil || input.DraftID == "" {
		return nil, errors.New("input and draft ID cannot be empty")
	}

	draftKey := fmt.Sprintf("%s%s", draftKeyPrefix, input.DraftID)
	draftJSON, err := r.client.Get(ctx, draftKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft models.Draft
	if err := json.Unmarshal([]byte(draftJSON), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// GetEvidenceByDraft retrieves all evidence owned by a draft
func (r *redisRepository) GetEvidenceByDraft(ctx context.Context, input *GetEvidenceByDraftInput) (*GetEvidenceByDraftOutput, error) {
	if input == nil || input.DraftID == "" {
		return nil, errors.New("input and draft ID cannot be empty")
	}

	evidence, err := r.getEvidence(ctx, input.DraftID)
	if err != nil {
		return nil, err
	}

	return &GetEvidenceByDraftOutput{
		Evidence: evidence,
	}, nil
}

// DeleteDraft removes a draft and all its evidence from Redis
func (r *redisRepository) DeleteDraft(ctx context.Context, input *DeleteDraftInput) error {
	if input == nil || input.DraftID == "" {
		return errors.New("input and draft ID cannot be empty")
	}

	evidenceSetKey := fmt.Sprintf("%s%s", draftEvidenceKeyPrefix, input.DraftID)
	evidenceIDs, err := r.client.SMembers(ctx, evidenceSetKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get evidence for draft: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, evidenceID := range evidenceIDs {
		pipe.Del(ctx, fmt.Sprintf("%s%s", evidenceKeyPrefix, evidenceID))
	}
	pipe.Del(ctx, evidenceSetKey)
	pipe.Del(ctx, fmt.Sprintf("%s%s", draftKeyPrefix, input.DraftID))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	return nil
}

// AttachEvidenceToReport stamps the report ID onto every evidence item of a draft
func (r *redisRepository) AttachEvidenceToReport(ctx context.Context, input *AttachEvidenceToReportInput) error {
	if input == nil || input.DraftID == "" || input.ReportID == "" {
		return errors.New("input, draft ID and report ID cannot be empty")
	}

	evidence, err := r.getEvidence(ctx, input.DraftID)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	for _, item := range evidence {
		item.ReportID = input.ReportID

		evidenceJSON, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal evidence: %w", err)
		}
		pipe.Set(ctx, fmt.Sprintf("%s%s", evidenceKeyPrefix, item.ID), evidenceJSON, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to attach evidence to report: %w", err)
	}

	return nil
}

func (r *redisRepository) getEvidence(ctx context.Context, draftID string) ([]*models.Evidence, error) {
	evidenceSetKey := fmt.Sprintf("%s%s", draftEvidenceKeyPrefix, draftID)
	evidenceIDs, err := r.client.SMembers(ctx, evidenceSetKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence set: %w", err)
	}

	evidence := make([]*models.Evidence, 0, len(evidenceIDs))
	for _, evidenceID := range evidenceIDs {
		evidenceJSON, err := r.client.Get(ctx, fmt.Sprintf("%s%s", evidenceKeyPrefix, evidenceID)).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get evidence: %w", err)
		}

		var item models.Evidence
		if err := json.Unmarshal([]byte(evidenceJSON), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal evidence: %w", err)
		}
		evidence = append(evidence, &item)
	}

	return evidence, nil
}
