package report

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
	reportKeyPrefix         = "case_report:"
	reportSessionKeyPrefix  = "report_by_session:"
	detailsKeyPrefix        = "case_details:"
	detailsSessionKeyPrefix = "case_details_by_session:"
)

var (
	// ErrReportNotFound is returned when a report is not found
	ErrReportNotFound = errors.New("report not found")

	// ErrCaseDetailsNotFound is returned when a case record is not found
	ErrCaseDetailsNotFound = errors.New("case details not found")
)

// Config holds configuration for the Redis report repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed report repository
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

// SaveReport persists a report to Redis
func (r *redisRepository) SaveReport(ctx context.Context, input *SaveReportInput) error {
	if input == nil || input.Report == nil {
		return errors.New("input and report cannot be nil")
	}

	reportJSON, err := json.Marshal(input.Report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := r.client.Pipeline()

	reportKey := fmt.Sprintf("%s%s", reportKeyPrefix, input.Report.ID)
	pipe.Set(ctx, reportKey, reportJSON, 0)

	if input.Report.SessionID != "" {
		sessionKey := fmt.Sprintf("%s%s", reportSessionKeyPrefix, input.Report.SessionID)
		pipe.Set(ctx, sessionKey, input.Report.ID, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetReport retrieves a report by ID from Redis
func (r *redisRepository) GetReport(ctx context.Context, input *GetReportInput) (*models.Report, error) {
	if input == nil || input.ReportID == "" {
		return nil, errors.New("input and report ID cannot be empty")
	}

	reportKey := fmt.Sprintf("%s%s", reportKeyPrefix, input.ReportID)
	reportJSON, err := r.client.Get(ctx, reportKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	return &report, nil
}

// GetReportBySession retrieves the report belonging to a session
func (r *redisRepository) GetReportBySession(ctx context.Context, input *GetReportBySessionInput) (*models.Report, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", reportSessionKeyPrefix, input.SessionID)
	reportID, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report ID for session: %w", err)
	}

	return r.GetReport(ctx, &GetReportInput{
		ReportID: reportID,
	})
}

// SaveCaseDetails persists a case record to Redis
func (r *redisRepository) SaveCaseDetails(ctx context.Context, input *SaveCaseDetailsInput) error {
	if input == nil || input.CaseDetails == nil {
		return errors.New("input and case details cannot be nil")
	}

	detailsJSON, err := json.Marshal(input.CaseDetails)
	if err != nil {
		return fmt.Errorf("failed to marshal case details: %w", err)
	}

	pipe := r.client.Pipeline()

	detailsKey := fmt.Sprintf("%s%s", detailsKeyPrefix, input.CaseDetails.ID)
	pipe.Set(ctx, detailsKey, detailsJSON, 0)

	if input.CaseDetails.SessionID != "" {
		sessionKey := fmt.Sprintf("%s%s", detailsSessionKeyPrefix, input.CaseDetails.SessionID)
		pipe.Set(ctx, sessionKey, input.CaseDetails.ID, 0)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save case details: %w", err)
	}

	return nil
}

// GetCaseDetails retrieves a case record by ID from Redis
func (r *redisRepository) GetCaseDetails(ctx context.Context, input *GetCaseDetailsInput) (*models.CaseDetails, error) {
	if input == nil || input.CaseDetailsID == "" {
		return nil, errors.New("input and case details ID cannot be empty")
	}

	detailsKey := fmt.Sprintf("%s%s", detailsKeyPrefix, input.CaseDetailsID)
	detailsJSON, err := r.client.Get(ctx, detailsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCaseDetailsNotFound
		}
		return nil, fmt.Errorf("failed to get case details: %w", err)
	}

	var details models.CaseDetails
	if err := json.Unmarshal([]byte(detailsJSON), &details); err != nil {
		return nil, fmt.Errorf("failed to unmarshal case details: %w", err)
	}

	return &details, nil
}

// GetCaseDetailsBySession retrieves the case record belonging to a session
func (r *redisRepository) GetCaseDetailsBySession(ctx context.Context, input *GetCaseDetailsBySessionInput) (*models.CaseDetails, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionKey := fmt.Sprintf("%s%s", detailsSessionKeyPrefix, input.SessionID)
	detailsID, err := r.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCaseDetailsNotFound
		}
		return nil, fmt.Errorf("failed to get case details ID for session: %w", err)
	}

	return r.GetCaseDetails(ctx, &GetCaseDetailsInput{
		CaseDetailsID: detailsID,
	})
}
