package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/settleco/accord/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newSession() *models.Session {
	return &models.Session{
		ID:        "test-session-id",
		OTP:       "123456",
		DriverAID: "driver-a",
		Status:    models.SessionStatusCreated,
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetSession() {
	session := s.newSession()

	err := s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Require().NotNil(retrieved)

	s.Equal("test-session-id", retrieved.ID)
	s.Equal("123456", retrieved.OTP)
	s.Equal("driver-a", retrieved.DriverAID)
	s.Equal(models.SessionStatusCreated, retrieved.Status)
}

func (s *RedisRepositoryTestSuite) TestGetSessionNotFound() {
	_, err := s.repo.GetSession(context.Background(), &GetSessionInput{
		SessionID: "missing",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetSessionByOTP() {
	session := s.newSession()
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	}))

	retrieved, err := s.repo.GetSessionByOTP(context.Background(), &GetSessionByOTPInput{
		OTP: "123456",
	})
	s.Require().NoError(err)
	s.Equal("test-session-id", retrieved.ID)

	_, err = s.repo.GetSessionByOTP(context.Background(), &GetSessionByOTPInput{
		OTP: "999999",
	})
	s.Require().ErrorIs(err, ErrSessionNotFound)
}

func (s *RedisRepositoryTestSuite) TestStatusIndexFollowsSave() {
	session := s.newSession()
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	}))

	created, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Statuses: []models.SessionStatus{models.SessionStatusCreated},
	})
	s.Require().NoError(err)
	s.Len(created.Sessions, 1)

	// Move the session forward and make sure it leaves the old index set
	session.Status = models.SessionStatusPendingPolice
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{
		Session: session,
	}))

	created, err = s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Statuses: []models.SessionStatus{models.SessionStatusCreated},
	})
	s.Require().NoError(err)
	s.Empty(created.Sessions)

	pending, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Statuses: []models.SessionStatus{models.SessionStatusPendingPolice},
	})
	s.Require().NoError(err)
	s.Require().Len(pending.Sessions, 1)
	s.Equal(models.SessionStatusPendingPolice, pending.Sessions[0].Status)
}

func (s *RedisRepositoryTestSuite) TestGetSessionsByMultipleStatuses() {
	first := s.newSession()
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: first}))

	second := s.newSession()
	second.ID = "second-session-id"
	second.OTP = "654321"
	second.Status = models.SessionStatusCompleted
	s.Require().NoError(s.repo.SaveSession(context.Background(), &SaveSessionInput{Session: second}))

	result, err := s.repo.GetSessionsByStatus(context.Background(), &GetSessionsByStatusInput{
		Statuses: []models.SessionStatus{
			models.SessionStatusCreated,
			models.SessionStatusCompleted,
		},
	})
	s.Require().NoError(err)
	s.Len(result.Sessions, 2)
}
