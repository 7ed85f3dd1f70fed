package report

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

func (s *RedisRepositoryTestSuite) TestSaveAndGetReport() {
	report := &models.Report{
		ID:             "test-report-id",
		SessionID:      "test-session-id",
		CaseDetailsID:  "test-details-id",
		DriverADraftID: "draft-a",
		DriverBDraftID: "draft-b",
		CreatedAt:      s.testNow,
		UpdatedAt:      s.testNow,
	}

	err := s.repo.SaveReport(context.Background(), &SaveReportInput{
		Report: report,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetReport(context.Background(), &GetReportInput{
		ReportID: "test-report-id",
	})
	s.Require().NoError(err)
	s.Equal("test-session-id", retrieved.SessionID)
	s.Equal("test-details-id", retrieved.CaseDetailsID)
	s.False(retrieved.AllSigned())

	bySession, err := s.repo.GetReportBySession(context.Background(), &GetReportBySessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Equal("test-report-id", bySession.ID)
}

func (s *RedisRepositoryTestSuite) TestReportNotFound() {
	_, err := s.repo.GetReport(context.Background(), &GetReportInput{
		ReportID: "missing",
	})
	s.Require().ErrorIs(err, ErrReportNotFound)

	_, err = s.repo.GetReportBySession(context.Background(), &GetReportBySessionInput{
		SessionID: "missing",
	})
	s.Require().ErrorIs(err, ErrReportNotFound)
}

func (s *RedisRepositoryTestSuite) TestSignatureRoundTrip() {
	report := &models.Report{
		ID:        "test-report-id",
		SessionID: "test-session-id",
		CreatedAt: s.testNow,
	}
	s.Require().NoError(s.repo.SaveReport(context.Background(), &SaveReportInput{Report: report}))

	report.DriverASignature = "sig-a"
	report.DriverBSignature = "sig-b"
	report.PoliceSignature = "sig-p"
	s.Require().NoError(s.repo.SaveReport(context.Background(), &SaveReportInput{Report: report}))

	retrieved, err := s.repo.GetReport(context.Background(), &GetReportInput{
		ReportID: "test-report-id",
	})
	s.Require().NoError(err)
	s.True(retrieved.AllSigned())
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetCaseDetails() {
	details := &models.CaseDetails{
		ID:        "test-details-id",
		SessionID: "test-session-id",
		ReportNo:  "DRAFT/TESTSESS/2025",
		Location:  "Jalan Ampang",
		CreatedAt: s.testNow,
		UpdatedAt: s.testNow,
	}

	err := s.repo.SaveCaseDetails(context.Background(), &SaveCaseDetailsInput{
		CaseDetails: details,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetCaseDetails(context.Background(), &GetCaseDetailsInput{
		CaseDetailsID: "test-details-id",
	})
	s.Require().NoError(err)
	s.Equal("DRAFT/TESTSESS/2025", retrieved.ReportNo)

	bySession, err := s.repo.GetCaseDetailsBySession(context.Background(), &GetCaseDetailsBySessionInput{
		SessionID: "test-session-id",
	})
	s.Require().NoError(err)
	s.Equal("test-details-id", bySession.ID)
}

func (s *RedisRepositoryTestSuite) TestCaseDetailsNotFound() {
	_, err := s.repo.GetCaseDetails(context.Background(), &GetCaseDetailsInput{
		CaseDetailsID: "missing",
	})
	s.Require().ErrorIs(err, ErrCaseDetailsNotFound)
}
