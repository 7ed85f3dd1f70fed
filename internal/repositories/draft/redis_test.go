package draft

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

func (s *RedisRepositoryTestSuite) saveFixture() (*models.Draft, []*models.Evidence) {
	draft := &models.Draft{
		ID:          "test-draft-id",
		SessionID:   "test-session-id",
		DriverID:    "driver-a",
		Location:    "Jalan Ampang",
		Description: "Rear-ended at the lights.",
		CreatedAt:   s.testNow,
	}
	evidence := []*models.Evidence{
		{
			ID:         "evidence-1",
			DraftID:    draft.ID,
			UploaderID: "driver-a",
			Type:       models.EvidenceTypePhoto,
			Tag:        models.EvidenceTagCarFront,
			Title:      "Car Front",
			Content:    "base64...",
			CreatedAt:  s.testNow,
		},
		{
			ID:         "evidence-2",
			DraftID:    draft.ID,
			UploaderID: "driver-a",
			Type:       models.EvidenceTypeSketch,
			Tag:        models.EvidenceTagRoughSketch,
			Title:      "Rough Sketch",
			Content:    "base64...",
			CreatedAt:  s.testNow,
		},
	}

	err := s.repo.SaveDraft(context.Background(), &SaveDraftInput{
		Draft:    draft,
		Evidence: evidence,
	})
	s.Require().NoError(err)

	return draft, evidence
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetDraft() {
	s.saveFixture()

	retrieved, err := s.repo.GetDraft(context.Background(), &GetDraftInput{
		DraftID: "test-draft-id",
	})
	s.Require().NoError(err)
	s.Equal("test-session-id", retrieved.SessionID)
	s.Equal("driver-a", retrieved.DriverID)
	s.Equal("Jalan Ampang", retrieved.Location)
}

func (s *RedisRepositoryTestSuite) TestGetDraftNotFound() {
	_, err := s.repo.GetDraft(context.Background(), &GetDraftInput{
		DraftID: "missing",
	})
	s.Require().ErrorIs(err, ErrDraftNotFound)
}

func (s *RedisRepositoryTestSuite) TestGetEvidenceByDraft() {
	s.saveFixture()

	output, err := s.repo.GetEvidenceByDraft(context.Background(), &GetEvidenceByDraftInput{
		DraftID: "test-draft-id",
	})
	s.Require().NoError(err)
	s.Len(output.Evidence, 2)
	for _, item := range output.Evidence {
		s.Equal("test-draft-id", item.DraftID)
		s.Empty(item.ReportID)
	}
}

func (s *RedisRepositoryTestSuite) TestAttachEvidenceToReport() {
	s.saveFixture()

	err := s.repo.AttachEvidenceToReport(context.Background(), &AttachEvidenceToReportInput{
		DraftID:  "test-draft-id",
		ReportID: "test-report-id",
	})
	s.Require().NoError(err)

	output, err := s.repo.GetEvidenceByDraft(context.Background(), &GetEvidenceByDraftInput{
		DraftID: "test-draft-id",
	})
	s.Require().NoError(err)
	s.Require().Len(output.Evidence, 2)
	for _, item := range output.Evidence {
		s.Equal("test-report-id", item.ReportID)
	}
}

func (s *RedisRepositoryTestSuite) TestDeleteDraftRemovesEvidence() {
	s.saveFixture()

	err := s.repo.DeleteDraft(context.Background(), &DeleteDraftInput{
		DraftID: "test-draft-id",
	})
	s.Require().NoError(err)

	_, err = s.repo.GetDraft(context.Background(), &GetDraftInput{
		DraftID: "test-draft-id",
	})
	s.Require().ErrorIs(err, ErrDraftNotFound)

	output, err := s.repo.GetEvidenceByDraft(context.Background(), &GetEvidenceByDraftInput{
		DraftID: "test-draft-id",
	})
	s.Require().NoError(err)
	s.Empty(output.Evidence)
}
