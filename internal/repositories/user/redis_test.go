package user

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/settleco/accord/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetUser() {
	user := &models.User{
		ID:              "driver-a",
		Name:            "Aisha",
		IdentityNo:      "900101-14-1234",
		CarPlate:        "WXY 1234",
		CarModel:        "Myvi",
		InsurancePolicy: "AXA-123-456",
	}

	err := s.repo.SaveUser(context.Background(), &SaveUserInput{
		User: user,
	})
	s.Require().NoError(err)

	retrieved, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "driver-a",
	})
	s.Require().NoError(err)
	s.Equal("Aisha", retrieved.Name)
	s.Equal("900101-14-1234", retrieved.IdentityNo)
	s.False(retrieved.IsPolice)
}

func (s *RedisRepositoryTestSuite) TestGetUserNotFound() {
	_, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "missing",
	})
	s.Require().ErrorIs(err, ErrUserNotFound)
}

func (s *RedisRepositoryTestSuite) TestSaveOverwritesProfile() {
	user := &models.User{ID: "driver-a", Name: "Aisha"}
	s.Require().NoError(s.repo.SaveUser(context.Background(), &SaveUserInput{User: user}))

	user.Name = "Aisha binti Ahmad"
	user.IsPolice = false
	s.Require().NoError(s.repo.SaveUser(context.Background(), &SaveUserInput{User: user}))

	retrieved, err := s.repo.GetUser(context.Background(), &GetUserInput{
		UserID: "driver-a",
	})
	s.Require().NoError(err)
	s.Equal("Aisha binti Ahmad", retrieved.Name)
}
