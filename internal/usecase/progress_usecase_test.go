package usecase_test

import (
	"context"
	"testing"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestLatestSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("No feedback yields an all-zero snapshot", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		repo.On("LatestByUser", mock.Anything, "user1").Return(nil, domain.ErrNotFound)

		uc := usecase.NewProgressUsecase(repo)
		snapshot, err := uc.LatestSnapshot(ctx, "user1")

		assert.NoError(t, err)
		assert.Equal(t, 0, snapshot.TotalScore)
		assert.Equal(t, 0, snapshot.Communication)
		assert.Nil(t, snapshot.LatestFeedback)
	})

	t.Run("Maps category scores onto skill fields", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		repo.On("LatestByUser", mock.Anything, "user1").Return(&domain.Feedback{
			TotalScore: 77,
			CategoryScores: []domain.CategoryScore{
				{Name: domain.CategoryCommunication, Score: 70},
				{Name: domain.CategoryTechnical, Score: 85},
				{Name: domain.CategoryProblemSolving, Score: 60},
				{Name: domain.CategoryCulturalFit, Score: 90},
				{Name: domain.CategoryConfidence, Score: 80},
			},
			Strengths:           []string{"Clear communication"},
			AreasForImprovement: []string{"Algorithms"},
			FinalAssessment:     "Strong overall.",
		}, nil)

		uc := usecase.NewProgressUsecase(repo)
		snapshot, err := uc.LatestSnapshot(ctx, "user1")

		assert.NoError(t, err)
		assert.Equal(t, 77, snapshot.TotalScore)
		assert.Equal(t, 70, snapshot.Communication)
		assert.Equal(t, 85, snapshot.TechnicalKnowledge)
		assert.Equal(t, 60, snapshot.ProblemSolving)
		assert.Equal(t, 90, snapshot.CulturalFit)
		assert.Equal(t, 80, snapshot.ConfidenceAndClarity)
		assert.NotNil(t, snapshot.LatestFeedback)
		assert.Equal(t, "Strong overall.", snapshot.LatestFeedback.FinalAssessment)
	})

	t.Run("Nil qualitative slices become empty slices", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		repo.On("LatestByUser", mock.Anything, "user1").Return(&domain.Feedback{
			TotalScore:      50,
			FinalAssessment: "Thin transcript.",
		}, nil)

		uc := usecase.NewProgressUsecase(repo)
		snapshot, err := uc.LatestSnapshot(ctx, "user1")

		assert.NoError(t, err)
		assert.NotNil(t, snapshot.LatestFeedback.Strengths)
		assert.Empty(t, snapshot.LatestFeedback.Strengths)
		assert.NotNil(t, snapshot.LatestFeedback.AreasForImprovement)
	})
}

func TestAverageScore(t *testing.T) {
	ctx := context.Background()

	t.Run("No feedback averages to zero", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		repo.On("FetchByUserID", mock.Anything, "user1").Return([]domain.Feedback{}, nil)

		uc := usecase.NewProgressUsecase(repo)
		avg, err := uc.AverageScore(ctx, "user1")

		assert.NoError(t, err)
		assert.Equal(t, 0, avg)
	})

	t.Run("Rounds the mean over all rows", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		repo.On("FetchByUserID", mock.Anything, "user1").Return([]domain.Feedback{
			{TotalScore: 70},
			{TotalScore: 75},
			{TotalScore: 80},
		}, nil)

		uc := usecase.NewProgressUsecase(repo)
		avg, err := uc.AverageScore(ctx, "user1")

		assert.NoError(t, err)
		assert.Equal(t, 75, avg)
	})

	t.Run("Half scores round up", func(t *testing.T) {
		repo := new(MockFeedbackRepo)
		repo.On("FetchByUserID", mock.Anything, "user1").Return([]domain.Feedback{
			{TotalScore: 70},
			{TotalScore: 75},
		}, nil)

		uc := usecase.NewProgressUsecase(repo)
		avg, err := uc.AverageScore(ctx, "user1")

		assert.NoError(t, err)
		assert.Equal(t, 73, avg)
	})
}
