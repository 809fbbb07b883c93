package usecase

import (
	"context"
	"math"

	"go-mockinterview-backend/internal/domain"
)

type progressUsecase struct {
	feedbackRepo domain.FeedbackRepository
}

func NewProgressUsecase(feedbackRepo domain.FeedbackRepository) domain.ProgressUsecase {
	return &progressUsecase{feedbackRepo: feedbackRepo}
}

// LatestSnapshot maps the most recent feedback row onto the five fixed
// skill fields. A user with no feedback gets an all-zero snapshot with
// no latestFeedback section.
func (u *progressUsecase) LatestSnapshot(ctx context.Context, userID string) (*domain.SkillSnapshot, error) {
	latest, err := u.feedbackRepo.LatestByUser(ctx, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return &domain.SkillSnapshot{}, nil
		}
		return nil, err
	}

	snapshot := &domain.SkillSnapshot{
		TotalScore: latest.TotalScore,
		LatestFeedback: &domain.LatestFeedbackSummary{
			Strengths:           latest.Strengths,
			AreasForImprovement: latest.AreasForImprovement,
			FinalAssessment:     latest.FinalAssessment,
		},
	}
	if snapshot.LatestFeedback.Strengths == nil {
		snapshot.LatestFeedback.Strengths = []string{}
	}
	if snapshot.LatestFeedback.AreasForImprovement == nil {
		snapshot.LatestFeedback.AreasForImprovement = []string{}
	}

	// Unmatched categories stay at zero.
	for _, cs := range latest.CategoryScores {
		switch cs.Name {
		case domain.CategoryCommunication:
			snapshot.Communication = cs.Score
		case domain.CategoryTechnical:
			snapshot.TechnicalKnowledge = cs.Score
		case domain.CategoryProblemSolving:
			snapshot.ProblemSolving = cs.Score
		case domain.CategoryCulturalFit:
			snapshot.CulturalFit = cs.Score
		case domain.CategoryConfidence:
			snapshot.ConfidenceAndClarity = cs.Score
		}
	}
	return snapshot, nil
}

// AverageScore is intentionally computed from every feedback row, not
// derived from LatestSnapshot.
func (u *progressUsecase) AverageScore(ctx context.Context, userID string) (int, error) {
	feedbacks, err := u.feedbackRepo.FetchByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(feedbacks) == 0 {
		return 0, nil
	}

	sum := 0
	for _, fb := range feedbacks {
		sum += fb.TotalScore
	}
	return int(math.Round(float64(sum) / float64(len(feedbacks)))), nil
}
