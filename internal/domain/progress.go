package domain

import "context"

// LatestFeedbackSummary mirrors the most recent feedback's qualitative
// sections verbatim.
type LatestFeedbackSummary struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	FinalAssessment     string   `json:"finalAssessment"`
}

// SkillSnapshot is derived on read from the single most recent feedback
// row. It is never persisted.
type SkillSnapshot struct {
	Communication        int                    `json:"communication"`
	TechnicalKnowledge   int                    `json:"technicalKnowledge"`
	ProblemSolving       int                    `json:"problemSolving"`
	CulturalFit          int                    `json:"culturalFit"`
	ConfidenceAndClarity int                    `json:"confidenceAndClarity"`
	TotalScore           int                    `json:"totalScore"`
	LatestFeedback       *LatestFeedbackSummary `json:"latestFeedback,omitempty"`
}

type ProgressUsecase interface {
	LatestSnapshot(ctx context.Context, userID string) (*SkillSnapshot, error)
	// AverageScore reads every feedback row for the user and returns the
	// rounded mean of totalScore. Independent of LatestSnapshot.
	AverageScore(ctx context.Context, userID string) (int, error)
}
