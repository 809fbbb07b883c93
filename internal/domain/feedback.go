package domain

import (
	"context"
	"time"
)

// Canonical category names. The scoring prompt, response validation and
// the progress aggregation all use exactly this set.
const (
	CategoryCommunication  = "Communication Skills"
	CategoryTechnical      = "Technical Knowledge"
	CategoryProblemSolving = "Problem Solving"
	CategoryCulturalFit    = "Cultural Fit"
	CategoryConfidence     = "Confidence and Clarity"
)

// CanonicalCategories lists the five fixed categories in scoring order.
var CanonicalCategories = []string{
	CategoryCommunication,
	CategoryTechnical,
	CategoryProblemSolving,
	CategoryCulturalFit,
	CategoryConfidence,
}

type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

type Feedback struct {
	ID                  string          `json:"id"`
	InterviewID         string          `json:"interviewId"`
	UserID              string          `json:"userId"`
	TotalScore          int             `json:"totalScore"`
	CategoryScores      []CategoryScore `json:"categoryScores"`
	Strengths           []string        `json:"strengths"`
	AreasForImprovement []string        `json:"areasForImprovement"`
	FinalAssessment     string          `json:"finalAssessment"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// TranscriptTurn is one finalized dialogue turn of a live session. The
// transcript is ephemeral: it exists only in session memory and is
// consumed once by the feedback synthesizer.
type TranscriptTurn struct {
	Role    string `json:"role"` // "assistant" or "user"
	Content string `json:"content"`
}

type CreateFeedbackParams struct {
	InterviewID string
	UserID      string
	Transcript  []TranscriptTurn
	// FeedbackID, when set, overwrites that row instead of creating a
	// new one, so regenerated feedback does not accumulate duplicates.
	FeedbackID string
}

type FeedbackRepository interface {
	// Upsert writes the row under feedback.ID, overwriting any existing
	// row with the same id.
	Upsert(ctx context.Context, feedback *Feedback) error
	GetByInterviewAndUser(ctx context.Context, interviewID, userID string) (*Feedback, error)
	LatestByUser(ctx context.Context, userID string) (*Feedback, error)
	FetchByUserID(ctx context.Context, userID string) ([]Feedback, error)
	FetchIDsByInterviewID(ctx context.Context, interviewID string) ([]string, error)
	Delete(ctx context.Context, id string) error
}

type FeedbackUsecase interface {
	CreateFeedback(ctx context.Context, params CreateFeedbackParams) (string, error)
	GetByInterviewID(ctx context.Context, interviewID, userID string) (*Feedback, error)
}
