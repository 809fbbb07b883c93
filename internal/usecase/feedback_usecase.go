package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/apperror"
	"go-mockinterview-backend/pkg/genai"

	"github.com/google/uuid"
)

type feedbackUsecase struct {
	feedbackRepo domain.FeedbackRepository
	gen          domain.TextGenerator
}

func NewFeedbackUsecase(feedbackRepo domain.FeedbackRepository, gen domain.TextGenerator) domain.FeedbackUsecase {
	return &feedbackUsecase{
		feedbackRepo: feedbackRepo,
		gen:          gen,
	}
}

// scoringResponse uses pointer fields so a missing required field is
// distinguishable from an empty one.
type scoringResponse struct {
	TotalScore          *int                   `json:"totalScore"`
	CategoryScores      []domain.CategoryScore `json:"categoryScores"`
	Strengths           *[]string              `json:"strengths"`
	AreasForImprovement *[]string              `json:"areasForImprovement"`
	FinalAssessment     *string                `json:"finalAssessment"`
}

func (u *feedbackUsecase) CreateFeedback(ctx context.Context, params domain.CreateFeedbackParams) (string, error) {
	if params.InterviewID == "" || params.UserID == "" {
		return "", apperror.BadRequest("interviewId and userId are required")
	}
	if len(params.Transcript) == 0 {
		return "", apperror.BadRequest("Transcript must contain at least one turn")
	}

	var transcript strings.Builder
	for _, turn := range params.Transcript {
		fmt.Fprintf(&transcript, "- %s: %s\n", turn.Role, turn.Content)
	}

	prompt := buildScoringPrompt(transcript.String())

	raw, err := u.gen.GenerateText(ctx, prompt)
	if err != nil {
		return "", apperror.ScoringFailed("Failed to score interview transcript", err)
	}

	var resp scoringResponse
	if err := json.Unmarshal([]byte(genai.StripCodeFences(raw)), &resp); err != nil {
		return "", apperror.ScoringFailed("Scoring response was not valid JSON", err)
	}
	if err := validateScoring(&resp); err != nil {
		return "", err
	}

	feedbackID := params.FeedbackID
	if feedbackID == "" {
		feedbackID = uuid.NewString()
	}

	feedback := &domain.Feedback{
		ID:                  feedbackID,
		InterviewID:         params.InterviewID,
		UserID:              params.UserID,
		TotalScore:          *resp.TotalScore,
		CategoryScores:      canonicalOrder(resp.CategoryScores),
		Strengths:           *resp.Strengths,
		AreasForImprovement: *resp.AreasForImprovement,
		FinalAssessment:     *resp.FinalAssessment,
		CreatedAt:           time.Now().UTC(),
	}

	if err := u.feedbackRepo.Upsert(ctx, feedback); err != nil {
		return "", err
	}
	return feedbackID, nil
}

func (u *feedbackUsecase) GetByInterviewID(ctx context.Context, interviewID, userID string) (*domain.Feedback, error) {
	feedback, err := u.feedbackRepo.GetByInterviewAndUser(ctx, interviewID, userID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Feedback not found")
		}
		return nil, err
	}
	return feedback, nil
}

func buildScoringPrompt(transcript string) string {
	var sb strings.Builder
	sb.WriteString("You are a professional interviewer analyzing a mock interview. Evaluate the candidate thoroughly; do not be lenient, and point out mistakes and areas for improvement.\n\nTranscript:\n")
	sb.WriteString(transcript)
	sb.WriteString("\nScore the candidate from 0 to 100 in exactly the following categories. Do not add, remove or rename categories:\n")
	for _, name := range domain.CanonicalCategories {
		fmt.Fprintf(&sb, "- %s\n", name)
	}
	sb.WriteString("\nRespond with ONLY a JSON object of this shape and no other text:\n")
	sb.WriteString(`{"totalScore": 0, "categoryScores": [{"name": "...", "score": 0, "comment": "..."}], "strengths": ["..."], "areasForImprovement": ["..."], "finalAssessment": "..."}`)
	return sb.String()
}

// validateScoring rejects responses missing a required field, scoring
// outside [0,100], or covering a category set other than the fixed five.
func validateScoring(resp *scoringResponse) error {
	if resp.TotalScore == nil {
		return apperror.ScoringFailed("Scoring response is missing totalScore", nil)
	}
	if *resp.TotalScore < 0 || *resp.TotalScore > 100 {
		return apperror.ScoringFailed(fmt.Sprintf("totalScore %d is outside [0,100]", *resp.TotalScore), nil)
	}
	if resp.Strengths == nil {
		return apperror.ScoringFailed("Scoring response is missing strengths", nil)
	}
	if resp.AreasForImprovement == nil {
		return apperror.ScoringFailed("Scoring response is missing areasForImprovement", nil)
	}
	if resp.FinalAssessment == nil {
		return apperror.ScoringFailed("Scoring response is missing finalAssessment", nil)
	}

	if len(resp.CategoryScores) != len(domain.CanonicalCategories) {
		return apperror.ScoringFailed(fmt.Sprintf("Expected %d category scores, got %d",
			len(domain.CanonicalCategories), len(resp.CategoryScores)), nil)
	}
	seen := make(map[string]bool, len(resp.CategoryScores))
	for _, cs := range resp.CategoryScores {
		if !isCanonicalCategory(cs.Name) {
			return apperror.ScoringFailed(fmt.Sprintf("Unknown category %q in scoring response", cs.Name), nil)
		}
		if seen[cs.Name] {
			return apperror.ScoringFailed(fmt.Sprintf("Duplicate category %q in scoring response", cs.Name), nil)
		}
		seen[cs.Name] = true
		if cs.Score < 0 || cs.Score > 100 {
			return apperror.ScoringFailed(fmt.Sprintf("Category %q score %d is outside [0,100]", cs.Name, cs.Score), nil)
		}
	}
	return nil
}

func isCanonicalCategory(name string) bool {
	for _, canonical := range domain.CanonicalCategories {
		if name == canonical {
			return true
		}
	}
	return false
}

// canonicalOrder re-orders validated category scores into the fixed
// scoring order so persisted rows are uniform.
func canonicalOrder(scores []domain.CategoryScore) []domain.CategoryScore {
	byName := make(map[string]domain.CategoryScore, len(scores))
	for _, cs := range scores {
		byName[cs.Name] = cs
	}
	ordered := make([]domain.CategoryScore, 0, len(domain.CanonicalCategories))
	for _, name := range domain.CanonicalCategories {
		ordered = append(ordered, byName[name])
	}
	return ordered
}
