package domain

import "context"

// TextGenerator is the generative-language collaborator. Implementations
// send one prompt and return the raw model text.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerateQuestionsParams are the question-generation inputs. Exactly one
// of NumQuestions or DurationMinutes is normally set; with neither the
// generator falls back to a default count.
type GenerateQuestionsParams struct {
	Role            string
	Type            string
	Level           string
	Techstack       []string
	NumQuestions    int
	DurationMinutes int
	JobDescription  string
}

type GenerationUsecase interface {
	GenerateQuestions(ctx context.Context, params GenerateQuestionsParams) ([]string, error)
	GenerateResumeQuestions(ctx context.Context, resumeText string) ([]string, error)
}
