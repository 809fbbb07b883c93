package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/apperror"
	"go-mockinterview-backend/pkg/genai"
)

const (
	defaultQuestionCount = 5
	minutesPerQuestion   = 5
	minResumeQuestions   = 15
	maxResumeQuestions   = 18
)

type generationUsecase struct {
	gen domain.TextGenerator
}

func NewGenerationUsecase(gen domain.TextGenerator) domain.GenerationUsecase {
	return &generationUsecase{gen: gen}
}

// ResolveQuestionCount picks the target question count: an explicit count
// wins, otherwise one question per 5 minutes of duration (rounded up),
// otherwise the default.
func ResolveQuestionCount(numQuestions, durationMinutes int) int {
	if numQuestions > 0 {
		return numQuestions
	}
	if durationMinutes > 0 {
		return (durationMinutes + minutesPerQuestion - 1) / minutesPerQuestion
	}
	return defaultQuestionCount
}

func (u *generationUsecase) GenerateQuestions(ctx context.Context, params domain.GenerateQuestionsParams) ([]string, error) {
	count := ResolveQuestionCount(params.NumQuestions, params.DurationMinutes)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d interview questions for a %s %s position.\n", count, params.Level, params.Role)
	fmt.Fprintf(&sb, "The interview type is %s and should focus on the following technologies: %s.\n\n",
		params.Type, strings.Join(params.Techstack, ", "))
	if params.JobDescription != "" {
		fmt.Fprintf(&sb, "Tailor the questions to this job description:\n%s\n\n", params.JobDescription)
	}
	sb.WriteString("Each question must be clearly phrased and appropriate for the stated level. ")
	sb.WriteString("Avoid special characters like \"/\" or \"*\" that interfere with voice assistants. ")
	sb.WriteString("Respond with ONLY a JSON array of strings, one question per element, and no other text.")

	raw, err := u.gen.GenerateText(ctx, sb.String())
	if err != nil {
		return nil, apperror.GenerationFailed("Failed to generate interview questions", err)
	}

	questions := parseQuestions(raw)
	if len(questions) == 0 {
		return nil, apperror.GenerationFailed("Generated response contained no usable questions", nil)
	}
	return questions, nil
}

func (u *generationUsecase) GenerateResumeQuestions(ctx context.Context, resumeText string) ([]string, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, apperror.BadRequest("Resume text is required")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the following resume, generate between %d and %d interview questions that cover the candidate's technical skills, work experience, education, soft skills and career goals.\n\nResume:\n%s\n\n",
		minResumeQuestions, maxResumeQuestions, resumeText)
	sb.WriteString("Questions must be specific to the resume content, not generic. ")
	sb.WriteString("Respond with ONLY a JSON array of strings, one question per element, and no other text.")

	raw, err := u.gen.GenerateText(ctx, sb.String())
	if err != nil {
		return nil, apperror.GenerationFailed("Failed to generate resume questions", err)
	}

	questions := parseQuestions(raw)
	if len(questions) == 0 {
		return nil, apperror.GenerationFailed("Generated response contained no usable questions", nil)
	}

	// One supplemental request for the shortfall. A short list is never
	// silently returned: if this parse fails too, the operation fails.
	if len(questions) < minResumeQuestions {
		shortfall := minResumeQuestions - len(questions)
		existing, _ := json.Marshal(questions)

		var supp strings.Builder
		fmt.Fprintf(&supp, "Based on the same resume, generate %d more interview questions that are different from these existing questions: %s\n\nResume:\n%s\n\n",
			shortfall, string(existing), resumeText)
		supp.WriteString("Respond with ONLY a JSON array of strings, with no duplicates of the existing questions.")

		rawMore, err := u.gen.GenerateText(ctx, supp.String())
		if err != nil {
			return nil, apperror.GenerationFailed("Failed to generate supplemental resume questions", err)
		}
		more := parseQuestions(rawMore)
		if len(more) == 0 {
			return nil, apperror.GenerationFailed("Supplemental response contained no usable questions", nil)
		}

		seen := make(map[string]bool, len(questions))
		for _, q := range questions {
			seen[q] = true
		}
		for _, q := range more {
			if !seen[q] {
				seen[q] = true
				questions = append(questions, q)
			}
		}
	}

	if len(questions) > maxResumeQuestions {
		questions = questions[:maxResumeQuestions]
	}
	return questions, nil
}

var numberedLineRegexp = regexp.MustCompile(`(?m)^\s*\d+[.)]\s*(.+)$`)

// parseQuestions turns a raw model response into a clean ordered list of
// question strings. Strict JSON first, then numbered-list lines, then
// bare lines ending in a question mark.
func parseQuestions(raw string) []string {
	cleaned := genai.StripCodeFences(raw)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return trimNonEmpty(parsed)
	}

	var fromNumbered []string
	for _, match := range numberedLineRegexp.FindAllStringSubmatch(cleaned, -1) {
		fromNumbered = append(fromNumbered, match[1])
	}
	if qs := trimNonEmpty(fromNumbered); len(qs) > 0 {
		return qs
	}

	var fromLines []string
	for _, line := range strings.Split(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, "?") {
			fromLines = append(fromLines, line)
		}
	}
	return trimNonEmpty(fromLines)
}

func trimNonEmpty(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
