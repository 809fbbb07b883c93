package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/apperror"
)

const defaultAvailableLimit = 20

type interviewUsecase struct {
	interviewRepo domain.InterviewRepository
	feedbackRepo  domain.FeedbackRepository
}

func NewInterviewUsecase(interviewRepo domain.InterviewRepository, feedbackRepo domain.FeedbackRepository) domain.InterviewUsecase {
	return &interviewUsecase{
		interviewRepo: interviewRepo,
		feedbackRepo:  feedbackRepo,
	}
}

func (u *interviewUsecase) CreateInterview(ctx context.Context, interview *domain.Interview) (string, error) {
	if interview.UserID == "" {
		return "", apperror.BadRequest("Interview must have a userId")
	}
	if len(interview.Questions) == 0 {
		return "", apperror.BadRequest("Interview must have at least one question")
	}
	for i, question := range interview.Questions {
		trimmed := strings.TrimSpace(question)
		if trimmed == "" {
			return "", apperror.BadRequest(fmt.Sprintf("Invalid question at index %d", i))
		}
		interview.Questions[i] = trimmed
	}

	interview.Finalized = true
	interview.CreatedAt = time.Now().UTC()

	if err := u.interviewRepo.Create(ctx, interview); err != nil {
		return "", err
	}
	return interview.ID, nil
}

func (u *interviewUsecase) GetInterview(ctx context.Context, id string) (*domain.Interview, error) {
	interview, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Interview not found")
		}
		return nil, err
	}
	return interview, nil
}

func (u *interviewUsecase) ListByUser(ctx context.Context, userID string) ([]domain.Interview, error) {
	return u.interviewRepo.FetchByUserID(ctx, userID)
}

// ListAvailable returns finalized interviews shared by other users.
// Resume-derived interviews never appear here, only in the owner's list.
func (u *interviewUsecase) ListAvailable(ctx context.Context, userID string, limit int) ([]domain.Interview, error) {
	if limit < 1 {
		limit = defaultAvailableLimit
	}
	return u.interviewRepo.FetchAvailable(ctx, userID, limit)
}

func (u *interviewUsecase) DeleteInterview(ctx context.Context, id, requestingUserID string) error {
	interview, err := u.interviewRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Interview not found")
		}
		return err
	}
	if interview.UserID != requestingUserID {
		return apperror.Forbidden("You can only delete your own interviews")
	}

	// Cascade: feedback rows go first, since they reference the
	// interview row. Row deletions are best-effort and parallel; a
	// failed one does not block the interview deletion.
	if feedbackIDs, err := u.feedbackRepo.FetchIDsByInterviewID(ctx, id); err == nil {
		var wg sync.WaitGroup
		for _, feedbackID := range feedbackIDs {
			wg.Add(1)
			go func(fid string) {
				defer wg.Done()
				_ = u.feedbackRepo.Delete(ctx, fid)
			}(feedbackID)
		}
		wg.Wait()
	}

	return u.interviewRepo.Delete(ctx, id)
}
