package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/internal/usecase"
	"go-mockinterview-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func openInterviewSession(t *testing.T, uc domain.SessionUsecase, userID string) *domain.Session {
	t.Helper()
	session, err := uc.Open(context.Background(), &domain.Session{
		UserID:      userID,
		InterviewID: "iv1",
		Purpose:     domain.PurposeInterview,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.CallInactive, session.Status)
	return session
}

func TestSessionOpenValidation(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))

	t.Run("Interview purpose requires an interviewId", func(t *testing.T) {
		_, err := uc.Open(ctx, &domain.Session{
			UserID:  "user1",
			Purpose: domain.PurposeInterview,
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "interviewId")
	})

	t.Run("Generate purpose needs no interview", func(t *testing.T) {
		session, err := uc.Open(ctx, &domain.Session{
			UserID:  "user1",
			Purpose: domain.PurposeGenerate,
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.CallInactive, session.Status)
	})

	t.Run("Unknown purpose is rejected", func(t *testing.T) {
		_, err := uc.Open(ctx, &domain.Session{
			UserID:  "user1",
			Purpose: "karaoke",
		})
		assert.Error(t, err)
	})
}

func TestSessionOwnership(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
	session := openInterviewSession(t, uc, "owner")

	t.Run("Other users cannot touch the session", func(t *testing.T) {
		_, err := uc.Get(ctx, session.ID, "intruder")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
	})

	t.Run("Unknown session is not found", func(t *testing.T) {
		_, err := uc.Get(ctx, "nope", "owner")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusNotFound, appErr.Code)
	})
}

func TestSessionLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Start moves INACTIVE to CONNECTING and repeats are no-ops", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")

		s, err := uc.Start(ctx, session.ID, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CallConnecting, s.Status)

		s, err = uc.Start(ctx, session.ID, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CallConnecting, s.Status)
	})

	t.Run("call-start activates only a connecting session", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")

		// Before Start the event does nothing.
		s, err := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallStart})
		assert.NoError(t, err)
		assert.Equal(t, domain.CallInactive, s.Status)

		_, _ = uc.Start(ctx, session.ID, "user1")
		s, err = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallStart})
		assert.NoError(t, err)
		assert.Equal(t, domain.CallActive, s.Status)
	})

	t.Run("Transcript accumulates only while ACTIVE", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")
		_, _ = uc.Start(ctx, session.ID, "user1")

		// Not live yet: dropped.
		s, _ := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "too early",
		})
		assert.Empty(t, s.Transcript)

		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallStart})
		s, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "assistant", Transcript: "Tell me about Go.",
		})
		s, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "I like channels.",
		})

		assert.Len(t, s.Transcript, 2)
		assert.Equal(t, "assistant", s.Transcript[0].Role)
		assert.Equal(t, "I like channels.", s.Transcript[1].Content)
	})

	t.Run("Speech events toggle the speaking flag", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")
		_, _ = uc.Start(ctx, session.ID, "user1")
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallStart})

		s, _ := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventSpeechStart})
		assert.True(t, s.Speaking)

		s, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventSpeechEnd})
		assert.False(t, s.Speaking)
	})

	t.Run("Error events record the message without ending the call", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")
		_, _ = uc.Start(ctx, session.ID, "user1")
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallStart})

		s, _ := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventError, ErrMessage: "audio dropout",
		})
		assert.Equal(t, domain.CallActive, s.Status)
		assert.Equal(t, "audio dropout", s.LastError)
	})

	t.Run("Start after FINISHED is rejected", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")
		_, _ = uc.Start(ctx, session.ID, "user1")
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})

		_, err := uc.Start(ctx, session.ID, "user1")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Code)
	})

	t.Run("Disconnect before start is inert", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockFeedbackUsecase))
		session := openInterviewSession(t, uc, "user1")

		s, err := uc.Disconnect(ctx, session.ID, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CallInactive, s.Status)
	})
}

func TestSessionScoring(t *testing.T) {
	ctx := context.Background()

	driveToActive := func(t *testing.T, uc domain.SessionUsecase, id string) {
		t.Helper()
		_, _ = uc.Start(ctx, id, "user1")
		_, _ = uc.HandleEvent(ctx, id, "user1", domain.SessionEvent{Kind: domain.SessionEventCallStart})
	}

	t.Run("call-end scores an interview session with a transcript", func(t *testing.T) {
		fbUC := new(MockFeedbackUsecase)
		fbUC.On("CreateFeedback", mock.Anything, mock.MatchedBy(func(p domain.CreateFeedbackParams) bool {
			return p.InterviewID == "iv1" && p.UserID == "user1" && len(p.Transcript) == 1
		})).Return("fb1", nil)

		uc := usecase.NewSessionUsecase(fbUC)
		session := openInterviewSession(t, uc, "user1")
		driveToActive(t, uc, session.ID)
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "My answer.",
		})

		s, err := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})
		assert.NoError(t, err)
		assert.Equal(t, domain.CallFinished, s.Status)
		assert.Equal(t, "fb1", s.ResultFeedbackID)
		assert.False(t, s.FeedbackUnavailable)
		fbUC.AssertExpectations(t)
	})

	t.Run("Empty transcript skips scoring", func(t *testing.T) {
		fbUC := new(MockFeedbackUsecase)
		uc := usecase.NewSessionUsecase(fbUC)
		session := openInterviewSession(t, uc, "user1")
		driveToActive(t, uc, session.ID)

		s, _ := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})
		assert.Equal(t, domain.CallFinished, s.Status)
		fbUC.AssertNotCalled(t, "CreateFeedback", mock.Anything, mock.Anything)
	})

	t.Run("Generate sessions never score", func(t *testing.T) {
		fbUC := new(MockFeedbackUsecase)
		uc := usecase.NewSessionUsecase(fbUC)
		session, err := uc.Open(ctx, &domain.Session{UserID: "user1", Purpose: domain.PurposeGenerate})
		assert.NoError(t, err)
		driveToActive(t, uc, session.ID)
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "Generate me an interview.",
		})

		s, _ := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})
		assert.Equal(t, domain.CallFinished, s.Status)
		fbUC.AssertNotCalled(t, "CreateFeedback", mock.Anything, mock.Anything)
	})

	t.Run("Scoring failure is soft", func(t *testing.T) {
		fbUC := new(MockFeedbackUsecase)
		fbUC.On("CreateFeedback", mock.Anything, mock.Anything).
			Return("", apperror.ScoringFailed("Scoring response was not valid JSON", nil))

		uc := usecase.NewSessionUsecase(fbUC)
		session := openInterviewSession(t, uc, "user1")
		driveToActive(t, uc, session.ID)
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "My answer.",
		})

		s, err := uc.Disconnect(ctx, session.ID, "user1")
		assert.NoError(t, err)
		assert.Equal(t, domain.CallFinished, s.Status)
		assert.True(t, s.FeedbackUnavailable)
		assert.Empty(t, s.ResultFeedbackID)
	})

	t.Run("Regeneration passes the prior feedback id through", func(t *testing.T) {
		fbUC := new(MockFeedbackUsecase)
		fbUC.On("CreateFeedback", mock.Anything, mock.MatchedBy(func(p domain.CreateFeedbackParams) bool {
			return p.FeedbackID == "fb-old"
		})).Return("fb-old", nil)

		uc := usecase.NewSessionUsecase(fbUC)
		session, err := uc.Open(ctx, &domain.Session{
			UserID:      "user1",
			InterviewID: "iv1",
			FeedbackID:  "fb-old",
			Purpose:     domain.PurposeInterview,
		})
		assert.NoError(t, err)
		driveToActive(t, uc, session.ID)
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "A better answer.",
		})

		s, _ := uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})
		assert.Equal(t, "fb-old", s.ResultFeedbackID)
		fbUC.AssertExpectations(t)
	})

	t.Run("A second call-end does not score twice", func(t *testing.T) {
		fbUC := new(MockFeedbackUsecase)
		fbUC.On("CreateFeedback", mock.Anything, mock.Anything).Return("fb1", nil).Once()

		uc := usecase.NewSessionUsecase(fbUC)
		session := openInterviewSession(t, uc, "user1")
		driveToActive(t, uc, session.ID)
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{
			Kind: domain.SessionEventTranscript, Role: "user", Transcript: "My answer.",
		})

		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})
		_, _ = uc.HandleEvent(ctx, session.ID, "user1", domain.SessionEvent{Kind: domain.SessionEventCallEnd})

		fbUC.AssertNumberOfCalls(t, "CreateFeedback", 1)
	})
}
