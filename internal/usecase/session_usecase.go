package usecase

import (
	"context"
	"sync"
	"time"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/apperror"

	"github.com/google/uuid"
)

// sessionUsecase owns one driver per live session. Drivers are purely
// in-memory: a session that never finishes simply ages out with the
// process.
type sessionUsecase struct {
	mu         sync.RWMutex
	drivers    map[string]*sessionDriver
	feedbackUC domain.FeedbackUsecase
}

// sessionDriver serializes all state transitions of a single session.
type sessionDriver struct {
	mu      sync.Mutex
	session domain.Session
}

func NewSessionUsecase(feedbackUC domain.FeedbackUsecase) domain.SessionUsecase {
	return &sessionUsecase{
		drivers:    make(map[string]*sessionDriver),
		feedbackUC: feedbackUC,
	}
}

func (u *sessionUsecase) Open(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	switch session.Purpose {
	case domain.PurposeInterview:
		if session.InterviewID == "" {
			return nil, apperror.BadRequest("Interview sessions require an interviewId")
		}
	case domain.PurposeGenerate:
		// No interview reference needed.
	default:
		return nil, apperror.BadRequest("Session purpose must be \"interview\" or \"generate\"")
	}
	if session.UserID == "" {
		return nil, apperror.BadRequest("Session must have a userId")
	}

	driver := &sessionDriver{
		session: domain.Session{
			ID:          uuid.NewString(),
			UserID:      session.UserID,
			InterviewID: session.InterviewID,
			FeedbackID:  session.FeedbackID,
			Purpose:     session.Purpose,
			Status:      domain.CallInactive,
			CreatedAt:   time.Now().UTC(),
		},
	}

	u.mu.Lock()
	u.drivers[driver.session.ID] = driver
	u.mu.Unlock()

	snapshot := driver.snapshot()
	return &snapshot, nil
}

func (u *sessionUsecase) Start(ctx context.Context, id, userID string) (*domain.Session, error) {
	driver, err := u.driverFor(id, userID)
	if err != nil {
		return nil, err
	}

	driver.mu.Lock()
	defer driver.mu.Unlock()

	switch driver.session.Status {
	case domain.CallInactive:
		driver.session.Status = domain.CallConnecting
	case domain.CallConnecting, domain.CallActive:
		// Exactly one live call per driver: repeated starts are ignored.
	case domain.CallFinished:
		return nil, apperror.BadRequest("Session has already finished")
	}

	snapshot := driver.snapshotLocked()
	return &snapshot, nil
}

func (u *sessionUsecase) HandleEvent(ctx context.Context, id, userID string, event domain.SessionEvent) (*domain.Session, error) {
	driver, err := u.driverFor(id, userID)
	if err != nil {
		return nil, err
	}

	driver.mu.Lock()
	defer driver.mu.Unlock()

	switch event.Kind {
	case domain.SessionEventCallStart:
		if driver.session.Status == domain.CallConnecting {
			driver.session.Status = domain.CallActive
		}
	case domain.SessionEventTranscript:
		// Turns append strictly in event-arrival order.
		if driver.session.Status == domain.CallActive && event.Transcript != "" {
			driver.session.Transcript = append(driver.session.Transcript, domain.TranscriptTurn{
				Role:    event.Role,
				Content: event.Transcript,
			})
		}
	case domain.SessionEventSpeechStart:
		driver.session.Speaking = true
	case domain.SessionEventSpeechEnd:
		driver.session.Speaking = false
	case domain.SessionEventError:
		driver.session.LastError = event.ErrMessage
	case domain.SessionEventCallEnd:
		u.finishLocked(ctx, driver)
	}

	snapshot := driver.snapshotLocked()
	return &snapshot, nil
}

func (u *sessionUsecase) Disconnect(ctx context.Context, id, userID string) (*domain.Session, error) {
	driver, err := u.driverFor(id, userID)
	if err != nil {
		return nil, err
	}

	driver.mu.Lock()
	defer driver.mu.Unlock()

	// Disconnect before start, or after the call ended, is inert.
	if driver.session.Status == domain.CallConnecting || driver.session.Status == domain.CallActive {
		u.finishLocked(ctx, driver)
	}

	snapshot := driver.snapshotLocked()
	return &snapshot, nil
}

func (u *sessionUsecase) Get(ctx context.Context, id, userID string) (*domain.Session, error) {
	driver, err := u.driverFor(id, userID)
	if err != nil {
		return nil, err
	}
	snapshot := driver.snapshot()
	return &snapshot, nil
}

// finishLocked transitions to FINISHED and, for interview sessions with a
// non-empty transcript, scores it synchronously. Scoring failure is a
// soft outcome: the session reports feedback as unavailable rather than
// failing.
func (u *sessionUsecase) finishLocked(ctx context.Context, driver *sessionDriver) {
	if driver.session.Status == domain.CallFinished {
		return
	}
	driver.session.Status = domain.CallFinished
	driver.session.Speaking = false

	if driver.session.Purpose != domain.PurposeInterview || len(driver.session.Transcript) == 0 {
		return
	}

	feedbackID, err := u.feedbackUC.CreateFeedback(ctx, domain.CreateFeedbackParams{
		InterviewID: driver.session.InterviewID,
		UserID:      driver.session.UserID,
		Transcript:  driver.session.Transcript,
		FeedbackID:  driver.session.FeedbackID,
	})
	if err != nil {
		driver.session.FeedbackUnavailable = true
		return
	}
	driver.session.ResultFeedbackID = feedbackID
}

func (u *sessionUsecase) driverFor(id, userID string) (*sessionDriver, error) {
	u.mu.RLock()
	driver, ok := u.drivers[id]
	u.mu.RUnlock()
	if !ok {
		return nil, apperror.NotFound("Session not found")
	}
	if driver.session.UserID != userID {
		return nil, apperror.Forbidden("You can only access your own sessions")
	}
	return driver, nil
}

func (d *sessionDriver) snapshot() domain.Session {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *sessionDriver) snapshotLocked() domain.Session {
	copied := d.session
	copied.Transcript = append([]domain.TranscriptTurn(nil), d.session.Transcript...)
	return copied
}
