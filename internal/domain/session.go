package domain

import (
	"context"
	"time"
)

// CallStatus is the lifecycle state of a live interview session.
type CallStatus string

const (
	CallInactive   CallStatus = "INACTIVE"
	CallConnecting CallStatus = "CONNECTING"
	CallActive     CallStatus = "ACTIVE"
	CallFinished   CallStatus = "FINISHED"
)

// SessionPurpose distinguishes scored interview sessions from ad hoc
// generation sessions, which never produce feedback.
type SessionPurpose string

const (
	PurposeInterview SessionPurpose = "interview"
	PurposeGenerate  SessionPurpose = "generate"
)

// SessionEventKind identifies a provider callback event.
type SessionEventKind string

const (
	SessionEventCallStart   SessionEventKind = "call-start"
	SessionEventCallEnd     SessionEventKind = "call-end"
	SessionEventTranscript  SessionEventKind = "transcript"
	SessionEventSpeechStart SessionEventKind = "speech-start"
	SessionEventSpeechEnd   SessionEventKind = "speech-end"
	SessionEventError       SessionEventKind = "error"
)

// SessionEvent is a provider callback translated to domain terms.
// Transcript events carry only finalized segments.
type SessionEvent struct {
	Kind       SessionEventKind
	Role       string
	Transcript string
	ErrMessage string
}

// Session is the state owned by one conversation session driver. The
// transcript accumulates in event-arrival order while the call is ACTIVE
// and is consumed once, on entering FINISHED.
type Session struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId"`
	InterviewID string           `json:"interviewId,omitempty"`
	FeedbackID  string           `json:"feedbackId,omitempty"`
	Purpose     SessionPurpose   `json:"purpose"`
	Status      CallStatus       `json:"status"`
	Transcript  []TranscriptTurn `json:"transcript"`
	Speaking    bool             `json:"speaking"`
	// ResultFeedbackID is set when scoring succeeded after the session
	// finished. FeedbackUnavailable is set when scoring was attempted
	// and failed; the caller treats this as a soft failure.
	ResultFeedbackID    string    `json:"resultFeedbackId,omitempty"`
	FeedbackUnavailable bool      `json:"feedbackUnavailable,omitempty"`
	LastError           string    `json:"lastError,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type SessionUsecase interface {
	Open(ctx context.Context, session *Session) (*Session, error)
	Start(ctx context.Context, id, userID string) (*Session, error)
	HandleEvent(ctx context.Context, id, userID string, event SessionEvent) (*Session, error)
	Disconnect(ctx context.Context, id, userID string) (*Session, error)
	Get(ctx context.Context, id, userID string) (*Session, error)
}
