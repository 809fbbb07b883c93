package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Interview types. Resume-derived interviews are private to their owner
// and never appear in the shared "available" listing.
const (
	InterviewTypeTechnical  = "Technical"
	InterviewTypeBehavioral = "Behavioral"
	InterviewTypeMixed      = "Mixed"
	InterviewTypeResume     = "resume"
)

type Interview struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Type      string    `json:"type"`
	Level     string    `json:"level"`
	Techstack []string  `json:"techstack"`
	Questions []string  `json:"questions"`
	UserID    string    `json:"userId"`
	Finalized bool      `json:"finalized"`
	CreatedAt time.Time `json:"createdAt"`
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id string) (*Interview, error)
	FetchByUserID(ctx context.Context, userID string) ([]Interview, error)
	FetchAvailable(ctx context.Context, excludeUserID string, limit int) ([]Interview, error)
	Delete(ctx context.Context, id string) error
}

type InterviewUsecase interface {
	CreateInterview(ctx context.Context, interview *Interview) (string, error)
	GetInterview(ctx context.Context, id string) (*Interview, error)
	ListByUser(ctx context.Context, userID string) ([]Interview, error)
	ListAvailable(ctx context.Context, userID string, limit int) ([]Interview, error)
	DeleteInterview(ctx context.Context, id, requestingUserID string) error
}
