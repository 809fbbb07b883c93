package usecase

import (
	"context"
	"strings"
	"time"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LoginGuard tracks failed logins and enforces block windows. Satisfied
// by security.LoginTracker; a nil guard disables tracking.
type LoginGuard interface {
	IsBlocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email, ip, requestID string) (bool, error)
	RecordSuccess(ctx context.Context, email, ip, requestID string)
}

type authUsecase struct {
	userRepo        domain.UserRepository
	guard           LoginGuard
	jwtSecret       []byte
	sessionDuration time.Duration
}

func NewAuthUsecase(userRepo domain.UserRepository, guard LoginGuard, jwtSecret string, sessionDuration time.Duration) domain.AuthUsecase {
	return &authUsecase{
		userRepo:        userRepo,
		guard:           guard,
		jwtSecret:       []byte(jwtSecret),
		sessionDuration: sessionDuration,
	}
}

func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperror.BadRequest("Email is required")
	}
	if len(password) < 8 {
		return nil, apperror.BadRequest("Password must be at least 8 characters")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	if existing, err := u.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperror.BadRequest("User already exists. Please sign in.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, email, password, clientIP, requestID string) (*domain.AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if u.guard != nil {
		blocked, err := u.guard.IsBlocked(ctx, email)
		if err == nil && blocked {
			return nil, apperror.Forbidden("Too many failed attempts. Try again later.")
		}
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		u.recordFailure(ctx, email, clientIP, requestID)
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		u.recordFailure(ctx, email, clientIP, requestID)
		return nil, apperror.Unauthorized("Invalid email or password")
	}

	if u.guard != nil {
		u.guard.RecordSuccess(ctx, email, clientIP, requestID)
	}

	token, err := u.issueToken(user)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AuthResult{User: user, Token: token}, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID, name string) error {
	if name = strings.TrimSpace(name); name == "" {
		return apperror.BadRequest("Name is required")
	}
	if err := u.userRepo.UpdateName(ctx, userID, name); err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("User not found")
		}
		return err
	}
	return nil
}

func (u *authUsecase) issueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(u.sessionDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(u.jwtSecret)
}

func (u *authUsecase) recordFailure(ctx context.Context, email, clientIP, requestID string) {
	if u.guard == nil {
		return
	}
	_, _ = u.guard.RecordFailure(ctx, email, clientIP, requestID)
}
