package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go-mockinterview-backend/internal/domain"
	"go-mockinterview-backend/internal/usecase"
	"go-mockinterview-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockLoginGuard struct {
	mock.Mock
}

func (m *MockLoginGuard) IsBlocked(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginGuard) RecordFailure(ctx context.Context, email, ip, requestID string) (bool, error) {
	args := m.Called(ctx, email, ip, requestID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLoginGuard) RecordSuccess(ctx context.Context, email, ip, requestID string) {
	m.Called(ctx, email, ip, requestID)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Short password is rejected", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), nil, "secret", time.Hour)
		_, err := uc.Register(ctx, "Ana", "ana@example.com", "short")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "8 characters")
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ana@example.com").
			Return(&domain.User{ID: "u1"}, nil)

		uc := usecase.NewAuthUsecase(repo, nil, "secret", time.Hour)
		_, err := uc.Register(ctx, "Ana", "ana@example.com", "password123")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("Name defaults to the email local part", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, domain.ErrNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Name == "ana" && u.Email == "ana@example.com" && u.PasswordHash != "password123"
		})).Return(nil)

		uc := usecase.NewAuthUsecase(repo, nil, "secret", time.Hour)
		user, err := uc.Register(ctx, "", "  Ana@Example.com ", "password123")

		assert.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		repo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	storedUser := &domain.User{ID: "u1", Email: "ana@example.com", PasswordHash: string(hash)}

	t.Run("Blocked email is forbidden before credentials are checked", func(t *testing.T) {
		guard := new(MockLoginGuard)
		guard.On("IsBlocked", mock.Anything, "ana@example.com").Return(true, nil)

		repo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(repo, guard, "secret", time.Hour)
		_, err := uc.Login(ctx, "ana@example.com", "password123", "1.2.3.4", "req1")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.Code)
		repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Wrong password records a failure", func(t *testing.T) {
		guard := new(MockLoginGuard)
		guard.On("IsBlocked", mock.Anything, "ana@example.com").Return(false, nil)
		guard.On("RecordFailure", mock.Anything, "ana@example.com", "1.2.3.4", "req1").Return(false, nil)

		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(storedUser, nil)

		uc := usecase.NewAuthUsecase(repo, guard, "secret", time.Hour)
		_, err := uc.Login(ctx, "ana@example.com", "wrong", "1.2.3.4", "req1")

		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusUnauthorized, appErr.Code)
		guard.AssertExpectations(t)
	})

	t.Run("Unknown email fails with the same message as a wrong password", func(t *testing.T) {
		guard := new(MockLoginGuard)
		guard.On("IsBlocked", mock.Anything, "ghost@example.com").Return(false, nil)
		guard.On("RecordFailure", mock.Anything, "ghost@example.com", "1.2.3.4", "req1").Return(false, nil)

		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		uc := usecase.NewAuthUsecase(repo, guard, "secret", time.Hour)
		_, err := uc.Login(ctx, "ghost@example.com", "password123", "1.2.3.4", "req1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid email or password")
	})

	t.Run("Valid credentials issue a token and clear failures", func(t *testing.T) {
		guard := new(MockLoginGuard)
		guard.On("IsBlocked", mock.Anything, "ana@example.com").Return(false, nil)
		guard.On("RecordSuccess", mock.Anything, "ana@example.com", "1.2.3.4", "req1").Return()

		repo := new(MockUserRepo)
		repo.On("GetByEmail", mock.Anything, "ana@example.com").Return(storedUser, nil)

		uc := usecase.NewAuthUsecase(repo, guard, "secret", time.Hour)
		result, err := uc.Login(ctx, "ana@example.com", "password123", "1.2.3.4", "req1")

		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "u1", result.User.ID)
		guard.AssertExpectations(t)
	})
}
