package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/pkg/apperror"
	"opticare-backend/pkg/utils"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func testUser(t *testing.T, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &entity.User{
		ID:       uuid.New(),
		Name:     "Counter Staff",
		Email:    "staff@example.com",
		Password: string(hash),
		Role:     "staff",
		Active:   active,
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(UserRepoMock)
	svc := NewAuthService(repo, utils.NewJWTManager("test-secret", time.Hour))
	user := testUser(t, "password123", true)

	repo.On("GetByEmail", mock.Anything, "staff@example.com").Return(user, nil)

	result, err := svc.Login(context.Background(), "staff@example.com", "password123")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(UserRepoMock)
	svc := NewAuthService(repo, utils.NewJWTManager("test-secret", time.Hour))

	repo.On("GetByEmail", mock.Anything, "staff@example.com").Return(testUser(t, "password123", true), nil)

	_, err := svc.Login(context.Background(), "staff@example.com", "wrong")

	assert.Equal(t, apperror.ErrInvalidCredentials, err)
}

func TestLogin_UnknownOrInactiveUser(t *testing.T) {
	repo := new(UserRepoMock)
	svc := NewAuthService(repo, utils.NewJWTManager("test-secret", time.Hour))

	repo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
	repo.On("GetByEmail", mock.Anything, "staff@example.com").Return(testUser(t, "password123", false), nil)

	_, err := svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.Equal(t, apperror.ErrInvalidCredentials, err)

	_, err = svc.Login(context.Background(), "staff@example.com", "password123")
	assert.Equal(t, apperror.ErrInvalidCredentials, err)
}

func TestLogin_EmptyCredentials(t *testing.T) {
	repo := new(UserRepoMock)
	svc := NewAuthService(repo, utils.NewJWTManager("test-secret", time.Hour))

	_, err := svc.Login(context.Background(), "", "")

	assert.Equal(t, apperror.ErrInvalidCredentials, err)
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
