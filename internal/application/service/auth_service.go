package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"opticare-backend/internal/domain/entity"
	"opticare-backend/internal/domain/repository"
	"opticare-backend/pkg/apperror"
	"opticare-backend/pkg/utils"
)

// AuthService handles staff authentication
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{userRepo: userRepo, jwtManager: jwtManager}
}

// LoginResult contains the token and user after a successful login
type LoginResult struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Login authenticates a staff member by email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperror.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: user}, nil
}
