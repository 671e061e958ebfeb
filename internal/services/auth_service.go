package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/listify/internal/models"
	"github.com/yukikurage/listify/internal/repository"
	"github.com/yukikurage/listify/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

var (
	ErrUserConflict         = errors.New("username or email already exists")
	ErrMissingFields        = errors.New("username, password and email are required")
	ErrPasswordTooLong      = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUserNotFound         = errors.New("user not found")
	ErrTokenNotFound        = errors.New("token not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToIssueToken   = errors.New("failed to issue token")
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	newToken   func() (string, error)
}

// NewAuthService creates a new AuthService. A cost outside bcrypt's accepted
// range falls back to bcrypt.DefaultCost.
func NewAuthService(userRepo repository.UserRepository, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		newToken:   utils.GenerateToken,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Email    string
}

// Register creates a new user together with its first session token.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, string, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, "", ErrMissingFields
	}
	if len(input.Password) > MaxPasswordBytes {
		return nil, "", ErrPasswordTooLong
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	token, err := s.newToken()
	if err != nil {
		return nil, "", ErrFailedToIssueToken
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.CreateWithToken(ctx, user, &models.UserToken{Token: token}); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, "", fmt.Errorf("%w: %v", ErrUserConflict, err)
		}
		return nil, "", fmt.Errorf("failed to complete registration: %w", err)
	}

	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and mints an additional token for the user.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.newToken()
	if err != nil {
		return nil, "", ErrFailedToIssueToken
	}

	if err := s.userRepo.AddToken(ctx, &models.UserToken{UserID: user.ID, Token: token}); err != nil {
		return nil, "", fmt.Errorf("failed to store token: %w", err)
	}

	return user, token, nil
}

// VerifyToken returns the user owning token.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrTokenNotFound
	}

	user, err := s.userRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
