package repository

import (
	"context"

	"github.com/yukikurage/listify/internal/models"
)

// UserRepository defines the interface for credential data access
type UserRepository interface {
	// CreateWithToken creates a user and its first token within a single transaction.
	// Duplicate usernames or emails yield an error wrapping ErrDuplicateUser.
	CreateWithToken(ctx context.Context, user *models.User, token *models.UserToken) error

	// AddToken appends a token to an existing user
	AddToken(ctx context.Context, token *models.UserToken) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByToken finds the user owning the given token
	FindByToken(ctx context.Context, token string) (*models.User, error)

	// CountTokens returns how many tokens have been issued to a user
	CountTokens(ctx context.Context, userID uint64) (int64, error)
}
