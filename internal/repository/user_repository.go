package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/listify/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

var (
	// ErrDuplicateUser is returned when a unique index on users rejects the insert.
	ErrDuplicateUser = errors.New("user repository: duplicate user")
	// ErrCreateToken is returned when storing a token fails.
	ErrCreateToken = errors.New("user repository: create token failed")
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// CreateWithToken creates a user and its first token atomically.
func (r *GormUserRepository) CreateWithToken(ctx context.Context, user *models.User, token *models.UserToken) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", ErrDuplicateUser, err)
			}
			return err
		}

		token.UserID = user.ID
		if err := tx.Create(token).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateToken, err)
		}

		return nil
	})
}

// AddToken stores an additional token for a user
func (r *GormUserRepository) AddToken(ctx context.Context, token *models.UserToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrCreateToken, err)
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByToken finds the user owning the given token
func (r *GormUserRepository) FindByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_tokens ON user_tokens.user_id = users.id").
		Where("user_tokens.token = ?", token).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountTokens returns how many tokens have been issued to a user
func (r *GormUserRepository) CountTokens(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserToken{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
