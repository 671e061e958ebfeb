package dto

import (
	"time"

	"github.com/yukikurage/listify/internal/models"
)

// UserDTO is the public user projection: no password hash, no tokens.
type UserDTO struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
	Token   string  `json:"token"`
}

// VerifiedUserDTO is the identity returned by token verification
type VerifiedUserDTO struct {
	Email string `json:"email"`
}

// VerifyResponse carries the verified user, or nothing when the token is unknown
type VerifyResponse struct {
	User *VerifiedUserDTO `json:"user,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ToAuthResponse builds the register/login response body
func ToAuthResponse(message string, user models.User, token string) AuthResponse {
	return AuthResponse{
		Message: message,
		User:    ToUserDTO(user),
		Token:   token,
	}
}

// ToVerifyResponse builds the verify response; a nil user yields an empty object
func ToVerifyResponse(user *models.User) VerifyResponse {
	if user == nil {
		return VerifyResponse{}
	}
	return VerifyResponse{User: &VerifiedUserDTO{Email: user.Email}}
}
