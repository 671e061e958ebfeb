package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/listify/internal/constants"
	"github.com/yukikurage/listify/internal/dto"
	apierrors "github.com/yukikurage/listify/internal/errors"
	"github.com/yukikurage/listify/internal/middleware"
	"github.com/yukikurage/listify/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates an account and returns its first token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		// every registration failure, constraint violations included, is a 400
		h.logger.Warn("registration failed", "username", req.Username, "error", err)
		apierrors.BadRequest(c, err.Error())
		return
	}

	h.logger.Info("user registered", "username", user.Username)
	c.JSON(http.StatusCreated, dto.ToAuthResponse(constants.MessageRegistered, *user, token))
}

// Login checks credentials and mints a new token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuthResponse(constants.MessageLoggedIn, *user, token))
}

// Verify resolves a token to its owner's email. Unknown tokens yield an empty object.
func (h *AuthHandler) Verify(c *gin.Context) {
	type VerifyRequest struct {
		Token string `json:"token"`
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, dto.ToVerifyResponse(nil))
		return
	}

	user, err := h.authService.VerifyToken(c.Request.Context(), req.Token)
	if err != nil {
		if !errors.Is(err, services.ErrTokenNotFound) {
			h.logger.Error("token verification failed", "error", err)
		}
		c.JSON(http.StatusOK, dto.ToVerifyResponse(nil))
		return
	}

	c.JSON(http.StatusOK, dto.ToVerifyResponse(user))
}

// GetCurrentUser returns the user resolved by RequireToken.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, exists := middleware.GetUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *AuthHandler) respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, constants.MessageUserNotFound)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, constants.MessageInvalidCredentials)
	default:
		h.logger.Error("login failed", "error", err)
		apierrors.InternalError(c, err.Error())
	}
}
