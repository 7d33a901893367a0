package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skobayashi/taskdeck/internal/dto"
	apierrors "github.com/skobayashi/taskdeck/internal/errors"
	"github.com/skobayashi/taskdeck/internal/middleware"
	"github.com/skobayashi/taskdeck/internal/response"
	"github.com/skobayashi/taskdeck/internal/services"
	"github.com/skobayashi/taskdeck/internal/validation"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user and returns it with a signed token.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if details := validation.Check(req); details != nil {
		apierrors.ValidationFailed(c, "Validation failed", details)
		return
	}

	user, token, err := h.authService.Register(services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	data := dto.AuthData{
		User:  dto.ToUserDTO(*user),
		Token: token,
	}
	response.Success(c, http.StatusCreated, data, "User registered successfully")
}

// Login authenticates a user and returns a fresh token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if details := validation.Check(req); details != nil {
		apierrors.ValidationFailed(c, "Validation failed", details)
		return
	}

	user, token, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	data := dto.AuthData{
		User:  dto.ToUserDTO(*user),
		Token: token,
	}
	response.Success(c, http.StatusOK, data, "Login successful")
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	user, exists := middleware.CurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": dto.ToUserDTO(*user)}, "User profile retrieved successfully")
}

// respondAuthError normalizes auth service failures into the envelope.
func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.ValidationFailed(c, "User already exists", []validation.FieldError{
			{Field: "email", Message: "This value already exists"},
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.Unauthorized(c, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "Not authorized, token failed")
	default:
		apierrors.ServerError(c, "")
	}
}
