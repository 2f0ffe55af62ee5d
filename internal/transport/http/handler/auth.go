package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/model"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
}

type RegisterRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func NewAuthHandler(authService *app.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Validation error")
		return
	}

	result, err := h.authService.Register(app.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			response.Error(c, http.StatusUnprocessableEntity, "Validation error")
		case errors.Is(err, app.ErrPasswordMismatch):
			response.Error(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, app.ErrDuplicateUser):
			response.Error(c, http.StatusBadRequest, "User already exists")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.Created(c, "User registered", gin.H{
		"user":       userView(result.User),
		"token":      result.Token,
		"token_type": "Bearer",
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Validation error")
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			response.Error(c, http.StatusUnprocessableEntity, "Validation error")
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":       userView(result.User),
		"token":      result.Token,
		"token_type": "Bearer",
	})
}

// Logout acknowledges the call; the token itself stays valid until its
// expiry, there is no revocation list.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.OK(c, "", gin.H{"user": userView(user)})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnprocessableEntity, "Validation error")
		return
	}

	user, err := h.authService.UpdateProfile(app.UpdateProfileInput{
		UserID:               userID,
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrPasswordMismatch):
			response.Error(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, app.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found")
		default:
			response.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}

	response.OK(c, "Profile updated", gin.H{"user": userView(user)})
}

func userView(user *model.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok
}
