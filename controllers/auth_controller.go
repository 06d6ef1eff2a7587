package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kennel-backend/middleware"
	"kennel-backend/services"
	"kennel-backend/utils"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordPayload struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type registerPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	username := strings.TrimSpace(payload.Username)
	if username == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, err := ac.auth.Authenticate(username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccountDisabled):
			utils.JSONError(c, http.StatusForbidden, "Account is disabled. Contact system administrator.")
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.JSONError(c, http.StatusUnauthorized, "Invalid username or password")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	token, err := utils.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": admin.ToDict(),
	})
}

// Verify handles GET /api/auth/verify; the gate has already done the work.
func (ac *AuthController) Verify(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user":  admin.ToDict(),
	})
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	admin := middleware.CurrentAdmin(c)
	c.JSON(http.StatusOK, admin.ToDict())
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so this is
// an acknowledgment only; the client discards its copy.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// ChangePassword handles POST /api/auth/change-password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}
	if payload.CurrentPassword == "" || payload.NewPassword == "" {
		utils.JSONError(c, http.StatusBadRequest, "Both current and new passwords are required")
		return
	}

	admin := middleware.CurrentAdmin(c)
	if err := ac.auth.ChangePassword(admin.ID, payload.CurrentPassword, payload.NewPassword); err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword):
			utils.JSONError(c, http.StatusUnauthorized, "Current password is incorrect")
		case errors.Is(err, services.ErrPasswordTooShort):
			utils.JSONError(c, http.StatusBadRequest, "New password must be at least 8 characters")
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

// Register handles POST /api/auth/register (admin-only).
func (ac *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	username := strings.TrimSpace(payload.Username)
	email := strings.TrimSpace(payload.Email)
	if username == "" || email == "" || payload.Password == "" {
		utils.JSONError(c, http.StatusBadRequest, "Username, email and password are required")
		return
	}
	if !utils.ValidateEmail(email) {
		utils.JSONError(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	admin, err := ac.auth.CreateAdmin(username, email, payload.Password, payload.FullName)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken),
			errors.Is(err, services.ErrEmailTaken),
			errors.Is(err, services.ErrPasswordTooShort):
			utils.JSONError(c, http.StatusBadRequest, err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin created successfully",
		"admin":   admin.ToDict(),
	})
}
