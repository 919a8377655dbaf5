package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/RanaNomiRana/backend-afa/internal/service"
)

type AuthHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, logger: logger}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles POST /auth/register
func (h *authHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != "" && req.Role != service.RoleAdmin && req.Role != service.RoleInvestigator {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be admin or investigator"})
		return
	}

	investigator, err := h.authService.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrInvestigatorExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to register investigator", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register investigator"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Investigator registered successfully",
		"username": investigator.Username,
		"id":       investigator.ID,
		"role":     investigator.Role,
	})
}

// Login handles POST /auth/login
func (h *authHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		h.logger.Error("Failed to login investigator", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Login successful",
		"token":      token,
		"expires_at": expiresAt,
	})
}
