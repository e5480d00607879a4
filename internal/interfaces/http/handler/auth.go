package handler

import (
	"github.com/freightline/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles operator login
type AuthHandler struct {
	BaseHandler
	credentials *auth.CredentialChecker
	jwtService  *auth.JWTService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(credentials *auth.CredentialChecker, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		jwtService:  jwtService,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.credentials.Verify(req.Username, req.Password); err != nil {
		h.Unauthorized(c, "Invalid username or password")
		return
	}

	token, err := h.jwtService.GenerateToken(req.Username)
	if err != nil {
		h.InternalError(c, "Failed to issue token")
		return
	}

	h.Success(c, token)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}
