package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inoxmetalart/backend/internal/middleware"
	"github.com/inoxmetalart/backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /api/v1/auth/register
func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	if _, err := ah.authService.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"msg": "User created successfully"})
}

// POST /api/v1/auth/login
func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
		return
	}
	accessToken, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondErr(c, err)
		return
	}
	RespondOK(c, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
		"expires_in":   int(ah.authService.AccessTTL().Seconds()),
	})
}

// GET /api/v1/auth/me
func (ah *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	RespondOK(c, user)
}

// GET /api/v1/auth/check
func (ah *AuthHandler) Check(c *gin.Context) {
	RespondOK(c, gin.H{"authenticated": true})
}
