package handler

import (
	"net/http"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	expiresIn   int
}

func NewAuthHandler(authService service.AuthService, accessTokenSeconds int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		expiresIn:   accessTokenSeconds,
	}
}

// RegisterRoutes registers the credential exchange routes
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup, limiter gin.HandlerFunc) {
	auth := router.Group("/auth")
	auth.Use(limiter)
	{
		auth.POST("/email", h.RequestConfirmation) // issue a confirmation code
		auth.POST("/token", h.ExchangeToken)       // exchange for a token pair
	}

	token := router.Group("/token")
	token.Use(limiter)
	{
		token.POST("/refresh", h.RefreshToken)
		token.POST("/revoke", h.RevokeToken)
	}
}

// RequestConfirmation creates or reuses the user for the email and mails a
// confirmation code
// POST /api/v1/auth/email
func (h *AuthHandler) RequestConfirmation(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.RequestConfirmation(c.Request.Context(), req.Email); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"email": req.Email})
}

// ExchangeToken trades email + confirmation code for an access/refresh pair
// POST /api/v1/auth/token
func (h *AuthHandler) ExchangeToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, err := h.authService.ExchangeToken(c.Request.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.expiresIn,
	})
}

// RefreshToken rotates the refresh token and issues a new access token
// POST /api/v1/token/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAccessToken, newRefreshToken, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    h.expiresIn,
	})
}

// RevokeToken revokes a refresh token
// POST /api/v1/token/revoke
func (h *AuthHandler) RevokeToken(c *gin.Context) {
	var req dto.RevokeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// always report success to avoid token fishing
	_ = h.authService.RevokeToken(c.Request.Context(), req.RefreshToken)

	c.JSON(http.StatusOK, dto.RevokeTokenResponse{
		Message: "Refresh token revoked successfully",
	})
}
